package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commodity-gate/internal/testutil"
)

func TestRunRequiresCredentials(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--server", "http://127.0.0.1:1"}, &out)
	assert.EqualError(t, err, "--email and --password are required")
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--help"}, &out))
	assert.Contains(t, out.String(), "--path")
}

func TestRunStoreKeeper(t *testing.T) {
	srv := testutil.NewAPIServer(t)

	var out bytes.Buffer
	err := run([]string{
		"--server", srv.URL,
		"-e", "storekeeper@slooze.com",
		"-p", testutil.DemoPassword,
		"--path", "/products/add",
		"--path", "/dashboard",
		"--path", "/api/users",
	}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Signed in as Jane StoreKeeper <storekeeper@slooze.com>")
	assert.Contains(t, text, "Landing:     /products")
	assert.Contains(t, text, "Add Product (/products/add)")
	assert.NotContains(t, text, "Dashboard (/dashboard)")
	assert.Contains(t, text, "redirect -> /products")
	assert.Contains(t, text, "deny")
	assert.Contains(t, text, "Logged out.")
}

func TestRunBadPassword(t *testing.T) {
	srv := testutil.NewAPIServer(t)

	var out bytes.Buffer
	err := run([]string{"--server", srv.URL, "-e", "manager@slooze.com", "-p", "wrong"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHORIZED")
}
