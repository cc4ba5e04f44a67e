package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager(t *testing.T, clock *fakeClock) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret, WithClock(clock.Now))
	require.NoError(t, err)
	return tm
}

var manager = domain.Identity{ID: "1", Email: "manager@slooze.com", Name: "John Manager", Role: domain.RoleManager}

func TestNewTokenManager_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenManager("")
	assert.Error(t, err)
	_, err = NewTokenManager(strings.Repeat("x", MinSecretLength-1))
	assert.Error(t, err)
	_, err = NewTokenManager(strings.Repeat("x", MinSecretLength))
	assert.NoError(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	for _, id := range []domain.Identity{
		manager,
		{ID: "2", Email: "storekeeper@slooze.com", Name: "Jane StoreKeeper", Role: domain.RoleStoreKeeper},
		{ID: "u-3", Role: domain.RoleStoreKeeper},
	} {
		token, issued, err := tm.Issue(id)
		require.NoError(t, err)
		assert.Equal(t, clock.t.Add(TokenTTL), issued.ExpiresAt)
		assert.NotEmpty(t, issued.ID)

		got, err := tm.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, id, got.Identity)
		assert.Equal(t, issued.ID, got.ID)
		assert.True(t, got.ExpiresAt.Equal(issued.ExpiresAt))
	}
}

func TestIssue_RejectsMissingRole(t *testing.T) {
	tm := newTestManager(t, &fakeClock{t: time.Now()})
	_, _, err := tm.Issue(domain.Identity{ID: "1"})
	assert.Error(t, err)
}

func TestVerify_Expiry(t *testing.T) {
	start := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	tm := newTestManager(t, clock)

	token, _, err := tm.Issue(manager)
	require.NoError(t, err)

	clock.t = start.Add(TokenTTL - time.Second)
	got, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, manager, got.Identity)

	clock.t = start.Add(TokenTTL + time.Second)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedSignature(t *testing.T) {
	tm := newTestManager(t, &fakeClock{t: time.Now()})
	token, _, err := tm.Issue(manager)
	require.NoError(t, err)

	sigStart := strings.LastIndex(token, ".") + 1
	for i := sigStart; i < len(token); i++ {
		b := []byte(token)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		_, err := tm.Verify(string(b))
		assert.ErrorIs(t, err, ErrInvalidToken, "byte %d", i)
	}
}

func TestVerify_FailuresCollapse(t *testing.T) {
	tm := newTestManager(t, &fakeClock{t: time.Now()})
	other, err := NewTokenManager(strings.Repeat("z", 40))
	require.NoError(t, err)
	foreign, _, err := other.Issue(manager)
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b.c", foreign} {
		_, err := tm.Verify(token)
		assert.Equal(t, ErrInvalidToken, err)
	}
}

func TestDecodeUnverified(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tm := newTestManager(t, clock)
	token, _, err := tm.Issue(manager)
	require.NoError(t, err)

	clock.t = clock.t.Add(48 * time.Hour)
	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	hint, ok := DecodeUnverified(token)
	require.True(t, ok)
	assert.Equal(t, manager, hint)

	_, ok = DecodeUnverified("not-a-token")
	assert.False(t, ok)
}
