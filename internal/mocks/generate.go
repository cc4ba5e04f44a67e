// Package mocks provides gomock doubles for the session client.
//
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=backend_mock.go github.com/spec-kit/commodity-gate/internal/session Backend
