//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install` and are not tracked in go.mod
// since they are development tools, not runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// Air - Live reload for Go apps (run with DEV=true so templates load from disk)
//   Install: go install github.com/air-verse/air@v1.63.0
//   Version: v1.63.0 (pinned 2025-01-01)
//   Docs: https://github.com/air-verse/air
//
// mockgen - regenerates internal/mocks through `go generate ./internal/mocks`
//   Invoked as `go run go.uber.org/mock/mockgen@v0.6.0`, so no install is needed.
//   Docs: https://github.com/uber-go/mock
