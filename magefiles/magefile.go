//go:build mage

// Package main provides build targets for the mangekyou project using Mage.
//
// Usage:
//
//	mage build          Compile the mangekyou binary to bin/
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Run tests and write coverage.out
//	mage lint           Check gofmt, run go vet and golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install mangekyou to GOPATH/bin
package main
