// Package mocks provides hand-rolled test doubles for the application's
// interfaces. Each mock carries optional function fields for per-test
// behavior and a usable in-memory default implementation.
package mocks
