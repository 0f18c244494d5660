package mocks

import (
	"context"
	"sync"

	"github.com/interna-hq/interna-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	mu sync.Mutex

	ChatFn       func(ctx context.Context, req generation.ChatRequest) (string, error)
	ReviewCodeFn func(ctx context.Context, req generation.ReviewRequest) (*generation.ReviewResult, error)

	// Default values used when functions aren't explicitly defined
	Reply     string
	Review    *generation.ReviewResult
	Err       error
	ReviewErr error

	// Recorded requests, for assertions
	ChatRequests   []generation.ChatRequest
	ReviewRequests []generation.ReviewRequest
}

// Chat implements the generation.Generator interface
func (m *MockGenerator) Chat(ctx context.Context, req generation.ChatRequest) (string, error) {
	m.mu.Lock()
	m.ChatRequests = append(m.ChatRequests, req)
	m.mu.Unlock()

	if m.ChatFn != nil {
		return m.ChatFn(ctx, req)
	}
	return m.Reply, m.Err
}

// ReviewCode implements the generation.Generator interface
func (m *MockGenerator) ReviewCode(ctx context.Context, req generation.ReviewRequest) (*generation.ReviewResult, error) {
	m.mu.Lock()
	m.ReviewRequests = append(m.ReviewRequests, req)
	m.mu.Unlock()

	if m.ReviewCodeFn != nil {
		return m.ReviewCodeFn(ctx, req)
	}
	return m.Review, m.ReviewErr
}

var _ generation.Generator = (*MockGenerator)(nil)
