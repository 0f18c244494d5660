package mocks

import (
	"context"
	"sync"

	"github.com/interna-hq/interna-api/internal/mailer"
)

// SentMail records one delivery made through the mock mailer.
type SentMail struct {
	To   string
	Code string
}

// MockMailer implements mailer.Mailer for testing, recording every send.
type MockMailer struct {
	mu sync.Mutex

	SendFn func(ctx context.Context, to, code string) error
	Err    error

	Sent []SentMail
}

// SendVerificationCode implements the mailer.Mailer interface
func (m *MockMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, to, code)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Code: code})
	return nil
}

var _ mailer.Mailer = (*MockMailer)(nil)
