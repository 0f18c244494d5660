package mailer

import (
	"context"
	"log/slog"
)

// LogMailer logs codes instead of sending them. Development only: the code
// lands in the server log in plaintext.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer that logs instead of sending.
func NewLogMailer(log *slog.Logger) *LogMailer {
	if log == nil {
		log = slog.Default()
	}
	return &LogMailer{logger: log.With(slog.String("component", "log_mailer"))}
}

// Ensure LogMailer implements Mailer interface
var _ Mailer = (*LogMailer)(nil)

// SendVerificationCode implements Mailer.SendVerificationCode
func (m *LogMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	m.logger.Info("verification code (dev mode, not sent)",
		slog.String("to", to),
		slog.String("code", code))
	return nil
}
