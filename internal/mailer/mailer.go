// Package mailer delivers verification codes to users.
package mailer

import "context"

// Mailer sends a one-time verification code to an email address.
type Mailer interface {
	// SendVerificationCode delivers the code to the recipient.
	// Delivery failure must not leak the code into the returned error.
	SendVerificationCode(ctx context.Context, to, code string) error
}
