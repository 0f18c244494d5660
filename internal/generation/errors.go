package generation

import "errors"

// Errors returned by Generator implementations.
var (
	// ErrInvalidConfig indicates the generator was constructed with
	// missing or invalid settings.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyRequest indicates the request carried no content to work on.
	ErrEmptyRequest = errors.New("request cannot be empty")

	// ErrInvalidResponse indicates the model returned something the
	// generator could not use (empty, malformed, or truncated).
	ErrInvalidResponse = errors.New("invalid model response")

	// ErrContentBlocked indicates the model refused the content due to
	// safety filters. Permanent; retrying the same input will not help.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrTransientFailure indicates a network or backend failure that may
	// succeed on retry. Handlers surface these inline rather than failing
	// the whole page.
	ErrTransientFailure = errors.New("transient generation failure")
)
