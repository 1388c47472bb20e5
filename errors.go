package ringchat

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrNotFound indicates no message matched the given identifier.
	ErrNotFound = errors.New("message not found")

	// ErrTerminalStatus indicates a transition was requested on a message
	// that is already sent or failed.
	ErrTerminalStatus = errors.New("message status is terminal")

	// ErrNotRetryable indicates a retry was requested for a message that is
	// not a failed outgoing message.
	ErrNotRetryable = errors.New("message is not retryable")

	// ErrValidation indicates a configuration value failed validation.
	ErrValidation = errors.New("validation error")
)
