// File: internal/services/mail/errors.go
package mail

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeRelay      ErrorType = "RELAY"
	ErrTypeRateLimit  ErrorType = "RATE_LIMIT"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// MailError carries the failure class of a relay call so callers can decide
// whether a retry makes sense.
type MailError struct {
	Type    ErrorType
	Code    int
	Message string
	Cause   error
}

func (e *MailError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("mail %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("mail %s error: %s", e.Type, e.Message)
}

func (e *MailError) Unwrap() error { return e.Cause }

// Retryable reports whether another attempt could plausibly succeed.
func (e *MailError) Retryable() bool {
	return e.Type != ErrTypeConfig && e.Type != ErrTypeValidation
}
