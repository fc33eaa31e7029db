// Package apperr defines the error kinds handlers translate into HTTP status
// codes.
package apperr

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrNotFound       = errors.New("not found")
	ErrPersistence    = errors.New("persistence error")
)

// Error pairs a kind with a message that is safe to show to callers. Err is
// the underlying cause and is never rendered in responses.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func Authentication(message string, cause error) error {
	return &Error{Kind: ErrAuthentication, Message: message, Err: cause}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Persistence(message string, cause error) error {
	return &Error{Kind: ErrPersistence, Message: message, Err: cause}
}

// Message returns the caller-facing message of err, or "" when err carries none.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
