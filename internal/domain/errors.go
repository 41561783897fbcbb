package domain

import "errors"

// Sentinel errors shared by services and delivery.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
	ErrKeyNotFound        = errors.New("key not found")
)

// User-facing validation messages.
const (
	MsgRequiredFields   = "Please fill in all required fields."
	MsgDescriptionWords = "Description must be at least 5 words long."
	MsgVideoFormat      = "Only MP4 video format is supported."
	MsgInvalidDate      = "Please enter a valid date."
	MsgMissingLogin     = "Please fill in all fields."
)

// ValidationError is a user-facing input error. It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
