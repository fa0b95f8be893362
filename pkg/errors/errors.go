package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input data")
	ErrInvalidTrackingID = errors.New("invalid tracking id")

	ErrSessionRequired = errors.New("admin session required")
	ErrSessionExpired  = errors.New("admin session is invalid or expired")
	ErrUnlockRejected  = errors.New("unlock gesture not recognized")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
