package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an application error.
type ErrorCode int

const (
	ErrValidation ErrorCode = iota + 1000
	ErrNotFound
	ErrStorageDecode
	ErrInsightProvider
	ErrInternal
)

// AppError is the error type returned by every portal component.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func StorageDecode(key string, err error) *AppError {
	return &AppError{
		Code:    ErrStorageDecode,
		Message: fmt.Sprintf("stored value for %q is unreadable", key),
		Err:     err,
	}
}

func InsightProvider(err error) *AppError {
	return &AppError{
		Code:    ErrInsightProvider,
		Message: "insight provider unavailable",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal error",
		Err:     err,
	}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}
