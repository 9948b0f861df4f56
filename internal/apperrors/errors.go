// Package apperrors defines the failure taxonomy shared by services and
// controllers, and its mapping onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindAuth        Kind = "auth"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindAnalysis    Kind = "analysis"
	KindStorage     Kind = "storage"
	KindPersistence Kind = "persistence"
	KindInternal    Kind = "internal"
)

// AppError is a classified failure. Message is safe to show to clients;
// Err carries the underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError of the same kind, so errors.Is(err, apperrors.ErrNotFound) works
// regardless of message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation  = &AppError{Kind: KindValidation}
	ErrAuth        = &AppError{Kind: KindAuth}
	ErrNotFound    = &AppError{Kind: KindNotFound}
	ErrConflict    = &AppError{Kind: KindConflict}
	ErrAnalysis    = &AppError{Kind: KindAnalysis}
	ErrStorage     = &AppError{Kind: KindStorage}
	ErrPersistence = &AppError{Kind: KindPersistence}
	ErrInternal    = &AppError{Kind: KindInternal}
)

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *AppError { return New(KindValidation, message) }

func Auth(message string) *AppError { return New(KindAuth, message) }

func NotFound(message string) *AppError { return New(KindNotFound, message) }

func Conflict(message string) *AppError { return New(KindConflict, message) }

func Analysis(message string, err error) *AppError { return Wrap(err, KindAnalysis, message) }

func Storage(message string, err error) *AppError { return Wrap(err, KindStorage, message) }

func Persistence(message string, err error) *AppError { return Wrap(err, KindPersistence, message) }

func Internal(message string, err error) *AppError { return Wrap(err, KindInternal, message) }

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps err onto a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict, KindAnalysis:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-facing message of err.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Internal server error"
}

// HasCause reports whether err wraps an underlying failure.
func HasCause(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Err != nil
	}
	return err != nil
}

// Cause returns the underlying error text, used only outside production.
func Cause(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			return appErr.Err.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
