package helper

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindUnauthenticated
	KindSessionExpired
	KindNotFound
	KindBadGateway
	KindInvalidSignature
	KindForbidden
)

var kindStatus = map[ErrorKind]int{
	KindInternal:         http.StatusInternalServerError,
	KindValidation:       http.StatusBadRequest,
	KindConflict:         http.StatusBadRequest,
	KindUnauthenticated:  http.StatusUnauthorized,
	KindSessionExpired:   http.StatusUnauthorized,
	KindNotFound:         http.StatusNotFound,
	KindBadGateway:       http.StatusBadGateway,
	KindInvalidSignature: http.StatusBadRequest,
	KindForbidden:        http.StatusForbidden,
}

// AppError carries a user-visible message and the HTTP-facing kind of a failure.
// Err, when set, is the underlying cause and is only ever logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches another *AppError of the same kind, so sentinel comparisons work
// through wrapping.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Status is the HTTP status the error maps to.
func (e *AppError) Status() int {
	if status, ok := kindStatus[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func Validation(msg string) *AppError   { return &AppError{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *AppError     { return &AppError{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *AppError     { return &AppError{Kind: KindNotFound, Message: msg} }
func Unauthorized(msg string) *AppError { return &AppError{Kind: KindUnauthenticated, Message: msg} }
func Forbidden(msg string) *AppError    { return &AppError{Kind: KindForbidden, Message: msg} }

func BadGateway(msg string, err error) *AppError {
	return &AppError{Kind: KindBadGateway, Message: msg, Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// Kind sentinels for errors.Is checks.
var (
	ErrValidation       = &AppError{Kind: KindValidation}
	ErrConflict         = &AppError{Kind: KindConflict}
	ErrUnauthenticated  = &AppError{Kind: KindUnauthenticated}
	ErrSessionExpired   = &AppError{Kind: KindSessionExpired}
	ErrNotFound         = &AppError{Kind: KindNotFound}
	ErrBadGateway       = &AppError{Kind: KindBadGateway}
	ErrInvalidSignature = &AppError{Kind: KindInvalidSignature}
	ErrForbidden        = &AppError{Kind: KindForbidden}
)

// AsAppError returns err as an *AppError, treating anything unclassified as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
