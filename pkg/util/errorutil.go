package util

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// Kind classifies failures for HTTP translation.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindBadRequest   Kind = "BAD_REQUEST"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindConflict     Kind = "CONFLICT"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// statusByKind is the single table deciding HTTP status codes.
var statusByKind = map[Kind]int{
	KindNotFound:     http.StatusNotFound,
	KindBadRequest:   http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindConflict:     http.StatusConflict,
	KindInternal:     http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for a kind. Unknown kinds map to 500.
func StatusFor(kind Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainError standardizes application errors.
type DomainError struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Err        error
	Stack      string
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError and records the call stack for diagnostics.
func NewDomainError(kind Kind, message string, err error) *DomainError {
	return &DomainError{
		Kind:       kind,
		Message:    message,
		HTTPStatus: StatusFor(kind),
		Err:        err,
		Stack:      string(debug.Stack()),
	}
}

func NewNotFound(message string) error {
	return NewDomainError(KindNotFound, message, nil)
}

func NewBadRequest(message string) error {
	return NewDomainError(KindBadRequest, message, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(KindUnauthorized, message, nil)
}

func NewConflict(message string) error {
	return NewDomainError(KindConflict, message, nil)
}

// NewInternalError wraps an unexpected failure. The message carries the cause
// so development responses can show it.
func NewInternalError(err error) error {
	message := "internal server error"
	if err != nil {
		message = err.Error()
	}
	return NewDomainError(KindInternal, message, err)
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err).(*DomainError)
}
