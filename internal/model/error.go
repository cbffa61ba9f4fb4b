package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so that every layer can map them the same way.
type ErrorKind string

const (
	ErrConfigMissing            ErrorKind = "ConfigMissing"
	ErrBadRequest               ErrorKind = "BadRequest"
	ErrNotFound                 ErrorKind = "NotFound"
	ErrInvalidState             ErrorKind = "InvalidState"
	ErrCertificateRequestFailed ErrorKind = "CertificateRequestFailed"
	ErrConflict                 ErrorKind = "Conflict"
	ErrTimeout                  ErrorKind = "Timeout"
	ErrUpstreamFailure          ErrorKind = "UpstreamFailure"
)

// Error is a classified failure. PendingDomains is set when a reconcile is
// refused because validation has not finished.
type Error struct {
	Kind           ErrorKind
	Message        string
	PendingDomains []string
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError returns an Error of the given kind.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError classifies err under kind with a message.
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first Error in err's chain. Unclassified
// errors are upstream failures.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrUpstreamFailure
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
