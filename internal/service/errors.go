package service

import (
	"errors"
)

// Error kinds, compared with errors.Is
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
)

// ErrInvalidCredentials is returned by Login for any failed sign in attempt
var ErrInvalidCredentials = &Error{Kind: ErrUnauthorized, Message: "Invalid credentials."}

// Error is a client-facing failure with a short message
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func badRequest(msg string) error {
	return &Error{Kind: ErrBadRequest, Message: msg}
}

func forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

func unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Message: msg}
}
