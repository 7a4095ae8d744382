// Package apperr defines the closed error taxonomy for the API. Every fault
// that reaches the HTTP boundary is mapped onto one of these kinds; internal
// detail stays in the log and is never echoed to the caller.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a fault.
type Kind int

const (
	Internal Kind = iota
	BadRequest
	Unauthenticated
	Forbidden
	NotFound
	Conflict
	StorageUnavailable
	StorageRejected
)

// pgUniqueViolation is the SQLSTATE for unique-index violations.
const pgUniqueViolation = "23505"

// Error carries a kind, a caller-safe message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with a caller-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error wrapping a cause. The cause is for logs only.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// FromDB maps a database error onto the taxonomy. Missing rows become
// NotFound with the given message; unique-index violations become Conflict
// so that find-or-create races fail deterministically.
func FromDB(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return New(NotFound, notFoundMsg)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return Wrap(Conflict, "resource already exists", err)
	}
	return Wrap(Internal, "database error", err)
}

// KindOf extracts the kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to surface for an error. Server
// faults get a stable generic message; caller faults keep their text.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case StorageUnavailable:
			return "storage service unavailable"
		case StorageRejected:
			return "storage service rejected the upload"
		case Internal:
			return "internal server error"
		default:
			return e.Message
		}
	}
	return "internal server error"
}
