package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrBookNotFound is returned when the referenced book has no record.
	ErrBookNotFound = errors.New("book does not exist")
	// ErrBookUnavailable is returned when the book is currently on loan.
	ErrBookUnavailable = errors.New("book is not available")
	// ErrDuplicateBook is returned when a book with the same title and author
	// is already in the catalog.
	ErrDuplicateBook = errors.New("book already exists in the library")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Loan creation collapses
// every failure, storage faults included, into a client error with the
// underlying message; only the listing path reports server faults.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrBookNotFound:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BOOK_NOT_FOUND")
	case ErrBookUnavailable:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BOOK_UNAVAILABLE")
	case ErrDuplicateBook:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_BOOK")
	default:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNEXPECTED")
	}
}
