package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a client-facing failure. It carries the HTTP status the API
// layer should respond with, so handlers never have to guess. Anything
// that is not a *Error is treated as an internal server error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewDuplicateUsername(username string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf("duplicate username: %s", username)}
}

func NewInvalidCredentials() *Error {
	return &Error{Status: http.StatusBadRequest, Message: "invalid username/password"}
}

func NewInvalidToken() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "invalid token"}
}

func NewUnauthorized() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "unauthorized"}
}

func NewNotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// StatusOf returns the HTTP status for err, or 500 for errors that are not
// domain errors.
func StatusOf(err error) int {
	var de *Error
	if errors.As(err, &de) {
		return de.Status
	}
	return http.StatusInternalServerError
}
