package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(err error) *Error {
	return New(http.StatusBadRequest, "bad_request", err)
}

// MissingField is the contract for absent required body fields: the
// response message names the field.
func MissingField(field string) *Error {
	return New(http.StatusBadRequest, "bad_request", fmt.Errorf("missing required field: %s", field))
}

func Unauthorized(err error) *Error {
	return New(http.StatusUnauthorized, "unauthorized", err)
}

func Forbidden(err error) *Error {
	return New(http.StatusForbidden, "forbidden", err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, "not_found", err)
}

func Conflict(err error) *Error {
	return New(http.StatusConflict, "conflict", err)
}

func InvalidCredentials() *Error {
	return New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid email or password"))
}

func InvalidOrExpiredToken() *Error {
	return New(http.StatusBadRequest, "invalid_or_expired_token", errors.New("invalid or expired code"))
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "internal", err)
}

// StatusOf maps any error to the HTTP status a handler should emit.
// Non-apierr errors are treated as 500s.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return "internal"
}
