// Package apperror defines the error kinds surfaced to API clients and
// their HTTP mapping.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindMissingToken
	KindInvalidToken
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindMissingToken:
		return "missing_token"
	case KindInvalidToken:
		return "invalid_token"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "server"
	}
}

// Error is a classified failure. Fields is the client-visible body, keyed
// by field or by a short resource code such as "nopost".
type Error struct {
	Kind   Kind
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v (cause: %v)", e.Kind, e.Fields, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Fields)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, key, message string) *Error {
	return &Error{Kind: kind, Fields: map[string]string{key: message}}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func NotFound(key, message string) *Error {
	return New(KindNotFound, key, message)
}

func Conflict(key, message string) *Error {
	return New(KindConflict, key, message)
}

func Unauthorized(key, message string) *Error {
	return New(KindUnauthorized, key, message)
}

var (
	ErrMissingToken = &Error{Kind: KindMissingToken, Fields: map[string]string{"message": "Access denied. No token provided"}}
	ErrInvalidToken = &Error{Kind: KindInvalidToken, Fields: map[string]string{"message": "Invalid token"}}
)

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindServer, Fields: map[string]string{"error": "Internal server error"}, Err: err}
}

// As classifies any error, treating unknown errors as server errors.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidToken:
		return http.StatusBadRequest
	case KindMissingToken, KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (e *Error) ToJSON() gin.H {
	body := gin.H{}
	if e.Kind == KindMissingToken || e.Kind == KindInvalidToken {
		body["status"] = strconv.Itoa(e.Kind.HTTPStatus())
	}
	for k, v := range e.Fields {
		body[k] = v
	}
	return body
}
