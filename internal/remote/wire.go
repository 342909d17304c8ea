// Package remote binds the PropAI data layer to a document store reached
// over HTTP. Every table operation is a named query or mutation function,
// posted as {"path": ..., "args": ...} to /api/query or /api/mutation.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// Request is the body of a function call.
type Request struct {
	Path string          `json:"path" binding:"required"`
	Args json.RawMessage `json:"args"`
}

// Response is the reply to a function call. Value is set on success;
// ErrorMessage and ErrorData on failure.
type Response struct {
	Status       string          `json:"status"`
	Value        json.RawMessage `json:"value,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	ErrorData    *ErrorData      `json:"errorData,omitempty"`
}

// ErrorData carries the machine-readable error code.
type ErrorData struct {
	Code string `json:"code"`
}

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes.
const (
	CodeNotFoundFunction = "NOT_FOUND_FUNCTION"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeInvalidRole      = "INVALID_ROLE"
	CodeEmailTaken       = "EMAIL_TAKEN"
	CodeInternal         = "INTERNAL"
)

// Error is a failure reported by the document store. It unwraps to the
// matching sentinel in pkg/types so callers can use errors.Is.
type Error struct {
	Path    string
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote %s: %s (%s)", e.Path, e.Message, e.Code)
}

// Unwrap maps the code to a sentinel error.
func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeEmailTaken:
		return types.ErrEmailTaken
	case CodeInvalidArgument:
		return types.ErrInvalidData
	case CodeInvalidRole:
		return types.ErrInvalidRole
	default:
		return types.ErrTransport
	}
}

// CodeFor classifies a service error for the wire. It returns the error
// code and the HTTP status to reply with.
func CodeFor(err error) (string, int) {
	switch {
	case errors.Is(err, types.ErrEmailTaken):
		return CodeEmailTaken, http.StatusConflict
	case errors.Is(err, types.ErrInvalidRole):
		return CodeInvalidRole, http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidID):
		return CodeInvalidArgument, http.StatusBadRequest
	default:
		return CodeInternal, http.StatusInternalServerError
	}
}
