package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes surfaced in GraphQL error extensions and REST responses.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// APIError represents a standardized API error
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Extensions exposes the error code to the GraphQL error formatter.
func (e *APIError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.Code,
	}
}

// New creates a new APIError
func New(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, New(CodeInvalidInput, message))
}
