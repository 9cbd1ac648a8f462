package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/repository"
)

// ErrorInfo is a client-safe description of a storage error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError converts a repository or driver error into a status, code and
// message that reveal nothing about the storage layer. resource names the
// entity involved, e.g. "product".
func ParseError(err error, resource string) ErrorInfo {
	switch {
	case err == nil:
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "Server error",
		}
	case errors.Is(err, repository.ErrNotFound):
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: fmt.Sprintf("%s not found", capitalize(resource)),
		}
	case errors.Is(err, repository.ErrDuplicate):
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceAlreadyExists,
			Message: fmt.Sprintf("%s already exists", capitalize(resource)),
		}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    InternalDatabaseError,
			Message: "Database temporarily unavailable. Please try again later.",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalDatabaseError,
		Message: "Server error",
	}
}

// Respond writes the parsed error for err.
func Respond(c *gin.Context, err error, resource string) {
	info := ParseError(err, resource)
	RespondWithError(c, info.Status, info.Code, info.Message)
}

func capitalize(s string) string {
	if s == "" {
		return "Resource"
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
