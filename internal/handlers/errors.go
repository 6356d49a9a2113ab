package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukydev/prevmaint/internal/apperr"
)

const msgInternal = "Error interno del servidor"

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is the body of answers that only carry a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// statusOf maps an error kind to its HTTP status and public message.
func statusOf(err error) (int, string) {
	switch {
	case apperr.IsNotFound(err):
		return http.StatusNotFound, apperr.Message(err)
	case apperr.IsConflict(err), apperr.IsValidation(err):
		return http.StatusBadRequest, apperr.Message(err)
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// abortWithError records err on the context for the request logger and
// answers with the status of its kind.
func abortWithError(c *gin.Context, err error) {
	status, msg := statusOf(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: msg})
}

// abortBadRequest answers 400 with msg, keeping cause for the logs.
func abortBadRequest(c *gin.Context, cause error, msg string) {
	_ = c.Error(cause)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Detail: msg})
}

// orEmpty keeps empty collections encoded as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
