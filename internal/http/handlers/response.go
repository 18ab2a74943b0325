// Package handlers implements the diagnostics endpoints. This file
// defines the shared response envelope so every endpoint fails (and
// succeeds) in the same machine-readable shape.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "unknown cache table"
//	}
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sportsedge/offline-core/internal/http/middleware"
)

// Stable machine-readable error codes.
const (
	CodeBadRequest = "bad_request"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal_error"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// fail aborts the request with a structured error, logging 5xx causes
// with request context.
func fail(c *gin.Context, status int, code, message string, cause error) {
	if status >= 500 {
		lg := middleware.LoggerFrom(c)
		lg.Error().Err(cause).Str("code", code).Msg(message)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: middleware.GetRequestID(c),
		Code:      code,
		Message:   message,
	})
}

// ok writes payload as a 200 JSON body.
func ok(c *gin.Context, payload any) {
	c.JSON(200, payload)
}
