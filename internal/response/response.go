// Package response provides the uniform JSON envelope and the mapping from
// domain errors to HTTP status codes.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/service-rental/internal/domain"
)

// ErrorBody is the payload returned for every failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes a 200 response with the data envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the data envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with a validation error body.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBody{
		Code:    domain.CodeValidation,
		Message: message,
	}})
}

// statusByCode maps stable domain error codes to HTTP statuses.
var statusByCode = map[string]int{
	domain.CodeNotFound:      http.StatusNotFound,
	domain.CodeValidation:    http.StatusBadRequest,
	domain.CodeInvalidParam:  http.StatusBadRequest,
	domain.CodeNotAuthorized: http.StatusForbidden,
	domain.CodeNotAvailable:  http.StatusBadRequest,
	domain.CodeConflict:      http.StatusConflict,
}

// Error writes the response for a failed operation. Domain errors keep
// their code and message; anything else becomes an opaque 500.
func Error(c *gin.Context, err error) {
	code := domain.CodeOf(err)
	if status, ok := statusByCode[code]; ok {
		c.JSON(status, gin.H{"error": ErrorBody{Code: code, Message: err.Error()}})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorBody{
		Code:    "INTERNAL",
		Message: "internal server error",
	}})
}
