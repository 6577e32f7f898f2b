package api

import (
	"github.com/gin-gonic/gin"
)

// Error codes returned in the envelope.
const (
	CodeBadRequest     = "bad_request"
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeUnavailable    = "unavailable"
	CodeInternal       = "internal"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, errorEnvelope{Error: apiError{Code: code, Message: msg}})
}
