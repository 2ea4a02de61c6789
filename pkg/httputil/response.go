package httputil

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/baseline-api/pkg/errors"
)

// Timestamp renders t the way every response body carries it.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// ErrorBody builds the client-facing body for err and its status code.
// Application errors surface their message and details; anything else is
// reported as an internal error.
func ErrorBody(err error) (int, gin.H) {
	appErr, ok := errors.As(err)
	if !ok || appErr.Code == errors.ErrInternal {
		return http.StatusInternalServerError, InternalErrorBody()
	}

	body := gin.H{"error": appErr.Message}
	if details, ok := appErr.Details.(map[string]interface{}); ok {
		for k, v := range details {
			body[k] = v
		}
	}
	return appErr.StatusCode(), body
}

func InternalErrorBody() gin.H {
	return gin.H{
		"message":   "Internal Server Error",
		"timestamp": Timestamp(time.Now()),
	}
}

// RespondWithSuccess sends body with the given status
func RespondWithSuccess(c *gin.Context, status int, body interface{}) {
	c.JSON(status, body)
}

// RespondWithError sends an error response. Unexpected errors are attached
// to the context so the request logger reports them.
func RespondWithError(c *gin.Context, err error) {
	status, body := ErrorBody(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, body)
}

// RespondWithMessage sends an error-shaped body without an underlying error.
func RespondWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
