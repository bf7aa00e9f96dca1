package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "homeserve.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error to an HTTP response. AppErrors carry their own
// status and message; plain domain sentinels go through StatusFor.
func Error(c *gin.Context, err error) {
	status := domainerrors.StatusFor(err)

	message := err.Error()
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		// never leak internals to clients
		message = "internal server error"
	}

	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
		"error":   message,
	})
}

// ErrorWithStatus sends an error response with an explicit status and message
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
		"error":   message,
	})
}
