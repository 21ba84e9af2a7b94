package util

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes a JSON error body: {"error": "..."}.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// Internal logs the underlying store/server error and returns a generic
// 500 body so no internal detail leaks to the caller.
func Internal(c *gin.Context, op string, err error) {
	slog.Error(op, "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
