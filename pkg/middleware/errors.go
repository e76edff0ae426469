package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codebin/codebin/internal/apperror"
	"github.com/codebin/codebin/pkg/logger"
	"github.com/codebin/codebin/pkg/metrics"
)

// Errors is the terminal stage of the request pipeline: every failure a
// handler or middleware attached via c.Error is rendered here, and nowhere
// else. The body shape is {"error":{"message":...}} with the status derived
// from the failure kind. Internal detail is logged, never rendered.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		if c.Writer.Written() {
			// a handler already produced a response; nothing to shape
			return
		}

		ae := apperror.From(c.Errors.Last().Err)
		status := ae.Status()
		if status >= http.StatusInternalServerError {
			logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, ae)
		}
		metrics.RequestFailures.WithLabelValues(strconv.Itoa(status)).Inc()
		c.JSON(status, gin.H{"error": gin.H{"message": ae.Message}})
	}
}

// NoRoute handles unmatched paths and methods with the flat not-found body.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	}
}
