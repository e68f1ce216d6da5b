package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"order-reconciler/pkg/apperror"
	"order-reconciler/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HeaderOperatorSecret authenticates the manual operator endpoints.
const HeaderOperatorSecret = "X-Operator-Secret"

// OperatorAuth guards the operator surface with a shared secret. An empty
// configured secret disables the surface entirely.
func OperatorAuth(secret string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(HeaderOperatorSecret)
		if secret == "" || presented == "" ||
			subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			log.Warn().
				Str("path", c.Request.URL.Path).
				Str("client_ip", c.ClientIP()).
				Msg("operator auth rejected")
			response.Error(c, apperror.ErrOperatorUnauthorized())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize limits the size of incoming request bodies.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
