package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"exchange-ledger/pkg/apperror"
	"exchange-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderAdminKey  = "X-Admin-Key"
	HeaderRequestID = "X-Request-ID"

	maxRequestIDLen = 64
)

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(response.CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AdminAuth guards operator routes with a static key compared in constant
// time. An empty configured key rejects every request.
func AdminAuth(apiKey string, log zerolog.Logger) gin.HandlerFunc {
	expected := []byte(apiKey)
	if len(expected) == 0 {
		log.Warn().Msg("admin api key not configured; admin routes are disabled")
	}
	return func(c *gin.Context) {
		given := []byte(c.GetHeader(HeaderAdminKey))
		if len(expected) == 0 || subtle.ConstantTimeCompare(given, expected) != 1 {
			response.Error(c, apperror.ErrUnauthorized())
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
			Str("request_id", c.GetString(response.CtxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
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
				response.Error(c, apperror.ErrInternal())
				c.Abort()
			}
		}()
		c.Next()
	}
}
