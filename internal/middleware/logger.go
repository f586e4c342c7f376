package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"canvas/internal/pkg/response"
)

// RequestLogger пишет одну строку на запрос.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"request_id": requestID(c),
		})
		if email := CallerEmail(c); email != "" {
			entry = entry.WithField("caller", email)
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Warn("request failed")
		default:
			entry.Debug("request")
		}
	}
}

// ErrorLogger logs detailed error information and recovers from panics.
// Details stay in the log; the client gets an opaque envelope.
func ErrorLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequestError(log, c, start, "panic", err.Error()).
					WithField("stack", string(debug.Stack())).
					Error("request panicked")

				response.CustomError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error")
				return
			}

			for _, err := range c.Errors {
				entry := logRequestError(log, c, start, fmt.Sprintf("%v", err.Type), err.Error())
				if err.Meta != nil {
					entry = entry.WithField("meta", err.Meta)
				}
				entry.Error("request error")
			}
		}()

		c.Next()
	}
}

func logRequestError(log logrus.FieldLogger, c *gin.Context, start time.Time, errType string, message string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"type":       errType,
		"status":     c.Writer.Status(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"query":      c.Request.URL.RawQuery,
		"client_ip":  c.ClientIP(),
		"caller":     CallerEmail(c),
		"request_id": requestID(c),
		"latency":    time.Since(start).String(),
		"error":      message,
	})
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
