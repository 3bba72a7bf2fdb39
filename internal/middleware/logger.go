// Package middleware holds the echo middleware of the web server: request
// ids, request logging and rate limiting of form submissions.
package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// RequestID tags every request with a random UUID in X-Request-ID unless
// the client already sent one.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString})
}

// RequestLogger logs one line per request after it has been handled.
// Handler errors are passed to the HTTP error handler first so the logged
// status is the one the client received.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			entry := logrus.WithFields(logrus.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     res.Status,
				"duration":   time.Since(start),
				"client_ip":  c.RealIP(),
				"request_id": res.Header().Get(echo.HeaderXRequestID),
				"user_agent": req.UserAgent(),
			})

			switch {
			case res.Status >= 500:
				entry.Error("Request failed")
			case res.Status >= 400:
				entry.Warn("Request rejected")
			default:
				entry.Info("Request processed")
			}
			return nil
		}
	}
}
