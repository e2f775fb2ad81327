package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one access line per request. WebSocket upgrades are
// logged when the session ends, so long-lived sessions show their lifetime
// as latency.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)

			status := res.Status
			if err != nil && status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
			log.Printf("[%s] %s %s - %d (%s)",
				req.Method,
				req.RequestURI,
				req.RemoteAddr,
				status,
				time.Since(start),
			)
			return err
		}
	}
}
