// app/echoServer/middleware.go
package echoServer

import (
	"log/slog"
	"time"

	"boardcamp/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func RegisterMiddlewares(e *echo.Echo, m *metrics.Collector, ratePerMin int) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
		rate.Limit(float64(ratePerMin) / 60.0),
	)))

	e.Use(Slog())
	e.Use(Metrics(m))
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
			)
			return err
		}
	}
}

func Metrics(m *metrics.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			m.RecordRequest(c.Request().Method, c.Path(), c.Response().Status, time.Since(start))
			return err
		}
	}
}
