package middleware

import (
	"errors"
	"time"

	"bank-loan-simulator/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and latency per route pattern
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		metrics.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
