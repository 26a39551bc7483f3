package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"catsofasia/pkg/logger"
)

// RequestLogger records every request with its status and duration.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger.API("request", c.Method()+" "+c.Path(), map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.IP(),
		})

		return err
	}
}
