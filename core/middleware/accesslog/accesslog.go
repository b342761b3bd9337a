package accesslog

import (
	"time"

	"devserve/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// New returns a middleware that logs each request once it has been handled.
// Server errors are logged at error level, client errors at warn.
func New(l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		fields := []zap.Field{
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.OriginalURL())),
			zap.String("ip", c.IP()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}

		rl := logger.WithRayID(l, c)
		switch {
		case err != nil && status >= fiber.StatusInternalServerError:
			rl.Error("Request error", append(fields, zap.Error(err))...)
		case status >= fiber.StatusInternalServerError:
			rl.Error("Request served", fields...)
		case status >= fiber.StatusBadRequest:
			rl.Warn("Request served", fields...)
		default:
			rl.Info("Request served", fields...)
		}
		return err
	}
}
