package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// RecoveryMiddleware recovers from panics and returns 500 error
func RecoveryMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Context(), "panic recovered",
					"panic", fmt.Sprint(r),
					"path", c.Path(),
					"stack", string(debug.Stack()),
				)
				err = c.SendStatus(fiber.StatusInternalServerError)
			}
		}()

		return c.Next()
	}
}
