package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const ReqIDKey = "reqID"

// RequestID trusts an inbound X-Request-ID so the training frontend can
// correlate its own logs, minting one otherwise.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(ReqIDKey, rid)
		c.Set("X-Request-ID", rid)
		return c.Next()
	}
}
