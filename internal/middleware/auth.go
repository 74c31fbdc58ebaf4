package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shaibinkb16/demo--api/internal/token"
)

const EmailKey = "authEmail"

// RequireAuth verifies the bearer token and stashes the subject email in
// locals for the handler.
func RequireAuth(tokens token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		email, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "Token has expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Could not validate credentials")
		}

		c.Locals(EmailKey, email)
		return c.Next()
	}
}

// AuthedEmail returns the email RequireAuth stored for this request.
func AuthedEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(EmailKey).(string)
	return email
}
