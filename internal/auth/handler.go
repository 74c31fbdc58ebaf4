package auth

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shaibinkb16/demo--api/internal/apierr"
	"github.com/shaibinkb16/demo--api/internal/middleware"
	"github.com/shaibinkb16/demo--api/internal/store"
	"github.com/shaibinkb16/demo--api/internal/telemetry"
	"github.com/shaibinkb16/demo--api/internal/token"
)

var emailRx = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Handler struct {
	store  store.Store
	tokens token.Issuer
}

func NewHandler(st store.Store, tokens token.Issuer) *Handler {
	return &Handler{store: st, tokens: tokens}
}

// Authenticate gates the allow-list, bumps the login counter and hands out a
// bearer token. Gate rejections are 200s with a structured body so the
// training frontend can render them without an error interceptor.
func (h *Handler) Authenticate(c *fiber.Ctx) error {
	rid, _ := c.Locals(middleware.ReqIDKey).(string)
	log := telemetry.L().With().Str("req_id", rid).Logger()

	submitted := c.FormValue("email")
	if !emailRx.MatchString(submitted) {
		log.Warn().Str("email", submitted).Msg("login_invalid_format")
		return c.JSON(apierr.Envelope{
			Error:     true,
			ErrorCode: apierr.CodeInvalidEmailFormat,
			Message:   "Invalid Email Format",
			Details:   "The email '" + submitted + "' is not in a valid format.",
			Suggestions: []string{
				"Please enter a valid email address (e.g., user@example.com)",
				"Check for typos in your email address",
				"Ensure the email contains '@' and a valid domain",
			},
		})
	}

	email := strings.ToLower(submitted)
	ae, err := h.store.GetAuthorizedEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn().Str("email", email).Msg("login_denied")
			return c.JSON(apierr.Envelope{
				Error:     true,
				ErrorCode: apierr.CodeEmailNotAuthorized,
				Message:   "Access Denied",
				Details:   "The email '" + submitted + "' is not authorized to access this POSH training system.",
				Suggestions: []string{
					"Please check if you entered the correct email address",
					"Contact your HR department or training administrator",
					"Ensure you are using your official company email",
					"If you believe this is an error, please contact support",
				},
			})
		}
		return err
	}

	loginCount, err := h.store.UpsertLogin(c.Context(), uuid.New().String(), email, ae.Name)
	if err != nil {
		return err
	}

	tok, err := h.tokens.Issue(email)
	if err != nil {
		return err
	}

	log.Info().Str("email", email).Int("login_count", loginCount).Msg("login_success")
	return c.JSON(fiber.Map{
		"error":        false,
		"access_token": tok,
		"token_type":   "bearer",
		"email":        email,
		"login_count":  loginCount,
		"message":      "Authentication successful",
		"user_name":    ae.Name,
	})
}

// CheckEmail answers whether an address is on the allow-list without logging
// the user in or touching counters.
func (h *Handler) CheckEmail(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		raw = c.Params("email")
	}

	ae, err := h.store.GetAuthorizedEmail(c.Context(), strings.ToLower(raw))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(fiber.Map{
				"email":         raw,
				"is_authorized": false,
				"name":          nil,
			})
		}
		return err
	}
	return c.JSON(fiber.Map{
		"email":         raw,
		"is_authorized": true,
		"name":          ae.Name,
	})
}
