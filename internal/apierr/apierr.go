package apierr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the JSON body every error response carries.
type Envelope struct {
	Error       bool     `json:"error"`
	ErrorCode   string   `json:"error_code"`
	Message     string   `json:"message"`
	Details     string   `json:"details"`
	Suggestions []string `json:"suggestions"`
}

const (
	CodeInvalidEmailFormat = "INVALID_EMAIL_FORMAT"
	CodeEmailNotAuthorized = "EMAIL_NOT_AUTHORIZED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
)

var unauthorizedSuggestions = []string{
	"Ensure you are logged in with a valid token",
	"Your session may have expired - please login again",
	"Check that the Authorization header is properly set",
}

var notFoundSuggestions = []string{
	"Check the URL you are trying to access",
	"Ensure the resource exists",
}

// Handler turns any error escaping a handler into the envelope. Auth and
// lookup failures keep their canned guidance; everything else is labeled
// by status code.
func Handler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		detail = fe.Message
	}

	env := Envelope{
		Error:       true,
		ErrorCode:   fmt.Sprintf("HTTP_%d", code),
		Message:     detail,
		Details:     detail,
		Suggestions: []string{},
	}

	switch code {
	case fiber.StatusUnauthorized:
		env.ErrorCode = CodeUnauthorized
		env.Message = "Unauthorized Access"
		env.Suggestions = unauthorizedSuggestions
	case fiber.StatusNotFound:
		env.ErrorCode = CodeNotFound
		env.Message = "Resource Not Found"
		env.Suggestions = notFoundSuggestions
	}

	return c.Status(code).JSON(env)
}
