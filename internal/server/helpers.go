// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"parlor/internal/models"
	"parlor/internal/observability"
	"parlor/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Messages reported by the request pipeline before a handler runs.
const (
	missingBodyMessage  = "There was a problem with the form data submitted; fill it out again and re-submit."
	createParamsMessage = "Not all of your req.params were valid."
	lookupParamsMessage = "No valid req.params were found."
)

const bodyLocalsKey = "body"

// statusForError maps an AppError code to its HTTP status.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes the envelope for an error bubbled out of a service.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		observability.RecordErrorInContext(c.UserContext(), err)
	}
	return models.RespondWithError(c, status, err)
}

// parseBody decodes a request body into a validation.Input. JSON objects keep
// their decoded types; form-encoded bodies arrive as strings, which is what
// the boolean-string check in the text rules exists for.
func parseBody(c *fiber.Ctx) (validation.Input, bool) {
	raw := c.Body()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, false
	}

	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEApplicationForm) {
		in := validation.Input{}
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			in[string(key)] = string(value)
		})
		return in, true
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false
	}
	in := validation.Input{}
	for k, v := range decoded {
		in[k] = v
	}
	return in, true
}

// RequireBody rejects create/update requests whose body is absent or cannot
// be decoded, before params or auth are looked at. The decoded input is
// stashed in locals for the handler.
func RequireBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, ok := parseBody(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(missingBodyMessage))
		}
		c.Locals(bodyLocalsKey, in)
		return c.Next()
	}
}

// bodyInput returns the input decoded by RequireBody.
func bodyInput(c *fiber.Ctx) validation.Input {
	if in, ok := c.Locals(bodyLocalsKey).(validation.Input); ok {
		return in
	}
	return validation.Input{}
}

// NumericParams validates that every named route parameter is a positive
// integer, before authentication runs. The failure message is shared by the
// whole route family. Parsed values are stashed in locals.
func NumericParams(message string, names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range names {
			id, err := strconv.ParseUint(c.Params(name), 10, 32)
			if err != nil || id == 0 {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError(message))
			}
			c.Locals("param:"+name, uint(id))
		}
		return c.Next()
	}
}

// paramID returns a route parameter previously parsed by NumericParams.
func paramID(c *fiber.Ctx, name string) uint {
	if id, ok := c.Locals("param:" + name).(uint); ok {
		return id
	}
	return 0
}

// currentUserID returns the authenticated user set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
