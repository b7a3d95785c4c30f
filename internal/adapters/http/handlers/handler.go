package handlers

import (
	"errors"
	"reflect"
	"strings"

	"bank-loan-simulator/internal/core/domain"
	"bank-loan-simulator/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Keys under which the auth middleware stores the caller in fiber locals
const (
	LocalUserID   = "userID"
	LocalEmail    = "email"
	LocalFullName = "fullName"
	LocalRole     = "role"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names in messages
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bind parses the JSON body into dst and checks its validate tags.
// It writes the 400 response itself and reports whether to continue.
func bind(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return false, response.BadRequest(c, validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// fail maps a service error to a response. Domain failures are logged as
// warnings and answered with their own message; anything else is a 500.
func fail(c *fiber.Ctx, log zerolog.Logger, err error, fallback string) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		log.Warn().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("reason", derr.Message).
			Msg("request rejected")

		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, derr.Message)
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, derr.Message)
		case errors.Is(err, domain.ErrConflict):
			return response.Conflict(c, derr.Message)
		case errors.Is(err, domain.ErrUnauthorized):
			return response.Unauthorized(c, derr.Message)
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg(fallback)
	return response.InternalServerError(c, fallback)
}

// caller returns the authenticated user id and whether they are an admin
func caller(c *fiber.Ctx) (uuid.UUID, bool) {
	id, _ := c.Locals(LocalUserID).(uuid.UUID)
	role, _ := c.Locals(LocalRole).(string)
	return id, role == string(domain.RoleAdmin)
}

func idParam(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}
