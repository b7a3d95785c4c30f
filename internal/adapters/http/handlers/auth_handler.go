package handlers

import (
	"bank-loan-simulator/internal/core/services"
	"bank-loan-simulator/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthUseCase
	log         zerolog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register handles user registration
// @Summary Register new user
// @Description Create a regular user account and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	result, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return fail(c, h.log, err, "Failed to register user")
	}

	h.log.Info().Str("user_id", result.UserID.String()).Msg("user registered")
	return response.Created(c, "User registered successfully", result)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate by email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return fail(c, h.log, err, "Failed to login")
	}

	return response.Success(c, "Login successful", result)
}

// Me returns the identity carried by the caller's token
// @Summary Current identity
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, isAdmin := caller(c)

	return response.Success(c, "Current user", fiber.Map{
		"userId":   userID,
		"email":    c.Locals(LocalEmail),
		"fullName": c.Locals(LocalFullName),
		"role":     c.Locals(LocalRole),
		"isAdmin":  isAdmin,
	})
}
