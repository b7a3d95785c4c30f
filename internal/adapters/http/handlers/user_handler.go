package handlers

import (
	"bank-loan-simulator/internal/core/services"
	"bank-loan-simulator/internal/pkg/pagination"
	"bank-loan-simulator/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// UserHandler handles user endpoints
type UserHandler struct {
	userService services.UserUseCase
	log         zerolog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserUseCase, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// GetProfile returns the caller's profile with loan counters
// @Summary My profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, _ := caller(c)

	profile, err := h.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return fail(c, h.log, err, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// ListUsers handles listing all users (Admin only)
// @Summary List all users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	page, err := h.userService.ListUsers(c.UserContext(), params.Offset, params.Limit)
	if err != nil {
		return fail(c, h.log, err, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(page.Users, params, page.Total))
}
