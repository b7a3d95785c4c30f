package handlers

import (
	"bank-loan-simulator/internal/core/services"
	"bank-loan-simulator/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService services.DashboardUseCase
	log              zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		log:              log,
	}
}

// GetStats returns admin dashboard data
// @Summary Admin Dashboard
// @Description Loan counts per status and requested/approved totals (Admin only)
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, "Failed to get dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", stats)
}
