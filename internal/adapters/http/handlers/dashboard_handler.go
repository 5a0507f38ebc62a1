package handlers

import (
	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles administrative dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the building-wide counters shown on the admin dashboard
// @Summary Dashboard statistics
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats := h.dashboardService.GetStats(c.Context())
	return response.Success(c, "Estadísticas obtenidas", stats)
}
