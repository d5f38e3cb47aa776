package http

import (
	"github.com/gaigek/mrp-system/internal/application/usecase"
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler maneja el resumen agregado del snapshot.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve las métricas agregadas del snapshot cargado.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryResponse (total_items, negative_balance_items,
// items_requiring_orders, worklist_orders, units_on_order).
// No requiere parámetros.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary())
}
