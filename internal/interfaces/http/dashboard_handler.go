package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/daemlu/convivencia-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen agregado del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen agregado del dashboard
// @Description  KPIs con tendencia mensual, serie de seis meses, rankings
// @Description  top-N y últimos registros. Un admin puede acotar la vista con
// @Description  ?establecimiento=; para el resto el parámetro se ignora y rige
// @Description  el scope de la sesión.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        establecimiento  query  string  false  "Selector de alcance (solo admin)"
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), GetScope(c), c.Query("establecimiento"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
