package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gar-aguas/control-rf29/internal/application/dashboard"
	"github.com/gar-aguas/control-rf29/internal/application/dto"
)

// DashboardHandler expone el Dashboard en Vivo.
type DashboardHandler struct {
	uc *dashboard.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetResumen godoc
// @Summary      Ocupación actual e historial reciente
// @Description  Personas cuyo último registro es un Ingreso, desglose por cuerpo líquido y últimos registros.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetResumen(c *fiber.Ctx) error {
	return c.JSON(h.uc.Resumen(c.UserContext()))
}

// GetReporte godoc
// @Summary      Reporte PDF de ocupación
// @Tags         dashboard
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/reporte.pdf [get]
func (h *DashboardHandler) GetReporte(c *fiber.Ctx) error {
	pdf, err := h.uc.Reporte(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ocupacion_rf29.pdf"`)
	return c.Send(pdf)
}
