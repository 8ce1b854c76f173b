package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gar-aguas/control-rf29/internal/application/acceso"
	"github.com/gar-aguas/control-rf29/internal/application/dto"
	"github.com/gar-aguas/control-rf29/internal/domain"
	"github.com/gar-aguas/control-rf29/pkg/validator"
)

// AccesoHandler maneja la clave del dashboard y el menú.
type AccesoHandler struct {
	uc *acceso.UseCase
}

// NewAccesoHandler construye el handler de acceso.
func NewAccesoHandler(uc *acceso.UseCase) *AccesoHandler {
	return &AccesoHandler{uc: uc}
}

// Acceder godoc
// @Summary      Desbloquear el Dashboard en Vivo
// @Tags         acceso
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccesoRequest  true  "clave compartida"
// @Success      200   {object}  dto.AccesoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/acceso [post]
func (h *AccesoHandler) Acceder(c *fiber.Ctx) error {
	var in dto.AccesoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la clave es requerida"})
	}
	out, err := h.uc.Acceder(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Contraseña incorrecta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Menu godoc
// @Summary      Entradas de navegación
// @Description  El Dashboard en Vivo sólo aparece con un token válido.
// @Tags         acceso
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MenuResponse
// @Router       /api/menu [get]
func (h *AccesoHandler) Menu(c *fiber.Ctx) error {
	return c.JSON(h.uc.Menu(GetRole(c)))
}
