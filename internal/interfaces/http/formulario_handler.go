package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/gar-aguas/control-rf29/internal/application/dto"
	"github.com/gar-aguas/control-rf29/internal/application/formulario"
	"github.com/gar-aguas/control-rf29/internal/domain"
	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/wizard"
	"github.com/gar-aguas/control-rf29/pkg/validator"
)

// FormularioHandler maneja las sesiones del formulario de ingreso/salida.
type FormularioHandler struct {
	uc *formulario.UseCase
}

// NewFormularioHandler construye el handler del formulario.
func NewFormularioHandler(uc *formulario.UseCase) *FormularioHandler {
	return &FormularioHandler{uc: uc}
}

// Catalogos godoc
// @Summary      Listas fijas del formulario
// @Tags         formulario
// @Produce      json
// @Success      200  {object}  dto.CatalogosResponse
// @Router       /api/catalogos [get]
func (h *FormularioHandler) Catalogos(c *fiber.Ctx) error {
	return c.JSON(dto.CatalogosResponse{
		Movimientos:     entity.Movimientos,
		Autorizadores:   entity.Autorizadores,
		CuerposLiquidos: entity.CuerposLiquidos,
	})
}

// IniciarSesion godoc
// @Summary      Iniciar sesión del formulario
// @Tags         formulario
// @Produce      json
// @Success      201  {object}  dto.SesionResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/formulario/sesiones [post]
func (h *FormularioHandler) IniciarSesion(c *fiber.Ctx) error {
	out, err := h.uc.IniciarSesion(c.UserContext())
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ObtenerVista godoc
// @Summary      Vista actual de la sesión
// @Description  Una sesión desconocida o expirada empieza en el paso 1.
// @Tags         formulario
// @Produce      json
// @Param        id   path  string  true  "ID de sesión"
// @Success      200  {object}  dto.SesionResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/formulario/sesiones/{id} [get]
func (h *FormularioHandler) ObtenerVista(c *fiber.Ctx) error {
	id := sesionID(c)
	out, err := h.uc.ObtenerVista(c.UserContext(), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Accion godoc
// @Summary      Avanzar, retroceder o enviar el formulario
// @Tags         formulario
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de sesión"
// @Param        body  body  dto.AccionRequest  true  "accion: siguiente|atras|enviar y campos del paso"
// @Success      200   {object}  dto.SesionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/formulario/sesiones/{id}/acciones [post]
func (h *FormularioHandler) Accion(c *fiber.Ctx) error {
	id := sesionID(c)
	var in dto.AccionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "accion debe ser siguiente, atras o enviar"})
	}

	out, err := h.uc.Ejecutar(c.UserContext(), id, in)
	if err != nil {
		if ve, ok := wizard.EsErrorValidacion(err); ok && out != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
				Code:    "VALIDATION",
				Message: ve.Mensaje,
				Campos:  ve.Campos,
				Vista:   out.Vista,
			})
		}
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CerrarSesion godoc
// @Summary      Abandonar el formulario
// @Tags         formulario
// @Param        id   path  string  true  "ID de sesión"
// @Success      204
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/formulario/sesiones/{id} [delete]
func (h *FormularioHandler) CerrarSesion(c *fiber.Ctx) error {
	if err := h.uc.CerrarSesion(c.UserContext(), sesionID(c)); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// sesionID copia el parámetro: Fiber reutiliza el buffer del request y el ID
// sobrevive al handler como clave del almacén de sesiones.
func sesionID(c *fiber.Ctx) string {
	return strings.TrimSpace(utils.CopyString(c.Params("id")))
}

// responderError traduce los errores de dominio a HTTP.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_ACTION", Message: err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "Error al guardar los datos. Intente nuevamente."})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "La sesión no existe o expiró. Inicie el formulario nuevamente."})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
