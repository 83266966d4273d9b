package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/application/usecase"
)

// EstablecimientoHandler maneja las peticiones HTTP para establecimientos.
// Lectura para cualquier sesión autenticada; escritura solo admin (router).
type EstablecimientoHandler struct {
	uc *usecase.EstablecimientoUseCase
}

// NewEstablecimientoHandler construye el handler.
func NewEstablecimientoHandler(uc *usecase.EstablecimientoUseCase) *EstablecimientoHandler {
	return &EstablecimientoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear establecimiento
// @Tags         establecimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEstablecimientoRequest  true  "Datos del establecimiento"
// @Success      201   {object}  dto.EstablecimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/establecimientos [post]
func (h *EstablecimientoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEstablecimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener establecimiento por ID
// @Tags         establecimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del establecimiento"
// @Success      200  {object}  dto.EstablecimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/establecimientos/{id} [get]
func (h *EstablecimientoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "establecimiento no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar establecimientos
// @Tags         establecimientos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.EstablecimientoListResponse
// @Router       /api/establecimientos [get]
func (h *EstablecimientoHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar establecimiento
// @Tags         establecimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del establecimiento"
// @Param        body  body  dto.UpdateEstablecimientoRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.EstablecimientoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/establecimientos/{id} [put]
func (h *EstablecimientoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEstablecimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "establecimiento no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar establecimiento
// @Tags         establecimientos
// @Security     Bearer
// @Param        id  path  string  true  "ID del establecimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/establecimientos/{id} [delete]
func (h *EstablecimientoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
