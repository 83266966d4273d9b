package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/application/usecase"
)

// ActivacionHandler maneja las peticiones HTTP para activaciones de protocolo.
type ActivacionHandler struct {
	uc *usecase.ActivacionUseCase
}

// NewActivacionHandler construye el handler.
func NewActivacionHandler(uc *usecase.ActivacionUseCase) *ActivacionHandler {
	return &ActivacionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar activación de protocolo
// @Tags         activaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateActivacionRequest  true  "meses YYYY-MM, cantidad, protocolo"
// @Success      201   {object}  dto.ActivacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/activaciones [post]
func (h *ActivacionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateActivacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener activación por ID
// @Tags         activaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la activación"
// @Success      200  {object}  dto.ActivacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/activaciones/{id} [get]
func (h *ActivacionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "activación no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar activaciones (scoped)
// @Tags         activaciones
// @Security     Bearer
// @Produce      json
// @Param        establecimiento  query  string  false  "Filtro explícito (solo admin)"
// @Param        limit            query  int     false  "Límite"  default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ActivacionListResponse
// @Router       /api/activaciones [get]
func (h *ActivacionHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), GetScope(c), c.Query("establecimiento"), page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar activación
// @Tags         activaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la activación"
// @Param        body  body  dto.UpdateActivacionRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ActivacionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/activaciones/{id} [put]
func (h *ActivacionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateActivacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "activación no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar activación
// @Tags         activaciones
// @Security     Bearer
// @Param        id  path  string  true  "ID de la activación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/activaciones/{id} [delete]
func (h *ActivacionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetScope(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
