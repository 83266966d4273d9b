package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/application/usecase"
)

// ProtocoloHandler maneja las peticiones HTTP para el catálogo de protocolos.
type ProtocoloHandler struct {
	uc *usecase.ProtocoloUseCase
}

// NewProtocoloHandler construye el handler.
func NewProtocoloHandler(uc *usecase.ProtocoloUseCase) *ProtocoloHandler {
	return &ProtocoloHandler{uc: uc}
}

// Create godoc
// @Summary      Crear entrada del catálogo de protocolos
// @Tags         protocolos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProtocoloRequest  true  "Datos del protocolo"
// @Success      201   {object}  dto.ProtocoloResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/protocolos [post]
func (h *ProtocoloHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProtocoloRequest
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
// @Summary      Obtener entrada del catálogo por ID
// @Tags         protocolos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del protocolo"
// @Success      200  {object}  dto.ProtocoloResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/protocolos/{id} [get]
func (h *ProtocoloHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "protocolo no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar catálogo de protocolos (scoped; incluye entradas globales)
// @Tags         protocolos
// @Security     Bearer
// @Produce      json
// @Param        establecimiento  query  string  false  "Filtro explícito (solo admin)"
// @Param        limit            query  int     false  "Límite"  default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ProtocoloListResponse
// @Router       /api/protocolos [get]
func (h *ProtocoloHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(GetScope(c), c.Query("establecimiento"), page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar entrada del catálogo
// @Tags         protocolos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del protocolo"
// @Param        body  body  dto.UpdateProtocoloRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProtocoloResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/protocolos/{id} [put]
func (h *ProtocoloHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProtocoloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "protocolo no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrada del catálogo
// @Tags         protocolos
// @Security     Bearer
// @Param        id  path  string  true  "ID del protocolo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/protocolos/{id} [delete]
func (h *ProtocoloHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
