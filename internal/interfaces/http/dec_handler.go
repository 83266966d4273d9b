package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/application/usecase"
)

// DECHandler maneja las peticiones HTTP para los Documentos de Entrevista y
// Compromiso, incluida la descarga del documento imprimible.
type DECHandler struct {
	uc    *usecase.DECUseCase
	pdfUC *usecase.PDFUseCase
}

// NewDECHandler construye el handler.
func NewDECHandler(uc *usecase.DECUseCase, pdfUC *usecase.PDFUseCase) *DECHandler {
	return &DECHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear registro DEC
// @Tags         dec
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DECRequest  true  "Registro completo del formulario"
// @Success      201   {object}  dto.DECResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dec [post]
func (h *DECHandler) Create(c *fiber.Ctx) error {
	var in dto.DECRequest
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
// @Summary      Obtener registro DEC por ID
// @Tags         dec
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.DECResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dec/{id} [get]
func (h *DECHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar registros DEC (scoped, más recientes primero)
// @Tags         dec
// @Security     Bearer
// @Produce      json
// @Param        establecimiento  query  string  false  "Filtro explícito (solo admin)"
// @Param        limit            query  int     false  "Límite"  default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.DECListResponse
// @Router       /api/dec [get]
func (h *DECHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), GetScope(c), c.Query("establecimiento"), page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar registro DEC (reemplazo completo)
// @Tags         dec
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.DECRequest  true  "Registro completo del formulario"
// @Success      200   {object}  dto.DECResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dec/{id} [put]
func (h *DECHandler) Update(c *fiber.Ctx) error {
	var in dto.DECRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro DEC
// @Tags         dec
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dec/{id} [delete]
func (h *DECHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetScope(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar el documento imprimible de un DEC
// @Tags         dec
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dec/{id}/pdf [get]
func (h *DECHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadDECPDF(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
