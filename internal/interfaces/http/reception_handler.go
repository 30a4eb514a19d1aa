package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/application/inventory"
)

// ReceptionHandler maneja las entradas de mercancía.
type ReceptionHandler struct {
	uc *inventory.ReceptionUseCase
}

// NewReceptionHandler construye el handler.
func NewReceptionHandler(uc *inventory.ReceptionUseCase) *ReceptionHandler {
	return &ReceptionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar recepción de mercancía
// @Tags         receptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceptionRequest  true  "Cabecera y líneas de la recepción"
// @Success      201   {object}  dto.ReceptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receptions [post]
func (h *ReceptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceptionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Code == "" || in.ProviderID == "" || in.WarehouseID == "" {
		return badRequest(c, "code, provider_id y warehouse_id son requeridos")
	}
	if len(in.Lines) == 0 {
		return badRequest(c, "la recepción requiere al menos una línea")
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Void godoc
// @Summary      Anular recepción (contraasientos en el libro)
// @Tags         receptions
// @Security     Bearer
// @Param        id  path  string  true  "ID de la recepción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/receptions/{id}/void [post]
func (h *ReceptionHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.Void(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener recepción por ID
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receptions/{id} [get]
func (h *ReceptionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return notFound(c, "recepción no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recepciones
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReceptionListResponse
// @Router       /api/receptions [get]
func (h *ReceptionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
