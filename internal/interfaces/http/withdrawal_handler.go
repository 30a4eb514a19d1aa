package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/application/inventory"
)

// WithdrawalHandler maneja las salidas de mercancía.
type WithdrawalHandler struct {
	uc *inventory.WithdrawalUseCase
}

// NewWithdrawalHandler construye el handler.
func NewWithdrawalHandler(uc *inventory.WithdrawalUseCase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar retiro de mercancía
// @Tags         withdrawals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWithdrawalRequest  true  "Cabecera y líneas del retiro"
// @Success      201   {object}  dto.WithdrawalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/withdrawals [post]
func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Code == "" {
		return badRequest(c, "code es requerido")
	}
	if len(in.Lines) == 0 {
		return badRequest(c, "el retiro requiere al menos una línea")
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Void godoc
// @Summary      Anular retiro (contraasientos en el libro)
// @Tags         withdrawals
// @Security     Bearer
// @Param        id  path  string  true  "ID del retiro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/withdrawals/{id}/void [post]
func (h *WithdrawalHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.Void(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener retiro por ID
// @Tags         withdrawals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del retiro"
// @Success      200  {object}  dto.WithdrawalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/withdrawals/{id} [get]
func (h *WithdrawalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return notFound(c, "retiro no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar retiros
// @Tags         withdrawals
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WithdrawalListResponse
// @Router       /api/withdrawals [get]
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
