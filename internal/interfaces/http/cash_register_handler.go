package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soportek/almacen-api/internal/application/billing"
	"github.com/soportek/almacen-api/internal/application/dto"
)

// CashRegisterHandler maneja apertura, cierre y movimientos de caja.
type CashRegisterHandler struct {
	uc *billing.CashRegisterUseCase
}

// NewCashRegisterHandler construye el handler.
func NewCashRegisterHandler(uc *billing.CashRegisterUseCase) *CashRegisterHandler {
	return &CashRegisterHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir caja
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCashRegisterRequest  true  "Nombre y monto de apertura"
// @Success      201   {object}  dto.CashRegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash-registers [post]
func (h *CashRegisterHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenCashRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return badRequest(c, "name es requerido")
	}
	if in.OpeningAmount.IsNegative() {
		return badRequest(c, "opening_amount no puede ser negativo")
	}
	out, err := h.uc.Open(GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Cerrar caja
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la caja"
// @Success      200  {object}  dto.CashRegisterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id}/close [post]
func (h *CashRegisterHandler) Close(c *fiber.Ctx) error {
	out, err := h.uc.Close(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RegisterTransaction godoc
// @Summary      Registrar movimiento de caja
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la caja"
// @Param        body  body  dto.CashTransactionRequest  true  "Tipo, monto y descripción"
// @Success      201   {object}  dto.CashTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id}/transactions [post]
func (h *CashRegisterHandler) RegisterTransaction(c *fiber.Ctx) error {
	var in dto.CashTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Type == "" {
		return badRequest(c, "type es requerido")
	}
	out, err := h.uc.RegisterTransaction(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener caja por ID
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la caja"
// @Success      200  {object}  dto.CashRegisterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id} [get]
func (h *CashRegisterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return notFound(c, "caja no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cajas
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashRegisterListResponse
// @Router       /api/cash-registers [get]
func (h *CashRegisterHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Listar movimientos de una caja
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la caja"
// @Success      200  {object}  dto.CashTransactionListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id}/transactions [get]
func (h *CashRegisterHandler) ListTransactions(c *fiber.Ctx) error {
	out, err := h.uc.ListTransactions(GetCompanyID(c), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
