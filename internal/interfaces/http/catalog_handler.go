package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/application/usecase"
)

// BrandHandler maneja las peticiones HTTP para Brand.
type BrandHandler struct {
	uc *usecase.BrandUseCase
}

// NewBrandHandler construye el handler.
func NewBrandHandler(uc *usecase.BrandUseCase) *BrandHandler {
	return &BrandHandler{uc: uc}
}

// Create godoc
// @Summary      Crear marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBrandRequest  true  "Datos de la marca"
// @Success      201   {object}  dto.BrandResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brands [post]
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return badRequest(c, "name es requerido")
	}
	out, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la marca"
// @Param        body  body  dto.CreateBrandRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.BrandResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [put]
func (h *BrandHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return badRequest(c, "name es requerido")
	}
	out, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return notFound(c, "marca no encontrada")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener marca por ID
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la marca"
// @Success      200  {object}  dto.BrandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [get]
func (h *BrandHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return notFound(c, "marca no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar marcas
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BrandListResponse
// @Router       /api/brands [get]
func (h *BrandHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar marca (borrado lógico)
// @Tags         brands
// @Security     Bearer
// @Param        id  path  string  true  "ID de la marca"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [delete]
func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TaxHandler maneja las peticiones HTTP para Tax.
type TaxHandler struct {
	uc *usecase.TaxUseCase
}

// NewTaxHandler construye el handler.
func NewTaxHandler(uc *usecase.TaxUseCase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

// Create godoc
// @Summary      Crear impuesto
// @Tags         taxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTaxRequest  true  "Nombre y tarifa porcentual"
// @Success      201   {object}  dto.TaxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/taxes [post]
func (h *TaxHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaxRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return badRequest(c, "name es requerido")
	}
	out, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener impuesto por ID
// @Tags         taxes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del impuesto"
// @Success      200  {object}  dto.TaxResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/taxes/{id} [get]
func (h *TaxHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return notFound(c, "impuesto no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar impuestos
// @Tags         taxes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TaxListResponse
// @Router       /api/taxes [get]
func (h *TaxHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar impuesto
// @Tags         taxes
// @Security     Bearer
// @Param        id  path  string  true  "ID del impuesto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/taxes/{id}/activate [post]
func (h *TaxHandler) Activate(c *fiber.Ctx) error {
	if err := h.uc.Activate(GetCompanyID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate godoc
// @Summary      Desactivar impuesto
// @Tags         taxes
// @Security     Bearer
// @Param        id  path  string  true  "ID del impuesto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/taxes/{id}/deactivate [post]
func (h *TaxHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetCompanyID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar impuesto (borrado lógico)
// @Tags         taxes
// @Security     Bearer
// @Param        id  path  string  true  "ID del impuesto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/taxes/{id} [delete]
func (h *TaxHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MeasurementUnitHandler maneja el catálogo global de unidades de medida.
type MeasurementUnitHandler struct {
	uc *usecase.MeasurementUnitUseCase
}

// NewMeasurementUnitHandler construye el handler.
func NewMeasurementUnitHandler(uc *usecase.MeasurementUnitUseCase) *MeasurementUnitHandler {
	return &MeasurementUnitHandler{uc: uc}
}

// List godoc
// @Summary      Listar unidades de medida
// @Tags         measurement-units
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeasurementUnitListResponse
// @Router       /api/measurement-units [get]
func (h *MeasurementUnitHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(pageFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
