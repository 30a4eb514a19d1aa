package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soportek/almacen-api/internal/application/auth"
	"github.com/soportek/almacen-api/internal/application/dto"
)

// RoleHandler maneja roles y permisos (solo admin).
type RoleHandler struct {
	uc *auth.RoleUseCase
}

// NewRoleHandler construye el handler de roles.
func NewRoleHandler(uc *auth.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// CreateRole godoc
// @Summary      Crear rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoleRequest  true  "Datos del rol"
// @Success      201   {object}  dto.RoleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return badRequest(c, "name es requerido")
	}
	out, err := h.uc.CreateRole(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRoles godoc
// @Summary      Listar roles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RoleListResponse
// @Router       /api/roles [get]
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.uc.ListRoles(pageFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListPermissions godoc
// @Summary      Listar permisos disponibles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PermissionListResponse
// @Router       /api/permissions [get]
func (h *RoleHandler) ListPermissions(c *fiber.Ctx) error {
	out, err := h.uc.ListPermissions(pageFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AssignPermission godoc
// @Summary      Asignar permiso a un rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del rol"
// @Param        body  body  dto.AssignPermissionRequest  true  "permission_id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/roles/{id}/permissions [post]
func (h *RoleHandler) AssignPermission(c *fiber.Ctx) error {
	var in dto.AssignPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.PermissionID == "" {
		return badRequest(c, "permission_id es requerido")
	}
	if err := h.uc.AssignPermission(c.Params("id"), in); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRolePermissions godoc
// @Summary      Listar permisos de un rol
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del rol"
// @Success      200  {array}  dto.PermissionResponse
// @Router       /api/roles/{id}/permissions [get]
func (h *RoleHandler) ListRolePermissions(c *fiber.Ctx) error {
	out, err := h.uc.ListRolePermissions(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RevokePermission godoc
// @Summary      Revocar permiso de un rol
// @Tags         roles
// @Security     Bearer
// @Param        id             path  string  true  "ID del rol"
// @Param        permission_id  path  string  true  "ID del permiso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id}/permissions/{permission_id} [delete]
func (h *RoleHandler) RevokePermission(c *fiber.Ctx) error {
	if err := h.uc.RevokePermission(c.Params("id"), c.Params("permission_id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
