package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// RoleRepository define el puerto para roles, permisos y su relación many-to-many.
// AssignPermission debe fallar con ErrDuplicate si la pareja (rol, permiso) ya existe
// viva; la eliminación de la relación es soft-delete.
type RoleRepository interface {
	CreateRole(role *entity.Role) error
	GetRoleByID(id string) (*entity.Role, error)
	ListRoles(limit, offset int) ([]*entity.Role, int, error)

	GetPermissionByID(id string) (*entity.Permission, error)
	ListPermissions(limit, offset int) ([]*entity.Permission, int, error)

	AssignPermission(rp *entity.RolePermission) error
	GetRolePermission(roleID, permissionID string) (*entity.RolePermission, error)
	ListPermissionsByRole(roleID string) ([]*entity.Permission, error)
	SoftDeleteRolePermission(roleID, permissionID string) error
}
