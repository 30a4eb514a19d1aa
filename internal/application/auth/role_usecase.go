package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// RoleUseCase administra roles, permisos y sus asignaciones.
type RoleUseCase struct {
	roleRepo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(roleRepo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{roleRepo: roleRepo}
}

// CreateRole crea un rol nuevo.
func (uc *RoleUseCase) CreateRole(in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.roleRepo.CreateRole(role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// ListRoles lista roles con paginación.
func (uc *RoleUseCase) ListRoles(page dto.PageRequest) (*dto.RoleListResponse, error) {
	page.Normalize()
	roles, total, err := uc.roleRepo.ListRoles(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		items = append(items, *toRoleResponse(r))
	}
	return &dto.RoleListResponse{Data: items, Meta: dto.NewPageMeta(total, page.Page, page.Limit)}, nil
}

// ListPermissions lista el catálogo de permisos con paginación.
func (uc *RoleUseCase) ListPermissions(page dto.PageRequest) (*dto.PermissionListResponse, error) {
	page.Normalize()
	perms, total, err := uc.roleRepo.ListPermissions(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		items = append(items, dto.PermissionResponse{ID: p.ID, Code: p.Code, Description: p.Description})
	}
	return &dto.PermissionListResponse{Data: items, Meta: dto.NewPageMeta(total, page.Page, page.Limit)}, nil
}

// AssignPermission asigna un permiso a un rol. La pareja viva es única: asignar
// dos veces retorna ErrDuplicate.
func (uc *RoleUseCase) AssignPermission(roleID string, in dto.AssignPermissionRequest) error {
	role, err := uc.roleRepo.GetRoleByID(roleID)
	if err != nil || role == nil {
		return domain.ErrNotFound
	}
	perm, err := uc.roleRepo.GetPermissionByID(in.PermissionID)
	if err != nil || perm == nil {
		return domain.ErrNotFound
	}

	existing, _ := uc.roleRepo.GetRolePermission(roleID, in.PermissionID)
	if existing != nil {
		return domain.ErrDuplicate
	}

	return uc.roleRepo.AssignPermission(&entity.RolePermission{
		ID:           uuid.New().String(),
		RoleID:       roleID,
		PermissionID: in.PermissionID,
		CreatedAt:    time.Now(),
	})
}

// ListRolePermissions lista los permisos vivos de un rol.
func (uc *RoleUseCase) ListRolePermissions(roleID string) ([]dto.PermissionResponse, error) {
	role, err := uc.roleRepo.GetRoleByID(roleID)
	if err != nil || role == nil {
		return nil, domain.ErrNotFound
	}
	perms, err := uc.roleRepo.ListPermissionsByRole(roleID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		items = append(items, dto.PermissionResponse{ID: p.ID, Code: p.Code, Description: p.Description})
	}
	return items, nil
}

// RevokePermission retira (soft-delete) un permiso de un rol.
func (uc *RoleUseCase) RevokePermission(roleID, permissionID string) error {
	existing, err := uc.roleRepo.GetRolePermission(roleID, permissionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.roleRepo.SoftDeleteRolePermission(roleID, permissionID)
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}
