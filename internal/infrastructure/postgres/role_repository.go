package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles y permisos.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// CreateRole persiste un rol.
func (r *RoleRepo) CreateRole(role *entity.Role) error {
	query := `
		INSERT INTO roles (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		role.ID, role.Name, role.Description, role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetRoleByID obtiene un rol vivo por ID.
func (r *RoleRepo) GetRoleByID(id string) (*entity.Role, error) {
	query := `
		SELECT id, name, description, created_at, updated_at, deleted_at
		FROM roles WHERE id = $1 AND deleted_at IS NULL`
	var role entity.Role
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt, &role.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// ListRoles lista roles vivos con paginación y total.
func (r *RoleRepo) ListRoles(limit, offset int) ([]*entity.Role, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM roles WHERE deleted_at IS NULL`,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	query := `
		SELECT id, name, description, created_at, updated_at, deleted_at
		FROM roles WHERE deleted_at IS NULL ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description,
			&role.CreatedAt, &role.UpdatedAt, &role.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, total, rows.Err()
}

// GetPermissionByID obtiene un permiso vivo por ID.
func (r *RoleRepo) GetPermissionByID(id string) (*entity.Permission, error) {
	query := `
		SELECT id, code, description, created_at, deleted_at
		FROM permissions WHERE id = $1 AND deleted_at IS NULL`
	var p entity.Permission
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Code, &p.Description, &p.CreatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return &p, nil
}

// ListPermissions lista el catálogo de permisos vivos con paginación y total.
func (r *RoleRepo) ListPermissions(limit, offset int) ([]*entity.Permission, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM permissions WHERE deleted_at IS NULL`,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count permissions: %w", err)
	}

	query := `
		SELECT id, code, description, created_at, deleted_at
		FROM permissions WHERE deleted_at IS NULL ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	list, err := scanPermissions(rows)
	return list, total, err
}

// AssignPermission crea la relación rol-permiso; pareja viva duplicada -> ErrDuplicate.
func (r *RoleRepo) AssignPermission(rp *entity.RolePermission) error {
	query := `
		INSERT INTO role_permissions (id, role_id, permission_id, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, rp.ID, rp.RoleID, rp.PermissionID, rp.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("assign permission: %w", err)
	}
	return nil
}

// GetRolePermission obtiene la relación viva (rol, permiso).
func (r *RoleRepo) GetRolePermission(roleID, permissionID string) (*entity.RolePermission, error) {
	query := `
		SELECT id, role_id, permission_id, created_at, deleted_at
		FROM role_permissions WHERE role_id = $1 AND permission_id = $2 AND deleted_at IS NULL`
	var rp entity.RolePermission
	err := r.q.QueryRow(context.Background(), query, roleID, permissionID).Scan(
		&rp.ID, &rp.RoleID, &rp.PermissionID, &rp.CreatedAt, &rp.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role permission: %w", err)
	}
	return &rp, nil
}

// ListPermissionsByRole lista los permisos vivos asignados a un rol.
func (r *RoleRepo) ListPermissionsByRole(roleID string) ([]*entity.Permission, error) {
	query := `
		SELECT p.id, p.code, p.description, p.created_at, p.deleted_at
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id AND rp.deleted_at IS NULL
		WHERE rp.role_id = $1 AND p.deleted_at IS NULL
		ORDER BY p.code`
	rows, err := r.q.Query(context.Background(), query, roleID)
	if err != nil {
		return nil, fmt.Errorf("list permissions by role: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

// SoftDeleteRolePermission retira la relación rol-permiso (soft-delete).
func (r *RoleRepo) SoftDeleteRolePermission(roleID, permissionID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE role_permissions SET deleted_at = now() WHERE role_id = $1 AND permission_id = $2 AND deleted_at IS NULL`,
		roleID, permissionID,
	)
	if err != nil {
		return fmt.Errorf("soft delete role permission: %w", err)
	}
	return nil
}

func scanPermissions(rows pgx.Rows) ([]*entity.Permission, error) {
	var list []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.CreatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
