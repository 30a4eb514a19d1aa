package dto

import "time"

// RegisterRequest datos de registro de usuario.
type RegisterRequest struct {
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse representación de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ── Roles y permisos ─────────────────────────────────────────────────────────

// CreateRoleRequest datos para crear un rol.
type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleResponse representación de un rol.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoleListResponse envoltorio paginado de roles.
type RoleListResponse struct {
	Data []RoleResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// PermissionResponse representación de un permiso.
type PermissionResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// PermissionListResponse envoltorio paginado de permisos.
type PermissionListResponse struct {
	Data []PermissionResponse `json:"data"`
	Meta PageMeta             `json:"meta"`
}

// AssignPermissionRequest asignación de un permiso a un rol.
type AssignPermissionRequest struct {
	PermissionID string `json:"permission_id"`
}
