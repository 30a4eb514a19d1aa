package entity

import "time"

// Role representa un rol asignable a usuarios.
type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Permission representa un permiso atómico (ej. products:write).
type Permission struct {
	ID          string
	Code        string
	Description string
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// RolePermission relación many-to-many rol-permiso, única por (RoleID, PermissionID).
// La eliminación es soft-delete para conservar el historial de asignaciones.
type RolePermission struct {
	ID           string
	RoleID       string
	PermissionID string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}
