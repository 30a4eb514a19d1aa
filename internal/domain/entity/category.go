package entity

import "time"

// Category representa una categoría de productos. Árbol por ParentID (auto-referencia).
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	ParentID    string // vacío = raíz
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// CategoryNode nodo del árbol de categorías armado en memoria (una sola consulta).
type CategoryNode struct {
	Category *Category
	Children []*CategoryNode
}
