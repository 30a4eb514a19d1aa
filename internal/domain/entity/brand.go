package entity

import "time"

// Brand representa una marca de productos.
type Brand struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
