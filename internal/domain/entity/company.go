package entity

import "time"

// Company representa una empresa (tenant). Todos los registros cuelgan de una Company.
type Company struct {
	ID        string
	Name      string
	TaxID     string // NIT o identificación tributaria
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
