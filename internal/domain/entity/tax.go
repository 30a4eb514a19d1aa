package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Tax.
const (
	TaxStatusActive   = "active"
	TaxStatusInactive = "inactive"
)

// Tax representa un impuesto aplicable a productos (porcentaje).
type Tax struct {
	ID        string
	CompanyID string
	Name      string
	Rate      decimal.Decimal // porcentaje: 0, 5, 19
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
