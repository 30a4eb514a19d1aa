package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Product.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Stock es la suma denormalizada sobre todas las bodegas; el detalle por bodega
// vive en la tabla stock y se reconcilia contra product_history.
type Product struct {
	ID            string
	CompanyID     string
	SKU           string // código único por empresa
	Name          string
	Description   string
	Price         decimal.Decimal // precio unitario de venta
	Stock         decimal.Decimal // stock actual total (denormalizado)
	MinStock      decimal.Decimal // stock mínimo para alertas de reposición
	UnitMeasureID string
	CategoryID    string
	BrandID       string
	TaxID         string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// IsActive indica si el producto puede referenciarse en transacciones.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive && p.DeletedAt == nil
}
