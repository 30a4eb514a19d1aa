package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para cabeceras de recepción, retiro y ajuste.
const (
	HeaderStatusActive = "ACTIVE"
	HeaderStatusVoided = "VOIDED"
)

// ReceptionHeader representa una entrada de mercancía (stock-in) de un proveedor
// hacia una bodega. Anularla inserta entradas compensatorias en el libro.
type ReceptionHeader struct {
	ID              string
	CompanyID       string
	Code            string // consecutivo único por empresa, ej. REC-001
	Date            time.Time
	ProviderID      string
	WarehouseID     string
	PurchaseOrderID string // opcional: orden de compra que se está recibiendo
	DocumentRef     string // referencia del documento del proveedor (remisión, factura)
	Total           decimal.Decimal
	Status          string // ACTIVE | VOIDED
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
	DeletedAt       *time.Time
}

// ReceptionDetail línea de una recepción.
type ReceptionDetail struct {
	ID          string
	ReceptionID string
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}
