package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa un documento de facturación a un cliente. Puede referenciar
// el retiro (WithdrawalID) que descargó el inventario facturado.
type Invoice struct {
	ID           string
	CompanyID    string
	ClientID     string
	WithdrawalID string // opcional
	Prefix       string
	Number       string
	Date         time.Time
	Subtotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	Total        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
	DeletedAt    *time.Time
}

// InvoiceDetail línea de la factura; Subtotal = Quantity * UnitPrice.
type InvoiceDetail struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal // fracción: 0.19 = 19%
	Subtotal  decimal.Decimal
}
