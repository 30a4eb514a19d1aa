package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Facturas ─────────────────────────────────────────────────────────────────

// InvoiceLineRequest línea de factura a crear. Si UnitPrice es cero se usa el
// precio de venta del producto.
type InvoiceLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest datos para crear una factura.
type CreateInvoiceRequest struct {
	ClientID     string               `json:"client_id"`
	WithdrawalID string               `json:"withdrawal_id"` // opcional: retiro que descargó el stock
	Prefix       string               `json:"prefix"`
	Number       string               `json:"number"`
	Lines        []InvoiceLineRequest `json:"lines"`
}

// InvoiceDetailResponse línea de factura en respuestas.
type InvoiceDetailResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse representación de una factura.
type InvoiceResponse struct {
	ID           string                  `json:"id"`
	CompanyID    string                  `json:"company_id"`
	ClientID     string                  `json:"client_id"`
	WithdrawalID string                  `json:"withdrawal_id,omitempty"`
	Prefix       string                  `json:"prefix"`
	Number       string                  `json:"number"`
	Date         time.Time               `json:"date"`
	Subtotal     decimal.Decimal         `json:"subtotal"`
	TaxTotal     decimal.Decimal         `json:"tax_total"`
	Total        decimal.Decimal         `json:"total"`
	Details      []InvoiceDetailResponse `json:"details,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

// InvoiceListResponse envoltorio paginado de facturas.
type InvoiceListResponse struct {
	Data []InvoiceResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

// ── Cajas ────────────────────────────────────────────────────────────────────

// OpenCashRegisterRequest datos para abrir una caja.
type OpenCashRegisterRequest struct {
	Name          string          `json:"name"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

// CashTransactionRequest movimiento de caja a registrar.
type CashTransactionRequest struct {
	Type        string          `json:"type"` // SALE | REFUND | ADJUSTMENT | WITHDRAWAL | DEPOSIT
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// CashRegisterResponse representación de una caja.
type CashRegisterResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	Name          string          `json:"name"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Status        string          `json:"status"`
	OpenedAt      time.Time       `json:"opened_at"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
}

// CashRegisterListResponse envoltorio paginado de cajas.
type CashRegisterListResponse struct {
	Data []CashRegisterResponse `json:"data"`
	Meta PageMeta               `json:"meta"`
}

// CashTransactionResponse movimiento de caja en respuestas.
type CashTransactionResponse struct {
	ID             string          `json:"id"`
	CashRegisterID string          `json:"cash_register_id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CashTransactionListResponse envoltorio paginado de movimientos de caja.
type CashTransactionListResponse struct {
	Data []CashTransactionResponse `json:"data"`
	Meta PageMeta                  `json:"meta"`
}
