package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalHeader representa una salida de mercancía (stock-out). Cada línea
// referencia su propia bodega, lo que permite retirar de varias bodegas en una
// sola transacción.
type WithdrawalHeader struct {
	ID          string
	CompanyID   string
	Code        string
	Date        time.Time
	DocumentRef string
	Reason      string
	Total       decimal.Decimal
	Status      string // ACTIVE | VOIDED
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	DeletedAt   *time.Time
}

// WithdrawalDetail línea de un retiro (bodega por línea).
type WithdrawalDetail struct {
	ID           string
	WithdrawalID string
	ProductID    string
	WarehouseID  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
}
