package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseAdjustment mueve cantidades de productos de una bodega origen a una
// bodega destino. Genera dos filas de historial por línea (negativa en origen,
// positiva en destino) con la misma OperationID.
type WarehouseAdjustment struct {
	ID              string
	CompanyID       string
	Code            string
	Date            time.Time
	FromWarehouseID string
	ToWarehouseID   string
	Reason          string
	Status          string // ACTIVE | VOIDED
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
	DeletedAt       *time.Time
}

// WarehouseAdjustmentDetail línea de un ajuste (producto y cantidad a mover).
type WarehouseAdjustmentDetail struct {
	ID           string
	AdjustmentID string
	ProductID    string
	Quantity     decimal.Decimal
}
