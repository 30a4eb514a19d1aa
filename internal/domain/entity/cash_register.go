package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la caja registradora.
const (
	CashRegisterOpen   = "OPEN"
	CashRegisterClosed = "CLOSED"
)

// Tipos de transacción de caja.
const (
	CashTxSale       = "SALE"
	CashTxRefund     = "REFUND"
	CashTxAdjustment = "ADJUSTMENT"
	CashTxWithdrawal = "WITHDRAWAL"
	CashTxDeposit    = "DEPOSIT"
)

// CashRegister representa una caja con saldo corriente independiente del inventario.
type CashRegister struct {
	ID            string
	CompanyID     string
	Name          string
	OpeningAmount decimal.Decimal
	CurrentAmount decimal.Decimal
	Status        string // OPEN | CLOSED
	OpenedAt      time.Time
	ClosedAt      *time.Time
	OpenedBy      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// IsOpen indica si la caja acepta transacciones.
func (r *CashRegister) IsOpen() bool {
	return r.Status == CashRegisterOpen && r.DeletedAt == nil
}

// CashTransaction representa un movimiento de caja tipado que afecta el saldo corriente.
type CashTransaction struct {
	ID             string
	CashRegisterID string
	Type           string          // SALE | REFUND | ADJUSTMENT | WITHDRAWAL | DEPOSIT
	Amount         decimal.Decimal // monto ingresado, siempre positivo salvo ADJUSTMENT
	Description    string
	CreatedAt      time.Time
	CreatedBy      string
}
