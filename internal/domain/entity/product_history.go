package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación del libro de inventario.
const (
	OpEntry      = "ENTRY"      // recepción (entrada)
	OpWithdrawal = "WITHDRAWAL" // retiro (salida)
	OpAdjustment = "ADJUSTMENT" // ajuste entre bodegas
)

// ProductHistory es una fila append-only del libro de movimientos: registra el delta
// aplicado y el stock resultante de (producto, bodega) en ese instante. Nunca se
// borra; anular una cabecera inserta filas compensatorias con la misma OperationID.
type ProductHistory struct {
	ID            string
	CompanyID     string
	ProductID     string
	WarehouseID   string
	OperationType string          // ENTRY | WITHDRAWAL | ADJUSTMENT
	OperationID   string          // FK a la cabecera que originó el movimiento
	QuantityDelta decimal.Decimal // positivo entrada, negativo salida
	CurrentStock  decimal.Decimal // stock resultante tras aplicar el delta
	CreatedAt     time.Time
	CreatedBy     string
}
