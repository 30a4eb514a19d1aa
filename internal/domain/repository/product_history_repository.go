package repository

import (
	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/domain/entity"
)

// ProductHistoryRepository define el puerto del libro append-only de movimientos.
// No existe Update ni Delete: las filas nunca se modifican.
type ProductHistoryRepository interface {
	Create(row *entity.ProductHistory) error
	// SumDeltas suma todos los deltas de (producto, bodega); es la fuente de verdad
	// para reconciliar el stock materializado.
	SumDeltas(productID, warehouseID string) (decimal.Decimal, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.ProductHistory, int, error)
	ListByOperation(operationID string) ([]*entity.ProductHistory, error)
}
