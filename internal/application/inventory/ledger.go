package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
)

// movement describe un delta a aplicar sobre (producto, bodega) dentro de una tx.
type movement struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
	OpType      string // entity.OpEntry | OpWithdrawal | OpAdjustment
	OperationID string // cabecera que origina el movimiento
	Delta       decimal.Decimal
	UserID      string
	Now         time.Time
}

// applyMovement es la única vía de escritura del libro de inventario:
//  1. bloquea la fila de stock (SELECT FOR UPDATE) para serializar escrituras
//     concurrentes sobre el mismo (producto, bodega)
//  2. valida que el stock resultante no quede negativo
//  3. materializa el nuevo stock y ajusta el denormalizado del producto
//  4. inserta la fila append-only en product_history con el snapshot resultante
//
// Debe invocarse dentro de la transacción de la cabecera que lo origina.
func applyMovement(r *TxRepos, m movement) (decimal.Decimal, error) {
	stock, err := r.Stock.GetForUpdate(m.ProductID, m.WarehouseID)
	if err != nil {
		return decimal.Zero, err
	}

	newQty := stock.Quantity.Add(m.Delta)
	if newQty.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}

	stock.Quantity = newQty
	stock.UpdatedAt = m.Now
	if err := r.Stock.Upsert(stock); err != nil {
		return decimal.Zero, err
	}
	if err := r.Products.AdjustStock(m.ProductID, m.Delta); err != nil {
		return decimal.Zero, err
	}

	row := &entity.ProductHistory{
		ID:            uuid.New().String(),
		CompanyID:     m.CompanyID,
		ProductID:     m.ProductID,
		WarehouseID:   m.WarehouseID,
		OperationType: m.OpType,
		OperationID:   m.OperationID,
		QuantityDelta: m.Delta,
		CurrentStock:  newQty,
		CreatedAt:     m.Now,
		CreatedBy:     m.UserID,
	}
	if err := r.History.Create(row); err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}
