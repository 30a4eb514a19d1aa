package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si la fila no
	// existe devuelve un Stock en cero sin bloquear (la inserción posterior la crea).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	ListByProduct(productID string) ([]*entity.Stock, error)
}
