package inventory

import (
	"context"

	"github.com/soportek/almacen-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo lo que toque el libro de inventario debe pasar por aquí.
type TxRepos struct {
	Stock          repository.StockRepository
	History        repository.ProductHistoryRepository
	Products       repository.ProductRepository
	Receptions     repository.ReceptionRepository
	Withdrawals    repository.WithdrawalRepository
	Adjustments    repository.AdjustmentRepository
	PurchaseOrders repository.PurchaseOrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad: cabecera + detalles + movimientos del libro
// se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *TxRepos) error) error
}
