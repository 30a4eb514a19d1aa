package inventory

import (
	"context"
	"time"

	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// ReconcileUseCase recalcula el stock de (producto, bodega) desde el libro
// (suma de deltas en product_history) y lo compara con el valor materializado.
// Detecta deriva y la repara dentro de una transacción con la fila bloqueada.
// Es idempotente: sin deriva no escribe nada.
type ReconcileUseCase struct {
	txRunner    TxRunner
	historyRepo repository.ProductHistoryRepository
	productRepo repository.ProductRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner TxRunner, historyRepo repository.ProductHistoryRepository, productRepo repository.ProductRepository) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, historyRepo: historyRepo, productRepo: productRepo}
}

// Reconcile compara y repara el stock materializado de (producto, bodega).
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, companyID, productID, warehouseID string) (*dto.ReconcileResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	var out *dto.ReconcileResponse
	err = uc.txRunner.Run(ctx, func(r *TxRepos) error {
		stock, err := r.Stock.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		computed, err := r.History.SumDeltas(productID, warehouseID)
		if err != nil {
			return err
		}

		drift := computed.Sub(stock.Quantity)
		out = &dto.ReconcileResponse{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Computed:    computed,
			Stored:      stock.Quantity,
			Drift:       drift,
		}
		if drift.IsZero() {
			return nil
		}

		// Reparar: la fuente de verdad es el libro
		stock.Quantity = computed
		stock.UpdatedAt = time.Now()
		if err := r.Stock.Upsert(stock); err != nil {
			return err
		}
		if err := r.Products.AdjustStock(productID, drift); err != nil {
			return err
		}
		out.Repaired = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HistoryUseCase expone el libro de movimientos en modo solo lectura.
type HistoryUseCase struct {
	historyRepo repository.ProductHistoryRepository
	productRepo repository.ProductRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(historyRepo repository.ProductHistoryRepository, productRepo repository.ProductRepository) *HistoryUseCase {
	return &HistoryUseCase{historyRepo: historyRepo, productRepo: productRepo}
}

// ListByProduct lista el historial de un producto con paginación.
func (uc *HistoryUseCase) ListByProduct(companyID, productID string, page dto.PageRequest) (*dto.ProductHistoryListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	page.Normalize()
	rows, total, err := uc.historyRepo.ListByProduct(productID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductHistoryResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ProductHistoryResponse{
			ID:            row.ID,
			ProductID:     row.ProductID,
			WarehouseID:   row.WarehouseID,
			OperationType: row.OperationType,
			OperationID:   row.OperationID,
			QuantityDelta: row.QuantityDelta,
			CurrentStock:  row.CurrentStock,
			CreatedAt:     row.CreatedAt,
		})
	}
	return &dto.ProductHistoryListResponse{
		Data: items,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}
