package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

var _ repository.ProductHistoryRepository = (*ProductHistoryRepo)(nil)

// ProductHistoryRepo implementación del puerto ProductHistoryRepository sobre PostgreSQL.
// El libro es append-only: solo INSERT y SELECT.
type ProductHistoryRepo struct {
	q Querier
}

// NewProductHistoryRepository construye el adaptador del libro de movimientos.
func NewProductHistoryRepository(q Querier) *ProductHistoryRepo {
	return &ProductHistoryRepo{q: q}
}

// Create inserta una fila del libro.
func (r *ProductHistoryRepo) Create(row *entity.ProductHistory) error {
	query := `
		INSERT INTO product_history (id, company_id, product_id, warehouse_id, operation_type, operation_id, quantity_delta, current_stock, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		row.ID, row.CompanyID, row.ProductID, row.WarehouseID, row.OperationType,
		row.OperationID, row.QuantityDelta, row.CurrentStock, row.CreatedAt, row.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert product history: %w", err)
	}
	return nil
}

// SumDeltas suma todos los deltas de (producto, bodega): la fuente de verdad
// para reconciliación.
func (r *ProductHistoryRepo) SumDeltas(productID, warehouseID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity_delta), 0) FROM product_history WHERE product_id = $1 AND warehouse_id = $2`,
		productID, warehouseID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum history deltas: %w", err)
	}
	return sum, nil
}

// ListByProduct lista el historial de un producto, más reciente primero.
func (r *ProductHistoryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ProductHistory, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM product_history WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count product history: %w", err)
	}

	query := `
		SELECT id, company_id, product_id, warehouse_id, operation_type, operation_id, quantity_delta, current_stock, created_at, created_by
		FROM product_history WHERE product_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list product history: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductHistory
	for rows.Next() {
		var h entity.ProductHistory
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.ProductID, &h.WarehouseID, &h.OperationType,
			&h.OperationID, &h.QuantityDelta, &h.CurrentStock, &h.CreatedAt, &h.CreatedBy); err != nil {
			return nil, 0, fmt.Errorf("scan product history: %w", err)
		}
		list = append(list, &h)
	}
	return list, total, rows.Err()
}

// ListByOperation lista las filas originadas por una cabecera (creación + compensaciones).
func (r *ProductHistoryRepo) ListByOperation(operationID string) ([]*entity.ProductHistory, error) {
	query := `
		SELECT id, company_id, product_id, warehouse_id, operation_type, operation_id, quantity_delta, current_stock, created_at, created_by
		FROM product_history WHERE operation_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, operationID)
	if err != nil {
		return nil, fmt.Errorf("list history by operation: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductHistory
	for rows.Next() {
		var h entity.ProductHistory
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.ProductID, &h.WarehouseID, &h.OperationType,
			&h.OperationID, &h.QuantityDelta, &h.CurrentStock, &h.CreatedAt, &h.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan product history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
