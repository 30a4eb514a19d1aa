package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, company_id, code, date, provider_id, total, status,
	COALESCE(approved_by::text, ''), created_at, updated_at, created_by, deleted_at`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la cabecera de una orden de compra.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, company_id, code, date, provider_id, total, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.Code, order.Date, order.ProviderID,
		order.Total, order.Status, order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de la orden. ReceivedQuantity inicia en 0.
func (r *PurchaseOrderRepo) CreateDetail(detail *entity.PurchaseOrderDetail) error {
	query := `
		INSERT INTO purchase_order_details (id, purchase_order_id, product_id, quantity, received_quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.PurchaseOrderID, detail.ProductID, detail.Quantity,
		detail.ReceivedQuantity, detail.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order detail: %w", err)
	}
	return nil
}

// GetByID obtiene una orden viva por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id)
}

// GetByCompanyAndCode obtiene una orden viva por empresa y código.
func (r *PurchaseOrderRepo) GetByCompanyAndCode(companyID, code string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE company_id = $1 AND code = $2 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, code)
}

// GetForUpdate bloquea la cabecera para transiciones de estado y acumulación de recibidos.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.scanOne(query, id)
}

// UpdateStatus cambia el estado registrando el actor de la transición.
func (r *PurchaseOrderRepo) UpdateStatus(id, status, actorID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, approved_by = NULLIF($3, ''), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, status, actorID,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// ListByCompany lista órdenes vivas por empresa con paginación y total.
func (r *PurchaseOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_orders WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	query := `SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY date DESC, code DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// ListDetails lista las líneas de una orden.
func (r *PurchaseOrderRepo) ListDetails(orderID string) ([]*entity.PurchaseOrderDetail, error) {
	query := `
		SELECT id, purchase_order_id, product_id, quantity, received_quantity, unit_price
		FROM purchase_order_details WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order details: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderDetail
	for rows.Next() {
		var d entity.PurchaseOrderDetail
		if err := rows.Scan(&d.ID, &d.PurchaseOrderID, &d.ProductID, &d.Quantity,
			&d.ReceivedQuantity, &d.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateDetailReceived fija la cantidad recibida acumulada de una línea.
func (r *PurchaseOrderRepo) UpdateDetailReceived(detailID string, received decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_details SET received_quantity = $2 WHERE id = $1`,
		detailID, received,
	)
	if err != nil {
		return fmt.Errorf("update purchase order detail received: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) scanOne(query string, args ...any) (*entity.PurchaseOrder, error) {
	o, err := scanPurchaseOrder(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return o, nil
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.Code, &o.Date, &o.ProviderID, &o.Total, &o.Status,
		&o.ApprovedBy, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy, &o.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
