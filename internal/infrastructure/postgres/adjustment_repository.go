package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

const adjustmentColumns = `id, company_id, code, date, from_warehouse_id, to_warehouse_id,
	reason, status, created_at, updated_at, created_by, deleted_at`

// AdjustmentRepo implementación del puerto AdjustmentRepository sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador de persistencia para ajustes entre bodegas.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste la cabecera de un ajuste.
func (r *AdjustmentRepo) Create(header *entity.WarehouseAdjustment) error {
	query := `
		INSERT INTO warehouse_adjustments (id, company_id, code, date, from_warehouse_id, to_warehouse_id, reason, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		header.ID, header.CompanyID, header.Code, header.Date, header.FromWarehouseID,
		header.ToWarehouseID, header.Reason, header.Status, header.CreatedAt, header.UpdatedAt, header.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de ajuste.
func (r *AdjustmentRepo) CreateDetail(detail *entity.WarehouseAdjustmentDetail) error {
	query := `
		INSERT INTO warehouse_adjustment_details (id, adjustment_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.AdjustmentID, detail.ProductID, detail.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment detail: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste vivo por ID.
func (r *AdjustmentRepo) GetByID(id string) (*entity.WarehouseAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM warehouse_adjustments WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id)
}

// GetByCompanyAndCode obtiene un ajuste vivo por empresa y código.
func (r *AdjustmentRepo) GetByCompanyAndCode(companyID, code string) (*entity.WarehouseAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM warehouse_adjustments WHERE company_id = $1 AND code = $2 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, code)
}

// GetForUpdate bloquea la cabecera para anulación.
func (r *AdjustmentRepo) GetForUpdate(id string) (*entity.WarehouseAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM warehouse_adjustments WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.scanOne(query, id)
}

// UpdateStatus cambia el estado de la cabecera (ACTIVE -> VOIDED).
func (r *AdjustmentRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE warehouse_adjustments SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update adjustment status: %w", err)
	}
	return nil
}

// ListByCompany lista ajustes vivos por empresa con paginación y total.
func (r *AdjustmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.WarehouseAdjustment, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM warehouse_adjustments WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count adjustments: %w", err)
	}

	query := `SELECT ` + adjustmentColumns + `
		FROM warehouse_adjustments WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY date DESC, code DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseAdjustment
	for rows.Next() {
		var h entity.WarehouseAdjustment
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Code, &h.Date, &h.FromWarehouseID, &h.ToWarehouseID,
			&h.Reason, &h.Status, &h.CreatedAt, &h.UpdatedAt, &h.CreatedBy, &h.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, &h)
	}
	return list, total, rows.Err()
}

// ListDetails lista las líneas de un ajuste.
func (r *AdjustmentRepo) ListDetails(adjustmentID string) ([]*entity.WarehouseAdjustmentDetail, error) {
	query := `
		SELECT id, adjustment_id, product_id, quantity
		FROM warehouse_adjustment_details WHERE adjustment_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("list adjustment details: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseAdjustmentDetail
	for rows.Next() {
		var d entity.WarehouseAdjustmentDetail
		if err := rows.Scan(&d.ID, &d.AdjustmentID, &d.ProductID, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan adjustment detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *AdjustmentRepo) scanOne(query string, args ...any) (*entity.WarehouseAdjustment, error) {
	var h entity.WarehouseAdjustment
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&h.ID, &h.CompanyID, &h.Code, &h.Date, &h.FromWarehouseID, &h.ToWarehouseID,
		&h.Reason, &h.Status, &h.CreatedAt, &h.UpdatedAt, &h.CreatedBy, &h.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return &h, nil
}
