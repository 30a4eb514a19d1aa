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

var _ repository.ReceptionRepository = (*ReceptionRepo)(nil)

const receptionColumns = `id, company_id, code, date, provider_id, warehouse_id,
	COALESCE(purchase_order_id::text, ''), document_ref, total, status, created_at, updated_at, created_by, deleted_at`

// ReceptionRepo implementación del puerto ReceptionRepository sobre PostgreSQL.
type ReceptionRepo struct {
	q Querier
}

// NewReceptionRepository construye el adaptador de persistencia para recepciones.
func NewReceptionRepository(q Querier) *ReceptionRepo {
	return &ReceptionRepo{q: q}
}

// Create persiste la cabecera de una recepción.
func (r *ReceptionRepo) Create(header *entity.ReceptionHeader) error {
	query := `
		INSERT INTO receptions (id, company_id, code, date, provider_id, warehouse_id, purchase_order_id, document_ref, total, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		header.ID, header.CompanyID, header.Code, header.Date, header.ProviderID,
		header.WarehouseID, header.PurchaseOrderID, header.DocumentRef, header.Total,
		header.Status, header.CreatedAt, header.UpdatedAt, header.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reception: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de recepción.
func (r *ReceptionRepo) CreateDetail(detail *entity.ReceptionDetail) error {
	query := `
		INSERT INTO reception_details (id, reception_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.ReceptionID, detail.ProductID, detail.Quantity, detail.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert reception detail: %w", err)
	}
	return nil
}

// GetByID obtiene una recepción viva por ID.
func (r *ReceptionRepo) GetByID(id string) (*entity.ReceptionHeader, error) {
	query := `SELECT ` + receptionColumns + ` FROM receptions WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id)
}

// GetByCompanyAndCode obtiene una recepción viva por empresa y código.
func (r *ReceptionRepo) GetByCompanyAndCode(companyID, code string) (*entity.ReceptionHeader, error) {
	query := `SELECT ` + receptionColumns + ` FROM receptions WHERE company_id = $1 AND code = $2 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, code)
}

// GetForUpdate bloquea la cabecera para anulación.
func (r *ReceptionRepo) GetForUpdate(id string) (*entity.ReceptionHeader, error) {
	query := `SELECT ` + receptionColumns + ` FROM receptions WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.scanOne(query, id)
}

// UpdateStatus cambia el estado de la cabecera (ACTIVE -> VOIDED).
func (r *ReceptionRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE receptions SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update reception status: %w", err)
	}
	return nil
}

// ListByCompany lista recepciones vivas por empresa con paginación y total.
func (r *ReceptionRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.ReceptionHeader, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM receptions WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count receptions: %w", err)
	}

	query := `SELECT ` + receptionColumns + `
		FROM receptions WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY date DESC, code DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list receptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReceptionHeader
	for rows.Next() {
		h, err := scanReception(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, h)
	}
	return list, total, rows.Err()
}

// ListDetails lista las líneas de una recepción.
func (r *ReceptionRepo) ListDetails(receptionID string) ([]*entity.ReceptionDetail, error) {
	query := `
		SELECT id, reception_id, product_id, quantity, unit_price
		FROM reception_details WHERE reception_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receptionID)
	if err != nil {
		return nil, fmt.Errorf("list reception details: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReceptionDetail
	for rows.Next() {
		var d entity.ReceptionDetail
		if err := rows.Scan(&d.ID, &d.ReceptionID, &d.ProductID, &d.Quantity, &d.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan reception detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *ReceptionRepo) scanOne(query string, args ...any) (*entity.ReceptionHeader, error) {
	h, err := scanReception(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reception: %w", err)
	}
	return h, nil
}

func scanReception(row pgx.Row) (*entity.ReceptionHeader, error) {
	var h entity.ReceptionHeader
	err := row.Scan(
		&h.ID, &h.CompanyID, &h.Code, &h.Date, &h.ProviderID, &h.WarehouseID,
		&h.PurchaseOrderID, &h.DocumentRef, &h.Total, &h.Status,
		&h.CreatedAt, &h.UpdatedAt, &h.CreatedBy, &h.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
