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

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

const withdrawalColumns = `id, company_id, code, date, document_ref, reason, total, status,
	created_at, updated_at, created_by, deleted_at`

// WithdrawalRepo implementación del puerto WithdrawalRepository sobre PostgreSQL.
type WithdrawalRepo struct {
	q Querier
}

// NewWithdrawalRepository construye el adaptador de persistencia para retiros.
func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

// Create persiste la cabecera de un retiro.
func (r *WithdrawalRepo) Create(header *entity.WithdrawalHeader) error {
	query := `
		INSERT INTO withdrawals (id, company_id, code, date, document_ref, reason, total, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		header.ID, header.CompanyID, header.Code, header.Date, header.DocumentRef,
		header.Reason, header.Total, header.Status, header.CreatedAt, header.UpdatedAt, header.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de retiro.
func (r *WithdrawalRepo) CreateDetail(detail *entity.WithdrawalDetail) error {
	query := `
		INSERT INTO withdrawal_details (id, withdrawal_id, product_id, warehouse_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.WithdrawalID, detail.ProductID, detail.WarehouseID, detail.Quantity, detail.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal detail: %w", err)
	}
	return nil
}

// GetByID obtiene un retiro vivo por ID.
func (r *WithdrawalRepo) GetByID(id string) (*entity.WithdrawalHeader, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id)
}

// GetByCompanyAndCode obtiene un retiro vivo por empresa y código.
func (r *WithdrawalRepo) GetByCompanyAndCode(companyID, code string) (*entity.WithdrawalHeader, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE company_id = $1 AND code = $2 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, code)
}

// GetForUpdate bloquea la cabecera para anulación.
func (r *WithdrawalRepo) GetForUpdate(id string) (*entity.WithdrawalHeader, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.scanOne(query, id)
}

// UpdateStatus cambia el estado de la cabecera (ACTIVE -> VOIDED).
func (r *WithdrawalRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE withdrawals SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update withdrawal status: %w", err)
	}
	return nil
}

// ListByCompany lista retiros vivos por empresa con paginación y total.
func (r *WithdrawalRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.WithdrawalHeader, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM withdrawals WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count withdrawals: %w", err)
	}

	query := `SELECT ` + withdrawalColumns + `
		FROM withdrawals WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY date DESC, code DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()
	var list []*entity.WithdrawalHeader
	for rows.Next() {
		var h entity.WithdrawalHeader
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Code, &h.Date, &h.DocumentRef, &h.Reason,
			&h.Total, &h.Status, &h.CreatedAt, &h.UpdatedAt, &h.CreatedBy, &h.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan withdrawal: %w", err)
		}
		list = append(list, &h)
	}
	return list, total, rows.Err()
}

// ListDetails lista las líneas de un retiro.
func (r *WithdrawalRepo) ListDetails(withdrawalID string) ([]*entity.WithdrawalDetail, error) {
	query := `
		SELECT id, withdrawal_id, product_id, warehouse_id, quantity, unit_price
		FROM withdrawal_details WHERE withdrawal_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawal details: %w", err)
	}
	defer rows.Close()
	var list []*entity.WithdrawalDetail
	for rows.Next() {
		var d entity.WithdrawalDetail
		if err := rows.Scan(&d.ID, &d.WithdrawalID, &d.ProductID, &d.WarehouseID, &d.Quantity, &d.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan withdrawal detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *WithdrawalRepo) scanOne(query string, args ...any) (*entity.WithdrawalHeader, error) {
	var h entity.WithdrawalHeader
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&h.ID, &h.CompanyID, &h.Code, &h.Date, &h.DocumentRef, &h.Reason,
		&h.Total, &h.Status, &h.CreatedAt, &h.UpdatedAt, &h.CreatedBy, &h.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal: %w", err)
	}
	return &h, nil
}
