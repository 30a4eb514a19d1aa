package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo implementación del puerto TaxRepository sobre PostgreSQL.
type TaxRepo struct {
	q Querier
}

// NewTaxRepository construye el adaptador de persistencia para impuestos.
func NewTaxRepository(q Querier) *TaxRepo {
	return &TaxRepo{q: q}
}

// Create persiste un impuesto.
func (r *TaxRepo) Create(tax *entity.Tax) error {
	query := `
		INSERT INTO taxes (id, company_id, name, rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		tax.ID, tax.CompanyID, tax.Name, tax.Rate, tax.Status, tax.CreatedAt, tax.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tax: %w", err)
	}
	return nil
}

// GetByID obtiene un impuesto vivo por ID.
func (r *TaxRepo) GetByID(id string) (*entity.Tax, error) {
	query := `
		SELECT id, company_id, name, rate, status, created_at, updated_at, deleted_at
		FROM taxes WHERE id = $1 AND deleted_at IS NULL`
	var t entity.Tax
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.Rate, &t.Status, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax: %w", err)
	}
	return &t, nil
}

// Update actualiza nombre y tasa.
func (r *TaxRepo) Update(tax *entity.Tax) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE taxes SET name = $2, rate = $3, updated_at = $4 WHERE id = $1 AND deleted_at IS NULL`,
		tax.ID, tax.Name, tax.Rate, tax.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tax: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado del impuesto (active/inactive).
func (r *TaxRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE taxes SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update tax status: %w", err)
	}
	return nil
}

// ListByCompany lista impuestos vivos por empresa con paginación y total.
func (r *TaxRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Tax, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM taxes WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count taxes: %w", err)
	}

	query := `
		SELECT id, company_id, name, rate, status, created_at, updated_at, deleted_at
		FROM taxes WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list taxes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tax
	for rows.Next() {
		var t entity.Tax
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Rate, &t.Status,
			&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan tax: %w", err)
		}
		list = append(list, &t)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el impuesto como eliminado.
func (r *TaxRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE taxes SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete tax: %w", err)
	}
	return nil
}
