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

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

// ProviderRepo implementación del puerto ProviderRepository sobre PostgreSQL.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador de persistencia para proveedores.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

// Create persiste un proveedor.
func (r *ProviderRepo) Create(provider *entity.Provider) error {
	query := `
		INSERT INTO providers (id, company_id, document, name, address, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		provider.ID, provider.CompanyID, provider.Document, provider.Name,
		provider.Address, provider.Phone, provider.Email, provider.Status,
		provider.CreatedAt, provider.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor vivo por ID.
func (r *ProviderRepo) GetByID(id string) (*entity.Provider, error) {
	query := `
		SELECT id, company_id, document, name, address, phone, email, status, created_at, updated_at, deleted_at
		FROM providers WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id)
}

// GetByCompanyAndDocument obtiene un proveedor vivo por empresa y documento.
func (r *ProviderRepo) GetByCompanyAndDocument(companyID, document string) (*entity.Provider, error) {
	query := `
		SELECT id, company_id, document, name, address, phone, email, status, created_at, updated_at, deleted_at
		FROM providers WHERE company_id = $1 AND document = $2 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, document)
}

// Update actualiza datos de contacto y estado. El documento es inmutable.
func (r *ProviderRepo) Update(provider *entity.Provider) error {
	query := `
		UPDATE providers SET name = $2, address = $3, phone = $4, email = $5, status = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		provider.ID, provider.Name, provider.Address, provider.Phone,
		provider.Email, provider.Status, provider.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	return nil
}

// ListByCompany lista proveedores vivos por empresa con paginación y total.
func (r *ProviderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Provider, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM providers WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count providers: %w", err)
	}

	query := `
		SELECT id, company_id, document, name, address, phone, email, status, created_at, updated_at, deleted_at
		FROM providers WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Provider
	for rows.Next() {
		var p entity.Provider
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Document, &p.Name, &p.Address, &p.Phone,
			&p.Email, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan provider: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el proveedor como eliminado.
func (r *ProviderRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE providers SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete provider: %w", err)
	}
	return nil
}

func (r *ProviderRepo) scanOne(query string, args ...any) (*entity.Provider, error) {
	var p entity.Provider
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.CompanyID, &p.Document, &p.Name, &p.Address, &p.Phone,
		&p.Email, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return &p, nil
}
