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

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de persistencia para marcas.
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// Create persiste una marca.
func (r *BrandRepo) Create(brand *entity.Brand) error {
	query := `
		INSERT INTO brands (id, company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		brand.ID, brand.CompanyID, brand.Name, brand.CreatedAt, brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetByID obtiene una marca viva por ID.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at, deleted_at
		FROM brands WHERE id = $1 AND deleted_at IS NULL`
	var b entity.Brand
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.CompanyID, &b.Name, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// Update renombra una marca.
func (r *BrandRepo) Update(brand *entity.Brand) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE brands SET name = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`,
		brand.ID, brand.Name, brand.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update brand: %w", err)
	}
	return nil
}

// ListByCompany lista marcas vivas por empresa con paginación y total.
func (r *BrandRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Brand, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM brands WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count brands: %w", err)
	}

	query := `
		SELECT id, company_id, name, created_at, updated_at, deleted_at
		FROM brands WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Name, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// SoftDelete marca la marca como eliminada.
func (r *BrandRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE brands SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete brand: %w", err)
	}
	return nil
}
