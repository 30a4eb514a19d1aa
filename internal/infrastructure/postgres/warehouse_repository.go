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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, company_id, code, name, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.CompanyID, warehouse.Code, warehouse.Name,
		warehouse.Address, warehouse.Status, warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega viva por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, company_id, code, name, address, status, created_at, updated_at, deleted_at
		FROM warehouses WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id)
}

// GetByCompanyAndCode obtiene una bodega viva por empresa y código.
func (r *WarehouseRepo) GetByCompanyAndCode(companyID, code string) (*entity.Warehouse, error) {
	query := `
		SELECT id, company_id, code, name, address, status, created_at, updated_at, deleted_at
		FROM warehouses WHERE company_id = $1 AND code = $2 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, code)
}

// Update actualiza nombre, dirección y estado. El código es inmutable.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE warehouses SET name = $2, address = $3, status = $4, updated_at = $5 WHERE id = $1 AND deleted_at IS NULL`,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.Status, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// ListByCompany lista bodegas vivas por empresa con paginación y total.
func (r *WarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM warehouses WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count warehouses: %w", err)
	}

	query := `
		SELECT id, company_id, code, name, address, status, created_at, updated_at, deleted_at
		FROM warehouses WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.Code, &w.Name, &w.Address, &w.Status,
			&w.CreatedAt, &w.UpdatedAt, &w.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, total, rows.Err()
}

// SoftDelete marca la bodega como eliminada.
func (r *WarehouseRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE warehouses SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) scanOne(query string, args ...any) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&w.ID, &w.CompanyID, &w.Code, &w.Name, &w.Address, &w.Status,
		&w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}
