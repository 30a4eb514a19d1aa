package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

var _ repository.MeasurementUnitRepository = (*MeasurementUnitRepo)(nil)

// MeasurementUnitRepo implementación del puerto MeasurementUnitRepository sobre PostgreSQL.
type MeasurementUnitRepo struct {
	q Querier
}

// NewMeasurementUnitRepository construye el adaptador de persistencia para unidades de medida.
func NewMeasurementUnitRepository(q Querier) *MeasurementUnitRepo {
	return &MeasurementUnitRepo{q: q}
}

// Create persiste una unidad de medida (sembradas por migración).
func (r *MeasurementUnitRepo) Create(unit *entity.MeasurementUnit) error {
	query := `
		INSERT INTO measurement_units (id, name, abbreviation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.Abbreviation, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert measurement unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad viva por ID.
func (r *MeasurementUnitRepo) GetByID(id string) (*entity.MeasurementUnit, error) {
	query := `
		SELECT id, name, abbreviation, created_at, updated_at, deleted_at
		FROM measurement_units WHERE id = $1 AND deleted_at IS NULL`
	var u entity.MeasurementUnit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Name, &u.Abbreviation, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get measurement unit: %w", err)
	}
	return &u, nil
}

// List lista unidades vivas con paginación y total (catálogo global).
func (r *MeasurementUnitRepo) List(limit, offset int) ([]*entity.MeasurementUnit, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM measurement_units WHERE deleted_at IS NULL`,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count measurement units: %w", err)
	}

	query := `
		SELECT id, name, abbreviation, created_at, updated_at, deleted_at
		FROM measurement_units WHERE deleted_at IS NULL
		ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list measurement units: %w", err)
	}
	defer rows.Close()
	var list []*entity.MeasurementUnit
	for rows.Next() {
		var u entity.MeasurementUnit
		if err := rows.Scan(&u.ID, &u.Name, &u.Abbreviation, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan measurement unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}

// SoftDelete marca la unidad como eliminada.
func (r *MeasurementUnitRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE measurement_units SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete measurement unit: %w", err)
	}
	return nil
}
