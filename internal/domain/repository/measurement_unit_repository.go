package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// MeasurementUnitRepository define el puerto de persistencia para MeasurementUnit.
// Las unidades son globales (sembradas por migración), no por empresa.
type MeasurementUnitRepository interface {
	Create(unit *entity.MeasurementUnit) error
	GetByID(id string) (*entity.MeasurementUnit, error)
	List(limit, offset int) ([]*entity.MeasurementUnit, int, error)
	SoftDelete(id string) error
}
