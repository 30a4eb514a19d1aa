package entity

import "time"

// MeasurementUnit representa una unidad de medida (unidad, kilo, litro, caja...).
type MeasurementUnit struct {
	ID           string
	Name         string
	Abbreviation string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
