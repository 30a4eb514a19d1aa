package usecase

import (
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// MeasurementUnitUseCase expone el catálogo global de unidades de medida,
// sembrado por migración. Solo lectura desde la API.
type MeasurementUnitUseCase struct {
	unitRepo repository.MeasurementUnitRepository
}

// NewMeasurementUnitUseCase construye el caso de uso.
func NewMeasurementUnitUseCase(unitRepo repository.MeasurementUnitRepository) *MeasurementUnitUseCase {
	return &MeasurementUnitUseCase{unitRepo: unitRepo}
}

// List lista unidades de medida con paginación.
func (uc *MeasurementUnitUseCase) List(page dto.PageRequest) (*dto.MeasurementUnitListResponse, error) {
	page.Normalize()
	list, total, err := uc.unitRepo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.MeasurementUnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.MeasurementUnitResponse{
			ID:           u.ID,
			Name:         u.Name,
			Abbreviation: u.Abbreviation,
			CreatedAt:    u.CreatedAt,
		})
	}
	return &dto.MeasurementUnitListResponse{Data: items, Meta: dto.NewPageMeta(total, page.Page, page.Limit)}, nil
}
