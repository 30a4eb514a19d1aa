package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// TaxUseCase administra impuestos. Los impuestos no se editan en caliente sobre
// facturas existentes: cada línea de factura congela la tasa vigente al facturar.
type TaxUseCase struct {
	taxRepo repository.TaxRepository
}

// NewTaxUseCase construye el caso de uso.
func NewTaxUseCase(taxRepo repository.TaxRepository) *TaxUseCase {
	return &TaxUseCase{taxRepo: taxRepo}
}

// Create crea un impuesto activo.
func (uc *TaxUseCase) Create(companyID string, in dto.CreateTaxRequest) (*dto.TaxResponse, error) {
	if in.Name == "" || in.Rate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tax := &entity.Tax{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Rate:      in.Rate,
		Status:    entity.TaxStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.taxRepo.Create(tax); err != nil {
		return nil, err
	}
	return toTaxResponse(tax), nil
}

// Activate marca el impuesto como activo.
func (uc *TaxUseCase) Activate(companyID, id string) error {
	return uc.setStatus(companyID, id, entity.TaxStatusActive)
}

// Deactivate marca el impuesto como inactivo; las facturas nuevas dejan de aplicarlo.
func (uc *TaxUseCase) Deactivate(companyID, id string) error {
	return uc.setStatus(companyID, id, entity.TaxStatusInactive)
}

func (uc *TaxUseCase) setStatus(companyID, id, status string) error {
	tax, err := uc.taxRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tax == nil {
		return domain.ErrNotFound
	}
	if tax.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if tax.Status == status {
		return domain.ErrInvalidStateTransition
	}
	return uc.taxRepo.UpdateStatus(id, status)
}

// GetByID obtiene un impuesto.
func (uc *TaxUseCase) GetByID(companyID, id string) (*dto.TaxResponse, error) {
	tax, err := uc.taxRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, nil
	}
	if tax.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toTaxResponse(tax), nil
}

// List lista impuestos de la empresa con paginación.
func (uc *TaxUseCase) List(companyID string, page dto.PageRequest) (*dto.TaxListResponse, error) {
	page.Normalize()
	list, total, err := uc.taxRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaxResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTaxResponse(t))
	}
	return &dto.TaxListResponse{Data: items, Meta: dto.NewPageMeta(total, page.Page, page.Limit)}, nil
}

// Delete marca el impuesto como eliminado.
func (uc *TaxUseCase) Delete(companyID, id string) error {
	tax, err := uc.taxRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tax == nil {
		return domain.ErrNotFound
	}
	if tax.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.taxRepo.SoftDelete(id)
}

func toTaxResponse(t *entity.Tax) *dto.TaxResponse {
	return &dto.TaxResponse{
		ID:        t.ID,
		CompanyID: t.CompanyID,
		Name:      t.Name,
		Rate:      t.Rate,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
