package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// ProviderUseCase administra proveedores. El documento (NIT o cédula) es único
// por empresa.
type ProviderUseCase struct {
	providerRepo repository.ProviderRepository
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(providerRepo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{providerRepo: providerRepo}
}

// Create crea un proveedor activo.
func (uc *ProviderUseCase) Create(companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if in.Document == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.providerRepo.GetByCompanyAndDocument(companyID, in.Document)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	provider := &entity.Provider{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Document:  in.Document,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    entity.PartyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.providerRepo.Create(provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// Update aplica cambios parciales. El documento es inmutable.
func (uc *ProviderUseCase) Update(companyID, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	provider, err := uc.providerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	if provider.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		provider.Name = *in.Name
	}
	if in.Address != nil {
		provider.Address = *in.Address
	}
	if in.Phone != nil {
		provider.Phone = *in.Phone
	}
	if in.Email != nil {
		provider.Email = *in.Email
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.PartyStatusActive, entity.PartyStatusInactive:
			provider.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	provider.UpdatedAt = time.Now()

	if err := uc.providerRepo.Update(provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// GetByID obtiene un proveedor.
func (uc *ProviderUseCase) GetByID(companyID, id string) (*dto.PartyResponse, error) {
	provider, err := uc.providerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	if provider.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProviderResponse(provider), nil
}

// List lista proveedores de la empresa con paginación.
func (uc *ProviderUseCase) List(companyID string, page dto.PageRequest) (*dto.PartyListResponse, error) {
	page.Normalize()
	list, total, err := uc.providerRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProviderResponse(p))
	}
	return &dto.PartyListResponse{Data: items, Meta: dto.NewPageMeta(total, page.Page, page.Limit)}, nil
}

// Delete marca el proveedor como eliminado. Las recepciones y órdenes que lo
// referencian permanecen intactas.
func (uc *ProviderUseCase) Delete(companyID, id string) error {
	provider, err := uc.providerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if provider == nil {
		return domain.ErrNotFound
	}
	if provider.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.providerRepo.SoftDelete(id)
}

func toProviderResponse(p *entity.Provider) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Document:  p.Document,
		Name:      p.Name,
		Address:   p.Address,
		Phone:     p.Phone,
		Email:     p.Email,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
