package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// BrandUseCase administra marcas de productos.
type BrandUseCase struct {
	brandRepo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(brandRepo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{brandRepo: brandRepo}
}

// Create crea una marca.
func (uc *BrandUseCase) Create(companyID string, in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	brand := &entity.Brand{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// Update renombra una marca.
func (uc *BrandUseCase) Update(companyID, id string, in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	if brand.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	brand.Name = in.Name
	brand.UpdatedAt = time.Now()
	if err := uc.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// GetByID obtiene una marca.
func (uc *BrandUseCase) GetByID(companyID, id string) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, nil
	}
	if brand.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toBrandResponse(brand), nil
}

// List lista marcas de la empresa con paginación.
func (uc *BrandUseCase) List(companyID string, page dto.PageRequest) (*dto.BrandListResponse, error) {
	page.Normalize()
	list, total, err := uc.brandRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBrandResponse(b))
	}
	return &dto.BrandListResponse{Data: items, Meta: dto.NewPageMeta(total, page.Page, page.Limit)}, nil
}

// Delete marca la marca como eliminada.
func (uc *BrandUseCase) Delete(companyID, id string) error {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return domain.ErrNotFound
	}
	if brand.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.brandRepo.SoftDelete(id)
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
