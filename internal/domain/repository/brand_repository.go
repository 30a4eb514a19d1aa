package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// BrandRepository define el puerto de persistencia para Brand.
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	Update(brand *entity.Brand) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Brand, int, error)
	SoftDelete(id string) error
}
