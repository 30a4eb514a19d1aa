package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// ProviderRepository define el puerto de persistencia para Provider.
type ProviderRepository interface {
	Create(provider *entity.Provider) error
	GetByID(id string) (*entity.Provider, error)
	GetByCompanyAndDocument(companyID, document string) (*entity.Provider, error)
	Update(provider *entity.Provider) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Provider, int, error)
	SoftDelete(id string) error
}
