package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// TaxRepository define el puerto de persistencia para Tax.
type TaxRepository interface {
	Create(tax *entity.Tax) error
	GetByID(id string) (*entity.Tax, error)
	Update(tax *entity.Tax) error
	UpdateStatus(id, status string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Tax, int, error)
	SoftDelete(id string) error
}
