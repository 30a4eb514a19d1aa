package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// WithdrawalRepository define el puerto de persistencia para retiros (cabecera + detalles).
type WithdrawalRepository interface {
	Create(header *entity.WithdrawalHeader) error
	CreateDetail(detail *entity.WithdrawalDetail) error
	GetByID(id string) (*entity.WithdrawalHeader, error)
	GetByCompanyAndCode(companyID, code string) (*entity.WithdrawalHeader, error)
	GetForUpdate(id string) (*entity.WithdrawalHeader, error)
	UpdateStatus(id, status string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.WithdrawalHeader, int, error)
	ListDetails(withdrawalID string) ([]*entity.WithdrawalDetail, error)
}
