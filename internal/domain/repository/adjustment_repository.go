package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// AdjustmentRepository define el puerto de persistencia para ajustes entre bodegas.
type AdjustmentRepository interface {
	Create(header *entity.WarehouseAdjustment) error
	CreateDetail(detail *entity.WarehouseAdjustmentDetail) error
	GetByID(id string) (*entity.WarehouseAdjustment, error)
	GetByCompanyAndCode(companyID, code string) (*entity.WarehouseAdjustment, error)
	GetForUpdate(id string) (*entity.WarehouseAdjustment, error)
	UpdateStatus(id, status string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.WarehouseAdjustment, int, error)
	ListDetails(adjustmentID string) ([]*entity.WarehouseAdjustmentDetail, error)
}
