package repository

import (
	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateDetail(detail *entity.PurchaseOrderDetail) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetByCompanyAndCode(companyID, code string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera para transiciones de estado y acumulación
	// de cantidades recibidas.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id, status, actorID string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.PurchaseOrder, int, error)
	ListDetails(orderID string) ([]*entity.PurchaseOrderDetail, error)
	UpdateDetailReceived(detailID string, received decimal.Decimal) error
}
