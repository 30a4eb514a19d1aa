package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas (cabecera + detalles).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateDetail(detail *entity.InvoiceDetail) error
	GetByID(id string) (*entity.Invoice, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, int, error)
	ListDetails(invoiceID string) ([]*entity.InvoiceDetail, error)
	SoftDelete(id string) error
}
