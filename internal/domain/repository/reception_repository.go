package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// ReceptionRepository define el puerto de persistencia para recepciones (cabecera + detalles).
type ReceptionRepository interface {
	Create(header *entity.ReceptionHeader) error
	CreateDetail(detail *entity.ReceptionDetail) error
	GetByID(id string) (*entity.ReceptionHeader, error)
	GetByCompanyAndCode(companyID, code string) (*entity.ReceptionHeader, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) para anulación.
	GetForUpdate(id string) (*entity.ReceptionHeader, error)
	UpdateStatus(id, status string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.ReceptionHeader, int, error)
	ListDetails(receptionID string) ([]*entity.ReceptionDetail, error)
}
