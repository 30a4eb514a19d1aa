package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Category, int, error)
	// ListAllByCompany devuelve todas las categorías vivas de la empresa en una sola
	// consulta; el árbol se arma en memoria agrupando por ParentID.
	ListAllByCompany(companyID string) ([]*entity.Category, error)
	SoftDelete(id string) error
}
