package repository

import (
	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas excluyen registros soft-deleted salvo la variante IncludingDeleted.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByIDIncludingDeleted(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// AdjustStock aplica un delta atómico sobre el stock denormalizado del producto
	// (UPDATE ... SET stock = stock + delta). Debe invocarse dentro de la misma
	// transacción que el movimiento de inventario.
	AdjustStock(productID string, delta decimal.Decimal) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, int, error)
	SoftDelete(id string) error
}
