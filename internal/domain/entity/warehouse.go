package entity

import "time"

// Estados válidos para Warehouse.
const (
	WarehouseStatusOpen   = "open"
	WarehouseStatusClosed = "closed"
)

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Address   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsOpen indica si la bodega acepta movimientos de inventario.
func (w *Warehouse) IsOpen() bool {
	return w.Status == WarehouseStatusOpen && w.DeletedAt == nil
}
