package entity

import "time"

// Estados válidos para Provider y Client.
const (
	PartyStatusActive   = "active"
	PartyStatusInactive = "inactive"
)

// Provider representa un proveedor referenciado por recepciones y órdenes de compra.
type Provider struct {
	ID        string
	CompanyID string
	Document  string // NIT o cédula
	Name      string
	Address   string
	Phone     string
	Email     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsActive indica si el proveedor puede referenciarse en transacciones.
func (p *Provider) IsActive() bool {
	return p.Status == PartyStatusActive && p.DeletedAt == nil
}
