package entity

import "time"

// Client representa un cliente referenciado por facturas.
type Client struct {
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

// IsActive indica si el cliente puede referenciarse en facturas.
func (c *Client) IsActive() bool {
	return c.Status == PartyStatusActive && c.DeletedAt == nil
}
