package dto

import "time"

// CreatePartyRequest datos comunes para crear proveedor o cliente.
type CreatePartyRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// UpdatePartyRequest datos parciales para actualizar proveedor o cliente.
type UpdatePartyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Status  *string `json:"status"`
}

// PartyResponse representación de proveedor o cliente.
type PartyResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Document  string    `json:"document"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartyListResponse envoltorio paginado de proveedores o clientes.
type PartyListResponse struct {
	Data []PartyResponse `json:"data"`
	Meta PageMeta        `json:"meta"`
}

// ── Company ──────────────────────────────────────────────────────────────────

// CreateCompanyRequest datos para crear una empresa (tenant).
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// CompanyResponse representación de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyListResponse envoltorio paginado de empresas.
type CompanyListResponse struct {
	Data []CompanyResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}
