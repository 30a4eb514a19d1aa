package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLineRequest línea de una orden de compra a crear.
type PurchaseOrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest datos para crear una orden de compra (estado PENDING).
type CreatePurchaseOrderRequest struct {
	Code       string                     `json:"code"`
	Date       *time.Time                 `json:"date"`
	ProviderID string                     `json:"provider_id"`
	Lines      []PurchaseOrderLineRequest `json:"lines"`
}

// PurchaseOrderDetailResponse línea de orden con cantidad recibida acumulada.
type PurchaseOrderDetailResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderResponse representación de una orden de compra.
type PurchaseOrderResponse struct {
	ID         string                        `json:"id"`
	CompanyID  string                        `json:"company_id"`
	Code       string                        `json:"code"`
	Date       time.Time                     `json:"date"`
	ProviderID string                        `json:"provider_id"`
	Total      decimal.Decimal               `json:"total"`
	Status     string                        `json:"status"`
	ApprovedBy string                        `json:"approved_by,omitempty"`
	Details    []PurchaseOrderDetailResponse `json:"details,omitempty"`
	CreatedAt  time.Time                     `json:"created_at"`
	UpdatedAt  time.Time                     `json:"updated_at"`
}

// PurchaseOrderListResponse envoltorio paginado de órdenes de compra.
type PurchaseOrderListResponse struct {
	Data []PurchaseOrderResponse `json:"data"`
	Meta PageMeta                `json:"meta"`
}
