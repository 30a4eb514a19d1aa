package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Recepciones ──────────────────────────────────────────────────────────────

// ReceptionLineRequest línea de una recepción a crear.
type ReceptionLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateReceptionRequest datos para crear una recepción (entrada de mercancía).
type CreateReceptionRequest struct {
	Code            string                 `json:"code"`
	Date            *time.Time             `json:"date"`
	ProviderID      string                 `json:"provider_id"`
	WarehouseID     string                 `json:"warehouse_id"`
	PurchaseOrderID string                 `json:"purchase_order_id"`
	DocumentRef     string                 `json:"document_ref"`
	Lines           []ReceptionLineRequest `json:"lines"`
}

// ReceptionDetailResponse línea de recepción en respuestas.
type ReceptionDetailResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ReceptionResponse representación de una recepción.
type ReceptionResponse struct {
	ID              string                    `json:"id"`
	CompanyID       string                    `json:"company_id"`
	Code            string                    `json:"code"`
	Date            time.Time                 `json:"date"`
	ProviderID      string                    `json:"provider_id"`
	WarehouseID     string                    `json:"warehouse_id"`
	PurchaseOrderID string                    `json:"purchase_order_id,omitempty"`
	DocumentRef     string                    `json:"document_ref,omitempty"`
	Total           decimal.Decimal           `json:"total"`
	Status          string                    `json:"status"`
	Details         []ReceptionDetailResponse `json:"details,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
}

// ReceptionListResponse envoltorio paginado de recepciones.
type ReceptionListResponse struct {
	Data []ReceptionResponse `json:"data"`
	Meta PageMeta            `json:"meta"`
}

// ── Retiros ──────────────────────────────────────────────────────────────────

// WithdrawalLineRequest línea de un retiro; cada línea indica su bodega.
type WithdrawalLineRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateWithdrawalRequest datos para crear un retiro (salida de mercancía).
type CreateWithdrawalRequest struct {
	Code        string                  `json:"code"`
	Date        *time.Time              `json:"date"`
	DocumentRef string                  `json:"document_ref"`
	Reason      string                  `json:"reason"`
	Lines       []WithdrawalLineRequest `json:"lines"`
}

// WithdrawalDetailResponse línea de retiro en respuestas.
type WithdrawalDetailResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// WithdrawalResponse representación de un retiro.
type WithdrawalResponse struct {
	ID          string                     `json:"id"`
	CompanyID   string                     `json:"company_id"`
	Code        string                     `json:"code"`
	Date        time.Time                  `json:"date"`
	DocumentRef string                     `json:"document_ref,omitempty"`
	Reason      string                     `json:"reason,omitempty"`
	Total       decimal.Decimal            `json:"total"`
	Status      string                     `json:"status"`
	Details     []WithdrawalDetailResponse `json:"details,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// WithdrawalListResponse envoltorio paginado de retiros.
type WithdrawalListResponse struct {
	Data []WithdrawalResponse `json:"data"`
	Meta PageMeta             `json:"meta"`
}

// ── Ajustes entre bodegas ────────────────────────────────────────────────────

// AdjustmentLineRequest línea de un ajuste (producto y cantidad a mover).
type AdjustmentLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateAdjustmentRequest datos para mover stock de una bodega a otra.
type CreateAdjustmentRequest struct {
	Code            string                  `json:"code"`
	Date            *time.Time              `json:"date"`
	FromWarehouseID string                  `json:"from_warehouse_id"`
	ToWarehouseID   string                  `json:"to_warehouse_id"`
	Reason          string                  `json:"reason"`
	Lines           []AdjustmentLineRequest `json:"lines"`
}

// AdjustmentDetailResponse línea de ajuste en respuestas.
type AdjustmentDetailResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// AdjustmentResponse representación de un ajuste.
type AdjustmentResponse struct {
	ID              string                     `json:"id"`
	CompanyID       string                     `json:"company_id"`
	Code            string                     `json:"code"`
	Date            time.Time                  `json:"date"`
	FromWarehouseID string                     `json:"from_warehouse_id"`
	ToWarehouseID   string                     `json:"to_warehouse_id"`
	Reason          string                     `json:"reason,omitempty"`
	Status          string                     `json:"status"`
	Details         []AdjustmentDetailResponse `json:"details,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
}

// AdjustmentListResponse envoltorio paginado de ajustes.
type AdjustmentListResponse struct {
	Data []AdjustmentResponse `json:"data"`
	Meta PageMeta             `json:"meta"`
}

// ── Historial y reconciliación ───────────────────────────────────────────────

// ProductHistoryResponse fila del libro de movimientos en respuestas.
type ProductHistoryResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	OperationType string          `json:"operation_type"`
	OperationID   string          `json:"operation_id"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductHistoryListResponse envoltorio paginado del historial.
type ProductHistoryListResponse struct {
	Data []ProductHistoryResponse `json:"data"`
	Meta PageMeta                 `json:"meta"`
}

// ReconcileResponse resultado de reconciliar (producto, bodega): stock calculado
// desde el libro vs. el materializado, y si hubo reparación.
type ReconcileResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Computed    decimal.Decimal `json:"computed"`
	Stored      decimal.Decimal `json:"stored"`
	Drift       decimal.Decimal `json:"drift"`
	Repaired    bool            `json:"repaired"`
}
