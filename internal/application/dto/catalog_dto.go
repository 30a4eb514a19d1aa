package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Product ──────────────────────────────────────────────────────────────────

// CreateProductRequest datos para crear un producto.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	MinStock      decimal.Decimal `json:"min_stock"`
	UnitMeasureID string          `json:"unit_measure_id"`
	CategoryID    string          `json:"category_id"`
	BrandID       string          `json:"brand_id"`
	TaxID         string          `json:"tax_id"`
}

// UpdateProductRequest datos parciales para actualizar un producto.
// Stock no es actualizable aquí: se maneja vía movimientos.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	MinStock      *decimal.Decimal `json:"min_stock"`
	UnitMeasureID *string          `json:"unit_measure_id"`
	CategoryID    *string          `json:"category_id"`
	BrandID       *string          `json:"brand_id"`
	TaxID         *string          `json:"tax_id"`
	Status        *string          `json:"status"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         decimal.Decimal `json:"stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	UnitMeasureID string          `json:"unit_measure_id"`
	CategoryID    string          `json:"category_id,omitempty"`
	BrandID       string          `json:"brand_id,omitempty"`
	TaxID         string          `json:"tax_id,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse envoltorio paginado de productos.
type ProductListResponse struct {
	Data []ProductResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

// ── Category ─────────────────────────────────────────────────────────────────

// CreateCategoryRequest datos para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id"`
}

// UpdateCategoryRequest datos parciales para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    string    `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse envoltorio paginado de categorías.
type CategoryListResponse struct {
	Data []CategoryResponse `json:"data"`
	Meta PageMeta           `json:"meta"`
}

// CategoryTreeNode nodo del árbol de categorías en respuestas.
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

// ── Brand ────────────────────────────────────────────────────────────────────

// CreateBrandRequest datos para crear una marca.
type CreateBrandRequest struct {
	Name string `json:"name"`
}

// BrandResponse representación de una marca.
type BrandResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BrandListResponse envoltorio paginado de marcas.
type BrandListResponse struct {
	Data []BrandResponse `json:"data"`
	Meta PageMeta        `json:"meta"`
}

// ── Tax ──────────────────────────────────────────────────────────────────────

// CreateTaxRequest datos para crear un impuesto.
type CreateTaxRequest struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"` // porcentaje: 0, 5, 19
}

// TaxResponse representación de un impuesto.
type TaxResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TaxListResponse envoltorio paginado de impuestos.
type TaxListResponse struct {
	Data []TaxResponse `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// ── MeasurementUnit ──────────────────────────────────────────────────────────

// MeasurementUnitResponse representación de una unidad de medida.
type MeasurementUnitResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	CreatedAt    time.Time `json:"created_at"`
}

// MeasurementUnitListResponse envoltorio paginado de unidades.
type MeasurementUnitListResponse struct {
	Data []MeasurementUnitResponse `json:"data"`
	Meta PageMeta                  `json:"meta"`
}
