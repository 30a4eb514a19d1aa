package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra.
const (
	POStatusPending   = "PENDING"
	POStatusApproved  = "APPROVED"
	POStatusRejected  = "REJECTED"
	POStatusCancelled = "CANCELLED"
	POStatusCompleted = "COMPLETED"
)

// poTransitions define el grafo de transiciones permitidas.
// COMPLETED se alcanza desde APPROVED cuando todas las líneas quedan recibidas.
var poTransitions = map[string][]string{
	POStatusPending:  {POStatusApproved, POStatusRejected, POStatusCancelled},
	POStatusApproved: {POStatusCancelled, POStatusCompleted},
}

// CanTransitionPO indica si el cambio de estado from -> to está permitido.
func CanTransitionPO(from, to string) bool {
	for _, next := range poTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PurchaseOrder representa una solicitud de compra previa a la recepción.
type PurchaseOrder struct {
	ID         string
	CompanyID  string
	Code       string
	Date       time.Time
	ProviderID string
	Total      decimal.Decimal
	Status     string
	ApprovedBy string // usuario que aprobó/rechazó/canceló
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  string
	DeletedAt  *time.Time
}

// PurchaseOrderDetail línea de la orden; ReceivedQuantity acumula las recepciones
// asociadas hasta igualar Quantity.
type PurchaseOrderDetail struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	Quantity         decimal.Decimal
	ReceivedQuantity decimal.Decimal
	UnitPrice        decimal.Decimal
}

// IsFullyReceived indica si la línea ya recibió toda la cantidad pedida.
func (d *PurchaseOrderDetail) IsFullyReceived() bool {
	return d.ReceivedQuantity.GreaterThanOrEqual(d.Quantity)
}
