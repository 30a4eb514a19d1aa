package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// PurchaseOrderUseCase gestiona el ciclo de vida de la orden de compra:
// PENDING -> APPROVED/REJECTED, {PENDING, APPROVED} -> CANCELLED y
// APPROVED -> COMPLETED cuando todas las líneas quedan recibidas vía recepciones.
type PurchaseOrderUseCase struct {
	poRepo       repository.PurchaseOrderRepository
	providerRepo repository.ProviderRepository
	productRepo  repository.ProductRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	poRepo repository.PurchaseOrderRepository,
	providerRepo repository.ProviderRepository,
	productRepo repository.ProductRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{poRepo: poRepo, providerRepo: providerRepo, productRepo: productRepo}
}

// Create crea una orden de compra en estado PENDING.
func (uc *PurchaseOrderUseCase) Create(companyID, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.Code == "" || in.ProviderID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, _ := uc.poRepo.GetByCompanyAndCode(companyID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	provider, err := uc.providerRepo.GetByID(in.ProviderID)
	if err != nil || provider == nil {
		return nil, domain.ErrNotFound
	}
	if provider.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !provider.IsActive() {
		return nil, domain.ErrConflict
	}

	total := decimal.Zero
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		total = total.Add(line.Quantity.Mul(line.UnitPrice))
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Code:       in.Code,
		Date:       date,
		ProviderID: in.ProviderID,
		Total:      total,
		Status:     entity.POStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  userID,
	}
	if err := uc.poRepo.Create(order); err != nil {
		return nil, err
	}

	var details []*entity.PurchaseOrderDetail
	for _, line := range in.Lines {
		detail := &entity.PurchaseOrderDetail{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
		}
		if err := uc.poRepo.CreateDetail(detail); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return toPurchaseOrderResponse(order, details), nil
}

// Approve transiciona PENDING -> APPROVED registrando el usuario aprobador.
func (uc *PurchaseOrderUseCase) Approve(companyID, actorID, id string) error {
	return uc.transition(companyID, actorID, id, entity.POStatusApproved)
}

// Reject transiciona PENDING -> REJECTED.
func (uc *PurchaseOrderUseCase) Reject(companyID, actorID, id string) error {
	return uc.transition(companyID, actorID, id, entity.POStatusRejected)
}

// Cancel transiciona PENDING o APPROVED -> CANCELLED.
func (uc *PurchaseOrderUseCase) Cancel(companyID, actorID, id string) error {
	return uc.transition(companyID, actorID, id, entity.POStatusCancelled)
}

func (uc *PurchaseOrderUseCase) transition(companyID, actorID, id, to string) error {
	order, err := uc.poRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if !entity.CanTransitionPO(order.Status, to) {
		return domain.ErrInvalidStateTransition
	}
	return uc.poRepo.UpdateStatus(id, to, actorID)
}

// GetByID obtiene una orden con sus detalles.
func (uc *PurchaseOrderUseCase) GetByID(companyID, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.poRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order, details), nil
}

// List lista órdenes de compra de la empresa con paginación.
func (uc *PurchaseOrderUseCase) List(companyID string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.Normalize()
	list, total, err := uc.poRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toPurchaseOrderResponse(o, nil))
	}
	return &dto.PurchaseOrderListResponse{
		Data: items,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// AccumulateReceived acumula cantidades recibidas sobre la orden, usando los
// repositorios del caller (misma transacción que la recepción). Bloquea la
// cabecera, exige estado APPROVED, rechaza con ErrConflict recibir de más y marca
// COMPLETED cuando todas las líneas quedan llenas.
func AccumulateReceived(repo repository.PurchaseOrderRepository, orderID string, received map[string]decimal.Decimal, now time.Time) error {
	order, err := repo.GetForUpdate(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.POStatusApproved {
		return domain.ErrInvalidStateTransition
	}

	details, err := repo.ListDetails(orderID)
	if err != nil {
		return err
	}

	pending := make(map[string]decimal.Decimal, len(received))
	for productID, qty := range received {
		pending[productID] = qty
	}
	allFull := true
	for _, d := range details {
		qty, ok := pending[d.ProductID]
		if ok {
			newReceived := d.ReceivedQuantity.Add(qty)
			if newReceived.GreaterThan(d.Quantity) {
				return domain.ErrConflict
			}
			d.ReceivedQuantity = newReceived
			if err := repo.UpdateDetailReceived(d.ID, newReceived); err != nil {
				return err
			}
			delete(pending, d.ProductID)
		}
		if !d.IsFullyReceived() {
			allFull = false
		}
	}
	// Cantidades recibidas de productos que no están en la orden
	if len(pending) > 0 {
		return domain.ErrConflict
	}

	if allFull {
		if !entity.CanTransitionPO(order.Status, entity.POStatusCompleted) {
			return domain.ErrInvalidStateTransition
		}
		return repo.UpdateStatus(orderID, entity.POStatusCompleted, order.ApprovedBy)
	}
	return nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder, details []*entity.PurchaseOrderDetail) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:         o.ID,
		CompanyID:  o.CompanyID,
		Code:       o.Code,
		Date:       o.Date,
		ProviderID: o.ProviderID,
		Total:      o.Total,
		Status:     o.Status,
		ApprovedBy: o.ApprovedBy,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.PurchaseOrderDetailResponse{
			ID:               d.ID,
			ProductID:        d.ProductID,
			Quantity:         d.Quantity,
			ReceivedQuantity: d.ReceivedQuantity,
			UnitPrice:        d.UnitPrice,
		})
	}
	return resp
}
