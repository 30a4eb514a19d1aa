package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/application/purchase"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// ReceptionUseCase crea y anula recepciones (entradas de mercancía). La creación
// persiste cabecera + detalles + movimientos del libro en una sola transacción; si
// la recepción referencia una orden de compra, acumula las cantidades recibidas en
// la misma tx.
type ReceptionUseCase struct {
	txRunner      TxRunner
	receptionRepo repository.ReceptionRepository
	productRepo   repository.ProductRepository
	providerRepo  repository.ProviderRepository
	warehouseRepo repository.WarehouseRepository
	poRepo        repository.PurchaseOrderRepository
}

// NewReceptionUseCase construye el caso de uso.
func NewReceptionUseCase(
	txRunner TxRunner,
	receptionRepo repository.ReceptionRepository,
	productRepo repository.ProductRepository,
	providerRepo repository.ProviderRepository,
	warehouseRepo repository.WarehouseRepository,
	poRepo repository.PurchaseOrderRepository,
) *ReceptionUseCase {
	return &ReceptionUseCase{
		txRunner:      txRunner,
		receptionRepo: receptionRepo,
		productRepo:   productRepo,
		providerRepo:  providerRepo,
		warehouseRepo: warehouseRepo,
		poRepo:        poRepo,
	}
}

// Create valida referencias y persiste la recepción de forma atómica: cabecera,
// detalles y una fila ENTRY en el libro por cada línea.
func (uc *ReceptionUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateReceptionRequest) (*dto.ReceptionResponse, error) {
	if in.Code == "" || in.ProviderID == "" || in.WarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, _ := uc.receptionRepo.GetByCompanyAndCode(companyID, in.Code)
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

	wh, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !wh.IsOpen() {
		return nil, domain.ErrConflict
	}

	// Validar productos y montos por línea (solo lectura, fuera de la tx)
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
		if !product.IsActive() {
			return nil, domain.ErrConflict
		}
		total = total.Add(line.Quantity.Mul(line.UnitPrice))
	}

	// Orden de compra opcional: debe ser de la empresa, del mismo proveedor y estar aprobada
	if in.PurchaseOrderID != "" {
		order, err := uc.poRepo.GetByID(in.PurchaseOrderID)
		if err != nil || order == nil {
			return nil, domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if order.ProviderID != in.ProviderID {
			return nil, domain.ErrConflict
		}
		if order.Status != entity.POStatusApproved {
			return nil, domain.ErrInvalidStateTransition
		}
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	header := &entity.ReceptionHeader{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Code:            in.Code,
		Date:            date,
		ProviderID:      in.ProviderID,
		WarehouseID:     in.WarehouseID,
		PurchaseOrderID: in.PurchaseOrderID,
		DocumentRef:     in.DocumentRef,
		Total:           total,
		Status:          entity.HeaderStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       userID,
	}

	var details []*entity.ReceptionDetail
	err = uc.txRunner.Run(ctx, func(r *TxRepos) error {
		if err := r.Receptions.Create(header); err != nil {
			return err
		}
		received := make(map[string]decimal.Decimal)
		for _, line := range in.Lines {
			detail := &entity.ReceptionDetail{
				ID:          uuid.New().String(),
				ReceptionID: header.ID,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
			}
			if err := r.Receptions.CreateDetail(detail); err != nil {
				return err
			}
			details = append(details, detail)

			if _, err := applyMovement(r, movement{
				CompanyID:   companyID,
				ProductID:   line.ProductID,
				WarehouseID: in.WarehouseID,
				OpType:      entity.OpEntry,
				OperationID: header.ID,
				Delta:       line.Quantity,
				UserID:      userID,
				Now:         now,
			}); err != nil {
				return err
			}
			received[line.ProductID] = received[line.ProductID].Add(line.Quantity)
		}

		// Acumular cantidades recibidas en la orden de compra (misma tx)
		if in.PurchaseOrderID != "" {
			return purchase.AccumulateReceived(r.PurchaseOrders, in.PurchaseOrderID, received, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReceptionResponse(header, details), nil
}

// Void anula una recepción ACTIVE: marca la cabecera VOIDED e inserta una fila
// compensatoria (delta negativo) por cada línea. Anular dos veces retorna
// ErrInvalidStateTransition. Si el stock recibido ya fue consumido, la anulación
// falla con ErrInsufficientStock y no deja efectos parciales.
func (uc *ReceptionUseCase) Void(ctx context.Context, companyID, userID, id string) error {
	return uc.txRunner.Run(ctx, func(r *TxRepos) error {
		header, err := r.Receptions.GetForUpdate(id)
		if err != nil {
			return err
		}
		if header == nil {
			return domain.ErrNotFound
		}
		if header.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if header.Status != entity.HeaderStatusActive {
			return domain.ErrInvalidStateTransition
		}
		if err := r.Receptions.UpdateStatus(id, entity.HeaderStatusVoided); err != nil {
			return err
		}

		details, err := r.Receptions.ListDetails(id)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, d := range details {
			if _, err := applyMovement(r, movement{
				CompanyID:   companyID,
				ProductID:   d.ProductID,
				WarehouseID: header.WarehouseID,
				OpType:      entity.OpEntry,
				OperationID: header.ID,
				Delta:       d.Quantity.Neg(),
				UserID:      userID,
				Now:         now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID obtiene una recepción con sus detalles.
func (uc *ReceptionUseCase) GetByID(companyID, id string) (*dto.ReceptionResponse, error) {
	header, err := uc.receptionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}
	if header.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.receptionRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	return toReceptionResponse(header, details), nil
}

// List lista recepciones de la empresa con paginación.
func (uc *ReceptionUseCase) List(companyID string, page dto.PageRequest) (*dto.ReceptionListResponse, error) {
	page.Normalize()
	list, total, err := uc.receptionRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceptionResponse, 0, len(list))
	for _, h := range list {
		items = append(items, *toReceptionResponse(h, nil))
	}
	return &dto.ReceptionListResponse{
		Data: items,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

func toReceptionResponse(h *entity.ReceptionHeader, details []*entity.ReceptionDetail) *dto.ReceptionResponse {
	resp := &dto.ReceptionResponse{
		ID:              h.ID,
		CompanyID:       h.CompanyID,
		Code:            h.Code,
		Date:            h.Date,
		ProviderID:      h.ProviderID,
		WarehouseID:     h.WarehouseID,
		PurchaseOrderID: h.PurchaseOrderID,
		DocumentRef:     h.DocumentRef,
		Total:           h.Total,
		Status:          h.Status,
		CreatedAt:       h.CreatedAt,
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.ReceptionDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		})
	}
	return resp
}
