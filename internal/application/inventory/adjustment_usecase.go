package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// AdjustmentUseCase mueve stock entre bodegas. Cada línea genera dos filas en el
// libro con la misma OperationID: negativa en la bodega origen y positiva en la
// destino. La bodega origen debe tener la cantidad disponible.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.AdjustmentRepository
	productRepo    repository.ProductRepository
	warehouseRepo  repository.WarehouseRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	adjustmentRepo repository.AdjustmentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		warehouseRepo:  warehouseRepo,
	}
}

// Create valida y persiste el ajuste de forma atómica. El descuento en origen se
// aplica antes que el abono en destino para que un faltante revierta todo.
func (uc *AdjustmentUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.Code == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}

	existing, _ := uc.adjustmentRepo.GetByCompanyAndCode(companyID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	fromWh, _ := uc.warehouseRepo.GetByID(in.FromWarehouseID)
	toWh, _ := uc.warehouseRepo.GetByID(in.ToWarehouseID)
	if fromWh == nil || toWh == nil || fromWh.CompanyID != companyID || toWh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !fromWh.IsOpen() || !toWh.IsOpen() {
		return nil, domain.ErrConflict
	}

	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
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
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	header := &entity.WarehouseAdjustment{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Code:            in.Code,
		Date:            date,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Reason:          in.Reason,
		Status:          entity.HeaderStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       userID,
	}

	var details []*entity.WarehouseAdjustmentDetail
	err := uc.txRunner.Run(ctx, func(r *TxRepos) error {
		if err := r.Adjustments.Create(header); err != nil {
			return err
		}
		for _, line := range in.Lines {
			detail := &entity.WarehouseAdjustmentDetail{
				ID:           uuid.New().String(),
				AdjustmentID: header.ID,
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
			}
			if err := r.Adjustments.CreateDetail(detail); err != nil {
				return err
			}
			details = append(details, detail)

			// Descuento en origen (valida stock suficiente)
			if _, err := applyMovement(r, movement{
				CompanyID:   companyID,
				ProductID:   line.ProductID,
				WarehouseID: in.FromWarehouseID,
				OpType:      entity.OpAdjustment,
				OperationID: header.ID,
				Delta:       line.Quantity.Neg(),
				UserID:      userID,
				Now:         now,
			}); err != nil {
				return err
			}
			// Abono en destino
			if _, err := applyMovement(r, movement{
				CompanyID:   companyID,
				ProductID:   line.ProductID,
				WarehouseID: in.ToWarehouseID,
				OpType:      entity.OpAdjustment,
				OperationID: header.ID,
				Delta:       line.Quantity,
				UserID:      userID,
				Now:         now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(header, details), nil
}

// Void anula un ajuste ACTIVE revirtiendo el movimiento: descuenta del destino y
// devuelve al origen. Si el destino ya consumió el stock, falla con
// ErrInsufficientStock y no deja efectos parciales.
func (uc *AdjustmentUseCase) Void(ctx context.Context, companyID, userID, id string) error {
	return uc.txRunner.Run(ctx, func(r *TxRepos) error {
		header, err := r.Adjustments.GetForUpdate(id)
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
		if err := r.Adjustments.UpdateStatus(id, entity.HeaderStatusVoided); err != nil {
			return err
		}

		details, err := r.Adjustments.ListDetails(id)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, d := range details {
			if _, err := applyMovement(r, movement{
				CompanyID:   companyID,
				ProductID:   d.ProductID,
				WarehouseID: header.ToWarehouseID,
				OpType:      entity.OpAdjustment,
				OperationID: header.ID,
				Delta:       d.Quantity.Neg(),
				UserID:      userID,
				Now:         now,
			}); err != nil {
				return err
			}
			if _, err := applyMovement(r, movement{
				CompanyID:   companyID,
				ProductID:   d.ProductID,
				WarehouseID: header.FromWarehouseID,
				OpType:      entity.OpAdjustment,
				OperationID: header.ID,
				Delta:       d.Quantity,
				UserID:      userID,
				Now:         now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID obtiene un ajuste con sus detalles.
func (uc *AdjustmentUseCase) GetByID(companyID, id string) (*dto.AdjustmentResponse, error) {
	header, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}
	if header.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.adjustmentRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(header, details), nil
}

// List lista ajustes de la empresa con paginación.
func (uc *AdjustmentUseCase) List(companyID string, page dto.PageRequest) (*dto.AdjustmentListResponse, error) {
	page.Normalize()
	list, total, err := uc.adjustmentRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, h := range list {
		items = append(items, *toAdjustmentResponse(h, nil))
	}
	return &dto.AdjustmentListResponse{
		Data: items,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

func toAdjustmentResponse(h *entity.WarehouseAdjustment, details []*entity.WarehouseAdjustmentDetail) *dto.AdjustmentResponse {
	resp := &dto.AdjustmentResponse{
		ID:              h.ID,
		CompanyID:       h.CompanyID,
		Code:            h.Code,
		Date:            h.Date,
		FromWarehouseID: h.FromWarehouseID,
		ToWarehouseID:   h.ToWarehouseID,
		Reason:          h.Reason,
		Status:          h.Status,
		CreatedAt:       h.CreatedAt,
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.AdjustmentDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
		})
	}
	return resp
}
