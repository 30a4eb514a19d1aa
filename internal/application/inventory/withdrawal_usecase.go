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

// WithdrawalUseCase crea y anula retiros (salidas de mercancía). Cada línea indica
// su propia bodega, así un retiro puede descargar varias bodegas en una sola
// transacción; si cualquier línea queda sin stock, todo se revierte.
type WithdrawalUseCase struct {
	txRunner       TxRunner
	withdrawalRepo repository.WithdrawalRepository
	productRepo    repository.ProductRepository
	warehouseRepo  repository.WarehouseRepository
}

// NewWithdrawalUseCase construye el caso de uso.
func NewWithdrawalUseCase(
	txRunner TxRunner,
	withdrawalRepo repository.WithdrawalRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		txRunner:       txRunner,
		withdrawalRepo: withdrawalRepo,
		productRepo:    productRepo,
		warehouseRepo:  warehouseRepo,
	}
}

// Create valida referencias y persiste el retiro de forma atómica: cabecera,
// detalles y una fila WITHDRAWAL (delta negativo) en el libro por cada línea.
func (uc *WithdrawalUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateWithdrawalRequest) (*dto.WithdrawalResponse, error) {
	if in.Code == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, _ := uc.withdrawalRepo.GetByCompanyAndCode(companyID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	total := decimal.Zero
	for _, line := range in.Lines {
		if line.ProductID == "" || line.WarehouseID == "" {
			return nil, domain.ErrInvalidInput
		}
		if !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
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
		wh, _ := uc.warehouseRepo.GetByID(line.WarehouseID)
		if wh == nil || wh.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		if !wh.IsOpen() {
			return nil, domain.ErrConflict
		}
		total = total.Add(line.Quantity.Mul(line.UnitPrice))
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	header := &entity.WithdrawalHeader{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        in.Code,
		Date:        date,
		DocumentRef: in.DocumentRef,
		Reason:      in.Reason,
		Total:       total,
		Status:      entity.HeaderStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   userID,
	}

	var details []*entity.WithdrawalDetail
	err := uc.txRunner.Run(ctx, func(r *TxRepos) error {
		if err := r.Withdrawals.Create(header); err != nil {
			return err
		}
		for _, line := range in.Lines {
			detail := &entity.WithdrawalDetail{
				ID:           uuid.New().String(),
				WithdrawalID: header.ID,
				ProductID:    line.ProductID,
				WarehouseID:  line.WarehouseID,
				Quantity:     line.Quantity,
				UnitPrice:    line.UnitPrice,
			}
			if err := r.Withdrawals.CreateDetail(detail); err != nil {
				return err
			}
			details = append(details, detail)

			if _, err := applyMovement(r, movement{
				CompanyID:   companyID,
				ProductID:   line.ProductID,
				WarehouseID: line.WarehouseID,
				OpType:      entity.OpWithdrawal,
				OperationID: header.ID,
				Delta:       line.Quantity.Neg(),
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
	return toWithdrawalResponse(header, details), nil
}

// Void anula un retiro ACTIVE devolviendo el stock a cada bodega de origen con
// filas compensatorias (delta positivo). Anular dos veces retorna
// ErrInvalidStateTransition.
func (uc *WithdrawalUseCase) Void(ctx context.Context, companyID, userID, id string) error {
	return uc.txRunner.Run(ctx, func(r *TxRepos) error {
		header, err := r.Withdrawals.GetForUpdate(id)
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
		if err := r.Withdrawals.UpdateStatus(id, entity.HeaderStatusVoided); err != nil {
			return err
		}

		details, err := r.Withdrawals.ListDetails(id)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, d := range details {
			if _, err := applyMovement(r, movement{
				CompanyID:   companyID,
				ProductID:   d.ProductID,
				WarehouseID: d.WarehouseID,
				OpType:      entity.OpWithdrawal,
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

// GetByID obtiene un retiro con sus detalles.
func (uc *WithdrawalUseCase) GetByID(companyID, id string) (*dto.WithdrawalResponse, error) {
	header, err := uc.withdrawalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}
	if header.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.withdrawalRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	return toWithdrawalResponse(header, details), nil
}

// List lista retiros de la empresa con paginación.
func (uc *WithdrawalUseCase) List(companyID string, page dto.PageRequest) (*dto.WithdrawalListResponse, error) {
	page.Normalize()
	list, total, err := uc.withdrawalRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.WithdrawalResponse, 0, len(list))
	for _, h := range list {
		items = append(items, *toWithdrawalResponse(h, nil))
	}
	return &dto.WithdrawalListResponse{
		Data: items,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

func toWithdrawalResponse(h *entity.WithdrawalHeader, details []*entity.WithdrawalDetail) *dto.WithdrawalResponse {
	resp := &dto.WithdrawalResponse{
		ID:          h.ID,
		CompanyID:   h.CompanyID,
		Code:        h.Code,
		Date:        h.Date,
		DocumentRef: h.DocumentRef,
		Reason:      h.Reason,
		Total:       h.Total,
		Status:      h.Status,
		CreatedAt:   h.CreatedAt,
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.WithdrawalDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			WarehouseID: d.WarehouseID,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
		})
	}
	return resp
}
