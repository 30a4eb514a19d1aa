package billing

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

// CashRegisterUseCase gestiona cajas y sus movimientos. El saldo corriente se
// actualiza con la fila de la caja bloqueada, así dos movimientos concurrentes
// nunca pierden una actualización.
type CashRegisterUseCase struct {
	txRunner     TxRunner
	registerRepo repository.CashRegisterRepository
}

// NewCashRegisterUseCase construye el caso de uso.
func NewCashRegisterUseCase(txRunner TxRunner, registerRepo repository.CashRegisterRepository) *CashRegisterUseCase {
	return &CashRegisterUseCase{txRunner: txRunner, registerRepo: registerRepo}
}

// Open crea una caja en estado OPEN con el monto de apertura como saldo inicial.
func (uc *CashRegisterUseCase) Open(companyID, userID string, in dto.OpenCashRegisterRequest) (*dto.CashRegisterResponse, error) {
	if in.Name == "" || in.OpeningAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	register := &entity.CashRegister{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		OpeningAmount: in.OpeningAmount,
		CurrentAmount: in.OpeningAmount,
		Status:        entity.CashRegisterOpen,
		OpenedAt:      now,
		OpenedBy:      userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.registerRepo.Create(register); err != nil {
		return nil, err
	}
	return toCashRegisterResponse(register), nil
}

// Close cierra la caja; una caja cerrada no acepta más transacciones.
func (uc *CashRegisterUseCase) Close(ctx context.Context, companyID, id string) (*dto.CashRegisterResponse, error) {
	var out *dto.CashRegisterResponse
	err := uc.txRunner.Run(ctx, func(r *TxRepos) error {
		register, err := r.CashRegisters.GetForUpdate(id)
		if err != nil {
			return err
		}
		if register == nil {
			return domain.ErrNotFound
		}
		if register.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !register.IsOpen() {
			return domain.ErrInvalidStateTransition
		}
		now := time.Now()
		register.Status = entity.CashRegisterClosed
		register.ClosedAt = &now
		register.UpdatedAt = now
		if err := r.CashRegisters.Update(register); err != nil {
			return err
		}
		out = toCashRegisterResponse(register)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterTransaction aplica un movimiento tipado sobre una caja abierta: SALE y
// DEPOSIT suman, REFUND y WITHDRAWAL restan, ADJUSTMENT aplica el monto con su
// signo. Un saldo resultante negativo rechaza el movimiento con ErrConflict.
func (uc *CashRegisterUseCase) RegisterTransaction(ctx context.Context, companyID, userID, registerID string, in dto.CashTransactionRequest) (*dto.CashTransactionResponse, error) {
	delta, err := transactionDelta(in.Type, in.Amount)
	if err != nil {
		return nil, err
	}

	var out *dto.CashTransactionResponse
	err = uc.txRunner.Run(ctx, func(r *TxRepos) error {
		register, err := r.CashRegisters.GetForUpdate(registerID)
		if err != nil {
			return err
		}
		if register == nil {
			return domain.ErrNotFound
		}
		if register.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !register.IsOpen() {
			return domain.ErrConflict
		}

		newAmount := register.CurrentAmount.Add(delta)
		if newAmount.IsNegative() {
			return domain.ErrConflict
		}

		now := time.Now()
		register.CurrentAmount = newAmount
		register.UpdatedAt = now
		if err := r.CashRegisters.Update(register); err != nil {
			return err
		}

		tx := &entity.CashTransaction{
			ID:             uuid.New().String(),
			CashRegisterID: registerID,
			Type:           in.Type,
			Amount:         in.Amount,
			Description:    in.Description,
			CreatedAt:      now,
			CreatedBy:      userID,
		}
		if err := r.CashRegisters.CreateTransaction(tx); err != nil {
			return err
		}
		out = &dto.CashTransactionResponse{
			ID:             tx.ID,
			CashRegisterID: tx.CashRegisterID,
			Type:           tx.Type,
			Amount:         tx.Amount,
			Description:    tx.Description,
			CreatedAt:      tx.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene una caja.
func (uc *CashRegisterUseCase) GetByID(companyID, id string) (*dto.CashRegisterResponse, error) {
	register, err := uc.registerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, nil
	}
	if register.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toCashRegisterResponse(register), nil
}

// List lista cajas de la empresa con paginación.
func (uc *CashRegisterUseCase) List(companyID string, page dto.PageRequest) (*dto.CashRegisterListResponse, error) {
	page.Normalize()
	list, total, err := uc.registerRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashRegisterResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toCashRegisterResponse(r))
	}
	return &dto.CashRegisterListResponse{
		Data: items,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// ListTransactions lista los movimientos de una caja con paginación.
func (uc *CashRegisterUseCase) ListTransactions(companyID, registerID string, page dto.PageRequest) (*dto.CashTransactionListResponse, error) {
	register, err := uc.registerRepo.GetByID(registerID)
	if err != nil || register == nil {
		return nil, domain.ErrNotFound
	}
	if register.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	page.Normalize()
	list, total, err := uc.registerRepo.ListTransactions(registerID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashTransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, dto.CashTransactionResponse{
			ID:             tx.ID,
			CashRegisterID: tx.CashRegisterID,
			Type:           tx.Type,
			Amount:         tx.Amount,
			Description:    tx.Description,
			CreatedAt:      tx.CreatedAt,
		})
	}
	return &dto.CashTransactionListResponse{
		Data: items,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// transactionDelta traduce el tipo de movimiento al delta sobre el saldo.
func transactionDelta(txType string, amount decimal.Decimal) (decimal.Decimal, error) {
	switch txType {
	case entity.CashTxSale, entity.CashTxDeposit:
		if !amount.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return amount, nil
	case entity.CashTxRefund, entity.CashTxWithdrawal:
		if !amount.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return amount.Neg(), nil
	case entity.CashTxAdjustment:
		if amount.IsZero() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return amount, nil
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}
}

func toCashRegisterResponse(r *entity.CashRegister) *dto.CashRegisterResponse {
	return &dto.CashRegisterResponse{
		ID:            r.ID,
		CompanyID:     r.CompanyID,
		Name:          r.Name,
		OpeningAmount: r.OpeningAmount,
		CurrentAmount: r.CurrentAmount,
		Status:        r.Status,
		OpenedAt:      r.OpenedAt,
		ClosedAt:      r.ClosedAt,
	}
}
