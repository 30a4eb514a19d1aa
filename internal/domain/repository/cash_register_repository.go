package repository

import "github.com/soportek/almacen-api/internal/domain/entity"

// CashRegisterRepository define el puerto de persistencia para cajas y sus transacciones.
type CashRegisterRepository interface {
	Create(register *entity.CashRegister) error
	GetByID(id string) (*entity.CashRegister, error)
	// GetForUpdate bloquea la fila de la caja para serializar los movimientos de saldo.
	GetForUpdate(id string) (*entity.CashRegister, error)
	Update(register *entity.CashRegister) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.CashRegister, int, error)

	CreateTransaction(tx *entity.CashTransaction) error
	ListTransactions(registerID string, limit, offset int) ([]*entity.CashTransaction, int, error)
}
