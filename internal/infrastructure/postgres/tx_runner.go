package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soportek/almacen-api/internal/application/billing"
	"github.com/soportek/almacen-api/internal/application/inventory"
)

// Ensure TxRunner implements both runner ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*BillingTxRunner)(nil)

// TxRunner ejecuta callbacks de inventario dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *inventory.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := &inventory.TxRepos{
		Stock:          NewStockRepository(tx),
		History:        NewProductHistoryRepository(tx),
		Products:       NewProductRepository(tx),
		Receptions:     NewReceptionRepository(tx),
		Withdrawals:    NewWithdrawalRepository(tx),
		Adjustments:    NewAdjustmentRepository(tx),
		PurchaseOrders: NewPurchaseOrderRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// BillingTxRunner ejecuta callbacks de facturación dentro de una transacción PostgreSQL.
type BillingTxRunner struct {
	pool *pgxpool.Pool
}

// NewBillingTxRunner construye el runner con el pool.
func NewBillingTxRunner(pool *pgxpool.Pool) *BillingTxRunner {
	return &BillingTxRunner{pool: pool}
}

// Run inicia una transacción con repos de facturación y hace Commit o Rollback.
func (r *BillingTxRunner) Run(ctx context.Context, fn func(repos *billing.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := &billing.TxRepos{
		Invoices:      NewInvoiceRepository(tx),
		CashRegisters: NewCashRegisterRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
