package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

const cashRegisterColumns = `id, company_id, name, opening_amount, current_amount, status,
	opened_at, closed_at, opened_by, created_at, updated_at, deleted_at`

// CashRegisterRepo implementación del puerto CashRegisterRepository sobre PostgreSQL.
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador de persistencia para cajas.
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

// Create persiste una caja.
func (r *CashRegisterRepo) Create(register *entity.CashRegister) error {
	query := `
		INSERT INTO cash_registers (id, company_id, name, opening_amount, current_amount, status, opened_at, opened_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		register.ID, register.CompanyID, register.Name, register.OpeningAmount,
		register.CurrentAmount, register.Status, register.OpenedAt, register.OpenedBy,
		register.CreatedAt, register.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash register: %w", err)
	}
	return nil
}

// GetByID obtiene una caja viva por ID.
func (r *CashRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	query := `SELECT ` + cashRegisterColumns + ` FROM cash_registers WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id)
}

// GetForUpdate bloquea la fila de la caja para serializar los movimientos de saldo.
func (r *CashRegisterRepo) GetForUpdate(id string) (*entity.CashRegister, error) {
	query := `SELECT ` + cashRegisterColumns + ` FROM cash_registers WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.scanOne(query, id)
}

// Update actualiza saldo, estado y cierre de la caja.
func (r *CashRegisterRepo) Update(register *entity.CashRegister) error {
	query := `
		UPDATE cash_registers SET current_amount = $2, status = $3, closed_at = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		register.ID, register.CurrentAmount, register.Status, register.ClosedAt, register.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cash register: %w", err)
	}
	return nil
}

// ListByCompany lista cajas vivas por empresa con paginación y total.
func (r *CashRegisterRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.CashRegister, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM cash_registers WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count cash registers: %w", err)
	}

	query := `SELECT ` + cashRegisterColumns + `
		FROM cash_registers WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY opened_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list cash registers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashRegister
	for rows.Next() {
		var c entity.CashRegister
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.OpeningAmount, &c.CurrentAmount, &c.Status,
			&c.OpenedAt, &c.ClosedAt, &c.OpenedBy, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan cash register: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// CreateTransaction persiste un movimiento de caja.
func (r *CashRegisterRepo) CreateTransaction(tx *entity.CashTransaction) error {
	query := `
		INSERT INTO cash_transactions (id, cash_register_id, type, amount, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.CashRegisterID, tx.Type, tx.Amount, tx.Description, tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert cash transaction: %w", err)
	}
	return nil
}

// ListTransactions lista movimientos de una caja con paginación y total.
func (r *CashRegisterRepo) ListTransactions(registerID string, limit, offset int) ([]*entity.CashTransaction, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM cash_transactions WHERE cash_register_id = $1`, registerID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count cash transactions: %w", err)
	}

	query := `
		SELECT id, cash_register_id, type, amount, description, created_at, created_by
		FROM cash_transactions WHERE cash_register_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, registerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list cash transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashTransaction
	for rows.Next() {
		var t entity.CashTransaction
		if err := rows.Scan(&t.ID, &t.CashRegisterID, &t.Type, &t.Amount, &t.Description,
			&t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, 0, fmt.Errorf("scan cash transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, total, rows.Err()
}

func (r *CashRegisterRepo) scanOne(query string, args ...any) (*entity.CashRegister, error) {
	var c entity.CashRegister
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.OpeningAmount, &c.CurrentAmount, &c.Status,
		&c.OpenedAt, &c.ClosedAt, &c.OpenedBy, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash register: %w", err)
	}
	return &c, nil
}
