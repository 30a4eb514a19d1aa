package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, company_id, document, name, address, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.CompanyID, client.Document, client.Name,
		client.Address, client.Phone, client.Email, client.Status,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente vivo por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `
		SELECT id, company_id, document, name, address, phone, email, status, created_at, updated_at, deleted_at
		FROM clients WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id)
}

// GetByCompanyAndDocument obtiene un cliente vivo por empresa y documento.
func (r *ClientRepo) GetByCompanyAndDocument(companyID, document string) (*entity.Client, error) {
	query := `
		SELECT id, company_id, document, name, address, phone, email, status, created_at, updated_at, deleted_at
		FROM clients WHERE company_id = $1 AND document = $2 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, document)
}

// Update actualiza datos de contacto y estado. El documento es inmutable.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, address = $3, phone = $4, email = $5, status = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Address, client.Phone,
		client.Email, client.Status, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// ListByCompany lista clientes vivos por empresa con paginación y total.
func (r *ClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM clients WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	query := `
		SELECT id, company_id, document, name, address, phone, email, status, created_at, updated_at, deleted_at
		FROM clients WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Document, &c.Name, &c.Address, &c.Phone,
			&c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el cliente como eliminado.
func (r *ClientRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clients SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete client: %w", err)
	}
	return nil
}

func (r *ClientRepo) scanOne(query string, args ...any) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.CompanyID, &c.Document, &c.Name, &c.Address, &c.Phone,
		&c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}
