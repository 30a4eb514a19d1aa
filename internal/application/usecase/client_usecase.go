package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// ClientUseCase administra clientes. El documento es único por empresa.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// Create crea un cliente activo.
func (uc *ClientUseCase) Create(companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if in.Document == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.clientRepo.GetByCompanyAndDocument(companyID, in.Document)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Document:  in.Document,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    entity.PartyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update aplica cambios parciales. El documento es inmutable.
func (uc *ClientUseCase) Update(companyID, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		client.Name = *in.Name
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.PartyStatusActive, entity.PartyStatusInactive:
			client.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	client.UpdatedAt = time.Now()

	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(companyID, id string) (*dto.PartyResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toClientResponse(client), nil
}

// List lista clientes de la empresa con paginación.
func (uc *ClientUseCase) List(companyID string, page dto.PageRequest) (*dto.PartyListResponse, error) {
	page.Normalize()
	list, total, err := uc.clientRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.PartyListResponse{Data: items, Meta: dto.NewPageMeta(total, page.Page, page.Limit)}, nil
}

// Delete marca el cliente como eliminado. Las facturas que lo referencian
// permanecen intactas.
func (uc *ClientUseCase) Delete(companyID, id string) error {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.clientRepo.SoftDelete(id)
}

func toClientResponse(c *entity.Client) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Document:  c.Document,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
