package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// CategoryUseCase administra categorías jerárquicas (árbol por ParentID).
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create crea una categoría, opcionalmente colgando de un padre de la misma empresa.
func (uc *CategoryUseCase) Create(companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		parent, err := uc.categoryRepo.GetByID(in.ParentID)
		if err != nil || parent == nil {
			return nil, domain.ErrNotFound
		}
		if parent.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update aplica cambios parciales. Mover una categoría bajo sí misma o bajo uno de
// sus descendientes rompería el árbol y se rechaza.
func (uc *CategoryUseCase) Update(companyID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if category.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.ParentID != nil && *in.ParentID != category.ParentID {
		if *in.ParentID != "" {
			if *in.ParentID == id {
				return nil, domain.ErrInvalidInput
			}
			parent, err := uc.categoryRepo.GetByID(*in.ParentID)
			if err != nil || parent == nil {
				return nil, domain.ErrNotFound
			}
			if parent.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
			all, err := uc.categoryRepo.ListAllByCompany(companyID)
			if err != nil {
				return nil, err
			}
			if isDescendant(all, id, *in.ParentID) {
				return nil, domain.ErrInvalidInput
			}
		}
		category.ParentID = *in.ParentID
	}
	category.UpdatedAt = time.Now()

	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(companyID, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if category.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toCategoryResponse(category), nil
}

// List lista categorías de la empresa con paginación (plano, sin jerarquía).
func (uc *CategoryUseCase) List(companyID string, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.Normalize()
	list, total, err := uc.categoryRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Data: items, Meta: dto.NewPageMeta(total, page.Page, page.Limit)}, nil
}

// Tree arma el árbol completo de categorías de la empresa en memoria con una sola
// consulta, agrupando por ParentID.
func (uc *CategoryUseCase) Tree(companyID string) ([]dto.CategoryTreeNode, error) {
	all, err := uc.categoryRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}
	byParent := make(map[string][]*entity.Category)
	for _, c := range all {
		byParent[c.ParentID] = append(byParent[c.ParentID], c)
	}
	return buildTree(byParent, ""), nil
}

// Delete marca la categoría como eliminada. Una categoría con hijas vivas no se
// puede eliminar: primero hay que mover o eliminar las hijas.
func (uc *CategoryUseCase) Delete(companyID, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if category.CompanyID != companyID {
		return domain.ErrForbidden
	}
	all, err := uc.categoryRepo.ListAllByCompany(companyID)
	if err != nil {
		return err
	}
	for _, c := range all {
		if c.ParentID == id {
			return domain.ErrConflict
		}
	}
	return uc.categoryRepo.SoftDelete(id)
}

func buildTree(byParent map[string][]*entity.Category, parentID string) []dto.CategoryTreeNode {
	children := byParent[parentID]
	nodes := make([]dto.CategoryTreeNode, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, dto.CategoryTreeNode{
			CategoryResponse: *toCategoryResponse(c),
			Children:         buildTree(byParent, c.ID),
		})
	}
	return nodes
}

// isDescendant indica si candidate desciende de rootID siguiendo ParentID.
func isDescendant(all []*entity.Category, rootID, candidate string) bool {
	parents := make(map[string]string, len(all))
	for _, c := range all {
		parents[c.ID] = c.ParentID
	}
	for cur := candidate; cur != ""; cur = parents[cur] {
		if cur == rootID {
			return true
		}
	}
	return false
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
