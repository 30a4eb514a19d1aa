package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/application/usecase"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

const companyID = "co-1"

// fakeCategoryRepo repositorio en memoria para el árbol de categorías.
type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok && c.DeletedAt == nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) ListByCompany(cID string, limit, offset int) ([]*entity.Category, int, error) {
	all, _ := r.ListAllByCompany(cID)
	if offset >= len(all) {
		return nil, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (r *fakeCategoryRepo) ListAllByCompany(cID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.CompanyID == cID && c.DeletedAt == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) SoftDelete(id string) error {
	if c, ok := r.categories[id]; ok {
		now := c.UpdatedAt
		c.DeletedAt = &now
	}
	return nil
}

func create(t *testing.T, uc *usecase.CategoryUseCase, name, parentID string) *dto.CategoryResponse {
	t.Helper()
	out, err := uc.Create(companyID, dto.CreateCategoryRequest{Name: name, ParentID: parentID})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Árbol de categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_Tree_ArmaLaJerarquia(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	root := create(t, uc, "Herramientas", "")
	child := create(t, uc, "Manuales", root.ID)
	create(t, uc, "Martillos", child.ID)
	create(t, uc, "Eléctricas", root.ID)

	tree, err := uc.Tree(companyID)
	require.NoError(t, err)

	require.Len(t, tree, 1, "una sola raíz")
	assert.Equal(t, "Herramientas", tree[0].Name)
	require.Len(t, tree[0].Children, 2)

	// El nieto cuelga del hijo correcto
	var manuales *dto.CategoryTreeNode
	for i := range tree[0].Children {
		if tree[0].Children[i].Name == "Manuales" {
			manuales = &tree[0].Children[i]
		}
	}
	require.NotNil(t, manuales)
	require.Len(t, manuales.Children, 1)
	assert.Equal(t, "Martillos", manuales.Children[0].Name)
}

func TestCategory_Update_NoPermiteCiclos(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	root := create(t, uc, "Raíz", "")
	child := create(t, uc, "Hija", root.ID)
	grandchild := create(t, uc, "Nieta", child.ID)

	// Colgar la raíz de su propia nieta crearía un ciclo
	_, err := uc.Update(companyID, root.ID, dto.UpdateCategoryRequest{ParentID: &grandchild.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Colgar una categoría de sí misma tampoco
	_, err = uc.Update(companyID, root.ID, dto.UpdateCategoryRequest{ParentID: &root.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory_Update_MoverAOtraRama(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	root := create(t, uc, "Raíz", "")
	a := create(t, uc, "Rama A", root.ID)
	b := create(t, uc, "Rama B", root.ID)
	leaf := create(t, uc, "Hoja", a.ID)

	out, err := uc.Update(companyID, leaf.ID, dto.UpdateCategoryRequest{ParentID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, b.ID, out.ParentID)
}

func TestCategory_Delete_ConHijasVivas(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	root := create(t, uc, "Raíz", "")
	child := create(t, uc, "Hija", root.ID)

	err := uc.Delete(companyID, root.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "no se elimina una categoría con hijas")

	// Eliminada la hija, la raíz ya puede eliminarse
	require.NoError(t, uc.Delete(companyID, child.ID))
	require.NoError(t, uc.Delete(companyID, root.ID))
}

func TestCategory_Create_PadreDeOtraEmpresa(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	repo.categories["ajena"] = &entity.Category{ID: "ajena", CompanyID: "otra-empresa", Name: "Ajena"}

	_, err := uc.Create(companyID, dto.CreateCategoryRequest{Name: "Nueva", ParentID: "ajena"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
