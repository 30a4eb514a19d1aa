package purchase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/application/purchase"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

const (
	companyID  = "co-1"
	actorID    = "user-1"
	providerID = "prov-1"
	productID  = "prod-1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos
// ──────────────────────────────────────────────────────────────────────────────

type fakePORepo struct {
	orders  map[string]*entity.PurchaseOrder
	details map[string][]*entity.PurchaseOrderDetail
}

var _ repository.PurchaseOrderRepository = (*fakePORepo)(nil)

func newFakePORepo() *fakePORepo {
	return &fakePORepo{
		orders:  make(map[string]*entity.PurchaseOrder),
		details: make(map[string][]*entity.PurchaseOrderDetail),
	}
}

func (r *fakePORepo) Create(o *entity.PurchaseOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakePORepo) CreateDetail(d *entity.PurchaseOrderDetail) error {
	cp := *d
	r.details[d.PurchaseOrderID] = append(r.details[d.PurchaseOrderID], &cp)
	return nil
}

func (r *fakePORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePORepo) GetByCompanyAndCode(cID, code string) (*entity.PurchaseOrder, error) {
	for _, o := range r.orders {
		if o.CompanyID == cID && o.Code == code {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePORepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakePORepo) UpdateStatus(id, status, actor string) error {
	if o, ok := r.orders[id]; ok {
		o.Status = status
		o.ApprovedBy = actor
	}
	return nil
}

func (r *fakePORepo) ListByCompany(cID string, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if o.CompanyID == cID {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (r *fakePORepo) ListDetails(orderID string) ([]*entity.PurchaseOrderDetail, error) {
	list := r.details[orderID]
	out := make([]*entity.PurchaseOrderDetail, 0, len(list))
	for _, d := range list {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePORepo) UpdateDetailReceived(detailID string, received decimal.Decimal) error {
	for _, list := range r.details {
		for _, d := range list {
			if d.ID == detailID {
				d.ReceivedQuantity = received
				return nil
			}
		}
	}
	return nil
}

type fakeProviderRepo struct {
	providers map[string]*entity.Provider
}

var _ repository.ProviderRepository = (*fakeProviderRepo)(nil)

func (r *fakeProviderRepo) Create(p *entity.Provider) error {
	r.providers[p.ID] = p
	return nil
}
func (r *fakeProviderRepo) GetByID(id string) (*entity.Provider, error) {
	return r.providers[id], nil
}
func (r *fakeProviderRepo) GetByCompanyAndDocument(string, string) (*entity.Provider, error) {
	return nil, nil
}
func (r *fakeProviderRepo) Update(p *entity.Provider) error { return nil }
func (r *fakeProviderRepo) ListByCompany(string, int, int) ([]*entity.Provider, int, error) {
	return nil, 0, nil
}
func (r *fakeProviderRepo) SoftDelete(string) error { return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByIDIncludingDeleted(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByCompanyAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(*entity.Product) error              { return nil }
func (r *fakeProductRepo) AdjustStock(string, decimal.Decimal) error { return nil }
func (r *fakeProductRepo) SoftDelete(string) error                   { return nil }
func (r *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func newUseCase() (*purchase.PurchaseOrderUseCase, *fakePORepo) {
	poRepo := newFakePORepo()
	providers := &fakeProviderRepo{providers: map[string]*entity.Provider{
		providerID: {ID: providerID, CompanyID: companyID, Name: "Proveedor Uno", Status: entity.PartyStatusActive},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, CompanyID: companyID, Name: "Producto Uno", Status: entity.ProductStatusActive},
	}}
	return purchase.NewPurchaseOrderUseCase(poRepo, providers, products), poRepo
}

func createOrder(t *testing.T, uc *purchase.PurchaseOrderUseCase, code string, qty int64) *dto.PurchaseOrderResponse {
	t.Helper()
	out, err := uc.Create(companyID, actorID, dto.CreatePurchaseOrderRequest{
		Code:       code,
		ProviderID: providerID,
		Lines: []dto.PurchaseOrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseOrder_Create_QuedaPendiente(t *testing.T) {
	uc, _ := newUseCase()
	out := createOrder(t, uc, "OC-001", 10)

	assert.Equal(t, entity.POStatusPending, out.Status)
	assert.True(t, decimal.NewFromInt(250).Equal(out.Total), "total = 10 * 25")
	require.Len(t, out.Details, 1)
	assert.True(t, out.Details[0].ReceivedQuantity.IsZero())
}

func TestPurchaseOrder_Create_CodigoDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	createOrder(t, uc, "OC-001", 10)

	_, err := uc.Create(companyID, actorID, dto.CreatePurchaseOrderRequest{
		Code:       "OC-001",
		ProviderID: providerID,
		Lines: []dto.PurchaseOrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPurchaseOrder_Create_ProveedorInactivo(t *testing.T) {
	poRepo := newFakePORepo()
	providers := &fakeProviderRepo{providers: map[string]*entity.Provider{
		providerID: {ID: providerID, CompanyID: companyID, Status: entity.PartyStatusInactive},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, CompanyID: companyID, Status: entity.ProductStatusActive},
	}}
	uc := purchase.NewPurchaseOrderUseCase(poRepo, providers, products)

	_, err := uc.Create(companyID, actorID, dto.CreatePurchaseOrderRequest{
		Code:       "OC-001",
		ProviderID: providerID,
		Lines: []dto.PurchaseOrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseOrder_Transiciones(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pendiente a aprobada", entity.POStatusPending, entity.POStatusApproved, true},
		{"pendiente a rechazada", entity.POStatusPending, entity.POStatusRejected, true},
		{"pendiente a cancelada", entity.POStatusPending, entity.POStatusCancelled, true},
		{"aprobada a cancelada", entity.POStatusApproved, entity.POStatusCancelled, true},
		{"aprobada a completada", entity.POStatusApproved, entity.POStatusCompleted, true},
		{"pendiente a completada", entity.POStatusPending, entity.POStatusCompleted, false},
		{"aprobada a rechazada", entity.POStatusApproved, entity.POStatusRejected, false},
		{"rechazada a aprobada", entity.POStatusRejected, entity.POStatusApproved, false},
		{"cancelada a aprobada", entity.POStatusCancelled, entity.POStatusApproved, false},
		{"completada a cancelada", entity.POStatusCompleted, entity.POStatusCancelled, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, entity.CanTransitionPO(tc.from, tc.to))
		})
	}
}

func TestPurchaseOrder_Approve_RegistraAprobador(t *testing.T) {
	uc, repo := newUseCase()
	out := createOrder(t, uc, "OC-001", 10)

	require.NoError(t, uc.Approve(companyID, actorID, out.ID))
	assert.Equal(t, entity.POStatusApproved, repo.orders[out.ID].Status)
	assert.Equal(t, actorID, repo.orders[out.ID].ApprovedBy)

	// Aprobar dos veces no está permitido
	err := uc.Approve(companyID, actorID, out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestPurchaseOrder_Cancel_DesdeAprobada(t *testing.T) {
	uc, repo := newUseCase()
	out := createOrder(t, uc, "OC-001", 10)

	require.NoError(t, uc.Approve(companyID, actorID, out.ID))
	require.NoError(t, uc.Cancel(companyID, actorID, out.ID))
	assert.Equal(t, entity.POStatusCancelled, repo.orders[out.ID].Status)
}

func TestPurchaseOrder_Reject_LuegoNoSePuedeAprobar(t *testing.T) {
	uc, _ := newUseCase()
	out := createOrder(t, uc, "OC-001", 10)

	require.NoError(t, uc.Reject(companyID, actorID, out.ID))
	err := uc.Approve(companyID, actorID, out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestPurchaseOrder_Transition_DeOtraEmpresa(t *testing.T) {
	uc, _ := newUseCase()
	out := createOrder(t, uc, "OC-001", 10)

	err := uc.Approve("otra-empresa", actorID, out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// AccumulateReceived
// ──────────────────────────────────────────────────────────────────────────────

func approvedOrder(t *testing.T, uc *purchase.PurchaseOrderUseCase, repo *fakePORepo, qty int64) string {
	t.Helper()
	out := createOrder(t, uc, "OC-001", qty)
	require.NoError(t, uc.Approve(companyID, actorID, out.ID))
	return out.ID
}

func TestAccumulateReceived_ParcialNoCompleta(t *testing.T) {
	uc, repo := newUseCase()
	orderID := approvedOrder(t, uc, repo, 10)

	err := purchase.AccumulateReceived(repo, orderID,
		map[string]decimal.Decimal{productID: decimal.NewFromInt(4)}, time.Now())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(4).Equal(repo.details[orderID][0].ReceivedQuantity))
	assert.Equal(t, entity.POStatusApproved, repo.orders[orderID].Status)
}

func TestAccumulateReceived_CompletaAlLlenarTodasLasLineas(t *testing.T) {
	uc, repo := newUseCase()
	orderID := approvedOrder(t, uc, repo, 10)

	require.NoError(t, purchase.AccumulateReceived(repo, orderID,
		map[string]decimal.Decimal{productID: decimal.NewFromInt(10)}, time.Now()))

	assert.Equal(t, entity.POStatusCompleted, repo.orders[orderID].Status)
}

func TestAccumulateReceived_RecibirDeMas(t *testing.T) {
	uc, repo := newUseCase()
	orderID := approvedOrder(t, uc, repo, 10)

	err := purchase.AccumulateReceived(repo, orderID,
		map[string]decimal.Decimal{productID: decimal.NewFromInt(11)}, time.Now())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAccumulateReceived_ProductoFueraDeLaOrden(t *testing.T) {
	uc, repo := newUseCase()
	orderID := approvedOrder(t, uc, repo, 10)

	err := purchase.AccumulateReceived(repo, orderID,
		map[string]decimal.Decimal{"producto-ajeno": decimal.NewFromInt(1)}, time.Now())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAccumulateReceived_OrdenNoAprobada(t *testing.T) {
	uc, repo := newUseCase()
	out := createOrder(t, uc, "OC-001", 10) // queda PENDING

	err := purchase.AccumulateReceived(repo, out.ID,
		map[string]decimal.Decimal{productID: decimal.NewFromInt(1)}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}
