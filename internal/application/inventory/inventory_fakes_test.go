package inventory_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/soportek/almacen-api/internal/application/inventory"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos; memTxRunner simula la transacción tomando un
// snapshot del store antes de ejecutar fn y restaurándolo si fn falla. Así los
// tests verifican la atomicidad real de los casos de uso (nada de efectos
// parciales cuando una línea falla).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products       map[string]*entity.Product
	stocks         map[string]*entity.Stock // clave productID|warehouseID
	history        []*entity.ProductHistory
	providers      map[string]*entity.Provider
	warehouses     map[string]*entity.Warehouse
	receptions     map[string]*entity.ReceptionHeader
	receptionDets  map[string][]*entity.ReceptionDetail
	withdrawals    map[string]*entity.WithdrawalHeader
	withdrawalDets map[string][]*entity.WithdrawalDetail
	adjustments    map[string]*entity.WarehouseAdjustment
	adjustmentDets map[string][]*entity.WarehouseAdjustmentDetail
	orders         map[string]*entity.PurchaseOrder
	orderDets      map[string][]*entity.PurchaseOrderDetail
}

func newMemStore() *memStore {
	return &memStore{
		products:       make(map[string]*entity.Product),
		stocks:         make(map[string]*entity.Stock),
		providers:      make(map[string]*entity.Provider),
		warehouses:     make(map[string]*entity.Warehouse),
		receptions:     make(map[string]*entity.ReceptionHeader),
		receptionDets:  make(map[string][]*entity.ReceptionDetail),
		withdrawals:    make(map[string]*entity.WithdrawalHeader),
		withdrawalDets: make(map[string][]*entity.WithdrawalDetail),
		adjustments:    make(map[string]*entity.WarehouseAdjustment),
		adjustmentDets: make(map[string][]*entity.WarehouseAdjustmentDetail),
		orders:         make(map[string]*entity.PurchaseOrder),
		orderDets:      make(map[string][]*entity.PurchaseOrderDetail),
	}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

func cloneMap[T any](src map[string]*T) map[string]*T {
	dst := make(map[string]*T, len(src))
	for k, v := range src {
		cp := *v
		dst[k] = &cp
	}
	return dst
}

func cloneDetMap[T any](src map[string][]*T) map[string][]*T {
	dst := make(map[string][]*T, len(src))
	for k, list := range src {
		cp := make([]*T, 0, len(list))
		for _, d := range list {
			dc := *d
			cp = append(cp, &dc)
		}
		dst[k] = cp
	}
	return dst
}

func (s *memStore) clone() *memStore {
	c := &memStore{
		products:       cloneMap(s.products),
		stocks:         cloneMap(s.stocks),
		providers:      cloneMap(s.providers),
		warehouses:     cloneMap(s.warehouses),
		receptions:     cloneMap(s.receptions),
		receptionDets:  cloneDetMap(s.receptionDets),
		withdrawals:    cloneMap(s.withdrawals),
		withdrawalDets: cloneDetMap(s.withdrawalDets),
		adjustments:    cloneMap(s.adjustments),
		adjustmentDets: cloneDetMap(s.adjustmentDets),
		orders:         cloneMap(s.orders),
		orderDets:      cloneDetMap(s.orderDets),
	}
	c.history = make([]*entity.ProductHistory, 0, len(s.history))
	for _, h := range s.history {
		hc := *h
		c.history = append(c.history, &hc)
	}
	return c
}

func (s *memStore) txRepos() *inventory.TxRepos {
	return &inventory.TxRepos{
		Stock:          &memStockRepo{s},
		History:        &memHistoryRepo{s},
		Products:       &memProductRepo{s},
		Receptions:     &memReceptionRepo{s},
		Withdrawals:    &memWithdrawalRepo{s},
		Adjustments:    &memAdjustmentRepo{s},
		PurchaseOrders: &memPurchaseOrderRepo{s},
	}
}

// memTxRunner snapshot + restore: si fn falla, el store queda como antes.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(repos *inventory.TxRepos) error) error {
	snapshot := r.store.clone()
	if err := fn(r.store.txRepos()); err != nil {
		*r.store = *snapshot
		return err
	}
	return nil
}

func pageSlice[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ── Stock ────────────────────────────────────────────────────────────────────

type memStockRepo struct{ s *memStore }

var _ repository.StockRepository = (*memStockRepo)(nil)

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	if st, ok := r.s.stocks[stockKey(productID, warehouseID)]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (r *memStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	if st, ok := r.s.stocks[stockKey(productID, warehouseID)]; ok {
		cp := *st
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (r *memStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.s.stocks[stockKey(stock.ProductID, stock.WarehouseID)] = &cp
	return nil
}

func (r *memStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.s.stocks {
		if st.ProductID == productID {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Historial (append-only) ──────────────────────────────────────────────────

type memHistoryRepo struct{ s *memStore }

var _ repository.ProductHistoryRepository = (*memHistoryRepo)(nil)

func (r *memHistoryRepo) Create(row *entity.ProductHistory) error {
	cp := *row
	r.s.history = append(r.s.history, &cp)
	return nil
}

func (r *memHistoryRepo) SumDeltas(productID, warehouseID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, h := range r.s.history {
		if h.ProductID == productID && h.WarehouseID == warehouseID {
			sum = sum.Add(h.QuantityDelta)
		}
	}
	return sum, nil
}

func (r *memHistoryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ProductHistory, int, error) {
	var all []*entity.ProductHistory
	for _, h := range r.s.history {
		if h.ProductID == productID {
			all = append(all, h)
		}
	}
	return pageSlice(all, limit, offset), len(all), nil
}

func (r *memHistoryRepo) ListByOperation(operationID string) ([]*entity.ProductHistory, error) {
	var out []*entity.ProductHistory
	for _, h := range r.s.history {
		if h.OperationID == operationID {
			out = append(out, h)
		}
	}
	return out, nil
}

// ── Productos ────────────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDIncludingDeleted(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.SKU == sku && p.DeletedAt == nil {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) AdjustStock(productID string, delta decimal.Decimal) error {
	if p, ok := r.s.products[productID]; ok {
		p.Stock = p.Stock.Add(delta)
	}
	return nil
}

func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, int, error) {
	var all []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.DeletedAt == nil {
			all = append(all, p)
		}
	}
	return pageSlice(all, limit, offset), len(all), nil
}

func (r *memProductRepo) SoftDelete(id string) error {
	if p, ok := r.s.products[id]; ok {
		now := p.UpdatedAt
		p.DeletedAt = &now
	}
	return nil
}

// ── Recepciones ──────────────────────────────────────────────────────────────

type memReceptionRepo struct{ s *memStore }

var _ repository.ReceptionRepository = (*memReceptionRepo)(nil)

func (r *memReceptionRepo) Create(h *entity.ReceptionHeader) error {
	cp := *h
	r.s.receptions[h.ID] = &cp
	return nil
}

func (r *memReceptionRepo) CreateDetail(d *entity.ReceptionDetail) error {
	cp := *d
	r.s.receptionDets[d.ReceptionID] = append(r.s.receptionDets[d.ReceptionID], &cp)
	return nil
}

func (r *memReceptionRepo) GetByID(id string) (*entity.ReceptionHeader, error) {
	if h, ok := r.s.receptions[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, nil
}

func (r *memReceptionRepo) GetByCompanyAndCode(companyID, code string) (*entity.ReceptionHeader, error) {
	for _, h := range r.s.receptions {
		if h.CompanyID == companyID && h.Code == code {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memReceptionRepo) GetForUpdate(id string) (*entity.ReceptionHeader, error) {
	return r.GetByID(id)
}

func (r *memReceptionRepo) UpdateStatus(id, status string) error {
	if h, ok := r.s.receptions[id]; ok {
		h.Status = status
	}
	return nil
}

func (r *memReceptionRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.ReceptionHeader, int, error) {
	var all []*entity.ReceptionHeader
	for _, h := range r.s.receptions {
		if h.CompanyID == companyID {
			all = append(all, h)
		}
	}
	return pageSlice(all, limit, offset), len(all), nil
}

func (r *memReceptionRepo) ListDetails(receptionID string) ([]*entity.ReceptionDetail, error) {
	return r.s.receptionDets[receptionID], nil
}

// ── Retiros ──────────────────────────────────────────────────────────────────

type memWithdrawalRepo struct{ s *memStore }

var _ repository.WithdrawalRepository = (*memWithdrawalRepo)(nil)

func (r *memWithdrawalRepo) Create(h *entity.WithdrawalHeader) error {
	cp := *h
	r.s.withdrawals[h.ID] = &cp
	return nil
}

func (r *memWithdrawalRepo) CreateDetail(d *entity.WithdrawalDetail) error {
	cp := *d
	r.s.withdrawalDets[d.WithdrawalID] = append(r.s.withdrawalDets[d.WithdrawalID], &cp)
	return nil
}

func (r *memWithdrawalRepo) GetByID(id string) (*entity.WithdrawalHeader, error) {
	if h, ok := r.s.withdrawals[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, nil
}

func (r *memWithdrawalRepo) GetByCompanyAndCode(companyID, code string) (*entity.WithdrawalHeader, error) {
	for _, h := range r.s.withdrawals {
		if h.CompanyID == companyID && h.Code == code {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWithdrawalRepo) GetForUpdate(id string) (*entity.WithdrawalHeader, error) {
	return r.GetByID(id)
}

func (r *memWithdrawalRepo) UpdateStatus(id, status string) error {
	if h, ok := r.s.withdrawals[id]; ok {
		h.Status = status
	}
	return nil
}

func (r *memWithdrawalRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.WithdrawalHeader, int, error) {
	var all []*entity.WithdrawalHeader
	for _, h := range r.s.withdrawals {
		if h.CompanyID == companyID {
			all = append(all, h)
		}
	}
	return pageSlice(all, limit, offset), len(all), nil
}

func (r *memWithdrawalRepo) ListDetails(withdrawalID string) ([]*entity.WithdrawalDetail, error) {
	return r.s.withdrawalDets[withdrawalID], nil
}

// ── Ajustes entre bodegas ────────────────────────────────────────────────────

type memAdjustmentRepo struct{ s *memStore }

var _ repository.AdjustmentRepository = (*memAdjustmentRepo)(nil)

func (r *memAdjustmentRepo) Create(h *entity.WarehouseAdjustment) error {
	cp := *h
	r.s.adjustments[h.ID] = &cp
	return nil
}

func (r *memAdjustmentRepo) CreateDetail(d *entity.WarehouseAdjustmentDetail) error {
	cp := *d
	r.s.adjustmentDets[d.AdjustmentID] = append(r.s.adjustmentDets[d.AdjustmentID], &cp)
	return nil
}

func (r *memAdjustmentRepo) GetByID(id string) (*entity.WarehouseAdjustment, error) {
	if h, ok := r.s.adjustments[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, nil
}

func (r *memAdjustmentRepo) GetByCompanyAndCode(companyID, code string) (*entity.WarehouseAdjustment, error) {
	for _, h := range r.s.adjustments {
		if h.CompanyID == companyID && h.Code == code {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAdjustmentRepo) GetForUpdate(id string) (*entity.WarehouseAdjustment, error) {
	return r.GetByID(id)
}

func (r *memAdjustmentRepo) UpdateStatus(id, status string) error {
	if h, ok := r.s.adjustments[id]; ok {
		h.Status = status
	}
	return nil
}

func (r *memAdjustmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.WarehouseAdjustment, int, error) {
	var all []*entity.WarehouseAdjustment
	for _, h := range r.s.adjustments {
		if h.CompanyID == companyID {
			all = append(all, h)
		}
	}
	return pageSlice(all, limit, offset), len(all), nil
}

func (r *memAdjustmentRepo) ListDetails(adjustmentID string) ([]*entity.WarehouseAdjustmentDetail, error) {
	return r.s.adjustmentDets[adjustmentID], nil
}

// ── Órdenes de compra ────────────────────────────────────────────────────────

type memPurchaseOrderRepo struct{ s *memStore }

var _ repository.PurchaseOrderRepository = (*memPurchaseOrderRepo)(nil)

func (r *memPurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *memPurchaseOrderRepo) CreateDetail(d *entity.PurchaseOrderDetail) error {
	cp := *d
	r.s.orderDets[d.PurchaseOrderID] = append(r.s.orderDets[d.PurchaseOrderID], &cp)
	return nil
}

func (r *memPurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *memPurchaseOrderRepo) GetByCompanyAndCode(companyID, code string) (*entity.PurchaseOrder, error) {
	for _, o := range r.s.orders {
		if o.CompanyID == companyID && o.Code == code {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *memPurchaseOrderRepo) UpdateStatus(id, status, actorID string) error {
	if o, ok := r.s.orders[id]; ok {
		o.Status = status
		o.ApprovedBy = actorID
	}
	return nil
}

func (r *memPurchaseOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	var all []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		if o.CompanyID == companyID {
			all = append(all, o)
		}
	}
	return pageSlice(all, limit, offset), len(all), nil
}

func (r *memPurchaseOrderRepo) ListDetails(orderID string) ([]*entity.PurchaseOrderDetail, error) {
	list := r.s.orderDets[orderID]
	out := make([]*entity.PurchaseOrderDetail, 0, len(list))
	for _, d := range list {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPurchaseOrderRepo) UpdateDetailReceived(detailID string, received decimal.Decimal) error {
	for _, list := range r.s.orderDets {
		for _, d := range list {
			if d.ID == detailID {
				d.ReceivedQuantity = received
				return nil
			}
		}
	}
	return nil
}

// ── Proveedores ──────────────────────────────────────────────────────────────

type memProviderRepo struct{ s *memStore }

var _ repository.ProviderRepository = (*memProviderRepo)(nil)

func (r *memProviderRepo) Create(p *entity.Provider) error {
	cp := *p
	r.s.providers[p.ID] = &cp
	return nil
}

func (r *memProviderRepo) GetByID(id string) (*entity.Provider, error) {
	if p, ok := r.s.providers[id]; ok && p.DeletedAt == nil {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProviderRepo) GetByCompanyAndDocument(companyID, document string) (*entity.Provider, error) {
	for _, p := range r.s.providers {
		if p.CompanyID == companyID && p.Document == document && p.DeletedAt == nil {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProviderRepo) Update(p *entity.Provider) error {
	cp := *p
	r.s.providers[p.ID] = &cp
	return nil
}

func (r *memProviderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Provider, int, error) {
	var all []*entity.Provider
	for _, p := range r.s.providers {
		if p.CompanyID == companyID && p.DeletedAt == nil {
			all = append(all, p)
		}
	}
	return pageSlice(all, limit, offset), len(all), nil
}

func (r *memProviderRepo) SoftDelete(id string) error {
	if p, ok := r.s.providers[id]; ok {
		now := p.UpdatedAt
		p.DeletedAt = &now
	}
	return nil
}

// ── Bodegas ──────────────────────────────────────────────────────────────────

type memWarehouseRepo struct{ s *memStore }

var _ repository.WarehouseRepository = (*memWarehouseRepo)(nil)

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.s.warehouses[id]; ok && w.DeletedAt == nil {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *memWarehouseRepo) GetByCompanyAndCode(companyID, code string) (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID && w.Code == code && w.DeletedAt == nil {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWarehouseRepo) Update(w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, int, error) {
	var all []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID && w.DeletedAt == nil {
			all = append(all, w)
		}
	}
	return pageSlice(all, limit, offset), len(all), nil
}

func (r *memWarehouseRepo) SoftDelete(id string) error {
	if w, ok := r.s.warehouses[id]; ok {
		now := w.UpdatedAt
		w.DeletedAt = &now
	}
	return nil
}
