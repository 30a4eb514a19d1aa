package billing_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/soportek/almacen-api/internal/application/billing"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para facturación y caja
// ──────────────────────────────────────────────────────────────────────────────

type billingStore struct {
	invoices    map[string]*entity.Invoice
	invoiceDets map[string][]*entity.InvoiceDetail
	registers   map[string]*entity.CashRegister
	txs         map[string][]*entity.CashTransaction
}

func newBillingStore() *billingStore {
	return &billingStore{
		invoices:    make(map[string]*entity.Invoice),
		invoiceDets: make(map[string][]*entity.InvoiceDetail),
		registers:   make(map[string]*entity.CashRegister),
		txs:         make(map[string][]*entity.CashTransaction),
	}
}

// billingTxRunner ejecuta fn directo sobre el store; los casos de uso validan
// antes de escribir, así que no hay escrituras parciales que revertir aquí.
type billingTxRunner struct {
	store *billingStore
}

func (r *billingTxRunner) Run(_ context.Context, fn func(repos *billing.TxRepos) error) error {
	return fn(&billing.TxRepos{
		Invoices:      &fakeInvoiceRepo{r.store},
		CashRegisters: &fakeCashRegisterRepo{r.store},
	})
}

type fakeInvoiceRepo struct{ s *billingStore }

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateDetail(d *entity.InvoiceDetail) error {
	cp := *d
	r.s.invoiceDets[d.InvoiceID] = append(r.s.invoiceDets[d.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if inv, ok := r.s.invoices[id]; ok && inv.DeletedAt == nil {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, int, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CompanyID == companyID && inv.DeletedAt == nil {
			out = append(out, inv)
		}
	}
	return out, len(out), nil
}

func (r *fakeInvoiceRepo) ListDetails(invoiceID string) ([]*entity.InvoiceDetail, error) {
	return r.s.invoiceDets[invoiceID], nil
}

func (r *fakeInvoiceRepo) SoftDelete(id string) error {
	if inv, ok := r.s.invoices[id]; ok {
		now := inv.UpdatedAt
		inv.DeletedAt = &now
	}
	return nil
}

type fakeCashRegisterRepo struct{ s *billingStore }

var _ repository.CashRegisterRepository = (*fakeCashRegisterRepo)(nil)

func (r *fakeCashRegisterRepo) Create(reg *entity.CashRegister) error {
	cp := *reg
	r.s.registers[reg.ID] = &cp
	return nil
}

func (r *fakeCashRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	if reg, ok := r.s.registers[id]; ok {
		cp := *reg
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCashRegisterRepo) GetForUpdate(id string) (*entity.CashRegister, error) {
	return r.GetByID(id)
}

func (r *fakeCashRegisterRepo) Update(reg *entity.CashRegister) error {
	cp := *reg
	r.s.registers[reg.ID] = &cp
	return nil
}

func (r *fakeCashRegisterRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.CashRegister, int, error) {
	var out []*entity.CashRegister
	for _, reg := range r.s.registers {
		if reg.CompanyID == companyID {
			out = append(out, reg)
		}
	}
	return out, len(out), nil
}

func (r *fakeCashRegisterRepo) CreateTransaction(tx *entity.CashTransaction) error {
	cp := *tx
	r.s.txs[tx.CashRegisterID] = append(r.s.txs[tx.CashRegisterID], &cp)
	return nil
}

func (r *fakeCashRegisterRepo) ListTransactions(registerID string, limit, offset int) ([]*entity.CashTransaction, int, error) {
	list := r.s.txs[registerID]
	return list, len(list), nil
}

// ── Catálogos de solo lectura para facturas ──────────────────────────────────

type fakeClientRepo struct{ clients map[string]*entity.Client }

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}
func (r *fakeClientRepo) GetByCompanyAndDocument(string, string) (*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) Update(*entity.Client) error { return nil }
func (r *fakeClientRepo) ListByCompany(string, int, int) ([]*entity.Client, int, error) {
	return nil, 0, nil
}
func (r *fakeClientRepo) SoftDelete(string) error { return nil }

type fakeProductRepo struct{ products map[string]*entity.Product }

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
func (r *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) SoftDelete(string) error { return nil }

type fakeWithdrawalRepo struct {
	headers map[string]*entity.WithdrawalHeader
}

var _ repository.WithdrawalRepository = (*fakeWithdrawalRepo)(nil)

func (r *fakeWithdrawalRepo) Create(h *entity.WithdrawalHeader) error {
	r.headers[h.ID] = h
	return nil
}
func (r *fakeWithdrawalRepo) CreateDetail(*entity.WithdrawalDetail) error { return nil }
func (r *fakeWithdrawalRepo) GetByID(id string) (*entity.WithdrawalHeader, error) {
	return r.headers[id], nil
}
func (r *fakeWithdrawalRepo) GetByCompanyAndCode(string, string) (*entity.WithdrawalHeader, error) {
	return nil, nil
}
func (r *fakeWithdrawalRepo) GetForUpdate(id string) (*entity.WithdrawalHeader, error) {
	return r.headers[id], nil
}
func (r *fakeWithdrawalRepo) UpdateStatus(id, status string) error {
	if h, ok := r.headers[id]; ok {
		h.Status = status
	}
	return nil
}
func (r *fakeWithdrawalRepo) ListByCompany(string, int, int) ([]*entity.WithdrawalHeader, int, error) {
	return nil, 0, nil
}
func (r *fakeWithdrawalRepo) ListDetails(string) ([]*entity.WithdrawalDetail, error) {
	return nil, nil
}

type fakeCompanyRepo struct{ companies map[string]*entity.Company }

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) List(int, int) ([]*entity.Company, int, error) {
	return nil, 0, nil
}

// fakePDFGen registra el documento recibido y retorna bytes fijos.
type fakePDFGen struct {
	lastDoc billing.PDFDocument
}

var _ billing.PDFGenerator = (*fakePDFGen)(nil)

func (g *fakePDFGen) GenerateInvoice(doc billing.PDFDocument) ([]byte, error) {
	g.lastDoc = doc
	return []byte("%PDF-fake"), nil
}

type fakeTaxRepo struct{ taxes map[string]*entity.Tax }

var _ repository.TaxRepository = (*fakeTaxRepo)(nil)

func (r *fakeTaxRepo) Create(t *entity.Tax) error { r.taxes[t.ID] = t; return nil }
func (r *fakeTaxRepo) GetByID(id string) (*entity.Tax, error) {
	return r.taxes[id], nil
}
func (r *fakeTaxRepo) Update(*entity.Tax) error { return nil }
func (r *fakeTaxRepo) UpdateStatus(id, status string) error {
	if t, ok := r.taxes[id]; ok {
		t.Status = status
	}
	return nil
}
func (r *fakeTaxRepo) ListByCompany(string, int, int) ([]*entity.Tax, int, error) {
	return nil, 0, nil
}
func (r *fakeTaxRepo) SoftDelete(string) error { return nil }
