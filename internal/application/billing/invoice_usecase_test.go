package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soportek/almacen-api/internal/application/billing"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
)

const (
	clientID     = "cli-1"
	invProductID = "prod-1"
	taxID        = "tax-19"
	withdrawalID = "ret-1"
)

type invoiceFixture struct {
	uc     *billing.InvoiceUseCase
	store  *billingStore
	pdfGen *fakePDFGen
	wdRepo *fakeWithdrawalRepo
}

func newInvoiceFixture() *invoiceFixture {
	store := newBillingStore()
	now := time.Now()

	clients := &fakeClientRepo{clients: map[string]*entity.Client{
		clientID: {ID: clientID, CompanyID: companyID, Document: "1030567890", Name: "Cliente Final", Status: entity.PartyStatusActive},
	}}
	taxes := &fakeTaxRepo{taxes: map[string]*entity.Tax{
		taxID: {ID: taxID, CompanyID: companyID, Name: "IVA 19%", Rate: decimal.NewFromInt(19), Status: entity.TaxStatusActive},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		invProductID: {
			ID:        invProductID,
			CompanyID: companyID,
			Name:      "Martillo",
			Price:     decimal.NewFromInt(200),
			TaxID:     taxID,
			Status:    entity.ProductStatusActive,
		},
	}}
	withdrawals := &fakeWithdrawalRepo{headers: map[string]*entity.WithdrawalHeader{
		withdrawalID: {ID: withdrawalID, CompanyID: companyID, Code: "RET-001", Status: entity.HeaderStatusActive, CreatedAt: now},
	}}
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		companyID: {ID: companyID, Name: "Ferretería Central", TaxID: "900111222"},
	}}
	pdfGen := &fakePDFGen{}

	runner := &billingTxRunner{store: store}
	uc := billing.NewInvoiceUseCase(runner, &fakeInvoiceRepo{store}, clients, products, taxes, withdrawals, companies, pdfGen)
	return &invoiceFixture{uc: uc, store: store, pdfGen: pdfGen, wdRepo: withdrawals}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y totales
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice_Create_CalculaTotalesEnElServidor(t *testing.T) {
	f := newInvoiceFixture()

	out, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateInvoiceRequest{
		ClientID: clientID,
		Prefix:   "FV",
		Number:   "0001",
		Lines: []dto.InvoiceLineRequest{
			{ProductID: invProductID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	// Subtotal 200, IVA 19% = 38, total 238
	assert.True(t, decimal.NewFromInt(200).Equal(out.Subtotal), "subtotal: %s", out.Subtotal)
	assert.True(t, decimal.NewFromInt(38).Equal(out.TaxTotal), "impuestos: %s", out.TaxTotal)
	assert.True(t, decimal.NewFromInt(238).Equal(out.Total), "total: %s", out.Total)

	require.Len(t, out.Details, 1)
	assert.True(t, decimal.RequireFromString("0.19").Equal(out.Details[0].TaxRate),
		"la tasa se guarda como fracción")
	assert.Len(t, f.store.invoices, 1)
}

func TestInvoice_Create_PrecioCeroUsaElPrecioDelProducto(t *testing.T) {
	f := newInvoiceFixture()

	out, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateInvoiceRequest{
		ClientID: clientID,
		Number:   "0001",
		Lines: []dto.InvoiceLineRequest{
			{ProductID: invProductID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(out.Details[0].UnitPrice),
		"debe tomar el precio de venta del producto")
}

func TestInvoice_Create_RetiroAnuladoRechazado(t *testing.T) {
	f := newInvoiceFixture()
	f.wdRepo.headers[withdrawalID].Status = entity.HeaderStatusVoided

	_, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateInvoiceRequest{
		ClientID:     clientID,
		WithdrawalID: withdrawalID,
		Number:       "0001",
		Lines: []dto.InvoiceLineRequest{
			{ProductID: invProductID, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestInvoice_Create_ClienteInexistente(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateInvoiceRequest{
		ClientID: "no-existe",
		Number:   "0001",
		Lines: []dto.InvoiceLineRequest{
			{ProductID: invProductID, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice_GeneratePDF_EntregaDocumentoCompleto(t *testing.T) {
	f := newInvoiceFixture()

	created, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateInvoiceRequest{
		ClientID: clientID,
		Prefix:   "FV",
		Number:   "0001",
		Lines: []dto.InvoiceLineRequest{
			{ProductID: invProductID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	pdf, err := f.uc.GeneratePDF(companyID, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	doc := f.pdfGen.lastDoc
	require.NotNil(t, doc.Invoice)
	assert.Equal(t, created.ID, doc.Invoice.ID)
	assert.Equal(t, "Ferretería Central", doc.Company.Name)
	assert.Equal(t, "Cliente Final", doc.Client.Name)
	require.Len(t, doc.Details, 1)
	assert.Equal(t, "Martillo", doc.ProductNames[invProductID], "el PDF recibe los nombres de producto resueltos")
}

func TestInvoice_GeneratePDF_FacturaInexistente(t *testing.T) {
	f := newInvoiceFixture()
	_, err := f.uc.GeneratePDF(companyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
