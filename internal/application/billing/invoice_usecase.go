package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// InvoiceUseCase crea facturas y las renderiza en PDF. La facturación no toca el
// inventario: el descargo de stock ocurre en el retiro que la factura referencia.
type InvoiceUseCase struct {
	txRunner       TxRunner
	invoiceRepo    repository.InvoiceRepository
	clientRepo     repository.ClientRepository
	productRepo    repository.ProductRepository
	taxRepo        repository.TaxRepository
	withdrawalRepo repository.WithdrawalRepository
	companyRepo    repository.CompanyRepository
	pdfGen         PDFGenerator
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	taxRepo repository.TaxRepository,
	withdrawalRepo repository.WithdrawalRepository,
	companyRepo repository.CompanyRepository,
	pdfGen PDFGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:       txRunner,
		invoiceRepo:    invoiceRepo,
		clientRepo:     clientRepo,
		productRepo:    productRepo,
		taxRepo:        taxRepo,
		withdrawalRepo: withdrawalRepo,
		companyRepo:    companyRepo,
		pdfGen:         pdfGen,
	}
}

// Create valida cliente, retiro opcional y líneas, calcula subtotal/impuestos/total
// y persiste cabecera + detalles de forma atómica. Los totales se calculan en el
// servidor con el impuesto vigente del producto; el cliente no los envía.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || in.Number == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !client.IsActive() {
		return nil, domain.ErrConflict
	}

	// Retiro opcional: debe ser de la empresa y seguir activo
	if in.WithdrawalID != "" {
		wd, err := uc.withdrawalRepo.GetByID(in.WithdrawalID)
		if err != nil || wd == nil {
			return nil, domain.ErrNotFound
		}
		if wd.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if wd.Status != entity.HeaderStatusActive {
			return nil, domain.ErrInvalidStateTransition
		}
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		ClientID:     in.ClientID,
		WithdrawalID: in.WithdrawalID,
		Prefix:       in.Prefix,
		Number:       in.Number,
		Date:         now,
		Subtotal:     decimal.Zero,
		TaxTotal:     decimal.Zero,
		Total:        decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    userID,
	}

	var details []*entity.InvoiceDetail
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if !product.IsActive() {
			return nil, domain.ErrConflict
		}

		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}

		// Tasa del impuesto del producto, como fracción (19% -> 0.19)
		taxRate := decimal.Zero
		if product.TaxID != "" {
			tax, err := uc.taxRepo.GetByID(product.TaxID)
			if err == nil && tax != nil && tax.Status == entity.TaxStatusActive {
				taxRate = tax.Rate.Div(decimal.NewFromInt(100))
			}
		}

		subtotal := line.Quantity.Mul(unitPrice)
		details = append(details, &entity.InvoiceDetail{
			ID:        uuid.New().String(),
			InvoiceID: invoice.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			TaxRate:   taxRate,
			Subtotal:  subtotal,
		})
		invoice.Subtotal = invoice.Subtotal.Add(subtotal)
		invoice.TaxTotal = invoice.TaxTotal.Add(subtotal.Mul(taxRate))
	}
	invoice.Total = invoice.Subtotal.Add(invoice.TaxTotal)

	err = uc.txRunner.Run(ctx, func(r *TxRepos) error {
		if err := r.Invoices.Create(invoice); err != nil {
			return err
		}
		for _, d := range details {
			if err := r.Invoices.CreateDetail(d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, details), nil
}

// GetByID obtiene una factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}
	if invoice.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.invoiceRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, details), nil
}

// List lista facturas de la empresa con paginación.
func (uc *InvoiceUseCase) List(companyID string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.Normalize()
	list, total, err := uc.invoiceRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, nil))
	}
	return &dto.InvoiceListResponse{
		Data: items,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// GeneratePDF renderiza la factura como PDF listo para descargar.
func (uc *InvoiceUseCase) GeneratePDF(companyID, id string) ([]byte, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	details, err := uc.invoiceRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(invoice.ClientID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(details))
	for _, d := range details {
		if product, err := uc.productRepo.GetByIDIncludingDeleted(d.ProductID); err == nil && product != nil {
			names[d.ProductID] = product.Name
		}
	}

	return uc.pdfGen.GenerateInvoice(PDFDocument{
		Company:      company,
		Client:       client,
		Invoice:      invoice,
		Details:      details,
		ProductNames: names,
	})
}

func toInvoiceResponse(inv *entity.Invoice, details []*entity.InvoiceDetail) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		CompanyID:    inv.CompanyID,
		ClientID:     inv.ClientID,
		WithdrawalID: inv.WithdrawalID,
		Prefix:       inv.Prefix,
		Number:       inv.Number,
		Date:         inv.Date,
		Subtotal:     inv.Subtotal,
		TaxTotal:     inv.TaxTotal,
		Total:        inv.Total,
		CreatedAt:    inv.CreatedAt,
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.InvoiceDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			TaxRate:   d.TaxRate,
			Subtotal:  d.Subtotal,
		})
	}
	return resp
}
