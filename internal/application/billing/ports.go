package billing

import (
	"context"

	"github.com/soportek/almacen-api/internal/domain/entity"
	"github.com/soportek/almacen-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios ligados a una misma transacción de facturación.
type TxRepos struct {
	Invoices      repository.InvoiceRepository
	CashRegisters repository.CashRegisterRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn retorna error se revierte todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *TxRepos) error) error
}

// PDFDocument reúne los datos necesarios para renderizar una factura.
type PDFDocument struct {
	Company      *entity.Company
	Client       *entity.Client
	Invoice      *entity.Invoice
	Details      []*entity.InvoiceDetail
	ProductNames map[string]string
}

// PDFGenerator renderiza la factura como documento PDF.
type PDFGenerator interface {
	GenerateInvoice(doc PDFDocument) ([]byte, error)
}
