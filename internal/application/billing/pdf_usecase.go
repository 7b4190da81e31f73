package billing

import (
	"context"

	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// PDFUseCase generación del PDF de una factura.
type PDFUseCase struct {
	invoices  *InvoiceUseCase
	orders    repository.WorkOrderRepository
	companies repository.CompanyRepository
	clients   repository.ClientRepository
	generator PDFGenerator
	log       *logger.Logger
}

// NewPDFUseCase crea el caso de uso de PDF de facturas.
func NewPDFUseCase(
	invoices *InvoiceUseCase,
	orders repository.WorkOrderRepository,
	companies repository.CompanyRepository,
	clients repository.ClientRepository,
	generator PDFGenerator,
	log *logger.Logger,
) *PDFUseCase {
	return &PDFUseCase{
		invoices:  invoices,
		orders:    orders,
		companies: companies,
		clients:   clients,
		generator: generator,
		log:       log,
	}
}

// Generate produce el PDF de la factura. Aplica la misma visibilidad que la
// lectura de la factura.
func (uc *PDFUseCase) Generate(ctx context.Context, p authz.Principal, companyID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoices.findVisible(p, companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	order, err := uc.orders.GetByID(invoice.WorkOrderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	var client *entity.Client
	if order.RequestedByClientID != nil && *order.RequestedByClientID != "" {
		client, err = uc.clients.GetByID(*order.RequestedByClientID)
		if err != nil {
			return nil, "", err
		}
	}

	pdf, err := uc.generator.InvoicePDF(invoice, order, company, client)
	if err != nil {
		return nil, "", err
	}
	uc.log.Debug().Str("invoice_id", invoice.ID).Int("bytes", len(pdf)).Msg("pdf de factura generado")
	return pdf, invoice.InvoiceNumber + ".pdf", nil
}
