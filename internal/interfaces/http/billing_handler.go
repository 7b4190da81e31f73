package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ServiOrden-api/internal/application/billing"
	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
)

// BillingHandler maneja facturas, gastos y abonos.
type BillingHandler struct {
	invoices *billing.InvoiceUseCase
	expenses *billing.ExpenseUseCase
	payments *billing.PaymentUseCase
	pdf      *billing.PDFUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(
	invoices *billing.InvoiceUseCase,
	expenses *billing.ExpenseUseCase,
	payments *billing.PaymentUseCase,
	pdf *billing.PDFUseCase,
) *BillingHandler {
	return &BillingHandler{invoices: invoices, expenses: expenses, payments: payments, pdf: pdf}
}

// CreateInvoice POST /api/companies/:companyID/invoices
func (h *BillingHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invoices.Create(c.UserContext(), GetPrincipal(c), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInvoices GET /api/companies/:companyID/invoices
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	out, err := h.invoices.List(c.UserContext(), GetPrincipal(c), c.Params("companyID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetInvoice GET /api/companies/:companyID/invoices/:id
func (h *BillingHandler) GetInvoice(c *fiber.Ctx) error {
	out, err := h.invoices.Get(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InvoicePDF GET /api/companies/:companyID/invoices/:id/pdf
func (h *BillingHandler) InvoicePDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.Generate(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// CreateExpense POST /api/companies/:companyID/workorders/:id/expenses
func (h *BillingHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.expenses.Create(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExpenses GET /api/companies/:companyID/workorders/:id/expenses
func (h *BillingHandler) ListExpenses(c *fiber.Ctx) error {
	out, err := h.expenses.List(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProcessPayment POST /api/companies/:companyID/payments
func (h *BillingHandler) ProcessPayment(c *fiber.Ctx) error {
	var in dto.ProcessPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.Process(c.UserContext(), GetPrincipal(c), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments GET /api/companies/:companyID/workorders/:id/payments
func (h *BillingHandler) ListPayments(c *fiber.Ctx) error {
	out, err := h.payments.ListByWorkOrder(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
