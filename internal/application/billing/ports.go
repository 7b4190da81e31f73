// Package billing implementa los casos de uso de facturación, gastos y abonos
// sobre órdenes de trabajo.
package billing

import (
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios que participan en la transacción de pago.
type TxRepos struct {
	Orders   repository.WorkOrderRepository
	Payments repository.PaymentRepository
}

// TxRunner ejecuta fn dentro de una transacción: inserción del pago y
// actualización del saldo commitean o se revierten juntas.
type TxRunner interface {
	WithinTx(fn func(TxRepos) error) error
}

// PDFGenerator genera la representación PDF de una factura.
type PDFGenerator interface {
	InvoicePDF(invoice *entity.Invoice, order *entity.WorkOrder, company *entity.Company, client *entity.Client) ([]byte, error)
}
