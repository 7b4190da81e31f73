package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
)

// WorkOrderQuery parámetros de listado de órdenes. Visibility viene del motor
// de autorización y se traduce a SQL en la misma query (nunca post-filtrado).
type WorkOrderQuery struct {
	Status     string
	AssignedTo string
	Visibility *authz.WorkOrderFilter
	Limit      int
	Offset     int
}

// WorkOrderRepository define el puerto de persistencia para WorkOrder.
type WorkOrderRepository interface {
	Create(order *entity.WorkOrder) error
	// Get aplica la visibilidad dentro del WHERE: una orden fuera del
	// conjunto visible es indistinguible de una inexistente.
	Get(companyID, id string, visibility *authz.WorkOrderFilter) (*entity.WorkOrder, error)
	GetByID(id string) (*entity.WorkOrder, error)
	List(companyID string, q WorkOrderQuery) ([]*entity.WorkOrder, error)
	Update(order *entity.WorkOrder) error
	UpdateStatus(id, status string) error
	// AddPayment suma al saldo pagado con guarda atómica
	// (paid_amount + amount <= quoted_price) y devuelve el saldo resultante.
	// Devuelve false si la guarda rechazó la actualización.
	AddPayment(id string, amount decimal.Decimal) (decimal.Decimal, bool, error)
}
