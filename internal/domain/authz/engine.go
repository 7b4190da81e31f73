// Package authz centraliza la tabla de reglas de autorización y visibilidad
// del sistema. Cada handler consulta Decide antes de tocar almacenamiento:
// un DENY corta la petición sin mutación alguna y un FILTER estrecha la query
// de lectura dentro del mismo WHERE (nunca post-filtrado en memoria, para no
// filtrar conteos por canales laterales).
package authz

import "github.com/jhoicas/ServiOrden-api/internal/domain"

// Operation identifica la operación solicitada sobre un recurso.
type Operation string

const (
	OpCreateCompany Operation = "company:create"
	OpReadCompany   Operation = "company:read"

	OpCreateUser Operation = "user:create"
	OpReadUser   Operation = "user:read"
	OpDeleteUser Operation = "user:delete"

	OpCreateClient   Operation = "client:create"
	OpListClients    Operation = "client:list"
	OpCreateEmployee Operation = "employee:create"
	OpListEmployees  Operation = "employee:list"
	OpCreateVehicle  Operation = "vehicle:create"
	OpListVehicles   Operation = "vehicle:list"

	OpCreateWorkOrder  Operation = "workorder:create"
	OpReadWorkOrder    Operation = "workorder:read"
	OpListWorkOrders   Operation = "workorder:list"
	OpUpdateWorkOrder  Operation = "workorder:update"
	OpApproveWorkOrder Operation = "workorder:approve"

	OpCreateExpense Operation = "expense:create"
	OpListExpenses  Operation = "expense:list"

	OpCreateInvoice Operation = "invoice:create"
	OpReadInvoice   Operation = "invoice:read"
	OpListInvoices  Operation = "invoice:list"

	OpProcessPayment Operation = "payment:process"

	OpCreatePreventiveTask   Operation = "preventive:create"
	OpListPreventiveTasks    Operation = "preventive:list"
	OpCompletePreventiveTask Operation = "preventive:complete"

	OpCreateComment Operation = "comment:create"
	OpListComments  Operation = "comment:list"
	OpEditComment   Operation = "comment:edit"
	OpDeleteComment Operation = "comment:delete"

	OpReadNotifications    Operation = "notification:read"
	OpMarkNotificationRead Operation = "notification:mark-read"

	OpViewReports       Operation = "report:view"
	OpViewGlobalReports Operation = "report:view-global"
)

// Resource describe el recurso objetivo de la operación. Solo se llenan los
// campos que aplican; CompanyID vacío significa recurso sin tenant (crear
// empresa, notificaciones propias).
type Resource struct {
	CompanyID    string // tenant del recurso
	Industry     string // industria del tenant (solo workorder:create)
	OwnerID      string // autor del comentario
	RecipientID  string // destinatario de la notificación
	TargetUserID string // usuario objetivo (user:delete, notification:read)
	TargetRole   Role   // rol a asignar (user:create)

	// Filtros explícitos pedidos por el caller en listados de órdenes.
	AssignedToFilter string
	ClientFilter     string
}

// Verdict es el resultado de la evaluación.
type Verdict int

const (
	VerdictDeny Verdict = iota
	VerdictAllow
	VerdictFilter
)

// WorkOrderFilter es el predicado adicional que el repositorio debe aplicar
// en la misma query. Exactamente uno de los tres modos está activo:
// None (conjunto vacío), TechnicianID (asignado a él OR status APPROVED) o
// ClientID (requested_by_client_id = ClientID).
type WorkOrderFilter struct {
	None         bool
	TechnicianID string
	ClientID     string
}

// Decision es el veredicto de la tabla de reglas.
type Decision struct {
	Verdict    Verdict
	WorkOrders *WorkOrderFilter // solo con VerdictFilter
	Err        error            // motivo del DENY (errors.Is contra domain.Err*)
}

func allow() Decision { return Decision{Verdict: VerdictAllow} }

func deny(err error) Decision {
	if err == nil {
		err = domain.ErrForbidden
	}
	return Decision{Verdict: VerdictDeny, Err: err}
}

func filterWorkOrders(f WorkOrderFilter) Decision {
	return Decision{Verdict: VerdictFilter, WorkOrders: &f}
}

// Allowed indica si la operación puede continuar (ALLOW o FILTER).
func (d Decision) Allowed() bool { return d.Verdict != VerdictDeny }

// Decide evalúa la tabla de reglas en orden de precedencia; la primera regla
// que aplica gana:
//
//  1. frontera de tenant (domina todo lo demás)
//  2. gates de escritura por rol (y variante por industria)
//  3. visibilidad por fila para listados/lecturas de órdenes (FILTER)
//  4. propiedad de comentarios/notificaciones
//  5. auto-protección: nadie borra su propia cuenta
func Decide(p Principal, op Operation, res Resource) Decision {
	if !p.Role.Valid() {
		return deny(domain.ErrUnauthorized)
	}

	// Regla 1: frontera de tenant. SUPERADMIN queda exento.
	if p.Role != RoleSuperAdmin && res.CompanyID != "" && res.CompanyID != p.CompanyID {
		return deny(domain.ErrForbidden)
	}

	switch op {
	case OpCreateCompany:
		if p.Role != RoleSuperAdmin {
			return deny(nil)
		}
		return allow()

	case OpReadCompany, OpViewReports:
		// La frontera de tenant ya se validó; cualquier rol del tenant lee.
		return allow()

	case OpViewGlobalReports:
		if p.Role != RoleSuperAdmin {
			return deny(nil)
		}
		return allow()

	case OpCreateUser:
		switch p.Role {
		case RoleSuperAdmin:
			return allow()
		case RoleAdmin:
			// Admins solo crean CLIENT o EMPLOYEE dentro de su empresa
			// (la frontera de tenant ya garantiza la empresa).
			if !res.TargetRole.in(RoleClient, RoleEmployee) {
				return deny(nil)
			}
			return allow()
		default:
			return deny(nil)
		}

	case OpReadUser:
		return allow()

	case OpDeleteUser:
		// Regla 5: auto-protección, incondicional e independiente del rol.
		if res.TargetUserID == p.UserID {
			return deny(domain.ErrForbidden)
		}
		if !p.Role.in(RoleSuperAdmin, RoleAdmin) {
			return deny(nil)
		}
		return allow()

	case OpCreateClient, OpCreateEmployee, OpCreateInvoice, OpProcessPayment,
		OpApproveWorkOrder, OpCreatePreventiveTask:
		if !p.Role.in(RoleSuperAdmin, RoleAdmin) {
			return deny(nil)
		}
		return allow()

	case OpCreateVehicle, OpCompletePreventiveTask:
		if !p.Role.in(RoleSuperAdmin, RoleAdmin, RoleEmployee) {
			return deny(nil)
		}
		return allow()

	case OpCreateWorkOrder:
		// Variante por industria: en furniture solo los admins crean órdenes.
		if res.Industry == "furniture" {
			if !p.Role.in(RoleSuperAdmin, RoleAdmin) {
				return deny(nil)
			}
			return allow()
		}
		if !p.Role.in(RoleSuperAdmin, RoleAdmin, RoleEmployee) {
			return deny(nil)
		}
		return allow()

	case OpUpdateWorkOrder, OpCreateExpense:
		if !p.Role.in(RoleSuperAdmin, RoleAdmin, RoleEmployee) {
			return deny(nil)
		}
		return allow()

	case OpListWorkOrders, OpReadWorkOrder:
		return workOrderVisibility(p, res)

	case OpListInvoices:
		// Los clientes solo ven facturas de sus propias órdenes.
		if p.Role == RoleClient {
			if p.ClientID == nil || *p.ClientID == "" {
				return filterWorkOrders(WorkOrderFilter{None: true})
			}
			return filterWorkOrders(WorkOrderFilter{ClientID: *p.ClientID})
		}
		return allow()

	case OpReadInvoice, OpListClients, OpListEmployees, OpListVehicles,
		OpListExpenses, OpListPreventiveTasks, OpCreateComment, OpListComments:
		return allow()

	case OpEditComment, OpDeleteComment:
		if p.Role.in(RoleSuperAdmin, RoleAdmin) || res.OwnerID == p.UserID {
			return allow()
		}
		return deny(nil)

	case OpReadNotifications:
		if p.Role == RoleSuperAdmin || res.TargetUserID == p.UserID {
			return allow()
		}
		return deny(nil)

	case OpMarkNotificationRead:
		if p.Role == RoleSuperAdmin || res.RecipientID == p.UserID {
			return allow()
		}
		return deny(nil)
	}

	// Operación desconocida: denegar por defecto.
	return deny(nil)
}

// workOrderVisibility aplica la regla 3: visibilidad por fila.
func workOrderVisibility(p Principal, res Resource) Decision {
	switch p.Role {
	case RoleSuperAdmin, RoleAdmin:
		// Sin filtro de fila; el scoping por tenant lo pone la query base.
		return allow()

	case RoleEmployee:
		// Visible: asignadas a él OR en estado APPROVED. Un filtro explícito
		// assigned_to hacia otro técnico produce conjunto vacío (no puede
		// usarlo para espiar el backlog ajeno); hacia sí mismo colapsa al
		// mismo predicado OR.
		if res.AssignedToFilter != "" && res.AssignedToFilter != p.UserID {
			return filterWorkOrders(WorkOrderFilter{None: true})
		}
		return filterWorkOrders(WorkOrderFilter{TechnicianID: p.UserID})

	case RoleClient:
		// Visible: órdenes solicitadas por su Client enlazado. Sin enlace,
		// conjunto vacío (nunca error). Un filtro client_id ajeno también
		// produce conjunto vacío.
		if p.ClientID == nil || *p.ClientID == "" {
			return filterWorkOrders(WorkOrderFilter{None: true})
		}
		if res.ClientFilter != "" && res.ClientFilter != *p.ClientID {
			return filterWorkOrders(WorkOrderFilter{None: true})
		}
		return filterWorkOrders(WorkOrderFilter{ClientID: *p.ClientID})
	}
	return deny(nil)
}
