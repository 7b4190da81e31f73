package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA = "company-a"
	companyB = "company-b"
)

func superadmin() authz.Principal {
	return authz.Principal{UserID: "u-super", Role: authz.RoleSuperAdmin}
}

func admin(company string) authz.Principal {
	return authz.Principal{UserID: "u-admin", CompanyID: company, Role: authz.RoleAdmin}
}

func employee(company string) authz.Principal {
	return authz.Principal{UserID: "u-emp", CompanyID: company, Role: authz.RoleEmployee}
}

func client(company string, clientID string) authz.Principal {
	p := authz.Principal{UserID: "u-client", CompanyID: company, Role: authz.RoleClient}
	if clientID != "" {
		p.ClientID = &clientID
	}
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 1: frontera de tenant — domina todas las demás reglas
// ──────────────────────────────────────────────────────────────────────────────

// Para todo rol distinto de SUPERADMIN, cualquier operación sobre un recurso
// de otra empresa debe denegarse, sin importar los gates posteriores.
func TestDecide_FronteraTenant_DominaTodo(t *testing.T) {
	principals := []authz.Principal{
		admin(companyA),
		employee(companyA),
		client(companyA, "cl-1"),
	}
	ops := []authz.Operation{
		authz.OpReadCompany, authz.OpCreateClient, authz.OpCreateEmployee,
		authz.OpCreateVehicle, authz.OpCreateWorkOrder, authz.OpListWorkOrders,
		authz.OpApproveWorkOrder, authz.OpCreateInvoice, authz.OpProcessPayment,
		authz.OpCreatePreventiveTask, authz.OpCompletePreventiveTask,
		authz.OpViewReports, authz.OpListInvoices,
	}
	for _, p := range principals {
		for _, op := range ops {
			d := authz.Decide(p, op, authz.Resource{CompanyID: companyB})
			assert.Equal(t, authz.VerdictDeny, d.Verdict,
				"rol %s, op %s: recurso de otro tenant debe denegarse", p.Role, op)
		}
	}
}

// SUPERADMIN no está sujeto a la frontera de tenant.
func TestDecide_SuperAdmin_SinFronteraTenant(t *testing.T) {
	d := authz.Decide(superadmin(), authz.OpListWorkOrders, authz.Resource{CompanyID: companyB})
	assert.Equal(t, authz.VerdictAllow, d.Verdict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 2: gates de escritura por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_CrearEmpresa_SoloSuperAdmin(t *testing.T) {
	assert.True(t, authz.Decide(superadmin(), authz.OpCreateCompany, authz.Resource{}).Allowed())
	assert.False(t, authz.Decide(admin(companyA), authz.OpCreateCompany, authz.Resource{}).Allowed())
	assert.False(t, authz.Decide(employee(companyA), authz.OpCreateCompany, authz.Resource{}).Allowed())
}

func TestDecide_CrearClienteYEmpleado_RequiereAdmin(t *testing.T) {
	res := authz.Resource{CompanyID: companyA}
	for _, op := range []authz.Operation{authz.OpCreateClient, authz.OpCreateEmployee} {
		assert.True(t, authz.Decide(admin(companyA), op, res).Allowed(), "%s admin", op)
		assert.False(t, authz.Decide(employee(companyA), op, res).Allowed(), "%s employee", op)
		assert.False(t, authz.Decide(client(companyA, "cl-1"), op, res).Allowed(), "%s client", op)
	}
}

func TestDecide_CrearVehiculo_PermiteEmpleado(t *testing.T) {
	res := authz.Resource{CompanyID: companyA}
	assert.True(t, authz.Decide(employee(companyA), authz.OpCreateVehicle, res).Allowed())
	assert.False(t, authz.Decide(client(companyA, "cl-1"), authz.OpCreateVehicle, res).Allowed())
}

// En furniture solo los admins crean órdenes; en las demás industrias los
// empleados también.
func TestDecide_CrearOrden_VarianteIndustria(t *testing.T) {
	furniture := authz.Resource{CompanyID: companyA, Industry: "furniture"}
	automotive := authz.Resource{CompanyID: companyA, Industry: "automotive"}

	assert.True(t, authz.Decide(admin(companyA), authz.OpCreateWorkOrder, furniture).Allowed())
	assert.False(t, authz.Decide(employee(companyA), authz.OpCreateWorkOrder, furniture).Allowed(),
		"en furniture un empleado no crea órdenes")
	assert.True(t, authz.Decide(employee(companyA), authz.OpCreateWorkOrder, automotive).Allowed())
	assert.False(t, authz.Decide(client(companyA, "cl-1"), authz.OpCreateWorkOrder, automotive).Allowed())
}

func TestDecide_AprobarOrdenFacturarYPagar_SoloAdmins(t *testing.T) {
	res := authz.Resource{CompanyID: companyA}
	for _, op := range []authz.Operation{authz.OpApproveWorkOrder, authz.OpCreateInvoice, authz.OpProcessPayment} {
		assert.True(t, authz.Decide(superadmin(), op, res).Allowed(), "%s superadmin", op)
		assert.True(t, authz.Decide(admin(companyA), op, res).Allowed(), "%s admin", op)
		assert.False(t, authz.Decide(employee(companyA), op, res).Allowed(), "%s employee", op)
	}
}

func TestDecide_Preventivas_CrearAdmin_CompletarEmpleado(t *testing.T) {
	res := authz.Resource{CompanyID: companyA}
	assert.False(t, authz.Decide(employee(companyA), authz.OpCreatePreventiveTask, res).Allowed())
	assert.True(t, authz.Decide(admin(companyA), authz.OpCreatePreventiveTask, res).Allowed())
	assert.True(t, authz.Decide(employee(companyA), authz.OpCompletePreventiveTask, res).Allowed())
	assert.False(t, authz.Decide(client(companyA, "cl-1"), authz.OpCompletePreventiveTask, res).Allowed())
}

func TestDecide_CrearUsuario_AdminLimitadoARolesMenores(t *testing.T) {
	res := func(target authz.Role) authz.Resource {
		return authz.Resource{CompanyID: companyA, TargetRole: target}
	}
	assert.True(t, authz.Decide(admin(companyA), authz.OpCreateUser, res(authz.RoleEmployee)).Allowed())
	assert.True(t, authz.Decide(admin(companyA), authz.OpCreateUser, res(authz.RoleClient)).Allowed())
	assert.False(t, authz.Decide(admin(companyA), authz.OpCreateUser, res(authz.RoleAdmin)).Allowed(),
		"un admin no crea otros admins")
	assert.False(t, authz.Decide(employee(companyA), authz.OpCreateUser, res(authz.RoleClient)).Allowed())
	assert.True(t, authz.Decide(superadmin(), authz.OpCreateUser, res(authz.RoleAdmin)).Allowed())
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 3: visibilidad por fila de órdenes de trabajo (FILTER)
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_ListarOrdenes_EmpleadoRecibeFiltroOR(t *testing.T) {
	d := authz.Decide(employee(companyA), authz.OpListWorkOrders, authz.Resource{CompanyID: companyA})
	require.Equal(t, authz.VerdictFilter, d.Verdict)
	require.NotNil(t, d.WorkOrders)
	assert.Equal(t, "u-emp", d.WorkOrders.TechnicianID,
		"el filtro debe ser: asignadas a él OR aprobadas")
	assert.False(t, d.WorkOrders.None)
}

func TestDecide_ListarOrdenes_FiltroAjenoProduceVacio(t *testing.T) {
	d := authz.Decide(employee(companyA), authz.OpListWorkOrders,
		authz.Resource{CompanyID: companyA, AssignedToFilter: "otro-tecnico"})
	require.Equal(t, authz.VerdictFilter, d.Verdict)
	assert.True(t, d.WorkOrders.None,
		"assigned_to hacia otro técnico debe dar conjunto vacío, no error")
}

func TestDecide_ListarOrdenes_FiltroPropioColapsaAlMismoOR(t *testing.T) {
	d := authz.Decide(employee(companyA), authz.OpListWorkOrders,
		authz.Resource{CompanyID: companyA, AssignedToFilter: "u-emp"})
	require.Equal(t, authz.VerdictFilter, d.Verdict)
	assert.Equal(t, "u-emp", d.WorkOrders.TechnicianID)
	assert.False(t, d.WorkOrders.None)
}

func TestDecide_ListarOrdenes_ClienteSoloLasSuyas(t *testing.T) {
	d := authz.Decide(client(companyA, "cl-1"), authz.OpListWorkOrders,
		authz.Resource{CompanyID: companyA})
	require.Equal(t, authz.VerdictFilter, d.Verdict)
	assert.Equal(t, "cl-1", d.WorkOrders.ClientID)
}

func TestDecide_ListarOrdenes_ClienteSinEnlaceVeVacio(t *testing.T) {
	d := authz.Decide(client(companyA, ""), authz.OpListWorkOrders,
		authz.Resource{CompanyID: companyA})
	require.Equal(t, authz.VerdictFilter, d.Verdict)
	assert.True(t, d.WorkOrders.None, "cliente sin client_id enlazado: conjunto vacío, nunca error")
}

func TestDecide_ListarOrdenes_ClienteConFiltroAjenoVeVacio(t *testing.T) {
	d := authz.Decide(client(companyA, "cl-1"), authz.OpListWorkOrders,
		authz.Resource{CompanyID: companyA, ClientFilter: "cl-2"})
	require.Equal(t, authz.VerdictFilter, d.Verdict)
	assert.True(t, d.WorkOrders.None)
}

func TestDecide_ListarOrdenes_AdminSinFiltroDeFila(t *testing.T) {
	d := authz.Decide(admin(companyA), authz.OpListWorkOrders, authz.Resource{CompanyID: companyA})
	assert.Equal(t, authz.VerdictAllow, d.Verdict)
	assert.Nil(t, d.WorkOrders)
}

func TestDecide_ListarFacturas_ClienteFiltradoPorSusOrdenes(t *testing.T) {
	d := authz.Decide(client(companyA, "cl-1"), authz.OpListInvoices,
		authz.Resource{CompanyID: companyA})
	require.Equal(t, authz.VerdictFilter, d.Verdict)
	assert.Equal(t, "cl-1", d.WorkOrders.ClientID)

	sinEnlace := authz.Decide(client(companyA, ""), authz.OpListInvoices,
		authz.Resource{CompanyID: companyA})
	require.Equal(t, authz.VerdictFilter, sinEnlace.Verdict)
	assert.True(t, sinEnlace.WorkOrders.None)
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 4: propiedad de comentarios y notificaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_EditarComentario_AdminOAutor(t *testing.T) {
	propio := authz.Resource{CompanyID: companyA, OwnerID: "u-emp"}
	ajeno := authz.Resource{CompanyID: companyA, OwnerID: "otro"}

	assert.True(t, authz.Decide(employee(companyA), authz.OpEditComment, propio).Allowed())
	assert.False(t, authz.Decide(employee(companyA), authz.OpEditComment, ajeno).Allowed())
	assert.True(t, authz.Decide(admin(companyA), authz.OpDeleteComment, ajeno).Allowed(),
		"admin puede borrar comentarios ajenos de su tenant")
}

func TestDecide_Notificaciones_SoloDestinatarioOSuperAdmin(t *testing.T) {
	propias := authz.Resource{TargetUserID: "u-emp"}
	ajenas := authz.Resource{TargetUserID: "otro"}

	assert.True(t, authz.Decide(employee(companyA), authz.OpReadNotifications, propias).Allowed())
	assert.False(t, authz.Decide(employee(companyA), authz.OpReadNotifications, ajenas).Allowed())
	assert.True(t, authz.Decide(superadmin(), authz.OpReadNotifications, ajenas).Allowed())

	assert.True(t, authz.Decide(employee(companyA), authz.OpMarkNotificationRead,
		authz.Resource{RecipientID: "u-emp"}).Allowed())
	assert.False(t, authz.Decide(employee(companyA), authz.OpMarkNotificationRead,
		authz.Resource{RecipientID: "otro"}).Allowed())
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 5: auto-protección
// ──────────────────────────────────────────────────────────────────────────────

// Nadie borra su propia cuenta, ni siquiera SUPERADMIN.
func TestDecide_AutoBorrado_DenegadoIncondicional(t *testing.T) {
	for _, p := range []authz.Principal{superadmin(), admin(companyA), employee(companyA)} {
		d := authz.Decide(p, authz.OpDeleteUser,
			authz.Resource{CompanyID: p.CompanyID, TargetUserID: p.UserID})
		assert.Equal(t, authz.VerdictDeny, d.Verdict, "rol %s no debe poder auto-borrarse", p.Role)
	}
}

func TestDecide_BorrarOtroUsuario_RequiereAdmin(t *testing.T) {
	res := authz.Resource{CompanyID: companyA, TargetUserID: "otro"}
	assert.True(t, authz.Decide(admin(companyA), authz.OpDeleteUser, res).Allowed())
	assert.False(t, authz.Decide(employee(companyA), authz.OpDeleteUser, res).Allowed())
}

// ──────────────────────────────────────────────────────────────────────────────
// Varios
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRole(t *testing.T) {
	r, err := authz.ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, r)

	_, err = authz.ParseRole("gerente")
	assert.Error(t, err, "rol fuera del conjunto cerrado debe rechazarse")
}

func TestDecide_RolInvalido_Deniega(t *testing.T) {
	p := authz.Principal{UserID: "x", CompanyID: companyA, Role: "gerente"}
	d := authz.Decide(p, authz.OpListWorkOrders, authz.Resource{CompanyID: companyA})
	assert.Equal(t, authz.VerdictDeny, d.Verdict)
}

func TestDecide_OperacionDesconocida_DeniegaPorDefecto(t *testing.T) {
	d := authz.Decide(admin(companyA), authz.Operation("misterio"), authz.Resource{CompanyID: companyA})
	assert.Equal(t, authz.VerdictDeny, d.Verdict)
}

func TestDecide_ReporteGlobal_SoloSuperAdmin(t *testing.T) {
	assert.True(t, authz.Decide(superadmin(), authz.OpViewGlobalReports, authz.Resource{}).Allowed())
	assert.False(t, authz.Decide(admin(companyA), authz.OpViewGlobalReports, authz.Resource{}).Allowed())
}
