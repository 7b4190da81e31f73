package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ServiOrden-api/internal/application/auth"
	"github.com/jhoicas/ServiOrden-api/internal/application/billing"
	"github.com/jhoicas/ServiOrden-api/internal/application/maintenance"
	"github.com/jhoicas/ServiOrden-api/internal/application/usecase"
	"github.com/jhoicas/ServiOrden-api/internal/application/workorder"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver       PrincipalResolver
	AuthUC         *auth.UseCase
	CompanyUC      *usecase.CompanyUseCase
	CRMUC          *usecase.CRMUseCase
	WorkOrderUC    *workorder.UseCase
	CommentUC      *usecase.CommentUseCase
	InvoiceUC      *billing.InvoiceUseCase
	ExpenseUC      *billing.ExpenseUseCase
	PaymentUC      *billing.PaymentUseCase
	PDFUC          *billing.PDFUseCase
	MaintenanceUC  *maintenance.UseCase
	NotificationUC *usecase.NotificationUseCase
	ReportUC       *usecase.ReportUseCase
	UploadUC       *usecase.UploadUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Resolver))

	// Usuarios
	users := protected.Group("/users")
	users.Get("/me", authHandler.Me)
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)
	users.Get("/:id", authHandler.GetUser)
	users.Delete("/:id", authHandler.DeleteUser)

	// Subida de archivos (recibos, adjuntos)
	uploadHandler := NewUploadHandler(deps.UploadUC)
	protected.Post("/upload", uploadHandler.Upload)

	// Notificaciones
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	users.Get("/:id/notifications", notificationHandler.List)
	protected.Put("/notifications/:id/read", notificationHandler.MarkRead)

	// Empresas
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Subrecursos por tenant
	tenant := companies.Group("/:companyID")

	crmHandler := NewCRMHandler(deps.CRMUC)
	tenant.Post("/clients", crmHandler.CreateClient)
	tenant.Get("/clients", crmHandler.ListClients)
	tenant.Post("/employees", crmHandler.CreateEmployee)
	tenant.Get("/employees", crmHandler.ListEmployees)
	tenant.Post("/vehicles", crmHandler.CreateVehicle)
	tenant.Get("/vehicles", crmHandler.ListVehicles)

	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC, deps.CommentUC)
	tenant.Post("/workorders", workOrderHandler.Create)
	tenant.Get("/workorders", workOrderHandler.List)
	tenant.Get("/workorders/:id", workOrderHandler.GetByID)
	tenant.Put("/workorders/:id", workOrderHandler.Update)
	tenant.Post("/workorders/:id/approve", workOrderHandler.Approve)
	tenant.Post("/workorders/:id/comments", workOrderHandler.CreateComment)
	tenant.Get("/workorders/:id/comments", workOrderHandler.ListComments)
	tenant.Put("/comments/:commentID", workOrderHandler.UpdateComment)
	tenant.Delete("/comments/:commentID", workOrderHandler.DeleteComment)

	billingHandler := NewBillingHandler(deps.InvoiceUC, deps.ExpenseUC, deps.PaymentUC, deps.PDFUC)
	tenant.Post("/workorders/:id/expenses", billingHandler.CreateExpense)
	tenant.Get("/workorders/:id/expenses", billingHandler.ListExpenses)
	tenant.Get("/workorders/:id/payments", billingHandler.ListPayments)
	tenant.Post("/invoices", billingHandler.CreateInvoice)
	tenant.Get("/invoices", billingHandler.ListInvoices)
	tenant.Get("/invoices/:id", billingHandler.GetInvoice)
	tenant.Get("/invoices/:id/pdf", billingHandler.InvoicePDF)
	tenant.Post("/payments", billingHandler.ProcessPayment)

	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	tenant.Post("/preventive_tasks", maintenanceHandler.Create)
	tenant.Get("/preventive_tasks", maintenanceHandler.List)
	tenant.Post("/preventive_tasks/:id/complete", maintenanceHandler.Complete)

	reportHandler := NewReportHandler(deps.ReportUC)
	tenant.Get("/reports/overview", reportHandler.Overview)
	tenant.Get("/reports/workorder-trends", reportHandler.Trends)

	// Reporte global (solo SUPERADMIN; el caso de uso vuelve a validar)
	protected.Get("/superadmin/reports/companies-summary",
		RequireRole("SUPERADMIN"), reportHandler.CompaniesSummary)
}
