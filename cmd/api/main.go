package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appauth "github.com/jhoicas/ServiOrden-api/internal/application/auth"
	appbilling "github.com/jhoicas/ServiOrden-api/internal/application/billing"
	appmaintenance "github.com/jhoicas/ServiOrden-api/internal/application/maintenance"
	"github.com/jhoicas/ServiOrden-api/internal/application/notify"
	"github.com/jhoicas/ServiOrden-api/internal/application/usecase"
	"github.com/jhoicas/ServiOrden-api/internal/application/workorder"
	"github.com/jhoicas/ServiOrden-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/ServiOrden-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ServiOrden-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ServiOrden-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/ServiOrden-api/internal/interfaces/http"
	"github.com/jhoicas/ServiOrden-api/pkg/config"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	workOrderRepo := postgres.NewWorkOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository(pool)
	preventiveRepo := postgres.NewPreventiveTaskRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de principals: Redis si está configurado, si no en memoria.
	var principalCache appauth.PrincipalCache
	var memoryCache *cache.Memory
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		principalCache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de principals en Redis")
	} else {
		memoryCache = cache.NewMemory(time.Duration(cfg.Cache.SweepSeconds) * time.Second)
		defer memoryCache.Stop()
		principalCache = memoryCache
		log.Info().Msg("caché de principals en memoria")
	}

	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	resolver := appauth.NewResolver(cfg.JWT.Secret, cacheTTL, userRepo, principalCache, log)

	// Casos de uso
	notifier := notify.NewSink(notificationRepo, log)
	authUC := appauth.NewUseCase(userRepo, principalCache, appauth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}, log)
	companyUC := usecase.NewCompanyUseCase(companyRepo, log)
	crmUC := usecase.NewCRMUseCase(clientRepo, employeeRepo, vehicleRepo, userRepo, log)
	workOrderUC := workorder.NewUseCase(workOrderRepo, companyRepo, userRepo, sequenceRepo, notifier, log)
	commentUC := usecase.NewCommentUseCase(commentRepo, workOrderRepo, log)
	invoiceUC := appbilling.NewInvoiceUseCase(invoiceRepo, expenseRepo, workOrderRepo, userRepo, sequenceRepo, notifier, log)
	expenseUC := appbilling.NewExpenseUseCase(expenseRepo, workOrderRepo, log)
	paymentUC := appbilling.NewPaymentUseCase(workOrderRepo, paymentRepo, txRunner, log)
	pdfUC := appbilling.NewPDFUseCase(invoiceUC, workOrderRepo, companyRepo, clientRepo, infrapdf.NewMarotoPDFGenerator(), log)
	maintenanceUC := appmaintenance.NewUseCase(preventiveRepo, notifier, log)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	reportUC := usecase.NewReportUseCase(reportRepo)

	fileStore, err := storage.NewLocal(cfg.Storage.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de uploads")
	}
	uploadUC := usecase.NewUploadUseCase(fileStore, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver:       resolver,
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		CRMUC:          crmUC,
		WorkOrderUC:    workOrderUC,
		CommentUC:      commentUC,
		InvoiceUC:      invoiceUC,
		ExpenseUC:      expenseUC,
		PaymentUC:      paymentUC,
		PDFUC:          pdfUC,
		MaintenanceUC:  maintenanceUC,
		NotificationUC: notificationUC,
		ReportUC:       reportUC,
		UploadUC:       uploadUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
