package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wholesale_portal_backend/internal/adapters"
	"wholesale_portal_backend/internal/adapters/storage"
	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/internal/assistant"
	assistantsvc "wholesale_portal_backend/internal/assistant/service"
	"wholesale_portal_backend/internal/auth"
	"wholesale_portal_backend/internal/catalog"
	"wholesale_portal_backend/internal/dashboard"
	"wholesale_portal_backend/internal/dealers"
	"wholesale_portal_backend/internal/email"
	"wholesale_portal_backend/internal/events"
	apphttp "wholesale_portal_backend/internal/http"
	"wholesale_portal_backend/internal/http/router"
	"wholesale_portal_backend/internal/inquiries"
	"wholesale_portal_backend/internal/notification"
	"wholesale_portal_backend/internal/orders"
	ordersvc "wholesale_portal_backend/internal/orders/service"
	"wholesale_portal_backend/internal/pdf"
	"wholesale_portal_backend/internal/scheduler"
	"wholesale_portal_backend/migrations"
	"wholesale_portal_backend/platform/ai/openai"
	"wholesale_portal_backend/platform/config"
	"wholesale_portal_backend/platform/db"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/adk/model"
)

const companyName = "Wholesale Portal"

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) error {
	return withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if cfg.MigrationsEnabled {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg, migrations.FS)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	llm := initLLM(cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	notificationModule := notification.New(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)
	if closeQueue := initNotificationQueue(cfg, log, notificationModule); closeQueue != nil {
		defer closeQueue()
	}

	catalogModule := catalog.NewModule(pool, val, log)
	agentCatalog := adapters.NewAgentCatalog(catalogModule.Service())

	dealersModule := dealers.NewModule(pool, val, log)
	dealerContacts := adapters.NewDealerContacts(dealersModule.Service())

	authModule := auth.NewModule(pool, adapters.NewAuthDealerDirectory(dealersModule.Service()), cfg, val, log)
	if err := authModule.Bootstrap(ctx); err != nil {
		log.Error("failed to seed demo accounts", "error", err)
		panic("failed to seed demo accounts: " + err.Error())
	}

	// The parser degrades to the keyword fallback when llm is nil.
	var parserModel model.LLM
	if llm != nil {
		parserModel = llm.WithJSONMode()
	}
	parser := agent.NewParser(parserModel, agentCatalog, log)
	pricer := agent.NewPricer(agentCatalog, log)

	inquiriesModule := inquiries.NewModule(pool, parser, pricer, dealerContacts, eventBus, val, log)

	ordersModule := orders.NewModule(
		pool,
		agentCatalog,
		adapters.NewOrderInquiryLedger(inquiriesModule.Service()),
		dealerContacts.OrderContacts(),
		eventBus,
		val,
		log,
	)
	ordersModule.Service().SetTrackingBaseURL(cfg.GetAppBaseURL())
	renderer, store := initDocuments(ctx, cfg, log)
	ordersModule.Service().SetDocuments(renderer, store)

	var responder assistantsvc.Responder
	if llm != nil {
		responder = assistantsvc.NewAgentResponder(llm, log)
	}
	assistantModule := assistant.NewModule(agentCatalog, responder, val, log)

	dashboardModule := dashboard.NewModule(pool, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			dealersModule,
			inquiriesModule,
			ordersModule,
			assistantModule,
			dashboardModule,
			notificationModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initLLM(cfg config.LLMConfig, log *logger.Logger) *openai.ChatModel {
	if !cfg.IsLLMEnabled() {
		log.Warn("LLM_API_KEY not configured; inquiry parsing uses keyword fallback and the assistant is disabled")
		return nil
	}
	llm := openai.NewModel(openai.Config{
		APIKey:  cfg.GetLLMAPIKey(),
		BaseURL: cfg.GetLLMBaseURL(),
		Model:   cfg.GetLLMModel(),
		Timeout: cfg.GetLLMTimeout(),
	})
	log.Info("llm model initialized", "model", llm.Name())
	return llm
}

func initNotificationQueue(cfg config.SchedulerConfig, log *logger.Logger, m *notification.Module) func() {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; order notifications are sent inline")
		return nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize notification queue client", "error", err)
		return nil
	}
	m.SetEnqueuer(client)

	return func() {
		_ = client.Close()
	}
}

type documentConfig interface {
	config.GotenbergConfig
	storage.Config
	GetMinioBucketDeliveryOrders() string
}

// initDocuments returns nil collaborators for whichever backend is not configured.
func initDocuments(ctx context.Context, cfg documentConfig, log *logger.Logger) (ordersvc.DocumentRenderer, ordersvc.DocumentStore) {
	var renderer ordersvc.DocumentRenderer
	if cfg.IsGotenbergEnabled() {
		client := pdf.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
		renderer = pdf.NewDeliveryOrderRenderer(client, companyName)
		log.Info("gotenberg PDF renderer initialized", "url", cfg.GetGotenbergURL())
	} else {
		log.Warn("GOTENBERG_URL not configured; delivery orders are returned without a PDF")
	}

	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; delivery-order PDFs are not stored")
		return renderer, nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	bucket := cfg.GetMinioBucketDeliveryOrders()
	if err := ensureBucket(ctx, log, storageSvc, "delivery-orders", bucket); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "deliveryOrdersBucket", bucket)

	return renderer, adapters.NewDeliveryOrderStore(storageSvc, bucket)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
