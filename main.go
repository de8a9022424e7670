package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/cache"
	"github.com/leadpilot-inc/lead-engine/pkg/config"
	"github.com/leadpilot-inc/lead-engine/pkg/database"
	"github.com/leadpilot-inc/lead-engine/pkg/events"
	"github.com/leadpilot-inc/lead-engine/pkg/handlers"
	"github.com/leadpilot-inc/lead-engine/pkg/logging"
	"github.com/leadpilot-inc/lead-engine/pkg/middleware"
	"github.com/leadpilot-inc/lead-engine/pkg/notify"
	"github.com/leadpilot-inc/lead-engine/pkg/repositories"
	"github.com/leadpilot-inc/lead-engine/pkg/services"
	"github.com/leadpilot-inc/lead-engine/pkg/webhook"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("Invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Host),
		zap.String("realtime_channel", cfg.Realtime.Channel),
		zap.String("timezone", loc.String()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the externally owned lead store
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	// Notification persistence: Redis when configured, local file otherwise
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	var store notify.Store
	if redisClient != nil {
		store = notify.NewRedisStore(redisClient, cfg.Notifications.StorageKey)
	} else {
		store = notify.NewFileStore(cfg.Notifications.FilePath)
	}
	center := notify.NewCenter(store, cfg.Notifications.Max, logger)
	center.Load(ctx)

	// Query cache and the invalidation dependency table, validated up front
	queryCache := cache.New()
	deps := events.DefaultDependencies()
	if err := deps.Validate(events.SubscribedTables(), cache.KnownPrefixes()); err != nil {
		logger.Fatal("Invalid cache invalidation table", zap.Error(err))
	}

	// Repositories and services
	leadRepo := repositories.NewLeadRepository(db)
	qualRepo := repositories.NewQualificationRepository(db)
	callRepo := repositories.NewCallLogRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	followUpRepo := repositories.NewFollowUpRepository(db)

	dashboardService := services.NewDashboardService(leadRepo, qualRepo, callRepo, queryCache, loc, logger)
	leadService := services.NewLeadService(leadRepo, queryCache, deps, logger)
	conversationService := services.NewConversationService(callRepo, queryCache, logger)
	appointmentService := services.NewAppointmentService(appointmentRepo, queryCache, logger)
	followUpService := services.NewFollowUpService(followUpRepo, logger)
	warmer := services.NewCacheWarmer(dashboardService, leadService, conversationService, appointmentService)

	// Change stream: listener -> dispatcher -> cache invalidation + notifications
	listener := database.NewListener(
		cfg.Database.ConnectionString(),
		cfg.Realtime.Channel,
		cfg.Realtime.MaxReconnectInterval,
		logger,
	)
	listener.Start(ctx)
	defer listener.Stop()

	eventCh, unsubscribe := listener.Subscribe(64)
	defer unsubscribe()

	dispatcher := events.NewDispatcher(deps, queryCache, center, warmer, logger)
	go dispatcher.Run(ctx, eventCh)

	webhookDispatcher := webhook.NewDispatcher(
		cfg.Webhook.URL,
		cfg.Webhook.TriggeredFrom,
		cfg.Webhook.Timeout,
		logger,
	)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg).RegisterRoutes(mux)
	handlers.NewDashboardHandler(dashboardService, logger).RegisterRoutes(mux)
	handlers.NewLeadsHandler(leadService, webhookDispatcher, logger).RegisterRoutes(mux)
	handlers.NewConversationsHandler(conversationService, logger).RegisterRoutes(mux)
	handlers.NewAppointmentsHandler(appointmentService, followUpService, logger).RegisterRoutes(mux)
	handlers.NewNotificationsHandler(center, logger).RegisterRoutes(mux)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	handler := corsMiddleware.Handler(middleware.RequestLogger(logger)(mux))

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting lead-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadLocation resolves the configured timezone; "Local" keeps the process
// timezone so bucketing matches the deployment's locale.
func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
