package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/designdesk/session-gateway/internal/api"
	designersapi "github.com/designdesk/session-gateway/internal/api/designers"
	reportsapi "github.com/designdesk/session-gateway/internal/api/reports"
	requirementsapi "github.com/designdesk/session-gateway/internal/api/requirements"
	sessionapi "github.com/designdesk/session-gateway/internal/api/session"
	tasksapi "github.com/designdesk/session-gateway/internal/api/tasks"
	"github.com/designdesk/session-gateway/internal/channel"
	"github.com/designdesk/session-gateway/internal/config"
	"github.com/designdesk/session-gateway/internal/integration/designers"
	"github.com/designdesk/session-gateway/internal/integration/reports"
	"github.com/designdesk/session-gateway/internal/integration/requirements"
	"github.com/designdesk/session-gateway/internal/integration/tasks"
	"github.com/designdesk/session-gateway/internal/pkg/validator"
	"github.com/designdesk/session-gateway/internal/repository"
	"github.com/designdesk/session-gateway/internal/sessionstore"
	"github.com/designdesk/session-gateway/internal/usecase/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup the durable session cache
	var store sessionstore.Store
	var db *pgxpool.Pool
	var fileStore *sessionstore.FileStore

	switch cfg.SessionCacheCfg.Backend {
	case config.CacheBackendPostgres:
		db, err = setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}

		logger.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		store = repository.NewSessionCachePostgres(db)
	default:
		fileStore = sessionstore.NewFileStore(cfg.SessionCacheCfg, logger)
		store = fileStore
	}
	logger.Info("Session cache initialized", zap.String("backend", cfg.SessionCacheCfg.Backend))

	// Initialize external service connectors (with mock support)
	var requirementsConn interface {
		session.RequirementsConnector
		requirementsapi.RequirementsConnector
	}
	var tasksConn tasksapi.TasksConnector
	var designersConn designersapi.DesignersConnector
	var reportsConn reportsapi.ReportsConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		requirementsConn = requirements.NewMockConnector(logger)
		tasksConn = tasks.NewMockConnector(logger)
		designersConn = designers.NewMockConnector(logger)
		reportsConn = reports.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		requirementsConn = requirements.NewConnector(cfg.RequirementsCfg, logger)
		tasksConn = tasks.NewConnector(cfg.TasksCfg, logger)
		designersConn = designers.NewConnector(cfg.DesignersCfg, logger)
		reportsConn = reports.NewConnector(cfg.ReportsCfg, logger)
	}

	// Initialize validators
	v := validator.NewValidator(cfg.UploadCfg)
	logger.Info("Validators initialized")

	// Initialize the session manager with the assistant channel dialer
	dialer := channel.NewWebSocketDialer(cfg.AssistantCfg, logger)
	policy := session.ReconnectPolicy{
		Interval:    cfg.AssistantCfg.ReconnectInterval,
		MaxAttempts: cfg.AssistantCfg.ReconnectMaxAttempts,
	}
	manager := session.NewManager(dialer, store, requirementsConn, v, policy, logger)
	logger.Info("Session manager initialized")

	// Setup API handlers
	handlers := api.Handlers{
		Session:      sessionapi.NewHandler(manager, v),
		Requirements: requirementsapi.NewHandler(requirementsConn),
		Tasks:        tasksapi.NewHandler(tasksConn),
		Designers:    designersapi.NewHandler(designersConn),
		Reports:      reportsapi.NewHandler(reportsConn),
	}
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(handlers, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:    server,
		db:        db,
		fileStore: fileStore,
		manager:   manager,
		logger:    logger,
	}, nil
}
