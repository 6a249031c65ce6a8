package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ntsfreight/client-portal/internal"
	"github.com/ntsfreight/client-portal/internal/accesscontrol"
	"github.com/ntsfreight/client-portal/internal/auth"
	authPostgres "github.com/ntsfreight/client-portal/internal/auth/postgres"
	"github.com/ntsfreight/client-portal/internal/company"
	companyPostgres "github.com/ntsfreight/client-portal/internal/company/postgres"
	"github.com/ntsfreight/client-portal/internal/core/events"
	"github.com/ntsfreight/client-portal/internal/notification"
	notificationPostgres "github.com/ntsfreight/client-portal/internal/notification/postgres"
	"github.com/ntsfreight/client-portal/internal/order"
	orderPostgres "github.com/ntsfreight/client-portal/internal/order/postgres"
	"github.com/ntsfreight/client-portal/internal/quote"
	quotePostgres "github.com/ntsfreight/client-portal/internal/quote/postgres"
	"github.com/ntsfreight/client-portal/internal/transport/rest"
	"github.com/ntsfreight/client-portal/internal/user"
	userPostgres "github.com/ntsfreight/client-portal/internal/user/postgres"
	"github.com/ntsfreight/client-portal/pkg/logger"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config  *internal.Config
	DB      *sqlx.DB
	Router  *chi.Mux
	Limiter *accesscontrol.FixedWindowLimiter
	Logger  *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Expired rate limit windows are reaped for as long as the server runs.
	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()
	deps.Limiter.StartCleanup(limiterCtx, time.Minute)

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWithOptions(config.Observability.Logging.Level, config.Observability.Logging.Format)
	appLogger := logger.LoggerWrapper()

	if err := validateOpenAPISpec("./api/openapi.yml", appLogger); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)

	// Auth and identity
	authRepo := authPostgres.NewRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	sessions := auth.NewSessionResolver(authService)

	// Access guard
	companyRepo := companyPostgres.NewCompanyRepository(gormDB)
	companyService := company.NewService(companyRepo, appLogger)

	limiter := accesscontrol.NewFixedWindowLimiter()
	guard := accesscontrol.NewGuard(sessions, authRepo, authRepo, companyService, limiter, appLogger)

	var writeLimit *accesscontrol.RateLimitRule
	if config.RateLimit.Enabled {
		writeLimit = &accesscontrol.RateLimitRule{
			MaxRequests: config.RateLimit.MaxRequests,
			Window:      config.RateLimit.Window,
		}
	}

	// Feature services
	orderService := order.NewService(orderPostgres.NewOrderRepository(gormDB), appLogger)
	quoteService := quote.NewService(quotePostgres.NewQuoteRepository(gormDB), orderService, eventBus, appLogger)
	notificationService := notification.NewService(notificationPostgres.NewNotificationRepository(gormDB), appLogger)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), appLogger)

	notification.NewEventHandler(notificationService, appLogger).RegisterHandlers(eventBus)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Company:      company.NewHandler(companyService),
		Quote:        quote.NewHandler(quoteService, companyService),
		Order:        order.NewHandler(orderService, companyService),
		Notification: notification.NewHandler(notificationService),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, guard, handlers, writeLimit, appLogger)

	return &Dependencies{
		Config:  config,
		Logger:  appLogger,
		DB:      db,
		Router:  router,
		Limiter: limiter,
	}, nil
}

// validateOpenAPISpec fails startup when the published contract is broken,
// so a bad spec never reaches the swagger UI.
func validateOpenAPISpec(path string, log *slog.Logger) error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return fmt.Errorf("openapi spec is invalid: %w", err)
	}
	log.Info("openapi spec validated", "path", path, "paths", doc.Paths.Len())
	return nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
