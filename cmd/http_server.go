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

	"github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/admins"
	adminsPostgres "github.com/Dijital-human/yusu-admin/internal/admins/postgres"
	"github.com/Dijital-human/yusu-admin/internal/audit"
	auditPostgres "github.com/Dijital-human/yusu-admin/internal/audit/postgres"
	"github.com/Dijital-human/yusu-admin/internal/auth"
	authPostgres "github.com/Dijital-human/yusu-admin/internal/auth/postgres"
	"github.com/Dijital-human/yusu-admin/internal/blocking"
	blockingPostgres "github.com/Dijital-human/yusu-admin/internal/blocking/postgres"
	"github.com/Dijital-human/yusu-admin/internal/category"
	categoryPostgres "github.com/Dijital-human/yusu-admin/internal/category/postgres"
	"github.com/Dijital-human/yusu-admin/internal/core/events"
	"github.com/Dijital-human/yusu-admin/internal/notification"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
	"github.com/Dijital-human/yusu-admin/internal/transport"
	"github.com/Dijital-human/yusu-admin/internal/transport/rest"
	"github.com/Dijital-human/yusu-admin/internal/transport/swagger"
	"github.com/Dijital-human/yusu-admin/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const openAPISpecPath = "./api/openapi.yml"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config     *internal.Config
	DB         *sqlx.DB
	Router     *chi.Mux
	Dispatcher *notification.Dispatcher
	Logger     *slog.Logger
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
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

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
		deps.Dispatcher.Shutdown()
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

	logger.Init(config.Logging.Env)
	lg := logger.LoggerWrapper()

	// A broken API document should fail startup, not surface as a blank
	// Swagger UI later.
	if _, err := swagger.LoadSpec(context.Background(), openAPISpecPath); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	table := permissions.NewTable()
	bus := events.NewEventBus(lg)

	auditRepo := auditPostgres.NewAuditRepository(gormDB)
	audit.RegisterPersistence(bus, auditRepo, lg)
	recorder := audit.NewBusRecorder(bus, lg)

	dispatcher := notification.NewDispatcher(config.Notification, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewAuthRepository(gormDB), tokenGen, table, config.Security.BCryptCost, lg)

	baseHandler := transport.NewBaseHandler(lg)

	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(gormDB), recorder, lg)
	adminsService := admins.NewService(adminsPostgres.NewAdminRepository(gormDB), table, recorder, config.Security.BCryptCost, lg)
	blockingService := blocking.NewService(blockingPostgres.NewBlockingRepository(gormDB), recorder, dispatcher, lg)
	auditService := audit.NewService(auditRepo, lg)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:     auth.NewHandler(authService),
		Category: category.NewHandler(baseHandler, categoryService),
		Admins:   admins.NewHandler(baseHandler, adminsService),
		Blocking: blocking.NewHandler(baseHandler, blockingService),
		Audit:    audit.NewHandler(baseHandler, auditService),
	}, table, config.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config:     config,
		DB:         db,
		Router:     router,
		Dispatcher: dispatcher,
		Logger:     lg,
	}, nil
}

// initDB opens the pgx-backed sqlx connection used for health checks and
// handed to gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers gorm over the already-open connection so both share one
// pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
}
