package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KretovDmitry/bank-account/internal/application/services"
	"github.com/KretovDmitry/bank-account/internal/config"
	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/KretovDmitry/bank-account/internal/domain/repositories"
	"github.com/KretovDmitry/bank-account/internal/infrastructure/db/memory"
	"github.com/KretovDmitry/bank-account/internal/infrastructure/db/postgres"
	rest "github.com/KretovDmitry/bank-account/internal/interface/api/rest/chi"
	"github.com/KretovDmitry/bank-account/pkg/limiter"
	"github.com/KretovDmitry/bank-account/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	// Load application configurations.
	cfg := config.MustLoad()

	// Create root logger tagged with server version.
	logger := logger.New(cfg).With(serverCtx, "version", Version)
	defer func() {
		_ = logger.Sync()
	}()

	var (
		accountRepo repositories.AccountRepository
		trm         services.Transactor
	)

	if cfg.DSN == "" {
		logger.Info("no database configured, accounts are kept in memory")
		accountRepo = memory.NewAccountRepository()
		trm = &memory.Transactor{}
	} else {
		db, err := postgres.Connect(cfg, logger)
		if err != nil {
			return err
		}

		// Check connectivity and DSN correctness.
		if err = db.PingContext(serverCtx); err != nil {
			return fmt.Errorf("failed to connect to the database: %w", err)
		}

		// Close connection.
		defer func(db *sql.DB) {
			if err := db.Close(); err != nil {
				logger.Error(err)
			}
		}(db)

		if err = postgres.Migrate(serverCtx, db); err != nil {
			return err
		}

		// Create default transaction manager for database/sql package.
		trm = manager.Must(
			trmsql.NewDefaultFactory(db),
			manager.WithCtxManager(trmcontext.DefaultManager),
		)

		accountRepo, err = postgres.NewAccountRepository(db, trmsql.DefaultCtxGetter, logger)
		if err != nil {
			return fmt.Errorf("failed to init account repository: %w", err)
		}
	}

	// Init account service.
	accountService, err := services.NewAccountService(
		accountRepo, trm, entities.GenerateAccountNumber, logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to init account service: %w", err)
	}

	// Limit incoming requests.
	drl := limiter.NewDynamicRateLimiter(cfg.RateLimit.Interval, cfg.RateLimit.Burst)
	defer drl.Stop()

	// Create root router.
	router := rest.InitChi(logger, drl)

	// Init handlers for account routes.
	rest.NewAccountController(accountService, rest.ChiServerOptions{
		BaseURL:    "/api",
		BaseRouter: router,
	})

	// Build HTTP server.
	hs := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
		Handler:           router,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		signal := <-sig

		logger.With(serverCtx, "signal", signal.String()).
			Infof("Shutting down server with %s timeout",
				cfg.HTTPServer.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(serverCtx, cfg.HTTPServer.ShutdownTimeout)
		defer cancel()

		if err := hs.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %s", err)
		}
		serverStopCtx()
	}()

	// Start the HTTP server with graceful shutdown.
	logger.Infof("Server %v is running at %v", Version, cfg.HTTPServer.Address)
	if err = hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server failed: %w", err)
	}

	// Wait for server context to be stopped or force exit if timeout exceeded.
	select {
	case <-serverCtx.Done():
	case <-time.After(cfg.HTTPServer.ShutdownTimeout):
		return errors.New("graceful shutdown timed out.. forcing exit")
	}

	return nil
}
