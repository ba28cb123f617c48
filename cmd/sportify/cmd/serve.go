package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sportify/config"
	"sportify/internal/delivery/http/controllers"
	"sportify/internal/delivery/http/middleware"
	"sportify/internal/metrics"

	httpdelivery "sportify/internal/delivery/http"
)

const shutdownTimeout = 10 * time.Second

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

func newServeCommand() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the Sportify HTTP server.

The server will:
- Load configuration from environment variables (and .env outside production)
- Bootstrap the super admin if SUPER_ADMIN_* env vars are set
- Serve the API under /api, metrics under /metrics and docs under /swagger/
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  sportify serve
  sportify serve --host 127.0.0.1 --port 9090 --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd)
		},
	}
	addServerFlags(serve)
	return serve
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: HOST or all interfaces)")
	cmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: PORT or 8080)")
}

// applyServerFlags overrides the listen address with flags that were set.
func applyServerFlags(cfg *config.Config) {
	if serverHost != "" {
		cfg.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Port = strconv.Itoa(serverPort)
	}
}

func runServer(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	applyServerFlags(cfg)

	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	logger.Info("starting sportify", "version", Version, "env", cfg.Environment)
	metrics.Init(Version)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := newApp(db, cfg, logger)
	if err != nil {
		return err
	}

	bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := bootstrapSuperAdmin(bootCtx, a.admins, cfg.SuperAdmin, logger); err != nil {
		logger.Error("super admin bootstrap failed", "err", err)
	}
	cancel()

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	defer loginLimiter.Stop()

	handler := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Logger:         logger,
		AuthService:    a.auth,
		Health:         controllers.NewHealthController(logger, db, Version),
		Admins:         controllers.NewAdminController(logger, a.auth, a.admins),
		Events:         controllers.NewEventController(logger, a.events),
		Categories:     controllers.NewCategoryController(logger, a.categories),
		Feedback:       controllers.NewFeedbackController(logger, a.feedback),
		LoginLimiter:   loginLimiter,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
