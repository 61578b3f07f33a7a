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

	"github.com/gin-gonic/gin"
	"github.com/notekit/notekit/backend/go-services/internal/assist"
	"github.com/notekit/notekit/backend/go-services/internal/config"
	"github.com/notekit/notekit/backend/go-services/internal/note/service"
	"github.com/notekit/notekit/backend/go-services/pkg/logger"
	"github.com/notekit/notekit/backend/go-services/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		migrate bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the notes HTTP API",
		Long: `Start the notes HTTP API.

Examples:
  notesd serve
  notesd serve --addr :8080
  DATABASE_DRIVER=sqlite SQLITE_PATH=~/notes.db notesd serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr()
			}
			return runServe(cmd.Context(), cfg, addr, migrate)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default SERVER_HOST:SERVER_PORT)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply SQL migrations on startup (postgres, sqlite)")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runServe(ctx context.Context, cfg *config.Config, addr string, migrate bool) error {
	gin.SetMode(gin.ReleaseMode)
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	repo, closeStore, err := openStore(ctx, cfg, migrate)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	defer closeStore()

	provider, err := assist.NewGeminiProvider(ctx, assist.GeminiConfig{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
	})
	if err != nil {
		return err
	}
	if !provider.Configured() {
		logger.Warnf("GOOGLE_GEMINI_API_KEY is not set; AI assist endpoints will fail")
	}

	ver, err := newVerifier(ctx, cfg)
	if err != nil {
		return fmt.Errorf("auth gateway: %w", err)
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg, service.New(repo), assist.NewClient(provider), ver),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("notes API listening on %s (store=%s, model=%s)", addr, cfg.Database.Driver, provider.Model())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
	return nil
}
