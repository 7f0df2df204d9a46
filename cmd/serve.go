package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Shuaib-8/Travel-Copilot/internal/adapter/llm"
	"github.com/Shuaib-8/Travel-Copilot/internal/logger"
	"github.com/Shuaib-8/Travel-Copilot/internal/repository"
	"github.com/Shuaib-8/Travel-Copilot/internal/service"
	transport "github.com/Shuaib-8/Travel-Copilot/internal/transport/http"
	"github.com/Shuaib-8/Travel-Copilot/policy"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and web form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port = servePort
		}

		log := logger.NewLogger(cfg.Log.Debug)
		defer func() { _ = log.Sync() }()

		log.Info("starting travel copilot",
			zap.Int("port", cfg.HTTP.Port),
			zap.String("database", cfg.Database.URL),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.String("llm_model", cfg.LLM.Model),
		)

		// Initialize store
		db, err := repository.NewSQLiteStore(cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		defer db.Close()

		// Initialize LLM client
		llmClient, err := llm.NewClient(llm.Options{
			Provider: cfg.LLM.Provider,
			BaseURL:  cfg.LLM.BaseURL,
			APIKey:   cfg.LLM.APIKey,
			Timeout:  cfg.LLM.Timeout,
		})
		if err != nil {
			return err
		}
		if cfg.LLM.APIKey == "" && cfg.LLM.Provider != llm.ProviderMock {
			log.Warn("no LLM API key configured; guidance requests will fail")
		}

		// Initialize policy engine
		ctx, stop := context.WithCancel(context.Background())
		defer stop()
		policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
		if err != nil {
			return fmt.Errorf("failed to initialize policy engine: %w", err)
		}

		// Initialize service
		svc := service.New(db, llmClient, cfg, log)
		go svc.RunSessionSweeper(ctx)

		server, err := transport.NewServer(svc, policyEngine, cfg, log)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
			if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		log.Info("HTTP server started", zap.Int("port", cfg.HTTP.Port))

		// Wait for interrupt signal
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case err := <-errCh:
			return fmt.Errorf("failed to start server: %w", err)
		}

		log.Info("shutting down travel copilot")
		stop()

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to shutdown server gracefully", zap.Error(err))
		}

		log.Info("travel copilot stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "HTTP port (overrides http.port)")
}
