package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/messagely/messagely/internal/api"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  "Start the REST API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		// Initialize Gin server
		server := api.NewServer(
			cfg,
			services.AuthService,
			services.UserService,
			services.MessageService,
		)

		// Start server in goroutine
		serverErr := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				serverErr <- err
			}
		}()

		// Wait for interrupt signal or server error
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		slog.Info("server is ready, press Ctrl+C to stop")

		select {
		case err := <-serverErr:
			return fmt.Errorf("server error: %w", err)
		case <-sigChan:
			slog.Info("shutting down gracefully")
		}

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		slog.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
