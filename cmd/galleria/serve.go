package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/galleria/config"
	galleriahttp "github.com/sagarc03/galleria/http"
	"github.com/sagarc03/galleria/keybackend"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the Galleria HTTP server.

The signing secret must be configured through auth.secret.inline,
auth.secret.file, GALLERIA_AUTH_SECRET_INLINE or --secret-file.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5708, "HTTP server port")
	serveCmd.Flags().String("base-url", "", "public base URL used in image URIs (default: http://localhost:5708)")
	serveCmd.Flags().String("secret-file", "", "file holding the token signing secret")
	serveCmd.Flags().Bool("auto-migrate", false, "create missing tables before serving")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	secret, err := keybackend.LoadSigningSecret(cfg.Auth.Secret)
	if err != nil {
		return fmt.Errorf("load signing secret: %w", err)
	}

	svc, err := openServices(ctx, cfg, cfg.Database.AutoMigrate, secret)
	if err != nil {
		return err
	}
	defer svc.Close()

	handlerConfig := galleriahttp.HandlerConfig{
		ServeImages:    svc.storage.local,
		RequestTimeout: cfg.Service.RequestTimeoutDuration(),
		CORS:           cfg.CORS,
	}

	handler := galleriahttp.NewHandler(&handlerConfig, svc.credentials, svc.galleries, svc.pictures)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "storage", cfg.Storage.Type, "serve_images", handlerConfig.ServeImages)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
