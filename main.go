package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"happywrap-deck/app"
	"happywrap-deck/config"
	"happywrap-deck/logger"
	"happywrap-deck/metrics"
	"happywrap-deck/models"
	"happywrap-deck/service"

	"go.uber.org/zap"
)

// deckFile is the offline export input: a saved deck or a bare {slides, details} payload
type deckFile struct {
	Details models.Details `json:"details"`
	Slides  []models.Slide `json:"slides"`
}

func main() {
	deckPath := flag.String("deck", "", "render this deck JSON file to PDF and exit")
	outDir := flag.String("out", ".", "output directory for -deck")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "happywrap-deck",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *deckPath != "" {
		if err := exportFile(ctx, cfg, log, *deckPath, *outDir); err != nil {
			log.Error("❌ export failed", zap.String("deck", *deckPath), zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("❌ server failed", zap.Error(err))
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting happywrap-deck", cfg.LogFields()...)

	a, err := app.Initialize(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("✓ Server stopped")
	return nil
}

func exportFile(ctx context.Context, cfg *config.Config, log *zap.Logger, deckPath, outDir string) error {
	data, err := os.ReadFile(deckPath)
	if err != nil {
		return fmt.Errorf("failed to read deck file: %w", err)
	}
	var deck deckFile
	if err := json.Unmarshal(data, &deck); err != nil {
		return fmt.Errorf("failed to parse deck file: %w", err)
	}

	a, err := app.InitializeExporter(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.Exporter.Export(ctx, service.ExportRequest{Slides: deck.Slides, Details: deck.Details})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	out := filepath.Join(outDir, doc.FileName)
	if err := os.WriteFile(out, doc.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	log.Info("✓ PDF written", zap.String("path", out), zap.Int("pages", doc.PageCount))
	return nil
}
