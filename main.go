package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/openclaw/badge/api"
	"github.com/openclaw/badge/config"
	"github.com/openclaw/badge/render"
	"github.com/openclaw/badge/store"
)

var version = "v0.1.0"

func main() {
	// Best-effort .env load before anything reads the environment.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "openclaw-badge",
		Short: "Printable badge generator for event participants",
	}

	// --- start command -------------------------------------------------------
	var configPath string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the badge HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(configPath)
		},
	}
	startCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	root.AddCommand(startCmd)

	// --- render command ------------------------------------------------------
	var (
		renderConfig string
		renderOut    string
		renderName   string
		renderQR     string
		renderDPI    int
		renderRot    int
		renderMax1   int
		renderMax2   int
	)
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single badge to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(renderConfig, renderOut, renderName, renderQR, renderDPI, renderRot, renderMax1, renderMax2)
		},
	}
	renderCmd.Flags().StringVarP(&renderConfig, "config", "c", "config.yaml", "Path to config file")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "badge.png", "Output file")
	renderCmd.Flags().StringVar(&renderName, "name", "", "Participant display name (required)")
	renderCmd.Flags().StringVar(&renderQR, "qr", "", "QR payload (raw text, not resolved)")
	renderCmd.Flags().IntVar(&renderDPI, "dpi", render.DefaultDPI, "Print resolution")
	renderCmd.Flags().IntVar(&renderRot, "rotation", 0, "Rotation in degrees (0/90/180/270)")
	renderCmd.Flags().IntVar(&renderMax1, "line1-max", 15, "Character cap for the first line")
	renderCmd.Flags().IntVar(&renderMax2, "line2-max", 15, "Character cap for the second line")
	root.AddCommand(renderCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("openclaw-badge %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runStart is the main service entrypoint that wires all components together.
func runStart(configPath string) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	// 2. Setup logger
	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting openclaw-badge", "version", version, "port", cfg.Port, "data_dir", cfg.DataDir)

	// 3. Resolve fonts once for the process lifetime
	fonts, err := config.ResolveFonts(cfg, log)
	if err != nil {
		return fmt.Errorf("resolve fonts: %w", err)
	}

	// 4. Open the participant store, unless lookup is disabled
	var participants *store.ParticipantStore
	if cfg.Lookup {
		dbPath := filepath.Join(cfg.DataDir, "participants.db")
		participants, err = store.NewParticipantStore(dbPath)
		if err != nil {
			return fmt.Errorf("open participant store: %w", err)
		}
		defer participants.Close()
	} else {
		log.Info("participant lookup disabled, qr parameter is used verbatim")
	}

	// 5. Start HTTP server
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Renderer:   render.New(fonts),
			Store:      participants,
			Log:        log,
			Version:    version,
			StartTime:  time.Now(),
			DefaultDPI: cfg.DefaultDPI,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 6. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server: %w", err)
	case <-quit:
	}

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}

// runRender produces a single badge without the HTTP layer. The qr flag
// is always treated as a raw payload here.
func runRender(configPath, out, name, qr string, dpi, rotation, max1, max2 int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg.LogLevel)

	fonts, err := config.ResolveFonts(cfg, log)
	if err != nil {
		return fmt.Errorf("resolve fonts: %w", err)
	}

	pngBytes, err := render.New(fonts).Render(render.Request{
		Name:      name,
		QRPayload: qr,
		DPI:       dpi,
		WidthMM:   render.BadgeWidthMM,
		HeightMM:  render.BadgeHeightMM,
		Rotation:  rotation,
		MaxLine1:  max1,
		MaxLine2:  max2,
	})
	if err != nil {
		return fmt.Errorf("render badge: %w", err)
	}

	if err := os.WriteFile(out, pngBytes, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	log.Info("badge written", "path", out, "bytes", len(pngBytes))
	return nil
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}
