package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/profilepix/api"
	"github.com/use-agent/profilepix/cache"
	"github.com/use-agent/profilepix/config"
	"github.com/use-agent/profilepix/engine"
	"github.com/use-agent/profilepix/scraper"
)

func main() {
	startTime := time.Now()

	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("profilepix starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"domain", cfg.Fetch.Domain,
	)

	// ── 3. Initialise fetch engine and scraper ──────────────────────
	httpEngine := engine.NewHTTPEngine(engine.HTTPOptions{
		Fingerprint: cfg.Fetch.TLSFingerprint,
		Proxy:       cfg.Fetch.Proxy,
		UserAgent:   cfg.Fetch.UserAgent,
	})
	defer httpEngine.CloseIdleConnections()

	sc := scraper.NewScraper(httpEngine, cfg.Fetch)

	// ── 3b. Initialise cache ────────────────────────────────────────
	var cc *cache.Cache
	if cfg.Cache.MaxEntries > 0 {
		cc = cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
		slog.Info("result cache enabled",
			"maxEntries", cfg.Cache.MaxEntries,
			"ttl", cfg.Cache.TTL,
		)
	}

	// ── 4. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(sc, cfg, cc, startTime)

	// ── 5. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 6. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("profilepix stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
