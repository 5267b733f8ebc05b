package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arso-weather/api"
	"arso-weather/cache"
	"arso-weather/datasource"
	"arso-weather/providers/arso"
	"arso-weather/refresh"
	"arso-weather/session"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	configFile := flag.String("config", "config.yaml", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// The ARSO client implements both the resolver and the forecast source
	client := arso.New(
		arso.WithBaseURL(config.ARSO.BaseURL),
		arso.WithImageBase(config.ARSO.ImageBase),
		arso.WithLanguage(config.ARSO.Language),
	)

	var resolver datasource.LocationResolver = client
	var source datasource.ForecastSource = client

	// Apply rate limiting if enabled. The public API has no published
	// quota; stay polite with one request per second per endpoint.
	if *enableRateLimiting && config.RateLimit.Enabled {
		limited := datasource.NewRateLimitedClient(client,
			config.RateLimit.RPS, config.RateLimit.RPS, config.RateLimit.Burst)
		resolver = limited
		source = limited
		slog.Info("applied rate limiting to ARSO client",
			"rps", config.RateLimit.RPS, "burst", config.RateLimit.Burst)
	}

	// Cache both endpoints: searches repeat with every keystroke, and the
	// forecast rarely changes within the TTL
	resolver = cache.NewCachedResolver(resolver, config.CacheTTL)
	source = cache.NewCachedForecastSource(source, config.CacheTTL)

	// Session owns the currently displayed forecast and the persisted selection
	store := session.NewStore(config.StateFile)
	sess := session.New(resolver, source, store)

	// Re-apply the previous run's selection, exactly as if freshly picked
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
	restored, err := sess.Restore(restoreCtx)
	cancelRestore()
	if err != nil {
		slog.Warn("failed to restore previous selection", "error", err)
	} else if restored {
		id, _ := sess.SelectedID()
		slog.Info("restored previous selection", "location", id)
	}

	// Keep the selected forecast fresh in the background
	refresher := refresh.NewRefresher(sess, config.RefreshInterval)
	stopRefresher := refresher.Start(context.Background())

	// Start the API server
	server := api.NewServer(sess, source)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownChan
	slog.Info("shutting down", "signal", sig.String())

	stopRefresher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("shutdown complete")
}
