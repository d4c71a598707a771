// main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mtu-cubesat/swarm/dashboard/config"
	"github.com/mtu-cubesat/swarm/dashboard/database"
	"github.com/mtu-cubesat/swarm/dashboard/handlers"
	"github.com/mtu-cubesat/swarm/dashboard/loader"
	"github.com/mtu-cubesat/swarm/dashboard/services"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: config/config.yaml, then config.yaml)")
	flag.Parse()

	log.Println("Starting cubesat swarm dashboard...")

	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := config.AppConfig
	if err := setupLogging(cfg.Logging); err != nil {
		log.Fatalf("Error configuring logging: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, log source: %s", cfg.Server.Port, cfg.LogSource.Kind)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash := services.NewDashboard()
	router, err := handlers.NewRouter(dash)
	if err != nil {
		log.Fatalf("Error building HTTP routes: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	// The page is served while the log loads; clicks answer "not ready" until then.
	go func() {
		if err := loadTelemetry(ctx, cfg, dash); err != nil {
			log.Errorf("Telemetry log not loaded, dashboard stays inert: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped.")
}

func setupLogging(cfg config.LoggingConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q (use \"text\" or \"json\")", cfg.Format)
	}
	return nil
}

// loadTelemetry loads the log once from the configured source.
func loadTelemetry(ctx context.Context, cfg config.Config, dash *services.Dashboard) error {
	switch cfg.LogSource.Kind {
	case config.SourceHTTP:
		client := &http.Client{Timeout: cfg.LogSource.Timeout}
		return services.LoadDashboard(ctx, dash, loader.NewHTTPSource(cfg.LogSource.URL, client))

	case config.SourceFile:
		return services.LoadDashboard(ctx, dash, loader.NewFileSource(cfg.LogSource.Path))

	case config.SourceDatabase:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return services.LoadFailed(dash, "database "+cfg.Database.Table, err)
		}
		defer db.Close()

		src, err := database.NewTelemetrySource(db, cfg.Database.Table)
		if err != nil {
			return services.LoadFailed(dash, "database "+cfg.Database.Table, err)
		}
		return services.LoadDashboard(ctx, dash, src)
	}
	return fmt.Errorf("unknown log source kind %q", cfg.LogSource.Kind)
}
