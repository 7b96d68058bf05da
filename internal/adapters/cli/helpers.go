package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/lfyzer/nsgifts-go/internal/adapters/api"
	"github.com/lfyzer/nsgifts-go/internal/adapters/metrics"
	"github.com/lfyzer/nsgifts-go/internal/adapters/persistence"
	"github.com/lfyzer/nsgifts-go/internal/infrastructure/config"
	"github.com/lfyzer/nsgifts-go/internal/infrastructure/database"
	"github.com/lfyzer/nsgifts-go/internal/infrastructure/ports"
)

// newClient builds an API client from the loaded configuration. When
// credentials are configured they are stored on the client so the first
// authenticated call logs in transparently. Commands hold the client
// through its port so tests can substitute it.
func newClient() (ports.APIClient, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	opts := api.Options{
		BaseURL:       cfg.Client.BaseURL,
		MaxRetries:    cfg.Client.MaxRetries,
		Timeout:       cfg.Client.Timeout,
		Cooldown:      cfg.Client.Cooldown,
		RefreshBuffer: cfg.Client.TokenRefreshBuffer,
		RateLimit:     float64(cfg.Client.RateLimit.Requests),
		RateBurst:     cfg.Client.RateLimit.Burst,
	}

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		collector := metrics.NewClientMetricsCollector()
		if err := collector.Register(registry); err != nil {
			return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		opts.Metrics = collector
		startMetricsServer(registry, cfg)
	}

	client, err := api.NewClient(opts)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Client.Email != "" && cfg.Client.Password != "" {
		client.SetCredentials(cfg.Client.Email, cfg.Client.Password)
	}

	return client, cfg, nil
}

var metricsServer *metrics.Server

// startMetricsServer exposes the registry over HTTP for the lifetime of
// the command. Execute shuts it down after the command returns. A serve
// failure never fails the command; scraping is best effort.
func startMetricsServer(registry *prometheus.Registry, cfg *config.Config) {
	if metricsServer != nil {
		return
	}
	srv := metrics.NewServer(registry, cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	metricsServer = srv
	go func() {
		if err := srv.Start(); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}()
}

// stopMetricsServer gracefully stops the exposure endpoint if one was
// started; it gives in-flight scrapes a short drain window.
func stopMetricsServer() {
	if metricsServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = metricsServer.Stop(ctx)
	metricsServer = nil
}

// openJournal connects to the local order journal database
func openJournal(cfg *config.Config) (*persistence.GormOrderJournal, *gorm.DB, error) {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return persistence.NewGormOrderJournal(db), db, nil
}

// printJSON writes v as indented JSON to stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// orderStatusLabel maps the numeric order status to a display string
func orderStatusLabel(status int) string {
	switch status {
	case 1:
		return "created"
	case 2:
		return "paid"
	case 3:
		return "completed"
	case 4:
		return "cancelled"
	default:
		return fmt.Sprintf("status %d", status)
	}
}
