package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/PratikDhanave/pet-feeder-service/internal/config"
	"github.com/PratikDhanave/pet-feeder-service/internal/httpserver"
	"github.com/PratikDhanave/pet-feeder-service/internal/logging"
	"github.com/PratikDhanave/pet-feeder-service/internal/notify"
	"github.com/PratikDhanave/pet-feeder-service/internal/store"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// main boots the service: config → logger → DB → migrations → notifier → HTTP server.
func main() {
	configPath := flag.String("config", os.Getenv("FEEDER_CONFIG"), "path to YAML config file (optional)")
	rollback := flag.Bool("migrate-down", false, "roll back the latest migration and exit")
	flag.Parse()

	// Load runtime config from file + environment (DB_URL, API_KEYS, ...).
	cfg, err := config.Load(*configPath)
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(cfg.Logging, version)

	if *rollback {
		if err := migrateDown(cfg, logger); err != nil {
			logger.Fatal().Err(err).Msg("rollback failed")
		}
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
	logger.Info().Msg("stopped")
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to durable storage (Postgres) using a connection pool.
	db, err := store.NewPostgresStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info().Msg("connected to database")

	// Schema is applied once here, never per request.
	if err := db.Migrate(ctx); err != nil {
		return err
	}

	var pub notify.Publisher = notify.Nop{}
	if cfg.MQTT.Enabled {
		mp, err := notify.Connect(cfg.MQTT)
		if err != nil {
			// Notifications are best effort; the API works without them.
			logger.Warn().Err(err).Str("broker", cfg.MQTT.Broker).Msg("mqtt unavailable, notifications disabled")
		} else {
			pub = mp
			logger.Info().Str("broker", cfg.MQTT.Broker).Msg("connected to mqtt broker")
		}
	}
	defer pub.Close()

	router := httpserver.NewRouter(cfg, db, pub, logger)
	srv := httpserver.NewServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("base_path", cfg.API.BasePath).Msg("server started")
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

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrateDown(cfg *config.Config, logger zerolog.Logger) error {
	ctx := context.Background()
	db, err := store.NewPostgresStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.MigrateDown(ctx); err != nil {
		return err
	}
	logger.Info().Msg("rolled back latest migration")
	return nil
}
