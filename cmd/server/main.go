package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/config"     // Internal config loader
	"github.com/iliyamo/lateshow-api/internal/database"   // Store bootstrap
	"github.com/iliyamo/lateshow-api/internal/events"     // Domain event publishing
	"github.com/iliyamo/lateshow-api/internal/handler"    // HTTP handlers
	"github.com/iliyamo/lateshow-api/internal/logging"    // zap setup
	"github.com/iliyamo/lateshow-api/internal/repository" // Data access
	"github.com/iliyamo/lateshow-api/internal/router"     // Internal router setup
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	log := logging.New(cfg.Env, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db, cfg.DBDriver); err != nil {
		return err
	}

	var pub events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		amqpPub := events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventsExchange, log)
		defer amqpPub.Close() // flush queued events after the server stops
		pub = amqpPub
	}

	catalog := handler.NewCatalogHandler(
		repository.NewEpisodeRepo(db),
		repository.NewGuestRepo(db),
		repository.NewAppearanceRepo(db),
		pub,
		log,
	)

	e := router.New(log)
	router.RegisterRoutes(e, db)
	router.RegisterCatalog(e, catalog)
	router.RegisterFrontend(e, handler.Frontend{Dir: cfg.FrontendDir})

	addr := ":" + cfg.Port // Address string with port
	log.Info("listening",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("events", cfg.AMQPURL != ""))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- e.Start(addr) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
