package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/form"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/logging"
	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/router"
	"github.com/iliyamo/venue-booking/internal/service"
	"github.com/iliyamo/venue-booking/internal/view"
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal("failed to open log file", "path", cfg.Log.Path, "err", err)
	}
	defer closer.Close()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		_ = closer.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Migrate {
		if err := database.Migrate(cfg.DB, logger); err != nil {
			return err
		}
	}

	db, err := database.Open(ctx, cfg.DB, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// Redis is optional; without it the cache and rate limiter pass through.
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else if cfg.Redis.Enabled {
		logger.Warn("redis unavailable, page cache and rate limiting disabled", "addr", cfg.Redis.Address())
	}

	var pub service.Publisher
	if cfg.AMQP.Enabled {
		pub = service.NewAMQPPublisher(cfg.AMQP.URL, logger)
	}
	if cfg.AMQP.ConsumerEnabled {
		go func() {
			if err := queue.StartListingConsumer(ctx, cfg.AMQP.URL, cfg.AMQP.ListingLogPath, logger); err != nil &&
				!errors.Is(err, context.Canceled) {
				logger.Error("listing consumer stopped", "err", err)
			}
		}()
	}

	dir := service.NewDirectory(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		pub,
		logger,
	)

	renderer, err := view.New()
	if err != nil {
		return err
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = form.NewValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger)

	reqLog := logger.WithPrefix("http")
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			reqLog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "err", v.Error)
			return nil
		},
	}))
	e.Use(middleware.Session(cfg.SessionSecret, cfg.IsProduction()))

	router.RegisterRoutes(e, handler.New(dir, logger), router.Options{ // Register application routes
		Cache:     cfg.Cache,
		RateLimit: cfg.RateLimit,
		Redis:     rdb,
		DB:        db,
		Logger:    logger,
	})

	addr := ":" + cfg.Port // Address string with port
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(sctx)
}
