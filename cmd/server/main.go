package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/nikosDal/fyyur-01/internal/config"
	"github.com/nikosDal/fyyur-01/internal/database"
	"github.com/nikosDal/fyyur-01/internal/handler"
	"github.com/nikosDal/fyyur-01/internal/middleware"
	"github.com/nikosDal/fyyur-01/internal/queue"
	"github.com/nikosDal/fyyur-01/internal/repository"
	"github.com/nikosDal/fyyur-01/internal/router"
	"github.com/nikosDal/fyyur-01/internal/service"
	"github.com/nikosDal/fyyur-01/internal/view"
)

func main() {
	cfg, err := config.Load() // Load .env and environment
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	if err := config.ConfigureLogging(cfg.Env, cfg.LogLevel); err != nil {
		logrus.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Activity events are optional; without a broker they are dropped.
	publisher := queue.NewPublisher(cfg.RabbitMQURL, cfg.ActivityQueue)
	defer publisher.Close()
	if publisher.Enabled() {
		logrus.WithField("queue", cfg.ActivityQueue).Info("activity events enabled")
	} else {
		logrus.Warn("RABBITMQ_URL not set, activity events disabled")
	}

	// Redis backs the rate limiter when reachable.
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
		logrus.WithField("addr", cfg.Redis.Addr).Info("rate limiting through redis")
	} else if cfg.RateLimit.Enabled {
		logrus.Warn("redis unreachable, rate limiting in process")
	}

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	clock := service.Clock(service.SystemClock)
	venues := service.NewVenueService(venueRepo, showRepo, publisher, clock)
	artists := service.NewArtistService(artistRepo, showRepo, publisher, clock)
	shows := service.NewShowService(showRepo, publisher, clock)

	renderer, err := view.New()
	if err != nil {
		logrus.Fatalf("Failed to parse templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.IdleTimeout = 60 * time.Second
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())

	router.RegisterRoutes(e, router.Handlers{
		Health:  &handler.HealthHandler{DB: db},
		Venues:  &handler.VenueHandler{Venues: venues},
		Artists: &handler.ArtistHandler{Artists: artists},
		Shows:   &handler.ShowHandler{Shows: shows},
	}, middleware.NewRateLimiter(cfg.RateLimit, rdb))

	addr := ":" + cfg.Port
	go func() {
		logrus.Infof("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occurred while running http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Info("shutting down")
	ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := e.Shutdown(ctx); err != nil {
		logrus.Errorf("error occurred on server shutting down: %v", err)
	}
}
