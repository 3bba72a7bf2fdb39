// Command activitylog consumes the activity queue and appends one line per
// committed venue, artist or show mutation to the activity log file.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/nikosDal/fyyur-01/internal/config"
	"github.com/nikosDal/fyyur-01/internal/queue"
)

func main() {
	cfg, err := config.LoadActivityLog()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	if err := config.ConfigureLogging(cfg.Env, cfg.LogLevel); err != nil {
		logrus.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logrus.WithFields(logrus.Fields{"queue": cfg.Queue, "file": cfg.LogPath}).Info("activity consumer started")
	c := queue.Consumer{URL: cfg.RabbitMQURL, Queue: cfg.Queue, LogPath: cfg.LogPath}
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.Fatalf("activity consumer: %v", err)
	}
	logrus.Info("activity consumer stopped")
}
