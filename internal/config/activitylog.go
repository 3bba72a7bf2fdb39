package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ActivityLogConfig configures the activity log consumer.  It shares the
// broker settings of the web server but needs no database.
type ActivityLogConfig struct {
	Env         string
	LogLevel    string
	RabbitMQURL string
	Queue       string
	LogPath     string
}

// LoadActivityLog reads the consumer configuration from .env and the
// environment.  RABBITMQ_URL (or AMQP_URL) is required.
func LoadActivityLog() (ActivityLogConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ActivityLogConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return activityLogFromViper(newViper())
}

func activityLogFromViper(v *viper.Viper) (ActivityLogConfig, error) {
	v.SetDefault("ACTIVITY_LOG_PATH", "logs/activity.log")
	cfg := ActivityLogConfig{
		Env:         v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		RabbitMQURL: strings.TrimSpace(firstNonEmpty(v.GetString("RABBITMQ_URL"), v.GetString("AMQP_URL"))),
		Queue:       v.GetString("ACTIVITY_QUEUE"),
		LogPath:     v.GetString("ACTIVITY_LOG_PATH"),
	}
	if cfg.RabbitMQURL == "" {
		return ActivityLogConfig{}, errors.New("missing required env vars: RABBITMQ_URL")
	}
	return cfg, nil
}
