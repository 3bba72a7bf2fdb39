package config // package config loads application configuration from the environment

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable, optionally provided through a .env file.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	LogLevel      string // logrus level name
	RabbitMQURL   string // broker for activity events; empty disables publishing
	ActivityQueue string // queue receiving activity events
	DB            DatabaseConfig
	Redis         RedisConfig
	RateLimit     RateLimitConfig
}

// DatabaseConfig describes the MySQL connection and pool.
type DatabaseConfig struct {
	User            string
	Pass            string // empty allowed
	Host            string
	Port            string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// IsProduction reports whether the app runs with APP_ENV=prod or production.
func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// Load reads an optional .env file and then the environment.  Missing
// required variables are reported together in one error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("ACTIVITY_QUEUE", "fyyur.activity")
	setRedisDefaults(v)
	setRateLimitDefaults(v)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	var missing []string
	must := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	cfg := Config{
		Env:           v.GetString("APP_ENV"),
		Port:          must("APP_PORT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		RabbitMQURL:   firstNonEmpty(v.GetString("RABBITMQ_URL"), v.GetString("AMQP_URL")),
		ActivityQueue: v.GetString("ACTIVITY_QUEUE"),
		DB: DatabaseConfig{
			User:            must("DB_USER"),
			Pass:            v.GetString("DB_PASS"),
			Host:            must("DB_HOST"),
			Port:            must("DB_PORT"),
			Name:            must("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Redis:     redisConfig(v),
		RateLimit: rateLimitConfig(v),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
