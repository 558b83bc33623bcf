package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Logging     struct {
		Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format     string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output     string `yaml:"output" default:"stdout" validate:"required"`
		MaxAgeDays int    `yaml:"max_age_days" default:"7" validate:"gte=0"`
	} `yaml:"logging"`
	Source struct {
		CountryURL        string        `yaml:"country_url" default:"https://disease.sh/v3/covid-19/countries/india" validate:"required,url"`
		SubdivisionsURL   string        `yaml:"subdivisions_url" default:"https://disease.sh/v3/covid-19/gov/india" validate:"required,url"`
		SubdivisionsField string        `yaml:"subdivisions_field" default:"states" validate:"required"`
		Timeout           time.Duration `yaml:"timeout" default:"10s" validate:"gt=0"`
		UserAgent         string        `yaml:"user_agent" default:"Mozilla/5.0" validate:"required"`
	} `yaml:"source"`
	Country struct {
		Name             string   `yaml:"name" default:"India" validate:"required"`
		Flag             string   `yaml:"flag" default:"🇮🇳"`
		SubdivisionLabel string   `yaml:"subdivision_label" default:"STATE" validate:"required"`
		Monitored        []string `yaml:"monitored" default:"[\"West Bengal\",\"Delhi\",\"Maharashtra\",\"Karnataka\",\"Tamil Nadu\"]" validate:"dive,required"`
	} `yaml:"country"`
	Schedule struct {
		UpdateInterval  time.Duration `yaml:"update_interval" default:"1h" validate:"gt=0"`
		RetryInterval   time.Duration `yaml:"retry_interval" default:"1m" validate:"gt=0"`
		NotificationGap time.Duration `yaml:"notification_gap" default:"2s" validate:"gte=0"`
	} `yaml:"schedule"`
	Notifier struct {
		Desktop  bool          `yaml:"desktop" default:"true"`
		AppName  string        `yaml:"app_name" default:"COVID-19 Tracker"`
		IconPath string        `yaml:"icon_path" default:"icon.ico"`
		Timeout  time.Duration `yaml:"timeout" default:"10s" validate:"gte=0"`
	} `yaml:"notifier"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"covid.notifications"`
		RequiredAcks int           `yaml:"required_acks" default:"1" validate:"oneof=-1 0 1"`
		Compression  string        `yaml:"compression" default:"gzip" validate:"oneof=none gzip snappy lz4 zstd"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"5s" validate:"gt=0"`
	} `yaml:"kafka"`
	Cache struct {
		Backend string `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
		Prefix  string `yaml:"prefix" default:"covidpulse:"`
		Redis   struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db" validate:"gte=0"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Server struct {
		Enabled         bool          `yaml:"enabled"`
		Host            string        `yaml:"host" default:"127.0.0.1"`
		Port            int           `yaml:"port" default:"8089" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"5s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"5s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"5s"`
		RateLimit       struct {
			RequestsPerSecond float64 `yaml:"requests_per_second" default:"5" validate:"gte=0"`
			Burst             int     `yaml:"burst" default:"10" validate:"gte=0"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
}

var validate = validator.New()

// Default returns a configuration populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load applies defaults, overlays the YAML file at path and validates the
// result. A missing file is not an error: the defaults alone describe the
// stock India tracker.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("COVIDPULSE_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("COVIDPULSE_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("COVIDPULSE_MONITORED"); v != "" {
		c.Country.Monitored = splitList(v)
	}
	if v := os.Getenv("COVIDPULSE_KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("COVIDPULSE_REDIS_ADDR"); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("COVIDPULSE_STATUS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("COVIDPULSE_STATUS_PORT: %w", err)
		}
		c.Server.Enabled = true
		c.Server.Port = port
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers cannot be empty when kafka.enabled is set")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic is required when kafka.enabled is set")
		}
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis backend")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
