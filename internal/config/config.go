package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds application, provider and widget settings.
type Config struct {
	App    App
	Rates  Rates
	Widget Widget
}

// App configures the HTTP server and logging.
type App struct {
	Host         string        `env:"APP_HOST" env-default:"localhost" validate:"required"`
	Port         string        `env:"APP_PORT" env-default:"8080" validate:"required,numeric"`
	LogLevel     string        `env:"APP_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error dpanic panic fatal"`
	ReadTimeout  time.Duration `env:"APP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"APP_WRITE_TIMEOUT" env-default:"60s"`
	IdleTimeout  time.Duration `env:"APP_IDLE_TIMEOUT" env-default:"60s"`
}

// Rates describes the single request issued to the rates provider.
type Rates struct {
	BaseURL     string        `env:"RATES_BASE_URL" env-default:"https://v1.apiplugin.io/v1/currency" validate:"required,url"`
	AccessToken string        `env:"RATES_ACCESS_TOKEN" env-default:"Pi3nJmfG" validate:"required"`
	Source      string        `env:"RATES_SOURCE" env-default:"RUB" validate:"required,iso4217"`
	Targets     []string      `env:"RATES_TARGETS" env-default:"USD,EUR,GBP" env-separator:"," validate:"required,min=1,dive,iso4217"`
	Timeout     time.Duration `env:"RATES_TIMEOUT" env-default:"30s"`
}

// Widget configures rendering.
type Widget struct {
	// Timezone is an IANA name; empty or "Local" means the process location.
	Timezone string `env:"WIDGET_TIMEZONE" env-default:"Local"`
}

// Load reads the optional env file at path, then the process environment,
// and validates the result.
func Load(path string) (*Config, error) {
	if path != "" {
		_ = godotenv.Load(path)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	for i, t := range cfg.Rates.Targets {
		cfg.Rates.Targets[i] = strings.ToUpper(strings.TrimSpace(t))
	}
	cfg.Rates.Source = strings.ToUpper(strings.TrimSpace(cfg.Rates.Source))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address of the HTTP server.
func (a App) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Location resolves the widget timezone.
func (w Widget) Location() (*time.Location, error) {
	if w.Timezone == "" || w.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(w.Timezone)
}
