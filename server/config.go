package server

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/etnz/tradestats/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by the server.
const EnvPrefix = "PNL"

// Config is the server configuration.
type Config struct {
	Addr           string        `envconfig:"ADDR" default:":8080"`
	MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
	FeeFile        string        `envconfig:"FEE_FILE"`
	Ledger         string        `envconfig:"LEDGER"` // ledger loaded and watched as the "default" session.
	Defaults       InputDefaults `envconfig:"DEFAULT"`
	Log            logger.Config `envconfig:"LOG"`
}

// InputDefaults are the settings used when a form value is missing, and for
// the watched ledger.
type InputDefaults struct {
	Capital       float64 `envconfig:"CAPITAL" default:"100000"`
	Brokerage     float64 `envconfig:"BROKERAGE" default:"20"`
	ProfitSharing float64 `envconfig:"PROFIT_SHARING" default:"0"`
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file if there is one.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	return cfg, nil
}
