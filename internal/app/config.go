package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"

	"github.com/xenking/kart-inventory/internal/domain/discount"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the complete application configuration, loadable from
// environment variables (INVENTORY_ prefix), flags, or YAML config files.
type Config struct {
	Catalog      []string `usage:"Product catalog files (JSON, .gz for gzip); the built-in sample is used when empty"`
	DiscountRate string   `default:"0.15" usage:"Discount rate as a fraction (0.15) or percentage (15%)" flag:"discount-rate"`
	Search       string   `default:"cheese" usage:"Product name to look up in the discounted inventory"`
	Format       string   `default:"text" usage:"Report format: text or json"`
	LogLevel     string   `default:"info" usage:"Log level (debug, info, warn, error)" flag:"log-level"`
}

// Rate returns the parsed discount rate.
func (c *Config) Rate() (decimal.Decimal, error) {
	return discount.ParseRate(c.DiscountRate)
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := c.Rate(); err != nil {
		return errors.Wrap(err, "discount rate")
	}

	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return errors.Errorf("unsupported report format %q", c.Format)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

// LoadConfig loads configuration from environment variables, flags and YAML
// config files, then validates it.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "INVENTORY",
		Files:     []string{"inventory.yaml", "/etc/inventory/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return &cfg, nil
}
