package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string        `mapstructure:"PORT"`
	BindAddr          string        `mapstructure:"BIND_ADDR"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	DatabaseDriver    string        `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DataDir           string        `mapstructure:"DATA_DIR"`
	CatalogDir        string        `mapstructure:"CATALOG_DIR"`
	ImagesDir         string        `mapstructure:"IMAGES_DIR"`
	PDFFontFile       string        `mapstructure:"PDF_FONT_FILE"`
	PDFCompress       bool          `mapstructure:"PDF_COMPRESS"`
	PrintCommand      string        `mapstructure:"PRINT_COMMAND"`
	PrintCleanupDelay time.Duration `mapstructure:"PRINT_CLEANUP_DELAY"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`
	APISecret         string        `mapstructure:"API_SECRET"`
	APITokenTTL       time.Duration `mapstructure:"API_TOKEN_TTL"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	minSecretLen = 16
)

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8765")
	v.SetDefault("BIND_ADDR", "127.0.0.1")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATA_DIR", ".")
	v.SetDefault("PDF_COMPRESS", true)
	v.SetDefault("PRINT_COMMAND", "lp")
	v.SetDefault("PRINT_CLEANUP_DELAY", "3s")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("API_TOKEN_TTL", "720h")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "BIND_ADDR", "ENV", "LOG_LEVEL",
		"DATABASE_DRIVER", "DATABASE_URL",
		"DATA_DIR", "CATALOG_DIR", "IMAGES_DIR",
		"PDF_FONT_FILE", "PDF_COMPRESS",
		"PRINT_COMMAND", "PRINT_CLEANUP_DELAY",
		"CORS_ORIGINS", "API_SECRET", "API_TOKEN_TTL",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}

	cfg.applyDerivedDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDerivedDefaults fills the paths that hang off DATA_DIR when they were
// not set explicitly.
func (c *Config) applyDerivedDefaults() {
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	if c.DatabaseURL == "" && c.DatabaseDriver == DriverSQLite {
		c.DatabaseURL = filepath.Join(c.DataDir, "medical_prescription.db")
	}
	if c.CatalogDir == "" {
		c.CatalogDir = c.DataDir
	}
	if c.ImagesDir == "" {
		c.ImagesDir = filepath.Join(c.DataDir, "patient_images")
	}
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ListenAddr is the host:port the local API binds to.
func (c *Config) ListenAddr() string {
	return c.BindAddr + ":" + c.Port
}

// Validate checks that the configuration can be used to open the store and
// run the document pipeline.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when DATABASE_DRIVER is %q", c.DatabaseDriver)
	}
	if c.PrintCleanupDelay < 0 {
		return fmt.Errorf("PRINT_CLEANUP_DELAY must not be negative, got %s", c.PrintCleanupDelay)
	}
	if strings.TrimSpace(c.PrintCommand) == "" {
		return fmt.Errorf("PRINT_COMMAND must not be empty")
	}
	if c.APISecret != "" && len(c.APISecret) < minSecretLen {
		return fmt.Errorf("API_SECRET must be at least %d characters", minSecretLen)
	}
	if c.APITokenTTL < 0 {
		return fmt.Errorf("API_TOKEN_TTL must not be negative, got %s", c.APITokenTTL)
	}
	return nil
}
