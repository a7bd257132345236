package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/base48/vietqr-portal/internal/vietqr"
)

// Bounds for QR_SIZE and the size query parameter.
const (
	MinQRSize = 64
	MaxQRSize = 2048
)

type Config struct {
	// Server
	Port    string
	BaseURL string

	// QR defaults
	DefaultBankBIN string
	QRSize         int

	// Rendering assets, empty means built-in fallback
	LogoPath       string
	FontPath       string
	BackgroundPath string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. Call godotenv.Load first to
// pick up a .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("DEFAULT_BANK_BIN", vietqr.DefaultBankBIN)
	v.SetDefault("QR_SIZE", 420)
	v.SetDefault("LOGO_PATH", "")
	v.SetDefault("FONT_PATH", "")
	v.SetDefault("BACKGROUND_PATH", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	cfg := &Config{
		Port:           v.GetString("PORT"),
		BaseURL:        strings.TrimRight(v.GetString("BASE_URL"), "/"),
		DefaultBankBIN: v.GetString("DEFAULT_BANK_BIN"),
		QRSize:         v.GetInt("QR_SIZE"),
		LogoPath:       v.GetString("LOGO_PATH"),
		FontPath:       v.GetString("FONT_PATH"),
		BackgroundPath: v.GetString("BACKGROUND_PATH"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
	}

	// Validate
	if bin, ok := vietqr.ResolveBankBIN(cfg.DefaultBankBIN); ok {
		cfg.DefaultBankBIN = bin
	} else {
		return nil, fmt.Errorf("DEFAULT_BANK_BIN must be a 6-digit BIN or known bank code, got %q", cfg.DefaultBankBIN)
	}
	if cfg.QRSize < MinQRSize || cfg.QRSize > MaxQRSize {
		return nil, fmt.Errorf("QR_SIZE must be between %d and %d, got %d", MinQRSize, MaxQRSize, cfg.QRSize)
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

// QRImageURL returns the public URL of the PNG endpoint.
func (c *Config) QRImageURL() string {
	return fmt.Sprintf("%s/api/qr.png", c.BaseURL)
}
