package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aradsms/compose_service/internal/compose_service/domain"
)

// Config holds all configuration for the compose service.
type Config struct {
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Public API
	ComposeAPIServicePort  int    `mapstructure:"COMPOSE_API_SERVICE_PORT"`
	ComposeServiceGRPCPort int    `mapstructure:"COMPOSE_SERVICE_GRPC_PORT"`
	JWTAccessSecret        string `mapstructure:"JWT_ACCESS_SECRET"`

	// Support backend (the contact transport)
	BackendBaseURL        string `mapstructure:"BACKEND_BASE_URL"`
	BackendAccountID      int64  `mapstructure:"BACKEND_ACCOUNT_ID"`
	BackendAPIToken       string `mapstructure:"BACKEND_API_TOKEN"`
	BackendTimeoutSeconds int    `mapstructure:"BACKEND_TIMEOUT_SECONDS"`
	// 0 disables outbound rate limiting.
	BackendRateLimitRPS   float64 `mapstructure:"BACKEND_RATE_LIMIT_RPS"`
	BackendRateLimitBurst int     `mapstructure:"BACKEND_RATE_LIMIT_BURST"`

	// Composition
	DirectUploadsEnabled bool `mapstructure:"DIRECT_UPLOADS_ENABLED"`

	// Help center
	HostURL       string `mapstructure:"HOST_URL"`
	HelpCenterURL string `mapstructure:"HELP_CENTER_URL"`
}

// BackendTimeout returns the HTTP timeout for backend requests.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSeconds) * time.Second
}

// Portal returns the help center configuration passed to the portal helpers.
func (c *Config) Portal() domain.PortalConfig {
	return domain.PortalConfig{HostURL: c.HostURL, HelpCenterURL: c.HelpCenterURL}
}

// Load reads config.defaults.yaml (if present), then APP_-prefixed environment
// variables, on top of built-in defaults.
func Load(serviceName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP") // APP_LOG_LEVEL, APP_BACKEND_BASE_URL etc.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Printf("Base configuration file ('config.defaults.yaml') not found for %s; using defaults and environment variables.", serviceName)
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Every key needs a default, otherwise AutomaticEnv values are not picked up
// by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("COMPOSE_API_SERVICE_PORT", 8090)
	v.SetDefault("COMPOSE_SERVICE_GRPC_PORT", 50060)
	v.SetDefault("JWT_ACCESS_SECRET", "access-secret-must-be-overridden-in-prod")

	v.SetDefault("BACKEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("BACKEND_ACCOUNT_ID", 1)
	v.SetDefault("BACKEND_API_TOKEN", "")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	v.SetDefault("BACKEND_RATE_LIMIT_RPS", 0)
	v.SetDefault("BACKEND_RATE_LIMIT_BURST", 5)

	v.SetDefault("DIRECT_UPLOADS_ENABLED", false)

	v.SetDefault("HOST_URL", "http://localhost:3000")
	v.SetDefault("HELP_CENTER_URL", "")
}
