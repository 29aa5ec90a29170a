package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	// Required fields
	JWTSecretKey string `mapstructure:"jwt_secret_key"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional JWT settings
	JWTAlgorithm string `mapstructure:"jwt_algorithm"`

	// TokenTTL bounds token lifetime. Zero issues non-expiring tokens,
	// which is the default behavior; setting it is a hardening knob.
	TokenTTL time.Duration `mapstructure:"token_ttl"`

	// BcryptCost is the password hashing work factor.
	BcryptCost int `mapstructure:"bcrypt_cost"`

	// Storage
	DBPath string `mapstructure:"db_path"`
}

const (
	DefaultConfigPath   = "/etc/messagely/config.yml"
	DefaultDBPath       = "/var/lib/messagely/db.sqlite3"
	DefaultAPIHost      = "0.0.0.0"
	DefaultAPIPort      = 8331
	DefaultJWTAlgorithm = "HS256"
	DefaultBcryptCost   = 12
)

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("api_host", DefaultAPIHost)
	viper.SetDefault("api_port", DefaultAPIPort)
	viper.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	viper.SetDefault("bcrypt_cost", DefaultBcryptCost)
	viper.SetDefault("db_path", DefaultDBPath)

	// Allow environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvPrefix("MESSAGELY")

	// AutomaticEnv does not surface env-only values through Unmarshal
	// for keys that have no default, so every key is bound explicitly;
	// otherwise MESSAGELY_JWT_SECRET_KEY would be ignored.
	for _, key := range []string{
		"jwt_secret_key",
		"api_host",
		"api_port",
		"ssl_cert",
		"ssl_key",
		"cors_origins",
		"jwt_algorithm",
		"token_ttl",
		"bcrypt_cost",
		"db_path",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("jwt_secret_key is required")
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.TokenTTL < 0 {
		return fmt.Errorf("token_ttl must not be negative")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("MESSAGELY_DEV_MODE") == "1"
}
