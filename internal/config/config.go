package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported DATABASE_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	MongoDB  MongoDBConfig
	Gemini   GeminiConfig
	Auth     AuthConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	Host         string
	CORSOrigin   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver     string
	URL        string
	SQLitePath string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type AuthConfig struct {
	IdentityHeader string
	OIDCIssuer     string
	OIDCClientID   string
	JWTSecret      string
}

// Addr is the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	envFile := os.Getenv("NOTES_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5010")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_READ_TIMEOUT", 30)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 120)
	viper.SetDefault("CORS_ORIGIN", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("SQLITE_PATH", "notes.db")
	viper.SetDefault("MONGODB_DATABASE", "notes")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("GEMINI_MODEL", "gemini-3-flash-preview")
	viper.SetDefault("GEMINI_TEMPERATURE", 0.2)
	viper.SetDefault("AUTH_IDENTITY_HEADER", "X-User-Id")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			CORSOrigin:   viper.GetString("CORS_ORIGIN"),
			ReadTimeout:  time.Duration(viper.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(strings.TrimSpace(viper.GetString("DATABASE_DRIVER"))),
			URL:        viper.GetString("DATABASE_URL"),
			SQLitePath: viper.GetString("SQLITE_PATH"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Gemini: GeminiConfig{
			APIKey:      strings.TrimSpace(os.Getenv("GOOGLE_GEMINI_API_KEY")),
			Model:       viper.GetString("GEMINI_MODEL"),
			Temperature: float32(viper.GetFloat64("GEMINI_TEMPERATURE")),
		},
		Auth: AuthConfig{
			IdentityHeader: viper.GetString("AUTH_IDENTITY_HEADER"),
			OIDCIssuer:     viper.GetString("AUTH_OIDC_ISSUER"),
			OIDCClientID:   viper.GetString("AUTH_OIDC_CLIENT_ID"),
			JWTSecret:      os.Getenv("AUTH_JWT_SECRET"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	return cfg, nil
}

// Validate reports settings that make the selected driver unusable.
// A missing Gemini key is not an error: assist calls fail at first use.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %q", c.Database.Driver)
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for driver %q", c.Database.Driver)
		}
	case DriverMongo:
		if c.MongoDB.URI == "" {
			return fmt.Errorf("MONGODB_URI is required for driver %q", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Auth.IdentityHeader) == "" {
		return fmt.Errorf("AUTH_IDENTITY_HEADER must not be empty")
	}
	if c.Auth.OIDCIssuer != "" && c.Auth.OIDCClientID == "" {
		return fmt.Errorf("AUTH_OIDC_CLIENT_ID is required when AUTH_OIDC_ISSUER is set")
	}
	return nil
}
