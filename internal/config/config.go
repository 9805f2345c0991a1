package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageTypePostgres = "postgres"
	StorageTypeMemory   = "memory"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Storage      StorageConfig
	App          AppConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type StorageConfig struct {
	// Type selects the backing store: "postgres" (default) or "memory".
	Type string
}

// AppConfig carries directory/engine tunables.
type AppConfig struct {
	InterestMessageMaxLen int
	BrowseDefaultLimit    int
	BrowseMaxLimit        int
	ProfileCacheTTL       time.Duration
}

type LoggingConfig struct {
	Level string
	JSON  bool
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("ENV", "local")
	viper.SetDefault("STORAGE_TYPE", StorageTypePostgres)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("INTEREST_MESSAGE_MAX_LEN", 1000)
	viper.SetDefault("BROWSE_DEFAULT_LIMIT", 20)
	viper.SetDefault("BROWSE_MAX_LIMIT", 50)
	viper.SetDefault("PROFILE_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Storage: StorageConfig{
			Type: viper.GetString("STORAGE_TYPE"),
		},
		App: AppConfig{
			InterestMessageMaxLen: viper.GetInt("INTEREST_MESSAGE_MAX_LEN"),
			BrowseDefaultLimit:    viper.GetInt("BROWSE_DEFAULT_LIMIT"),
			BrowseMaxLimit:        viper.GetInt("BROWSE_MAX_LIMIT"),
			ProfileCacheTTL:       time.Duration(viper.GetInt("PROFILE_CACHE_TTL_SECONDS")) * time.Second,
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
			JSON:  viper.GetBool("LOG_JSON"),
		},
		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageTypePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case StorageTypeMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.App.InterestMessageMaxLen <= 0 {
		return fmt.Errorf("interest message max length must be positive")
	}
	if c.App.BrowseDefaultLimit <= 0 || c.App.BrowseMaxLimit < c.App.BrowseDefaultLimit {
		return fmt.Errorf("invalid browse limits")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
