package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Backend names the persistence implementation serving the store contract.
type Backend string

const (
	BackendRelational Backend = "relational"
	BackendDynamoDB   Backend = "dynamodb"
	BackendMemory     Backend = "memory"
)

// Environment types. SERVER is treated as production.
const (
	EnvLocal  = "LOCAL"
	EnvServer = "SERVER"
)

// Config stores all configuration of the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Dynamo    DynamoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Seed      SeedConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	EnvType string `env:"ENV_TYPE" envDefault:"LOCAL"`
	Port    string `env:"SERVER_PORT" envDefault:"8080"`
}

// StoreConfig carries the backend selection flags.
type StoreConfig struct {
	UseDynamoDB    bool `env:"USE_DYNAMODB"`
	UseMemoryStore bool `env:"USE_MEMORY_STORE"`
}

// DatabaseConfig is read with the LOCAL_ or SERVER_ prefix chosen by ENV_TYPE.
type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME" envDefault:"mci"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MigrationMode   string        `env:"DB_MIGRATION_MODE" envDefault:"none"` // "none" or "auto"
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
}

type DynamoConfig struct {
	Region      string `env:"DYNAMODB_REGION" envDefault:"us-east-1"`
	Endpoint    string `env:"DYNAMODB_ENDPOINT"` // e.g. http://localhost:8000 for DynamoDB Local
	TablePrefix string `env:"DYNAMODB_TABLE_PREFIX" envDefault:"mci_"`
}

type RedisConfig struct {
	Enabled        bool          `env:"REDIS_ENABLED"`
	Host           string        `env:"REDIS_HOST" envDefault:"localhost"`
	Port           string        `env:"REDIS_PORT" envDefault:"6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB" envDefault:"0"`
	TaskSummaryTTL time.Duration `env:"TASK_SUMMARY_CACHE_TTL" envDefault:"30s"`
}

type JWTConfig struct {
	SecretKey string        `env:"JWT_SECRET_KEY" envDefault:"mci-secret-key-change-in-production"`
	TTL       time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

// SeedConfig controls the default Commander account created by the lazily
// initialized backends.
type SeedConfig struct {
	Enabled           bool   `env:"SEED_ENABLED" envDefault:"true"`
	CommanderPassword string `env:"SEED_COMMANDER_PASSWORD" envDefault:"password123"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Dir    string `env:"LOG_DIR"`
}

type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"30"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"50"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(&cfg.Server); err != nil {
		return nil, fmt.Errorf("parse server env: %w", err)
	}

	// Unknown environment types fall back to LOCAL
	cfg.Server.EnvType = strings.ToUpper(cfg.Server.EnvType)
	if cfg.Server.EnvType != EnvServer {
		cfg.Server.EnvType = EnvLocal
	}
	prefix := cfg.Server.EnvType + "_"

	sections := []struct {
		name   string
		target any
		prefix string
	}{
		{"store", &cfg.Store, ""},
		{"database", &cfg.Database, prefix},
		{"dynamodb", &cfg.Dynamo, ""},
		{"redis", &cfg.Redis, ""},
		{"jwt", &cfg.JWT, ""},
		{"seed", &cfg.Seed, ""},
		{"log", &cfg.Log, ""},
		{"rate limit", &cfg.RateLimit, ""},
	}
	for _, s := range sections {
		if err := env.ParseWithOptions(s.target, env.Options{Prefix: s.prefix}); err != nil {
			return nil, fmt.Errorf("parse %s env: %w", s.name, err)
		}
	}

	if cfg.Database.MigrationMode != "none" && cfg.Database.MigrationMode != "auto" {
		return nil, fmt.Errorf("invalid %sDB_MIGRATION_MODE %q", prefix, cfg.Database.MigrationMode)
	}
	return cfg, nil
}

// Backend returns the persistence backend selected for the process lifetime.
// USE_DYNAMODB wins over USE_MEMORY_STORE; with neither set the relational
// database is used.
func (c *Config) Backend() Backend {
	switch {
	case c.Store.UseDynamoDB:
		return BackendDynamoDB
	case c.Store.UseMemoryStore:
		return BackendMemory
	default:
		return BackendRelational
	}
}

// IsProduction reports whether error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Server.EnvType == EnvServer
}

// GetDSN returns the database connection string for the configured driver
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == "mysql" {
		return c.User + ":" + c.Password + "@tcp(" + c.Host + ":" + c.Port + ")/" + c.Name + "?charset=utf8mb4&parseTime=True&loc=UTC"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// GetRedisAddr returns the Redis address
func (c *RedisConfig) GetRedisAddr() string {
	return c.Host + ":" + c.Port
}
