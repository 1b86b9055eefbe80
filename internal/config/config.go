package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for all environment variables.
const EnvPrefix = "rld"

type Config struct {
	Port     string `envconfig:"RLD_PORT" default:"8080"`
	GinMode  string `envconfig:"RLD_GIN_MODE" default:"debug"`
	LogLevel string `envconfig:"RLD_LOG_LEVEL" default:"info"`

	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	Seed    SeedConfig

	// AllowStatusRollback permits moving tasks and submissions backward out
	// of Completed/Validated/Rejected. The source workflow imposed no guard,
	// so it defaults to on; tightened deployments can switch it off.
	AllowStatusRollback bool `envconfig:"RLD_ALLOW_STATUS_ROLLBACK" default:"true"`
}

type DBConfig struct {
	Driver   string `envconfig:"RLD_DB_DRIVER" default:"mysql"`
	Host     string `envconfig:"RLD_DB_HOST" default:"localhost"`
	Port     string `envconfig:"RLD_DB_PORT" default:"3306"`
	User     string `envconfig:"RLD_DB_USER" default:"rld"`
	Password string `envconfig:"RLD_DB_PASSWORD" default:"rld"`
	Name     string `envconfig:"RLD_DB_NAME" default:"labor_report"`
	SSLMode  string `envconfig:"RLD_DB_SSLMODE" default:"disable"`
}

// DSN assembles the connection string for the configured driver.
func (d DBConfig) DSN() string {
	if d.Driver == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Host string `envconfig:"RLD_REDIS_HOST" default:"localhost"`
	Port string `envconfig:"RLD_REDIS_PORT" default:"6379"`
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type SessionConfig struct {
	Secret string `envconfig:"RLD_SESSION_SECRET" default:"default-secret-key-change-me"`
}

type SeedConfig struct {
	AdminLogin    string `envconfig:"RLD_SEED_ADMIN_LOGIN" default:"vperaza"`
	AdminName     string `envconfig:"RLD_SEED_ADMIN_NAME" default:"Viviana Peraza"`
	AdminPassword string `envconfig:"RLD_SEED_ADMIN_PASSWORD" default:""`
}

// Load reads configuration from the environment, merging a local .env file
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch strings.ToLower(cfg.DB.Driver) {
	case "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}
