package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"freelance_backend/internal/validator"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port" validate:"min=1,max=65535"`
		Env             string        `yaml:"env" validate:"oneof=development test production"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Database struct {
		Driver             string        `yaml:"driver" validate:"oneof=postgres mysql"`
		DSN                string        `yaml:"url" validate:"required"`
		MaxOpenConns       int           `yaml:"max_open_conns" validate:"min=0"`
		MaxIdleConns       int           `yaml:"max_idle_conns" validate:"min=0"`
		ConnMaxLifetime    time.Duration `yaml:"conn_max_lifetime"`
		SlowQueryThreshold time.Duration `yaml:"slow_query_threshold"`
		AutoMigrate        bool          `yaml:"auto_migrate"`
	} `yaml:"database"`

	Log struct {
		Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	} `yaml:"log"`

	Workers struct {
		// LedgerInterval - период сверки балансов баллов, 0 отключает воркер
		LedgerInterval  time.Duration `yaml:"ledger_interval" validate:"min=0"`
		LedgerBatchSize int           `yaml:"ledger_batch_size" validate:"min=1"`
	} `yaml:"workers"`

	// Seed - первый суперпользователь, создается при старте, если задан
	Seed struct {
		AdminEmail     string `yaml:"admin_email" validate:"omitempty,email"`
		AdminPassword  string `yaml:"admin_password" validate:"required_with=AdminEmail"`
		AdminFirstName string `yaml:"admin_first_name"`
		AdminLastName  string `yaml:"admin_last_name"`
	} `yaml:"seed"`
}

var AppConfig *Config

// IsDevelopment - true для локальной разработки
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Addr - адрес для http.Server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func defaults() Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Database.Driver = "postgres"
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 30 * time.Minute
	cfg.Database.SlowQueryThreshold = 200 * time.Millisecond
	cfg.Database.AutoMigrate = true
	cfg.Workers.LedgerInterval = 6 * time.Hour
	cfg.Workers.LedgerBatchSize = 500
	cfg.Seed.AdminFirstName = "Admin"
	cfg.Seed.AdminLastName = "User"
	return cfg
}

// LoadConfig читает .env (если есть), затем YAML из CONFIG_PATH
// (по умолчанию config/config.yaml), затем применяет переменные окружения.
// Без файла конфигурация собирается только из окружения.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// только окружение
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString("DATABASE_URL", &cfg.Database.DSN)
	setString("DATABASE_DRIVER", &cfg.Database.Driver)
	setString("SERVER_HOST", &cfg.Server.Host)
	setString("SERVER_ENV", &cfg.Server.Env)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("SEED_ADMIN_EMAIL", &cfg.Seed.AdminEmail)
	setString("SEED_ADMIN_PASSWORD", &cfg.Seed.AdminPassword)

	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LEDGER_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LEDGER_INTERVAL %q: %w", v, err)
		}
		cfg.Workers.LedgerInterval = d
	}
	if v := os.Getenv("DATABASE_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DATABASE_AUTO_MIGRATE %q: %w", v, err)
		}
		cfg.Database.AutoMigrate = b
	}
	return nil
}

// MustLoad загружает конфиг в AppConfig или паникует.
func MustLoad() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	AppConfig = cfg
	return cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		MustLoad()
	}
	return AppConfig
}
