package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`

		// TTLs travel as Go duration strings ("15m", "168h") in the
		// file and env, parsed into AccessTTL/RefreshTTL after decode.
		AccessTTL     time.Duration `yaml:"-"`
		RefreshTTL    time.Duration `yaml:"-"`
		AccessTTLRaw  string        `yaml:"access_ttl"`
		RefreshTTLRaw string        `yaml:"refresh_ttl"`
	} `yaml:"jwt"`

	Auth struct {
		BcryptCost int `yaml:"bcrypt_cost"`
	} `yaml:"auth"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"admin"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`
}

// LoadConfig reads config.yaml (path from CONFIG_PATH, default
// config/config.yaml), then applies environment overrides. When
// DATABASE_URL is set the file is optional, so tests and containers can
// run on environment variables alone.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	} else if os.Getenv("DATABASE_URL") == "" {
		return nil, fmt.Errorf("open config %s: %w", configPath, err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database url is not configured")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.JWT.AccessTTL = 15 * time.Minute
	cfg.JWT.RefreshTTL = 7 * 24 * time.Hour
	cfg.Auth.BcryptCost = 10
	cfg.Email.TemplatesDir = "templates"
	return cfg
}

func parseDurations(cfg *Config) error {
	if cfg.JWT.AccessTTLRaw != "" {
		d, err := time.ParseDuration(cfg.JWT.AccessTTLRaw)
		if err != nil {
			return fmt.Errorf("parse jwt.access_ttl: %w", err)
		}
		cfg.JWT.AccessTTL = d
	}
	if cfg.JWT.RefreshTTLRaw != "" {
		d, err := time.ParseDuration(cfg.JWT.RefreshTTLRaw)
		if err != nil {
			return fmt.Errorf("parse jwt.refresh_ttl: %w", err)
		}
		cfg.JWT.RefreshTTL = d
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ACCESS_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.AccessTTL = d
		}
	}
	if v := os.Getenv("JWT_REFRESH_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.RefreshTTL = d
		}
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.Admin.Email = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
	if v := os.Getenv("ADMIN_NAME"); v != "" {
		cfg.Admin.Name = v
	}
}

// IsProduction reports whether secure cookie and release-mode behavior
// should apply.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
