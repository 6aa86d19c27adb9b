// Package config loads application configuration from a YAML file with
// environment variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"

	"github.com/alwasl/core/internal/pkg/mail"
)

// Database holds MySQL connection settings.
type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN builds the go-sql-driver/mysql connection string. Going through
// mysql.Config keeps passwords with special characters intact.
func (d Database) DSN() string {
	mc := mysql.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
	mc.DBName = d.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// AppConfig is the root configuration object.
type AppConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"`
	BaseURL        string   `yaml:"base_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	Database Database `yaml:"database"`
	RedisURL string   `yaml:"redis_url"`

	JWTSecret string `yaml:"jwt_secret"`

	Mail       mail.Config `yaml:"mail"`
	AdminEmail string      `yaml:"admin_email"`
}

// Load reads configuration from the given path and applies env overrides.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port: 8080,
		Env:  "development",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Secrets can come from the environment in deployments.
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		cfg.Mail.Pass = v
	}
	if v := os.Getenv("RESEND_KEY"); v != "" {
		cfg.Mail.ResendKey = v
	}

	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.Name == "" {
		return nil, fmt.Errorf("config: database.name is required")
	}

	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env != "production"
}
