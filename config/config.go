// Package config loads server and client settings from defaults, an optional
// config file, a .env file and the process environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port      int
	JWTSecret string
	APIURL    string
	APIToken  string

	Database Database
	Log      Log
}

type Database struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

type Log struct {
	Level  string
	Format string
}

var (
	validSSLModes   = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// bindings maps viper keys onto their environment variables.
var bindings = map[string]string{
	"port":              "PORT",
	"jwt_secret":        "JWT_SECRET",
	"api_url":           "API_URL",
	"api_token":         "API_TOKEN",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.name":     "DB_NAME",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.sslmode":  "DB_SSLMODE",
	"log.level":         "LOG_LEVEL",
	"log.format":        "LOG_FORMAT",
}

// SetDefaults registers defaults and env bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 3001)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("api_url", "http://localhost:3001/api")
	v.SetDefault("api_token", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "financas")
	v.SetDefault("database.user", "financas_user")
	v.SetDefault("database.password", "financas_password")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
}

// LoadDotEnv loads variables from a .env file without overriding ones already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from v. If file is non-empty it is read first.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:      v.GetInt("port"),
		JWTSecret: v.GetString("jwt_secret"),
		APIURL:    v.GetString("api_url"),
		APIToken:  v.GetString("api_token"),
		Database: Database{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			Name:     v.GetString("database.name"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid database port %d: must be between 1 and 65535", c.Database.Port))
	}
	if c.Database.Host == "" {
		problems = append(problems, "database host cannot be empty")
	}
	if c.Database.Name == "" {
		problems = append(problems, "database name cannot be empty")
	}
	if c.Database.User == "" {
		problems = append(problems, "database user cannot be empty")
	}
	if !slices.Contains(validSSLModes, c.Database.SSLMode) {
		problems = append(problems, fmt.Sprintf("invalid sslmode '%s': must be one of %v", c.Database.SSLMode, validSSLModes))
	}
	if !slices.Contains(validLogLevels, c.Log.Level) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.Log.Level, validLogLevels))
	}
	if !slices.Contains(validLogFormats, c.Log.Format) {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be one of %v", c.Log.Format, validLogFormats))
	}
	if c.APIURL != "" {
		if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			problems = append(problems, fmt.Sprintf("invalid API URL '%s': must be an http(s) URL", c.APIURL))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// DSN returns a lib/pq connection string.
func (d Database) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
