package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration required by the service.
// Values come from an optional YAML file and are overridden by environment variables.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	URL            string `yaml:"url"`
	MaxConns       int32  `yaml:"max_conns"`
	ConnectTimeout int    `yaml:"connect_timeout"` // seconds
}

// APIConfig holds the HTTP server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	BasePath string           `yaml:"base_path"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`

	// APIKeys maps apiKey -> client name. Empty disables authentication.
	APIKeys map[string]string `yaml:"api_keys"`

	// DefaultHistoryLimit is used when GET /historial has no limit.
	DefaultHistoryLimit int `yaml:"default_history_limit"`
}

// APITimeoutConfig contains HTTP timeouts in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// MQTTConfig controls notifications sent to feeders after writes.
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // e.g. tcp://localhost:1883
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	QoS         int    `yaml:"qos"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | console
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty), then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			MaxConns:       10,
			ConnectTimeout: 10,
		},
		API: APIConfig{
			Host:     "0.0.0.0",
			Port:     8080,
			BasePath: "/api/v1",
			Timeouts: APITimeoutConfig{
				Read:  15,
				Write: 15,
				Idle:  60,
			},
			DefaultHistoryLimit: 10,
		},
		MQTT: MQTTConfig{
			Broker:      "tcp://localhost:1883",
			ClientID:    "pet-feeder-api",
			QoS:         1,
			TopicPrefix: "feeder",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// applyEnvOverrides applies environment variables on top of file values.
// API_KEYS format: "client1:key1,client2:key2"
func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("DB_URL")); v != "" {
		cfg.Database.URL = v
	}

	if v := strings.TrimSpace(os.Getenv("API_KEYS")); v != "" {
		keys, err := parseAPIKeys(v)
		if err != nil {
			return err
		}
		cfg.API.APIKeys = keys
	}

	if v := strings.TrimSpace(os.Getenv("FEEDER_API_HOST")); v != "" {
		cfg.API.Host = v
	}
	if v := strings.TrimSpace(os.Getenv("FEEDER_API_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FEEDER_API_PORT must be an integer: %w", err)
		}
		cfg.API.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("FEEDER_CORS_ORIGINS")); v != "" {
		cfg.API.CORS.AllowedOrigins = splitList(v)
	}

	if v := strings.TrimSpace(os.Getenv("FEEDER_MQTT_BROKER")); v != "" {
		cfg.MQTT.Broker = v
		cfg.MQTT.Enabled = true
	}
	if v := os.Getenv("FEEDER_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Username = v
	}
	if v := os.Getenv("FEEDER_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Password = v
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

// parseAPIKeys turns "name:key,name:key" into a key -> name map.
func parseAPIKeys(raw string) (map[string]string, error) {
	keys := map[string]string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts := strings.SplitN(p, ":", 2)
		if len(parts) != 2 {
			return nil, errors.New(`API_KEYS must be "name:key,name:key"`)
		}
		name := strings.TrimSpace(parts[0])
		key := strings.TrimSpace(parts[1])
		if name == "" || key == "" {
			return nil, errors.New(`API_KEYS must be "name:key,name:key"`)
		}
		keys[key] = name
	}
	return keys, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.URL == "" {
		errs = append(errs, "database.url required (set DB_URL)")
	}
	if c.Database.MaxConns < 1 {
		errs = append(errs, "database.max_conns must be >= 1")
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}
	if c.API.BasePath != "" && !strings.HasPrefix(c.API.BasePath, "/") {
		errs = append(errs, `api.base_path must start with "/"`)
	}
	if c.API.DefaultHistoryLimit < 1 {
		errs = append(errs, "api.default_history_limit must be >= 1")
	}
	if c.MQTT.Enabled {
		if c.MQTT.Broker == "" {
			errs = append(errs, "mqtt.broker required when mqtt is enabled")
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// DialTimeout returns the connect timeout as a Duration, 10s when unset.
func (d DatabaseConfig) DialTimeout() time.Duration {
	if d.ConnectTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.ConnectTimeout) * time.Second
}

// ReadTimeout returns the HTTP read timeout as a Duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// WriteTimeout returns the HTTP write timeout as a Duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// IdleTimeout returns the HTTP idle timeout as a Duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
