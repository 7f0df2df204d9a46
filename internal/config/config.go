// Package config provides configuration for the travel copilot.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. TRAVEL_COPILOT_HTTP_PORT.
const EnvPrefix = "TRAVEL_COPILOT"

// Config holds the application configuration.
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Session  SessionConfig  `mapstructure:"session"`
	Policy   PolicyConfig   `mapstructure:"policy"`
	WS       WSConfig       `mapstructure:"ws"`
	Log      LogConfig      `mapstructure:"log"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// LLMConfig selects the chat provider. APIKey is not validated here; a
// missing key fails at the first remote call.
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	CookieName    string        `mapstructure:"cookie_name"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
	MaxAge        time.Duration `mapstructure:"max_age"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type PolicyConfig struct {
	// MaxMessages rejects longer inbound transcripts; 0 disables the check.
	MaxMessages int `mapstructure:"max_messages"`
}

// WSConfig tunes the guidance WebSocket endpoint.
type WSConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// NewDefaultConfig returns the configuration used when nothing is overridden.
func NewDefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:            8000,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			URL: "file:travel_copilot.db?cache=shared&mode=rwc",
		},
		LLM: LLMConfig{
			Provider: "cohere",
			Model:    "command-a-03-2025",
			Timeout:  60 * time.Second,
		},
		Session: SessionConfig{
			CookieName:    "sessionid",
			MaxAge:        14 * 24 * time.Hour,
			SweepInterval: time.Hour,
		},
		WS: WSConfig{
			PingInterval:   30 * time.Second,
			WriteTimeout:   10 * time.Second,
			ReadTimeout:    60 * time.Second,
			MaxMessageSize: 65536,
		},
	}
}

// InitViper creates a *viper.Viper with defaults, an optional config file
// and environment bindings.
//
// Precedence (highest to lowest): flags bound by the caller, environment
// variables, config file, defaults.
func InitViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setViperDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) || configFile != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider credentials are also accepted under their usual names.
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "COHERE_API_KEY", "OPENAI_API_KEY")

	return v, nil
}

// Load unmarshals the viper state into a Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects settings that would break connections at runtime.
func (c *Config) validate() error {
	if c.WS.PingInterval <= 0 {
		return fmt.Errorf("ws.ping_interval must be positive, got %s", c.WS.PingInterval)
	}
	if c.WS.ReadTimeout <= 0 {
		return fmt.Errorf("ws.read_timeout must be positive, got %s", c.WS.ReadTimeout)
	}
	if c.WS.WriteTimeout <= 0 {
		return fmt.Errorf("ws.write_timeout must be positive, got %s", c.WS.WriteTimeout)
	}
	if c.WS.MaxMessageSize <= 0 {
		return fmt.Errorf("ws.max_message_size must be positive, got %d", c.WS.MaxMessageSize)
	}
	return nil
}

func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("http.port", d.HTTP.Port)
	v.SetDefault("http.shutdown_timeout", d.HTTP.ShutdownTimeout)

	v.SetDefault("database.url", d.Database.URL)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.timeout", d.LLM.Timeout)

	v.SetDefault("session.cookie_name", d.Session.CookieName)
	v.SetDefault("session.cookie_secure", d.Session.CookieSecure)
	v.SetDefault("session.max_age", d.Session.MaxAge)
	v.SetDefault("session.sweep_interval", d.Session.SweepInterval)

	v.SetDefault("policy.max_messages", d.Policy.MaxMessages)

	v.SetDefault("ws.ping_interval", d.WS.PingInterval)
	v.SetDefault("ws.write_timeout", d.WS.WriteTimeout)
	v.SetDefault("ws.read_timeout", d.WS.ReadTimeout)
	v.SetDefault("ws.max_message_size", d.WS.MaxMessageSize)

	v.SetDefault("log.debug", d.Log.Debug)
}

// LoadDotEnv copies variables from a .env file into the process environment
// without overriding variables that are already set. It is skipped inside
// containers (DOCKER_CONTAINER set) and when the file does not exist.
func LoadDotEnv(path string) error {
	if os.Getenv("DOCKER_CONTAINER") != "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}
