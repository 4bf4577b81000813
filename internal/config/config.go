// Package config loads the optional configuration file for the kusto
// command-line tool and the HTTP/LSP services.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level configuration for kusto's services.
type Config struct {
	Lexer LexerConfig `mapstructure:"lexer"`
	HTTP  HTTPConfig  `mapstructure:"http"`
	LSP   LSPConfig   `mapstructure:"lsp"`
	Cache CacheConfig `mapstructure:"cache"`
}

// LexerConfig mirrors lexer.Config's fields. Load fills it from the file or
// environment, but no command or service applies it: the HTTP API lexes
// with lexer.DefaultConfig plus per-request overrides.
type LexerConfig struct {
	AlwaysProduceEndTokens      bool `mapstructure:"always_produce_end_tokens"`
	AllowLiteralsWithLineBreaks bool `mapstructure:"allow_literals_with_line_breaks"`
}

// HTTPConfig configures service/httpapi.
type HTTPConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// LSPConfig holds an LSP listen address. service/lspserver serves over
// stdio and does not read it.
type LSPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// CacheConfig names and configures a service/parsecache backend. Load
// validates Backend; the serve command reads only TTLHours and always uses
// the in-memory store.
type CacheConfig struct {
	Backend  string `mapstructure:"backend"` // "memory", "redis", "sqlite", or "postgres"
	Address  string `mapstructure:"address"`
	Path     string `mapstructure:"path"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// Load reads kusto.yml/kusto.yaml from the current directory, falling back
// to defaults when no file is present.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("lexer.always_produce_end_tokens", true)
	v.SetDefault("lexer.allow_literals_with_line_breaks", false)
	v.SetDefault("http.host", "localhost")
	v.SetDefault("http.port", 8080)
	v.SetDefault("lsp.host", "localhost")
	v.SetDefault("lsp.port", 8081)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl_hours", 24)

	v.SetConfigName("kusto")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Cache.Backend {
	case "memory", "redis", "sqlite", "postgres":
	default:
		return fmt.Errorf("cache.backend must be one of memory|redis|sqlite|postgres, got: %s", cfg.Cache.Backend)
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", cfg.HTTP.Port)
	}
	if strings.TrimSpace(cfg.HTTP.Host) == "" {
		return fmt.Errorf("http.host must not be empty")
	}
	return nil
}
