// Package config loads server settings from defaults, an optional YAML
// file and SHOPGRAPH_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SHOPGRAPH"

type Config struct {
	Addr        string `yaml:"addr"         mapstructure:"addr"`
	Store       string `yaml:"store"        mapstructure:"store"` // memory | postgres
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	// Seed loads the demo data set into an empty memory store at start.
	Seed bool `yaml:"seed" mapstructure:"seed"`
	Dev  bool `yaml:"dev"  mapstructure:"dev"`

	Database   DatabaseConfig   `yaml:"database"   mapstructure:"database"`
	Auth       AuthConfig       `yaml:"auth"       mapstructure:"auth"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit" mapstructure:"rate_limit"`
	CORS       CORSConfig       `yaml:"cors"       mapstructure:"cors"`
	Pagination PaginationConfig `yaml:"pagination" mapstructure:"pagination"`
	GraphQL    GraphQLConfig    `yaml:"graphql"    mapstructure:"graphql"`
	Log        LogConfig        `yaml:"log"        mapstructure:"log"`
}

type DatabaseConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"  mapstructure:"token_ttl"`
	Issuer    string        `yaml:"issuer"     mapstructure:"issuer"`
	// SigningKey is a path to a private EC JWK. When set, credentials are
	// ES384 signed and the public key is published as a JWKS.
	SigningKey string `yaml:"signing_key" mapstructure:"signing_key"`
	BcryptCost int    `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests" mapstructure:"requests"`
	Window   time.Duration `yaml:"window"   mapstructure:"window"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
}

type GraphQLConfig struct {
	MaxDepth int `yaml:"max_depth" mapstructure:"max_depth"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	JSON  bool   `yaml:"json"  mapstructure:"json"`
	File  string `yaml:"file"  mapstructure:"file"`
}

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":4000")
	v.SetDefault("store", StoreMemory)
	v.SetDefault("database_url", "")
	v.SetDefault("seed", true)
	v.SetDefault("dev", false)

	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 0)

	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.token_ttl", "2h")
	v.SetDefault("auth.issuer", "shopgraph")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "15m")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("pagination.default_limit", 4)
	v.SetDefault("graphql.max_depth", 12)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
}

// Load reads path when given; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Env overrides: SHOPGRAPH_ADDR, SHOPGRAPH_AUTH_JWT_SECRET, etc.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("database_url is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("store must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store))
	}
	if c.Auth.JWTSecret == "" && c.Auth.SigningKey == "" {
		errs = append(errs, errors.New("auth.jwt_secret or auth.signing_key is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Pagination.DefaultLimit <= 0 {
		errs = append(errs, errors.New("pagination.default_limit must be positive"))
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.window must be positive"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
