// Package config loads the service configuration from config/<env>.yaml with
// environment variable overrides.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultMaxRequestBodySize = "100KB"
	defaultAccessTokenTTL     = 15 * time.Minute
	defaultPolicyPreset       = "strict"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Policy configures the password policy installed at first start.
	Policy *PolicyConfig `json:"policy" yaml:"policy"`

	// PubSub configuration for security event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	AccessTokenTTL time.Duration `json:"accessTokenTTL" yaml:"accessTokenTTL"`

	// BootstrapAdmin is created with the USER_ADMIN privilege when no user with that username exists.
	BootstrapAdmin *BootstrapAdminConfig `json:"bootstrapAdmin" yaml:"bootstrapAdmin"`
}

// BootstrapAdminConfig describes the initial administrator account.
type BootstrapAdminConfig struct {
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// PolicyConfig selects a preset and optionally overrides individual rules.
// Nil overrides keep the preset value.
type PolicyConfig struct {
	// Preset is "strict" or "permissive".
	Preset string `json:"preset" yaml:"preset"`

	Algorithm        *string `json:"algorithm" yaml:"algorithm"`
	MinLength        *int    `json:"minLength" yaml:"minLength"`
	RequireLetter    *bool   `json:"requireLetter" yaml:"requireLetter"`
	RequireDigit     *bool   `json:"requireDigit" yaml:"requireDigit"`
	RequireLower     *bool   `json:"requireLower" yaml:"requireLower"`
	RequireUpper     *bool   `json:"requireUpper" yaml:"requireUpper"`
	RequireSpecial   *bool   `json:"requireSpecial" yaml:"requireSpecial"`
	ForbidWhitespace *bool   `json:"forbidWhitespace" yaml:"forbidWhitespace"`
	HistoryCount     *int    `json:"historyCount" yaml:"historyCount"`
	TimeToLiveDays   *int    `json:"timeToLiveDays" yaml:"timeToLiveDays"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub. Empty disables publishing.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// New loads config.yaml from ./config, ../config or ../../config.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = replicasFromEnv(os.LookupEnv)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		cfg.Auth.AccessTokenTTL = defaultAccessTokenTTL
	}

	if cfg.Policy == nil {
		cfg.Policy = &PolicyConfig{}
	}
	if strings.TrimSpace(cfg.Policy.Preset) == "" {
		cfg.Policy.Preset = defaultPolicyPreset
	}

	if cfg.PubSub == nil {
		cfg.PubSub = &PubSubConfig{}
	}
}
