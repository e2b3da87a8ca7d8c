// Package config loads the service configuration.
//
// Values come from an optional env file (godotenv) and the process
// environment. Variables use the HOUSING_ prefix and the first underscore
// after it separates the section from the key:
//
//	HOUSING_POSTGRES_MAX_OPEN_CONNS -> postgres.max_open_conns
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every variable read by Load.
const EnvPrefix = "HOUSING_"

// Identity provider names.
const (
	IdentityLocal = "local"
	IdentityAuth0 = "auth0"
)

// Config is the root configuration passed to every component at construction.
type Config struct {
	App       AppConfig       `koanf:"app" validate:"required"`
	Postgres  PostgresConfig  `koanf:"postgres" validate:"required"`
	Redis     RedisConfig     `koanf:"redis" validate:"required"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	JWT       JWTConfig       `koanf:"jwt" validate:"required"`
	Identity  IdentityConfig  `koanf:"identity" validate:"required"`
	Geocoding GeocodingConfig `koanf:"geocoding" validate:"required"`
	Storage   StorageConfig   `koanf:"storage" validate:"required"`
	Policy    PolicyConfig    `koanf:"policy" validate:"required"`
	Uploads   UploadsConfig   `koanf:"uploads" validate:"required"`
}

type AppConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            string        `koanf:"port" validate:"required"`
	LogLevel        string        `koanf:"log_level" validate:"required,oneof=debug info warn error"`
	CORSOrigins     []string      `koanf:"cors_origins" validate:"required,min=1"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required"`
}

// Addr returns host:port for the HTTP listener.
func (c AppConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

type PostgresConfig struct {
	Host         string `koanf:"host" validate:"required"`
	Port         int    `koanf:"port" validate:"required"`
	User         string `koanf:"user" validate:"required"`
	Password     string `koanf:"password" validate:"required"`
	DB           string `koanf:"db" validate:"required"`
	SSLMode      string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"gte=0"`
}

// DSN builds a postgres URL with the password escaped.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User,
		url.QueryEscape(c.Password),
		net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		c.DB,
		c.SSLMode,
	)
}

type RedisConfig struct {
	Host         string `koanf:"host" validate:"required"`
	Port         int    `koanf:"port" validate:"required"`
	DB           int    `koanf:"db" validate:"gte=0"`
	Password     string `koanf:"password"`
	PoolSize     int    `koanf:"pool_size" validate:"gte=1"`
	MinIdleConns int    `koanf:"min_idle_conns" validate:"gte=0"`
}

func (c RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// KafkaConfig is optional; with no brokers domain events are not published.
type KafkaConfig struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic" validate:"required_with=Brokers"`
}

type JWTConfig struct {
	SecretKey  string        `koanf:"secret_key" validate:"required"`
	Expiration time.Duration `koanf:"expiration" validate:"required"`
}

// IdentityConfig selects the identity provider. The Auth0 fields are only
// required when Provider is auth0.
type IdentityConfig struct {
	Provider         string        `koanf:"provider" validate:"required,oneof=local auth0"`
	Domain           string        `koanf:"domain" validate:"required_if=Provider auth0"`
	ClientID         string        `koanf:"client_id" validate:"required_if=Provider auth0"`
	ClientSecret     string        `koanf:"client_secret" validate:"required_if=Provider auth0"`
	MgmtClientID     string        `koanf:"mgmt_client_id" validate:"required_if=Provider auth0"`
	MgmtClientSecret string        `koanf:"mgmt_client_secret" validate:"required_if=Provider auth0"`
	Connection       string        `koanf:"connection"`
	Timeout          time.Duration `koanf:"timeout" validate:"required"`
}

// BaseURL returns the Auth0 tenant URL. Domain may carry a scheme for tests.
func (c IdentityConfig) BaseURL() string {
	if strings.HasPrefix(c.Domain, "http://") || strings.HasPrefix(c.Domain, "https://") {
		return strings.TrimRight(c.Domain, "/")
	}
	return "https://" + strings.TrimRight(c.Domain, "/")
}

type GeocodingConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	APIKey  string        `koanf:"api_key" validate:"required"`
	Timeout time.Duration `koanf:"timeout" validate:"required"`
}

type StorageConfig struct {
	Endpoint      string        `koanf:"endpoint" validate:"required"`
	Region        string        `koanf:"region" validate:"required"`
	Bucket        string        `koanf:"bucket" validate:"required"`
	AccessKey     string        `koanf:"access_key" validate:"required"`
	SecretKey     string        `koanf:"secret_key" validate:"required"`
	UseSSL        bool          `koanf:"use_ssl"`
	PublicBaseURL string        `koanf:"public_base_url"`
	MaxSize       int64         `koanf:"max_size" validate:"gt=0"`
	Expiry        time.Duration `koanf:"expiry" validate:"required"`
}

// ObjectURL returns the public URL of an uploaded object.
func (c StorageConfig) ObjectURL(key string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.Bucket, c.Region, key)
}

type PolicyConfig struct {
	StudentEmailDomains []string `koanf:"student_email_domains" validate:"required,min=1"`
}

type UploadsConfig struct {
	RateLimit  int           `koanf:"rate_limit" validate:"gte=1"`
	RateWindow time.Duration `koanf:"rate_window" validate:"required"`
}

// Default returns the configuration used for anything the environment leaves unset.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Host:            "localhost",
			Port:            "8080",
			LogLevel:        "info",
			CORSOrigins:     []string{"http://localhost:5173"},
			ShutdownTimeout: 10 * time.Second,
		},
		Postgres: PostgresConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "user",
			Password:     "password",
			DB:           "housing",
			SSLMode:      "disable",
			MaxOpenConns: 16,
			MaxIdleConns: 8,
		},
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         6379,
			PoolSize:     10,
			MinIdleConns: 2,
		},
		Kafka: KafkaConfig{
			Topic: "housing-events",
		},
		JWT: JWTConfig{
			SecretKey:  "my_super_secret_key",
			Expiration: time.Hour,
		},
		Identity: IdentityConfig{
			Provider:   IdentityLocal,
			Connection: "Username-Password-Authentication",
			Timeout:    10 * time.Second,
		},
		Geocoding: GeocodingConfig{
			BaseURL: "https://maps.googleapis.com/maps/api/geocode/json",
			APIKey:  "changeme",
			Timeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			Endpoint:  "s3.amazonaws.com",
			Region:    "us-east-1",
			Bucket:    "housing-uploads",
			AccessKey: "changeme",
			SecretKey: "changeme",
			UseSSL:    true,
			MaxSize:   10 << 20,
			Expiry:    5 * time.Minute,
		},
		Policy: PolicyConfig{
			StudentEmailDomains: []string{"@uc.cl"},
		},
		Uploads: UploadsConfig{
			RateLimit:  20,
			RateWindow: time.Minute,
		},
	}
}

// Load reads the env file at path (missing files are ignored), overlays the
// process environment on Default and validates the result.
func Load(path string) (*Config, error) {
	if path != "" {
		_ = godotenv.Load(path)
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.App.CORSOrigins = splitList(cfg.App.CORSOrigins)
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	cfg.Policy.StudentEmailDomains = splitList(cfg.Policy.StudentEmailDomains)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// splitList flattens comma separated entries coming from a single variable.
func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}
