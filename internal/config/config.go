package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	SignupPolicySuperAdmin = "super_admin"
	SignupPolicyPublic     = "public"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Session    SessionConfig    `mapstructure:"session"`
	Auth       AuthConfig       `mapstructure:"auth"`
	App        AppConfig        `mapstructure:"app"`
	Mail       MailConfig       `mapstructure:"mail"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	Resend     ResendConfig     `mapstructure:"resend"`
	SuperAdmin SuperAdminConfig `mapstructure:"super_admin"`
	Seed       SeedConfig       `mapstructure:"seed"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Logging    LoggingConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type AuthConfig struct {
	// ClientSignupPolicy decides who may call POST /api/clients/create.
	ClientSignupPolicy string `mapstructure:"client_signup_policy"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	BaseURL string `mapstructure:"base_url"`
}

type MailConfig struct {
	Provider string `mapstructure:"provider"` // smtp | resend | log
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
}

type SMTPConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	UseSSL     bool   `mapstructure:"use_ssl"`
	RequireTLS bool   `mapstructure:"require_tls"`
}

type ResendConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type SuperAdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type SeedConfig struct {
	Demo bool `mapstructure:"demo"`
}

type RateLimitConfig struct {
	PerSecond float64 `mapstructure:"per_second"`
	Burst     int     `mapstructure:"burst"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 12*time.Hour)

	v.SetDefault("auth.client_signup_policy", SignupPolicySuperAdmin)

	v.SetDefault("app.name", "Edupanel")
	v.SetDefault("app.base_url", "http://localhost:3000")

	v.SetDefault("mail.provider", "log")
	v.SetDefault("mail.from", "noreply@edupanel.local")
	v.SetDefault("mail.from_name", "Edupanel")

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.use_ssl", false)
	v.SetDefault("smtp.require_tls", true)

	v.SetDefault("resend.api_key", "")

	v.SetDefault("super_admin.email", "")
	v.SetDefault("super_admin.password", "")

	v.SetDefault("seed.demo", true)

	v.SetDefault("rate_limit.per_second", 1.0)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads .env (if present), an optional CONFIG_FILE and the process environment.
// Env keys are the upper-cased config keys with dots replaced by underscores,
// e.g. DATABASE_URL, SESSION_SECRET, SMTP_PASSWORD.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not parse .env file, using process environment")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if len(c.Session.Secret) < 16 {
		return errors.New("SESSION_SECRET must be at least 16 characters")
	}
	switch c.Auth.ClientSignupPolicy {
	case SignupPolicySuperAdmin, SignupPolicyPublic:
	default:
		return fmt.Errorf("unknown AUTH_CLIENT_SIGNUP_POLICY %q", c.Auth.ClientSignupPolicy)
	}
	switch c.Mail.Provider {
	case "smtp":
		if c.SMTP.Host == "" {
			return errors.New("SMTP_HOST is required when MAIL_PROVIDER=smtp")
		}
	case "resend":
		if c.Resend.APIKey == "" {
			return errors.New("RESEND_API_KEY is required when MAIL_PROVIDER=resend")
		}
	case "log":
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider)
	}
	return nil
}
