package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"dealerops/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Email     EmailConfig
	Intake    IntakeConfig
	Reconcile ReconcileConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds the settings for validating bearer tokens issued by the
// hosted backend.
type JWTConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
	Issuer  string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for the manifest archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EmailConfig holds intake notification settings. Provider is "ses" or
// "noop".
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
	FrontendURL string   `mapstructure:"frontend_url"`
}

// IntakeConfig holds manifest extraction settings.
type IntakeConfig struct {
	DefaultCategory domain.Category `mapstructure:"default_category"`
	ContextRadius   int             `mapstructure:"context_radius"`
	MaxTextBytes    int64           `mapstructure:"max_text_bytes"`
}

// ReconcileConfig holds comprehensive view settings.
type ReconcileConfig struct {
	// MirrorPrecedence lists mirror locations from least to most
	// authoritative. Empty means the built-in order.
	MirrorPrecedence []domain.MirrorLocation `mapstructure:"mirror_precedence"`
	FetchTimeout     time.Duration           `mapstructure:"fetch_timeout"`
}

// Load reads configuration from environment variables with the DEALEROPS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEALEROPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "dealerops")
	v.SetDefault("db.password", "dealerops_secret")
	v.SetDefault("db.name", "dealerops_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.enabled", true)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "dealerops-manifests")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@dealerops.local")
	v.SetDefault("email.from_name", "DealerOps")
	v.SetDefault("email.recipients", "")
	v.SetDefault("email.frontend_url", "http://localhost:5173")

	// Intake defaults
	v.SetDefault("intake.default_category", string(domain.CategoryEV))
	v.SetDefault("intake.context_radius", 500)
	v.SetDefault("intake.max_text_bytes", 2<<20)

	// Reconcile defaults
	v.SetDefault("reconcile.mirror_precedence", "")
	v.SetDefault("reconcile.fetch_timeout", "5s")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "DEALEROPS_SERVER_PORT",
		"server.read_timeout":         "DEALEROPS_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "DEALEROPS_SERVER_WRITE_TIMEOUT",
		"server.environment":          "DEALEROPS_SERVER_ENVIRONMENT",
		"db.host":                     "DEALEROPS_DB_HOST",
		"db.port":                     "DEALEROPS_DB_PORT",
		"db.user":                     "DEALEROPS_DB_USER",
		"db.password":                 "DEALEROPS_DB_PASSWORD",
		"db.name":                     "DEALEROPS_DB_NAME",
		"db.sslmode":                  "DEALEROPS_DB_SSLMODE",
		"db.max_open":                 "DEALEROPS_DB_MAX_OPEN",
		"db.max_idle":                 "DEALEROPS_DB_MAX_IDLE",
		"jwt.enabled":                 "DEALEROPS_JWT_ENABLED",
		"jwt.secret":                  "DEALEROPS_JWT_SECRET",
		"jwt.issuer":                  "DEALEROPS_JWT_ISSUER",
		"s3.region":                   "DEALEROPS_S3_REGION",
		"s3.bucket":                   "DEALEROPS_S3_BUCKET",
		"s3.endpoint":                 "DEALEROPS_S3_ENDPOINT",
		"s3.access_key":               "DEALEROPS_S3_ACCESS_KEY",
		"s3.secret_key":               "DEALEROPS_S3_SECRET_KEY",
		"s3.presign_expiry":           "DEALEROPS_S3_PRESIGN_EXPIRY",
		"log.level":                   "DEALEROPS_LOG_LEVEL",
		"log.format":                  "DEALEROPS_LOG_FORMAT",
		"cors.allowed_origins":        "DEALEROPS_CORS_ALLOWED_ORIGINS",
		"email.provider":              "DEALEROPS_EMAIL_PROVIDER",
		"email.region":                "DEALEROPS_EMAIL_REGION",
		"email.from_address":          "DEALEROPS_EMAIL_FROM_ADDRESS",
		"email.from_name":             "DEALEROPS_EMAIL_FROM_NAME",
		"email.recipients":            "DEALEROPS_EMAIL_RECIPIENTS",
		"email.frontend_url":          "DEALEROPS_EMAIL_FRONTEND_URL",
		"intake.default_category":     "DEALEROPS_INTAKE_DEFAULT_CATEGORY",
		"intake.context_radius":       "DEALEROPS_INTAKE_CONTEXT_RADIUS",
		"intake.max_text_bytes":       "DEALEROPS_INTAKE_MAX_TEXT_BYTES",
		"reconcile.mirror_precedence": "DEALEROPS_RECONCILE_MIRROR_PRECEDENCE",
		"reconcile.fetch_timeout":     "DEALEROPS_RECONCILE_FETCH_TIMEOUT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DEALEROPS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DEALEROPS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Enabled: v.GetBool("jwt.enabled"),
		Secret:  v.GetString("jwt.secret"),
		Issuer:  v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	cfg.Email = EmailConfig{
		Provider:    strings.ToLower(v.GetString("email.provider")),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		Recipients:  splitList(v.GetString("email.recipients")),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	if cfg.Email.Provider != "ses" && cfg.Email.Provider != "noop" {
		return nil, fmt.Errorf("config: unknown email.provider %q", cfg.Email.Provider)
	}

	category := domain.Category(strings.ToUpper(v.GetString("intake.default_category")))
	if !category.Valid() {
		return nil, fmt.Errorf("config: invalid intake.default_category %q", category)
	}
	cfg.Intake = IntakeConfig{
		DefaultCategory: category,
		ContextRadius:   v.GetInt("intake.context_radius"),
		MaxTextBytes:    v.GetInt64("intake.max_text_bytes"),
	}

	var precedence []domain.MirrorLocation
	for _, name := range splitList(v.GetString("reconcile.mirror_precedence")) {
		loc := domain.MirrorLocation(name)
		if !loc.Valid() {
			return nil, fmt.Errorf("config: unknown mirror location %q in reconcile.mirror_precedence", name)
		}
		precedence = append(precedence, loc)
	}
	cfg.Reconcile = ReconcileConfig{
		MirrorPrecedence: precedence,
		FetchTimeout:     v.GetDuration("reconcile.fetch_timeout"),
	}

	return cfg, nil
}

// splitList parses a comma-separated setting, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
