package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	Extractor ExtractorConfig
	CORS      CORSConfig
	Queue     QueueConfig
	Reminder  ReminderConfig
	Email     EmailConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// QueueConfig holds extraction retry queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// ReminderConfig holds reminder dispatch settings.
type ReminderConfig struct {
	CheckIntervalSecs int `mapstructure:"check_interval_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractorProviderConfig holds settings for a single AI-vision extractor provider.
type ExtractorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds certificate extractor settings with fallback support.
type ExtractorConfig struct {
	Primary             ExtractorProviderConfig `mapstructure:"primary"`
	Secondary           ExtractorProviderConfig `mapstructure:"secondary"`
	ConfidenceThreshold float64                 `mapstructure:"confidence_threshold"`
}

// SecondaryConfig returns the secondary extractor provider config, or nil if
// not configured.
func (e *ExtractorConfig) SecondaryConfig() *ExtractorProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the COITRACK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("COITRACK")
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
	v.SetDefault("db.user", "coitrack")
	v.SetDefault("db.password", "coitrack_secret")
	v.SetDefault("db.name", "coitrack_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "coitrack")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "coitrack-certificates")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 5)
	v.SetDefault("queue.concurrency", 5)

	// Reminder defaults (dispatch sweep once an hour)
	v.SetDefault("reminder.check_interval_secs", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "compliance@coitrack.io")
	v.SetDefault("email.from_name", "COITrack Compliance")

	// Extractor defaults
	v.SetDefault("extractor.primary.provider", "claude")
	v.SetDefault("extractor.primary.api_key", "")
	v.SetDefault("extractor.primary.default_model", "")
	v.SetDefault("extractor.primary.timeout_secs", 120)
	v.SetDefault("extractor.secondary.provider", "")
	v.SetDefault("extractor.secondary.api_key", "")
	v.SetDefault("extractor.secondary.default_model", "")
	v.SetDefault("extractor.secondary.timeout_secs", 120)
	v.SetDefault("extractor.confidence_threshold", 0.7)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "COITRACK_SERVER_PORT",
		"server.read_timeout":               "COITRACK_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "COITRACK_SERVER_WRITE_TIMEOUT",
		"server.environment":                "COITRACK_SERVER_ENVIRONMENT",
		"db.host":                           "COITRACK_DB_HOST",
		"db.port":                           "COITRACK_DB_PORT",
		"db.user":                           "COITRACK_DB_USER",
		"db.password":                       "COITRACK_DB_PASSWORD",
		"db.name":                           "COITRACK_DB_NAME",
		"db.sslmode":                        "COITRACK_DB_SSLMODE",
		"db.max_open":                       "COITRACK_DB_MAX_OPEN",
		"db.max_idle":                       "COITRACK_DB_MAX_IDLE",
		"jwt.secret":                        "COITRACK_JWT_SECRET",
		"jwt.access_expiry":                 "COITRACK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":                "COITRACK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                        "COITRACK_JWT_ISSUER",
		"s3.region":                         "COITRACK_S3_REGION",
		"s3.bucket":                         "COITRACK_S3_BUCKET",
		"s3.endpoint":                       "COITRACK_S3_ENDPOINT",
		"s3.access_key":                     "COITRACK_S3_ACCESS_KEY",
		"s3.secret_key":                     "COITRACK_S3_SECRET_KEY",
		"s3.max_file_size_mb":               "COITRACK_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                 "COITRACK_S3_PRESIGN_EXPIRY",
		"log.level":                         "COITRACK_LOG_LEVEL",
		"log.format":                        "COITRACK_LOG_FORMAT",
		"cors.allowed_origins":              "COITRACK_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":          "COITRACK_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":                 "COITRACK_QUEUE_MAX_RETRIES",
		"queue.concurrency":                 "COITRACK_QUEUE_CONCURRENCY",
		"reminder.check_interval_secs":      "COITRACK_REMINDER_CHECK_INTERVAL_SECS",
		"extractor.primary.provider":        "COITRACK_EXTRACTOR_PRIMARY_PROVIDER",
		"extractor.primary.api_key":         "COITRACK_EXTRACTOR_PRIMARY_API_KEY",
		"extractor.primary.default_model":   "COITRACK_EXTRACTOR_PRIMARY_DEFAULT_MODEL",
		"extractor.primary.timeout_secs":    "COITRACK_EXTRACTOR_PRIMARY_TIMEOUT_SECS",
		"extractor.secondary.provider":      "COITRACK_EXTRACTOR_SECONDARY_PROVIDER",
		"extractor.secondary.api_key":       "COITRACK_EXTRACTOR_SECONDARY_API_KEY",
		"extractor.secondary.default_model": "COITRACK_EXTRACTOR_SECONDARY_DEFAULT_MODEL",
		"extractor.secondary.timeout_secs":  "COITRACK_EXTRACTOR_SECONDARY_TIMEOUT_SECS",
		"extractor.confidence_threshold":    "COITRACK_EXTRACTOR_CONFIDENCE_THRESHOLD",
		"email.provider":                    "COITRACK_EMAIL_PROVIDER",
		"email.region":                      "COITRACK_EMAIL_REGION",
		"email.from_address":                "COITRACK_EMAIL_FROM_ADDRESS",
		"email.from_name":                   "COITRACK_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if COITRACK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("COITRACK_SERVER_PORT") == "" {
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
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Extractor = ExtractorConfig{
		Primary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.primary.provider"),
			APIKey:       v.GetString("extractor.primary.api_key"),
			DefaultModel: v.GetString("extractor.primary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.primary.timeout_secs"),
		},
		Secondary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.secondary.provider"),
			APIKey:       v.GetString("extractor.secondary.api_key"),
			DefaultModel: v.GetString("extractor.secondary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.secondary.timeout_secs"),
		},
		ConfidenceThreshold: v.GetFloat64("extractor.confidence_threshold"),
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Reminder = ReminderConfig{
		CheckIntervalSecs: v.GetInt("reminder.check_interval_secs"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}
