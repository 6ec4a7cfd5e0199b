package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limiting"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Image      ImageConfig      `mapstructure:"image"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig PostgreSQL settings.
type DatabaseConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	DBName            string        `mapstructure:"dbname"`
	SSLMode           string        `mapstructure:"sslmode"`
	MaxOpenConns      int           `mapstructure:"max_open_conns"`
	MaxIdleConns      int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime   time.Duration `mapstructure:"conn_max_lifetime"`
	KeepAliveInterval time.Duration `mapstructure:"keep_alive_interval"`
}

// LoggingConfig logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// RedisConfig optional cache settings.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// JWTConfig token settings.
type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	Issuer         string        `mapstructure:"issuer"`
	Audience       string        `mapstructure:"audience"`
}

// RateLimitConfig per-client request limits.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// StorageConfig object storage settings. When the S3 bucket is configured
// the cloud store is used with local-filesystem failover, otherwise the
// local store alone.
type StorageConfig struct {
	S3    S3Config    `mapstructure:"s3"`
	Local LocalConfig `mapstructure:"local"`
}

// S3Config cloud object storage settings.
type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// LocalConfig filesystem object storage settings.
type LocalConfig struct {
	BaseDir string `mapstructure:"base_dir"`
	BaseURL string `mapstructure:"base_url"`
}

// ClassifierConfig AI classification provider settings. Any
// OpenAI-compatible vision endpoint works via base_url.
type ClassifierConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	MaxRetries  int           `mapstructure:"max_retries"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
	Temperature float64       `mapstructure:"temperature"`
}

// ImageConfig normalizer bounds and JPEG qualities.
type ImageConfig struct {
	MaxDimension   int   `mapstructure:"max_dimension"`
	ThumbDimension int   `mapstructure:"thumb_dimension"`
	Quality        int   `mapstructure:"quality"`
	ThumbQuality   int   `mapstructure:"thumb_quality"`
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// MonitoringConfig health endpoint settings.
type MonitoringConfig struct {
	HealthCheckPath string `mapstructure:"health_check_path"`
}

// LoadConfig reads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, defaults plus environment cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "wardrobe")
	viper.SetDefault("database.dbname", "wardrobe")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "300s")
	viper.SetDefault("database.keep_alive_interval", "30s")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttl", "5m")

	viper.SetDefault("jwt.secret", "change-this-in-production")
	viper.SetDefault("jwt.access_token_ttl", "24h")
	viper.SetDefault("jwt.issuer", "wardrobe-api")
	viper.SetDefault("jwt.audience", "wardrobe-api-users")

	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 10)
	viper.SetDefault("rate_limiting.burst", 20)

	viper.SetDefault("storage.s3.enabled", false)
	viper.SetDefault("storage.s3.region", "us-east-1")
	viper.SetDefault("storage.s3.bucket", "")
	viper.SetDefault("storage.s3.endpoint", "")
	viper.SetDefault("storage.s3.use_path_style", false)
	viper.SetDefault("storage.local.base_dir", "./uploads")
	viper.SetDefault("storage.local.base_url", "http://localhost:8080/uploads")

	viper.SetDefault("classifier.base_url", "")
	viper.SetDefault("classifier.model", "gpt-4o-mini")
	viper.SetDefault("classifier.max_retries", 3)
	viper.SetDefault("classifier.retry_delay", "1s")
	viper.SetDefault("classifier.temperature", 0.2)

	viper.SetDefault("image.max_dimension", 1200)
	viper.SetDefault("image.thumb_dimension", 400)
	viper.SetDefault("image.quality", 85)
	viper.SetDefault("image.thumb_quality", 70)
	viper.SetDefault("image.max_upload_bytes", 10*1024*1024)

	viper.SetDefault("monitoring.health_check_path", "/health")
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true,
	}
	if !validLogLevels[config.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	if config.Storage.S3.Enabled && config.Storage.S3.Bucket == "" {
		return fmt.Errorf("s3 storage enabled but no bucket configured")
	}

	if config.Classifier.MaxRetries < 1 {
		return fmt.Errorf("classifier max_retries must be at least 1")
	}

	if config.Image.MaxDimension <= 0 || config.Image.ThumbDimension <= 0 {
		return fmt.Errorf("image dimensions must be positive")
	}

	return nil
}

// GetAddress returns the listen address.
func (c *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
