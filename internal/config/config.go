package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Reference ReferenceConfig `mapstructure:"reference"`
	Checker   CheckerConfig   `mapstructure:"checker"`
	Chat      ChatConfig      `mapstructure:"chat"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	GRPCPort        int           `mapstructure:"grpc_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Schema          string        `mapstructure:"schema"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&search_path=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.Schema,
	)
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NATSConfig controls the cross-instance alert relay
type NATSConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	URL        string        `mapstructure:"url"`
	StreamName string        `mapstructure:"stream_name"`
	MaxAge     time.Duration `mapstructure:"max_age"`
	MaxMsgs    int64         `mapstructure:"max_msgs"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// Reference source names
const (
	ReferenceSourceEmbedded = "embedded"
	ReferenceSourceFile     = "file"
	ReferenceSourcePostgres = "postgres"
)

// ReferenceConfig selects where the allow/deny lists come from
type ReferenceConfig struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

// CheckerConfig tunes the link/number classifier heuristics
type CheckerConfig struct {
	SuspiciousKeywords []string      `mapstructure:"suspicious_keywords"`
	MaxTokenLength     int           `mapstructure:"max_token_length"`
	MaxLabels          int           `mapstructure:"max_labels"`
	MaxBatchSize       int           `mapstructure:"max_batch_size"`
	SimulatedLatency   time.Duration `mapstructure:"simulated_latency"`
}

// ChatConfig controls chat session handling in the API layer
type ChatConfig struct {
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	MaxHistory  int           `mapstructure:"max_history"`
	TypingDelay time.Duration `mapstructure:"typing_delay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shield-wise-guard")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.grpc_port", 9090)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "fraudstop")
	v.SetDefault("database.dbname", "fraudstop")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.schema", "public")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "fraudstop:")

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.stream_name", "FRAUDSTOP_ALERTS")
	v.SetDefault("nats.max_age", 24*time.Hour)
	v.SetDefault("nats.max_msgs", 10000)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("reference.source", ReferenceSourceEmbedded)

	v.SetDefault("checker.suspicious_keywords", []string{"secure", "login", "bank"})
	v.SetDefault("checker.max_token_length", 50)
	v.SetDefault("checker.max_labels", 3)
	v.SetDefault("checker.max_batch_size", 100)
	v.SetDefault("checker.simulated_latency", time.Duration(0))

	v.SetDefault("chat.session_ttl", 24*time.Hour)
	v.SetDefault("chat.max_history", 200)
	v.SetDefault("chat.typing_delay", time.Duration(0))
}

// Load reads configuration from file and environment variables. A missing
// config file is only an error when configPath is given explicitly.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/shield-wise-guard")
	}

	v.SetEnvPrefix("FRAUDSTOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

// Validate checks the settings that would otherwise fail late at runtime
func (c *Config) Validate() error {
	switch c.Reference.Source {
	case ReferenceSourceEmbedded, ReferenceSourcePostgres:
	case ReferenceSourceFile:
		if c.Reference.Path == "" {
			return fmt.Errorf("reference.path is required when reference.source is %q", ReferenceSourceFile)
		}
	default:
		return fmt.Errorf("unknown reference.source %q", c.Reference.Source)
	}

	if c.Reference.Source == ReferenceSourcePostgres && !c.Database.Enabled {
		return fmt.Errorf("reference.source %q requires database.enabled", ReferenceSourcePostgres)
	}
	if c.Checker.MaxTokenLength <= 0 || c.Checker.MaxLabels <= 0 {
		return fmt.Errorf("checker thresholds must be positive")
	}
	if c.Checker.MaxBatchSize <= 0 {
		return fmt.Errorf("checker.max_batch_size must be positive")
	}
	if c.Chat.MaxHistory <= 0 {
		return fmt.Errorf("chat.max_history must be positive")
	}
	return nil
}
