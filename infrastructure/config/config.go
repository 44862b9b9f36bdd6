package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress   string        `yaml:"server_address"`
	Environment     string        `yaml:"environment"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`

	// AWS configuration
	AWSRegion      string `yaml:"aws_region"`
	DynamoDBTable  string `yaml:"dynamodb_table"`
	EventBusName   string `yaml:"event_bus_name"`
	EventSource    string `yaml:"event_source"`
	StorageBackend string `yaml:"storage_backend"`

	// Lambda configuration
	IsLambda bool `yaml:"-"`

	// Generation
	GeneratorURL     string        `yaml:"generator_url"`
	GeneratorTimeout time.Duration `yaml:"generator_timeout"`
	// GenerateRateLimit caps generation requests per client per minute, 0 disables
	GenerateRateLimit int `yaml:"generate_rate_limit"`

	// Editor sessions
	MaxSessions          int           `yaml:"max_sessions"`
	SessionIdleTimeout   time.Duration `yaml:"session_idle_timeout"`
	SessionSweepInterval time.Duration `yaml:"session_sweep_interval"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Feature flags
	EnableMetrics  bool     `yaml:"enable_metrics"`
	EnableTracing  bool     `yaml:"enable_tracing"`
	EnableCORS     bool     `yaml:"enable_cors"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// ConfigFile is the YAML file the values were read from, if any
	ConfigFile string `yaml:"-"`
}

func defaults() *Config {
	return &Config{
		ServerAddress:        ":8080",
		Environment:          "development",
		ShutdownTimeout:      15 * time.Second,
		MaxBodyBytes:         1 << 20,
		AWSRegion:            "us-west-2",
		DynamoDBTable:        "content-studio",
		EventBusName:         "content-studio-events",
		EventSource:          "content-studio.mindmap",
		StorageBackend:       StorageDynamoDB,
		GeneratorTimeout:     30 * time.Second,
		GenerateRateLimit:    30,
		MaxSessions:          1000,
		SessionIdleTimeout:   2 * time.Hour,
		SessionSweepInterval: time.Minute,
		LogLevel:             "info",
		EnableCORS:           true,
		AllowedOrigins:       []string{"*"},
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named
// by CONFIG_FILE, then environment variables, and validates the result.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MaxBodyBytes = int64(getEnvInt("MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))

	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", cfg.DynamoDBTable))
	cfg.EventBusName = getEnv("EVENT_BUS_NAME", cfg.EventBusName)
	cfg.EventSource = getEnv("EVENT_SOURCE", cfg.EventSource)
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", cfg.StorageBackend)

	cfg.IsLambda = getEnv("AWS_LAMBDA_FUNCTION_NAME", "") != "" || getEnvBool("IS_LAMBDA", false)

	cfg.GeneratorURL = getEnv("GENERATOR_URL", cfg.GeneratorURL)
	cfg.GeneratorTimeout = getEnvDuration("GENERATOR_TIMEOUT", cfg.GeneratorTimeout)
	cfg.GenerateRateLimit = getEnvInt("GENERATE_RATE_LIMIT", cfg.GenerateRateLimit)

	cfg.MaxSessions = getEnvInt("MAX_SESSIONS", cfg.MaxSessions)
	cfg.SessionIdleTimeout = getEnvDuration("SESSION_IDLE_TIMEOUT", cfg.SessionIdleTimeout)
	cfg.SessionSweepInterval = getEnvDuration("SESSION_SWEEP_INTERVAL", cfg.SessionSweepInterval)

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableTracing = getEnvBool("ENABLE_TRACING", cfg.EnableTracing)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)
	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for the dynamodb storage backend")
		}
	case StorageMemory:
		if c.IsProduction() {
			return fmt.Errorf("the memory storage backend is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.GeneratorTimeout <= 0 {
		return fmt.Errorf("GENERATOR_TIMEOUT must be positive")
	}
	if c.GenerateRateLimit < 0 {
		return fmt.Errorf("GENERATE_RATE_LIMIT cannot be negative")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("MAX_SESSIONS cannot be negative")
	}
	if c.SessionSweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	if c.IsProduction() && c.EventBusName == "" {
		return fmt.Errorf("EVENT_BUS_NAME is required in production")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable such as "30s"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
