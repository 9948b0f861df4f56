package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	StorageS3     = "s3"
	StorageMemory = "memory"
)

type Config struct {
	Env  string
	Port string

	DB       DBConfig
	Auth     AuthConfig
	Analyzer AnalyzerConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Log      LogConfig
}

type DBConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	HashCost  int
}

type AnalyzerConfig struct {
	Provider      string
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
}

type StorageConfig struct {
	Driver        string
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
	Folder        string
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// IsProduction reports whether internal error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* variables.
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s "+
			"application_name=healthrecord TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone,
	)
}

// Load reads an optional .env file and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() (*Config, error) {
	tokenTTL, err := getEnvDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	hashCost, err := getEnvInt("HASH_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usePathStyle, err := getEnvBool("S3_USE_PATH_STYLE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:  strings.ToLower(getEnvOrDefault("ENV", EnvDevelopment)),
		Port: getEnvOrDefault("PORT", "5000"),
		DB: DBConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
			TimeZone: getEnvOrDefault("DB_TIMEZONE", "UTC"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET_KEY"),
			TokenTTL:  tokenTTL,
			HashCost:  hashCost,
		},
		Analyzer: AnalyzerConfig{
			Provider:      strings.ToLower(getEnvOrDefault("ANALYZER_PROVIDER", ProviderGemini)),
			GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
			GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
			OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
			OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(getEnvOrDefault("STORAGE_DRIVER", StorageS3)),
			Bucket:        os.Getenv("S3_BUCKET"),
			Region:        getEnvOrDefault("S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
			UsePathStyle:  usePathStyle,
			Folder:        getEnvOrDefault("STORAGE_FOLDER", "reports"),
		},
		Cache: CacheConfig{
			RedisURL: os.Getenv("REDIS_URL"),
			TTL:      cacheTTL,
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every collaborator has what it needs to be constructed.
func (c *Config) Validate() error {
	var errs []error

	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env))
	}
	if c.DB.URL == "" && (c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "") {
		errs = append(errs, errors.New("DATABASE_URL or DB_HOST, DB_USER and DB_NAME must be set"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be set"))
	}
	if c.Auth.HashCost < bcrypt.MinCost || c.Auth.HashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("HASH_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	switch c.Analyzer.Provider {
	case ProviderGemini:
		if c.Analyzer.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY must be set for the gemini analyzer"))
		}
	case ProviderOpenAI:
		if c.Analyzer.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY must be set for the openai analyzer"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ANALYZER_PROVIDER %q", c.Analyzer.Provider))
	}

	switch c.Storage.Driver {
	case StorageS3:
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET must be set for the s3 storage driver"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
