package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"

	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

type Config struct {
	// HTTP
	Port           string
	GinMode        string
	CORSOrigins    []string
	MaxUploadBytes int64

	// JSearch (RapidAPI)
	JSearchAPIKey  string
	JSearchBaseURL string
	JSearchHost    string
	JSearchTimeout time.Duration
	JSearchCountry string
	JobWorkers     int

	// Advisory model
	AdvisoryProvider string
	AdvisoryTimeout  time.Duration
	DeepSeekAPIKey   string
	DeepSeekBaseURL  string
	DeepSeekModel    string
	GeminiAPIKey     string
	GeminiModel      string

	// Sessions
	TokenTTL       time.Duration
	TokenSweepSpec string
	PasswordHasher string

	// Logging
	LogLevel string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Defaults
		Port:             "8080",
		GinMode:          "release",
		CORSOrigins:      []string{"https://job-aggregator-demo.vercel.app"},
		MaxUploadBytes:   10 << 20,
		JSearchBaseURL:   "https://jsearch.p.rapidapi.com",
		JSearchHost:      "jsearch.p.rapidapi.com",
		JSearchTimeout:   30 * time.Second,
		JSearchCountry:   "GB",
		JobWorkers:       5,
		AdvisoryProvider: ProviderDeepSeek,
		AdvisoryTimeout:  60 * time.Second,
		DeepSeekBaseURL:  "https://api.deepseek.com",
		DeepSeekModel:    "deepseek-chat",
		GeminiModel:      "gemini-2.5-flash",
		TokenSweepSpec:   "@every 1m",
		PasswordHasher:   HasherSHA256,
		LogLevel:         "info",
	}

	setString(&cfg.Port, "PORT")
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitOrigins(origins)
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}

	cfg.JSearchAPIKey = os.Getenv("RAPIDAPI_KEY")
	if cfg.JSearchAPIKey == "" {
		cfg.JSearchAPIKey = os.Getenv("RAPIDAPI_KEY2")
	}
	setString(&cfg.JSearchBaseURL, "JSEARCH_BASE_URL")
	setString(&cfg.JSearchHost, "JSEARCH_HOST")
	setString(&cfg.JSearchCountry, "JSEARCH_COUNTRY")

	if err := setDuration(&cfg.JSearchTimeout, "JSEARCH_TIMEOUT"); err != nil {
		return nil, err
	}

	if v := os.Getenv("JOB_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JOB_WORKERS: %w", err)
		}
		cfg.JobWorkers = n
	}

	setString(&cfg.AdvisoryProvider, "ADVISORY_PROVIDER")
	cfg.AdvisoryProvider = strings.ToLower(cfg.AdvisoryProvider)
	if err := setDuration(&cfg.AdvisoryTimeout, "ADVISORY_TIMEOUT"); err != nil {
		return nil, err
	}
	cfg.DeepSeekAPIKey = os.Getenv("DEEPSEEK_API_KEY")
	setString(&cfg.DeepSeekBaseURL, "DEEPSEEK_BASE_URL")
	setString(&cfg.DeepSeekModel, "DEEPSEEK_MODEL")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	setString(&cfg.GeminiModel, "GEMINI_MODEL")

	if err := setDuration(&cfg.TokenTTL, "TOKEN_TTL"); err != nil {
		return nil, err
	}
	setString(&cfg.TokenSweepSpec, "TOKEN_SWEEP_SPEC")
	setString(&cfg.PasswordHasher, "PASSWORD_HASHER")
	cfg.PasswordHasher = strings.ToLower(cfg.PasswordHasher)

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is empty")
	}

	if c.JobWorkers < 1 {
		return fmt.Errorf("job workers must be at least 1, got %d", c.JobWorkers)
	}

	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("max upload bytes must be positive")
	}

	if c.TokenTTL < 0 {
		return fmt.Errorf("token ttl must not be negative: %v", c.TokenTTL)
	}

	switch c.AdvisoryProvider {
	case ProviderDeepSeek, ProviderGemini:
	default:
		return fmt.Errorf("invalid advisory provider: %s", c.AdvisoryProvider)
	}

	switch c.PasswordHasher {
	case HasherSHA256, HasherBcrypt:
	default:
		return fmt.Errorf("invalid password hasher: %s", c.PasswordHasher)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

// splitOrigins accepts a comma-separated list and drops trailing slashes.
func splitOrigins(raw string) []string {
	var origins []string
	for _, p := range strings.Split(raw, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
