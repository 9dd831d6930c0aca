package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the fact-check server needs at startup.
type Config struct {
	Host string
	Port string

	AIProvider    string
	AIModel       string
	AITemperature float64
	AITimeout     time.Duration
	GeminiKey     string
	OpenAIKey     string
	OpenAIBaseURL string

	ExaKey        string
	ExaEndpoint   string
	SearchTimeout time.Duration
	SearchRetries int

	WorkerCount     int
	MaxRequestBytes int64

	LogLevel  string
	LogFormat string
	LogFile   string
	GinMode   string
}

// Load reads an optional .env file and then the process environment.
// The returned config has been validated.
func Load() (Config, error) {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv is Load without validation, for tools that only need part of the config.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Host: getenv("HOST", "0.0.0.0"),
		Port: getenv("PORT", "8000"),

		AIProvider:    strings.ToLower(getenv("AI_PROVIDER", "gemini")),
		AIModel:       getenv("AI_MODEL", ""),
		AITemperature: getenvFloat("AI_TEMPERATURE", 0),
		AITimeout:     getenvSeconds("AI_TIMEOUT_SECONDS", 60),
		GeminiKey:     getenv("GEMINI_API_KEY", ""),
		OpenAIKey:     getenv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", ""),

		ExaKey:        getenv("EXA_API_KEY", ""),
		ExaEndpoint:   getenv("EXA_ENDPOINT", "https://api.exa.ai"),
		SearchTimeout: getenvSeconds("SEARCH_TIMEOUT_SECONDS", 30),
		SearchRetries: getenvInt("SEARCH_RETRIES", 2),

		WorkerCount:     getenvInt("WORKER_COUNT", 5),
		MaxRequestBytes: int64(getenvInt("MAX_REQUEST_BYTES", 64*1024)),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),
		LogFile:   getenv("LOG_FILE", ""),
		GinMode:   getenv("GIN_MODE", "release"),
	}
}

var providerKeyEnv = map[string]string{
	"gemini": "GEMINI_API_KEY",
	"openai": "OPENAI_API_KEY",
}

// Validate checks that both provider secrets are present and numbers are sane.
func (c Config) Validate() error {
	var errs []error

	if keyEnv, ok := providerKeyEnv[c.AIProvider]; !ok {
		errs = append(errs, fmt.Errorf("unsupported AI_PROVIDER %q", c.AIProvider))
	} else if c.ProviderKey() == "" {
		errs = append(errs, fmt.Errorf("missing env %s", keyEnv))
	}
	if c.ExaKey == "" {
		errs = append(errs, errors.New("missing env EXA_API_KEY"))
	}
	if c.WorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount))
	}
	if c.MaxRequestBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_REQUEST_BYTES must be positive, got %d", c.MaxRequestBytes))
	}

	return errors.Join(errs...)
}

// ProviderKey returns the API key for the configured AI provider.
func (c Config) ProviderKey() string {
	if c.AIProvider == "openai" {
		return c.OpenAIKey
	}
	return c.GeminiKey
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(getenv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getenvFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(getenv(key, ""), 64)
	if err != nil {
		return def
	}
	return v
}

func getenvSeconds(key string, def int) time.Duration {
	return time.Duration(getenvInt(key, def)) * time.Second
}
