// Package config loads the gateway and client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/snapreview/internal/logger"
)

// Supported values for LLM_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderGeminiSDK = "gemini-sdk"
	ProviderOllama    = "ollama"
)

// Config holds the application's configuration values.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Client  ClientConfig
	Logging logger.Config
}

// ServerConfig configures the review gateway's HTTP listener.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
}

// AIConfig selects and configures the model provider.
type AIConfig struct {
	LLMProvider    string
	GeminiAPIKey   string
	GeminiBaseURL  string
	GeneratorModel string
	OllamaHost     string
}

// ClientConfig configures the terminal and command-line clients.
type ClientConfig struct {
	BackendURL     string
	Theme          string
	HighlightStyle string
}

// LoadConfig reads configuration from environment variables and an optional
// .env file (ENV_FILE overrides the path), sets defaults and returns a typed
// Config. Callers validate the parts they need with ValidateForServer or
// ValidateForClient.
func LoadConfig() (*Config, error) {
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "120s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "120s")
	viper.SetDefault("SERVER_MAX_BODY_BYTES", 100*1024)
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", "*")
	viper.SetDefault("LLM_PROVIDER", ProviderGemini)
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "qwen2.5-coder:latest")
	viper.SetDefault("BACKEND_URL", "http://localhost:5000")
	viper.SetDefault("CLIENT_THEME", "cyan")
	viper.SetDefault("HIGHLIGHT_STYLE", "monokai")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.AutomaticEnv()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		viper.SetConfigFile(envFile)
		viper.SetConfigType("env")
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", envFile, err)
		}
	}

	provider := strings.ToLower(strings.TrimSpace(viper.GetString("LLM_PROVIDER")))
	generatorModel := viper.GetString("GEMINI_MODEL")
	if provider == ProviderOllama {
		generatorModel = viper.GetString("OLLAMA_MODEL")
	}

	return &Config{
		Server: ServerConfig{
			Port:           strings.TrimPrefix(viper.GetString("PORT"), ":"),
			ReadTimeout:    viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:   viper.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:    viper.GetDuration("SERVER_IDLE_TIMEOUT"),
			MaxBodyBytes:   viper.GetInt64("SERVER_MAX_BODY_BYTES"),
			AllowedOrigins: splitList(viper.GetString("SERVER_ALLOWED_ORIGINS")),
		},
		AI: AIConfig{
			LLMProvider:    provider,
			GeminiAPIKey:   viper.GetString("GEMINI_API_KEY"),
			GeminiBaseURL:  strings.TrimRight(viper.GetString("GEMINI_BASE_URL"), "/"),
			GeneratorModel: generatorModel,
			OllamaHost:     viper.GetString("OLLAMA_HOST"),
		},
		Client: ClientConfig{
			BackendURL:     strings.TrimRight(viper.GetString("BACKEND_URL"), "/"),
			Theme:          viper.GetString("CLIENT_THEME"),
			HighlightStyle: viper.GetString("HIGHLIGHT_STYLE"),
		},
		Logging: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
			File:   viper.GetString("LOG_FILE"),
		},
	}, nil
}

// ValidateForServer checks the settings the review gateway needs.
func (c *Config) ValidateForServer() error {
	var errs []error

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Server.Port))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("SERVER_MAX_BODY_BYTES must be positive"))
	}

	switch c.AI.LLMProvider {
	case ProviderGemini, ProviderGeminiSDK:
		if c.AI.GeminiAPIKey == "" {
			errs = append(errs, fmt.Errorf("GEMINI_API_KEY must be set for the %s provider", c.AI.LLMProvider))
		}
		if c.AI.LLMProvider == ProviderGemini {
			if err := validateURL(c.AI.GeminiBaseURL); err != nil {
				errs = append(errs, fmt.Errorf("GEMINI_BASE_URL: %w", err))
			}
		}
	case ProviderOllama:
		if err := validateURL(c.AI.OllamaHost); err != nil {
			errs = append(errs, fmt.Errorf("OLLAMA_HOST: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported LLM provider: %q", c.AI.LLMProvider))
	}
	if c.AI.GeneratorModel == "" {
		errs = append(errs, fmt.Errorf("a generator model name must be set"))
	}

	return errors.Join(errs...)
}

// ValidateForClient checks the settings the terminal and CLI clients need.
func (c *Config) ValidateForClient() error {
	if err := validateURL(c.Client.BackendURL); err != nil {
		return fmt.Errorf("BACKEND_URL: %w", err)
	}
	return nil
}

// LogSummary records the effective, non-secret settings.
func (c *Config) LogSummary(logger *slog.Logger) {
	logger.Info("configuration loaded",
		"port", c.Server.Port,
		"provider", c.AI.LLMProvider,
		"model", c.AI.GeneratorModel,
		"api_key_set", c.AI.GeminiAPIKey != "",
		"allowed_origins", c.Server.AllowedOrigins,
	)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("expected an http(s) URL, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
