package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LLMProvider   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string

	DefaultRegion  string
	StaticDir      string
	MaxUploadBytes int64

	LogLevel string
	LogDev   bool

	TelegramBotToken string
	WebhookURL       string
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	v, err := strconv.ParseBool(getEnv(k, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	v, err := strconv.Atoi(getEnv(k, strconv.Itoa(def)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// Load reads .env (if present) and the process environment. It fails when the
// API key of the selected provider is missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8000"),

		LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", "gpt")),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		DefaultRegion:  strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "BD")),
		StaticDir:      getEnv("STATIC_DIR", "dist"),
		MaxUploadBytes: int64(getInt("MAX_UPLOAD_MB", 10)) << 20,

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDev:   getBool("LOG_DEV", false),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
	}

	switch cfg.LLMProvider {
	case "gpt", "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("missing required env OPENAI_API_KEY for provider %q", cfg.LLMProvider)
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("missing required env GEMINI_API_KEY for provider %q", cfg.LLMProvider)
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q; use 'gpt' or 'gemini'", cfg.LLMProvider)
	}
	return cfg, nil
}
