package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	BackendURL string
	// AssetBaseURL is the origin that serves /uploads and /resumes.
	AssetBaseURL string
	HTTPTimeout  time.Duration

	LogLevel  string
	LogFormat string
	GinMode   string

	GeminiAPIKey string
	GeminiModel  string

	// RefreshInterval re-fetches the application list in the background; 0 disables it.
	RefreshInterval time.Duration
}

// Load reads the environment, pulling in a .env file first when one exists.
func Load() Config {
	_ = godotenv.Load()

	backend := strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8000/api"), "/")
	return Config{
		Port:            getEnv("PORT", "8080"),
		BackendURL:      backend,
		AssetBaseURL:    strings.TrimRight(getEnv("ASSET_BASE_URL", strings.TrimSuffix(backend, "/api")), "/"),
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		GinMode:         os.Getenv("GIN_MODE"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		RefreshInterval: time.Duration(getEnvInt("REFRESH_INTERVAL_SECONDS", 0)) * time.Second,
	}
}

// UseLLM reports whether extraction should go straight to Gemini instead of the backend.
func (c Config) UseLLM() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
