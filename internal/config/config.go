package config

import (
	"os"
	"strconv"
)

// Config holds all Aurora configuration.
type Config struct {
	Server ServerConfig
	Source SourceConfig
	LLM    LLMConfig
	Log    LogConfig
}

// ServerConfig holds HTTP facade settings.
type ServerConfig struct {
	Addr      string
	RateLimit float64 // requests per second per client IP; 0 disables
	RateBurst int
}

// SourceConfig holds message-source settings.
type SourceConfig struct {
	Provider string // "memberapi" or "dump"
	Endpoint string
	Token    string
	DumpPath string
}

// LLMConfig holds the generation/embedding provider settings. The API
// key is the only credential in the system.
type LLMConfig struct {
	APIKey     string
	BaseURL    string
	EmbedModel string
	ChatModel  string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // "debug", "info", "warn", "error"
	JSON  bool
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr:      getenv("AURORA_ADDR", ":8080"),
			RateLimit: getenvFloat("AURORA_RATE_LIMIT", 0),
			RateBurst: getenvInt("AURORA_RATE_BURST", 10),
		},
		Source: SourceConfig{
			Provider: getenv("AURORA_SOURCE", "memberapi"),
			Endpoint: getenv("AURORA_MESSAGES_URL", "https://november7-730026606190.europe-west1.run.app/messages"),
			Token:    os.Getenv("AURORA_MESSAGES_TOKEN"),
			DumpPath: os.Getenv("AURORA_DUMP_PATH"),
		},
		LLM: LLMConfig{
			APIKey:     getenv("AURORA_OPENAI_API_KEY", os.Getenv("OPENAI_API_KEY")),
			BaseURL:    os.Getenv("AURORA_OPENAI_BASE_URL"),
			EmbedModel: getenv("AURORA_EMBED_MODEL", "text-embedding-3-small"),
			ChatModel:  getenv("AURORA_CHAT_MODEL", "gpt-4o-mini"),
		},
		Log: LogConfig{
			Level: getenv("AURORA_LOG_LEVEL", "info"),
			JSON:  getenvBool("AURORA_LOG_JSON", true),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
