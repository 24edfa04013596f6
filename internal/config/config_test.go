package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("default addr: %q", cfg.Server.Addr)
	}
	if cfg.Source.Provider != "memberapi" {
		t.Fatalf("default provider: %q", cfg.Source.Provider)
	}
	if cfg.LLM.EmbedModel != "text-embedding-3-small" || cfg.LLM.ChatModel != "gpt-4o-mini" {
		t.Fatalf("default models: %q %q", cfg.LLM.EmbedModel, cfg.LLM.ChatModel)
	}
	if cfg.Server.RateLimit != 0 {
		t.Fatalf("rate limiting should default off, got %v", cfg.Server.RateLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AURORA_ADDR", ":9999")
	t.Setenv("AURORA_SOURCE", "dump")
	t.Setenv("AURORA_DUMP_PATH", "/tmp/messages.json")
	t.Setenv("AURORA_RATE_LIMIT", "2.5")
	t.Setenv("AURORA_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("addr override: %q", cfg.Server.Addr)
	}
	if cfg.Source.Provider != "dump" || cfg.Source.DumpPath != "/tmp/messages.json" {
		t.Fatalf("source override: %+v", cfg.Source)
	}
	if cfg.Server.RateLimit != 2.5 {
		t.Fatalf("rate limit override: %v", cfg.Server.RateLimit)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level override: %q", cfg.Log.Level)
	}
}

func TestLoadAPIKeyFallback(t *testing.T) {
	t.Setenv("AURORA_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	if cfg := Load(); cfg.LLM.APIKey != "sk-test" {
		t.Fatalf("expected OPENAI_API_KEY fallback, got %q", cfg.LLM.APIKey)
	}

	t.Setenv("AURORA_OPENAI_API_KEY", "sk-primary")
	if cfg := Load(); cfg.LLM.APIKey != "sk-primary" {
		t.Fatalf("expected AURORA_OPENAI_API_KEY to win, got %q", cfg.LLM.APIKey)
	}
}

func TestGetenvFloatMalformed(t *testing.T) {
	t.Setenv("AURORA_RATE_LIMIT", "not-a-number")
	if cfg := Load(); cfg.Server.RateLimit != 0 {
		t.Fatalf("malformed value should fall back, got %v", cfg.Server.RateLimit)
	}
}
