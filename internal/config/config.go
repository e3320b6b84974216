package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	LinkwardenBaseURL    string
	LinkwardenSearchPath string
	LinkwardenLinkPath   string
	LinkwardenToken      string
	OpenAIBaseURL        string
	OpenAIChatPath       string
	OpenAIAPIKey         string
	OpenAIModel          string
}

// Load loads the configuration from environment variables or a .env file.
// It fails eagerly on a missing credential or a malformed base URL so no
// partial run can happen.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("LINKWARDEN_BASE_URL", "http://localhost:3000")
	v.SetDefault("LINKWARDEN_SEARCH_PATH", "/api/v1/search")
	v.SetDefault("LINKWARDEN_LINK_PATH", "/api/v1/links")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	v.SetDefault("OPENAI_CHAT_PATH", "/v1/chat/completions")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	cfg := &Config{
		LinkwardenSearchPath: v.GetString("LINKWARDEN_SEARCH_PATH"),
		LinkwardenLinkPath:   v.GetString("LINKWARDEN_LINK_PATH"),
		LinkwardenToken:      v.GetString("LINKWARDEN_TOKEN"),
		OpenAIChatPath:       v.GetString("OPENAI_CHAT_PATH"),
		OpenAIAPIKey:         v.GetString("OPENAI_API_KEY"),
		OpenAIModel:          v.GetString("OPENAI_MODEL"),
	}

	if cfg.LinkwardenToken == "" {
		return nil, fmt.Errorf("missing required environment variable: LINKWARDEN_TOKEN")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("missing required environment variable: OPENAI_API_KEY")
	}

	var err error
	cfg.LinkwardenBaseURL, err = NormalizeBaseURL(v.GetString("LINKWARDEN_BASE_URL"), "LINKWARDEN_BASE_URL")
	if err != nil {
		return nil, err
	}
	cfg.OpenAIBaseURL, err = NormalizeBaseURL(v.GetString("OPENAI_BASE_URL"), "OPENAI_BASE_URL")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// NormalizeBaseURL returns a sanitized base URL string.
//
// Some Windows setups can accidentally pass a tuple repr like
// "('LINKWARDEN_BASE_URL', 'https://example.com')"; we attempt to recover
// the actual URL from such strings and require a scheme so the clients can
// build valid requests.
func NormalizeBaseURL(raw, name string) (string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, `"'`)

	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		inner := strings.TrimSuffix(strings.TrimPrefix(raw, "("), ")")
		if parts := strings.SplitN(inner, ",", 2); len(parts) == 2 {
			raw = strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		}
	}

	raw = strings.TrimRight(raw, "/")
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "", fmt.Errorf("%s must include a scheme, e.g. https://example.com", name)
	}
	return raw, nil
}
