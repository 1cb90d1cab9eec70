package config

import (
	"os"
	"strings"
)

// Config is the immutable process-wide configuration, read once in main and
// passed by value into the handler. Nothing downstream reads the environment.
type Config struct {
	Env             string
	AllowedOrigins  []string
	BedrockRegion   string
	ModelID         string
	KnowledgeBaseID string
	ParamPrefix     string
}

// Load reads configuration from the environment. Missing model and
// knowledge-base identifiers are valid at startup; POST /chat reports them
// as configuration errors at request time.
func Load() Config {
	return Config{
		Env:             getenv("APP_ENV", "dev"),
		AllowedOrigins:  SplitOrigins(getenv("ALLOWED_ORIGINS", "http://localhost")),
		BedrockRegion:   getenv("BEDROCK_REGION", "us-east-1"),
		ModelID:         strings.TrimSpace(os.Getenv("BEDROCK_MODEL_ID")),
		KnowledgeBaseID: strings.TrimSpace(os.Getenv("BEDROCK_KB_ID")),
		ParamPrefix:     strings.TrimSpace(os.Getenv("PARAM_PREFIX")),
	}
}

// SplitOrigins parses a comma-separated origin allow-list, trimming entries
// and dropping empties.
func SplitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// ModelConfigured reports whether a Bedrock model identifier is set.
func (c Config) ModelConfigured() bool {
	return c.ModelID != ""
}

// KBConfigured reports whether a knowledge-base identifier is set.
func (c Config) KBConfigured() bool {
	return c.KnowledgeBaseID != ""
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
