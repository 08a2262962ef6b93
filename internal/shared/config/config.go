package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	CORSAllowOrigin    []string
	DatabaseURL        string
	LLMProvider        string
	LLMModel           string
	GeminiAPIKey       string
	OpenAIAPIKey       string
	AITimeout          time.Duration
	JWTSecret          string
	JWTExpiration      time.Duration
	BcryptCost         int
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	if env == "production" && jwtSecret == "" {
		log.Printf("JWT_SECRET is required in production")
	}

	geminiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	openaiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	provider := normalizeProvider(getEnv("LLM_PROVIDER", ""), geminiKey, openaiKey)

	return Config{
		Port:               getEnv("PORT", "5000"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		DatabaseURL:        dbURL,
		LLMProvider:        provider,
		LLMModel:           getEnv("LLM_MODEL", defaultModel(provider)),
		GeminiAPIKey:       geminiKey,
		OpenAIAPIKey:       openaiKey,
		AITimeout:          getDuration("AI_TIMEOUT", 20*time.Second),
		JWTSecret:          jwtSecret,
		JWTExpiration:      time.Duration(getInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		BcryptCost:         getInt("BCRYPT_COST", 10),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}
}

// AIConfigured reports whether a model credential is present for the selected provider.
func (c Config) AIConfigured() bool {
	switch c.LLMProvider {
	case ProviderGemini:
		return c.GeminiAPIKey != ""
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	default:
		return false
	}
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

// getDuration accepts Go duration strings ("15s") or a bare number of seconds.
func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid duration %q, using %s", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeProvider picks the explicit provider when set, otherwise whichever key is present.
func normalizeProvider(raw, geminiKey, openaiKey string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderGemini, "google":
		return ProviderGemini
	case ProviderOpenAI:
		return ProviderOpenAI
	case ProviderNone, "off", "disabled":
		return ProviderNone
	}
	switch {
	case geminiKey != "":
		return ProviderGemini
	case openaiKey != "":
		return ProviderOpenAI
	default:
		return ProviderNone
	}
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.0-flash"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return ""
	}
}
