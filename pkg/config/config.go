package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	FrontendURL      string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	AdminEmails      []string

	DatabaseURL string
	RedisURL    string

	// Firebase (Firestore directory, Auth, Cloud Messaging)
	FirebaseCredentialsFile string
	FirebaseCredentialsJSON string
	FirebaseProjectID       string

	// Headline source
	GNewsAPIKey      string
	GNewsBaseURL     string
	NewsLang         string
	NewsCountry      string
	HeadlineCacheTTL time.Duration

	// Breaking news job
	BreakingNewsSchedule string
	BreakingNewsTimeout  time.Duration
	BreakingNewsLockTTL  time.Duration
	FanoutConcurrency    int

	// Pub/Sub trigger (optional)
	GoogleProjectID   string
	BreakingNewsTopic string

	// Sentiment providers
	AIProvider    string
	GeminiAPIKey  string
	OllamaBaseURL string
	OllamaModel   string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour), // 7 days
		AdminEmails:      getList("ADMIN_EMAILS"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),

		GNewsAPIKey:      getEnv("GNEWS_API_KEY", ""),
		GNewsBaseURL:     getEnv("GNEWS_BASE_URL", "https://gnews.io/api/v4"),
		NewsLang:         getEnv("NEWS_LANG", "en"),
		NewsCountry:      getEnv("NEWS_COUNTRY", "us"),
		HeadlineCacheTTL: getDuration("HEADLINE_CACHE_TTL", 10*time.Minute),

		BreakingNewsSchedule: getEnv("BREAKING_NEWS_SCHEDULE", "@every 1h"),
		BreakingNewsTimeout:  getDuration("BREAKING_NEWS_TIMEOUT", 10*time.Minute),
		BreakingNewsLockTTL:  getDuration("BREAKING_NEWS_LOCK_TTL", 15*time.Minute),
		FanoutConcurrency:    getInt("FANOUT_CONCURRENCY", 1),

		GoogleProjectID:   getEnv("GOOGLE_PROJECT_ID", ""),
		BreakingNewsTopic: getEnv("BREAKING_NEWS_TOPIC", "breaking-news-trigger"),

		AIProvider:    getEnv("AI_PROVIDER", "gemini"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.2"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}
}

// IsAdmin reports whether email is listed in ADMIN_EMAILS.
func (c *Config) IsAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// getList splits a comma separated variable, lowercasing entries.
func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
