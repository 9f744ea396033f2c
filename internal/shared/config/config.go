package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"elevate-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Env             string
	Port            string
	CORSAllowOrigin []string
	FrontendURL     string
	LogFormat       string
	LogLevel        string

	DatabaseURL string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string

	JWTSecret            string
	JWTTTL               time.Duration
	GoogleClientID       string
	GoogleClientSecret   string
	GoogleRedirectURL    string
	OAuthSuccessRedirect string

	GeminiAPIKey        string
	GeminiAnalysisModel string
	GeminiWritingModel  string
	AITimeout           time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string

	ChromePath    string
	RenderTimeout time.Duration

	RateLimitEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	env := normalizeEnv(v.GetString("APP_ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	frontend := strings.TrimRight(v.GetString("FRONTEND_URL"), "/")
	successRedirect := v.GetString("OAUTH_SUCCESS_REDIRECT")
	if successRedirect == "" {
		successRedirect = frontend + "/oauth2/callback"
	}

	return Config{
		Env:             env,
		Port:            v.GetString("PORT"),
		CORSAllowOrigin: splitAndTrim(v.GetString("CORS_ALLOW_ORIGIN")),
		FrontendURL:     frontend,
		LogFormat:       normalizeLogFormat(v.GetString("LOG_FORMAT"), env),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),

		DatabaseURL: dbURL,

		ObjectStoreType: normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:   v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:       v.GetString("AWS_REGION"),
		S3Bucket:        v.GetString("S3_BUCKET"),
		S3Prefix:        v.GetString("S3_PREFIX"),

		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTTTL:               time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour,
		GoogleClientID:       v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:    v.GetString("GOOGLE_REDIRECT_URL"),
		OAuthSuccessRedirect: successRedirect,

		GeminiAPIKey:        strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
		GeminiAnalysisModel: v.GetString("GEMINI_ANALYSIS_MODEL"),
		GeminiWritingModel:  v.GetString("GEMINI_WRITING_MODEL"),
		AITimeout:           seconds(v.GetInt("AI_TIMEOUT_SECONDS"), 30),

		StripeSecretKey:     v.GetString("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
		StripePriceID:       v.GetString("STRIPE_PRICE_ID"),

		ChromePath:    v.GetString("CHROME_PATH"),
		RenderTimeout: seconds(v.GetInt("RENDER_TIMEOUT_SECONDS"), 60),

		RateLimitEnabled: v.GetBool("RATE_LIMIT_ENABLED"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ALLOW_ORIGIN", "http://localhost:5173")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OBJECT_STORE", "local")
	v.SetDefault("LOCAL_STORE_DIR", "./data")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("GEMINI_ANALYSIS_MODEL", "gemini-1.5-pro")
	v.SetDefault("GEMINI_WRITING_MODEL", "gemini-1.5-flash")
	v.SetDefault("AI_TIMEOUT_SECONDS", 30)
	v.SetDefault("RENDER_TIMEOUT_SECONDS", 60)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
}

// IsDevLike reports whether env allows in-memory fallbacks.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

// AIConfigured reports whether a usable Gemini key is present.
// Empty keys and the "YOUR_KEY_HERE" placeholder count as unconfigured.
func (c Config) AIConfigured() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != "YOUR_KEY_HERE"
}

// StripeConfigured reports whether checkout sessions can be created.
func (c Config) StripeConfigured() bool {
	return c.StripeSecretKey != "" && c.StripePriceID != ""
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
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
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeLogFormat(raw, env string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return "json"
	case "console", "text":
		return "console"
	}
	if env == "production" || env == "staging" {
		return "json"
	}
	return "console"
}
