package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once from the environment.
type Config struct {
	Port     int
	MongoURI string
	MongoDB  string
	JWTKey   string
	Debug    bool

	// Bootstrap password for the single admin account. Hashed on first run.
	AdminPassword string

	// Invite tokens expire this many days after being issued.
	InviteTTLDays int
	PortalBaseURL string

	// Browser origins allowed through CORS. Always includes PortalBaseURL.
	AllowedOrigins []string

	// Stripe is optional; an empty key disables the billing adapter.
	StripeSecretKey       string
	StripePortalReturnURL string

	// SMTP is optional; absent config downgrades invite mail to a log line.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Image host is optional; absent config disables upload endpoints.
	ImageHostURL string
	ImageHostKey string
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// LoadConfig reads configuration from the environment. A .env file is
// honored when present so local runs match deployment.
func LoadConfig() *Config {
	cfgOnce.Do(func() {
		_ = godotenv.Load()

		port, _ := strconv.Atoi(getEnv("PORT", "8080"))
		ttl, _ := strconv.Atoi(getEnv("INVITE_TTL_DAYS", "7"))
		if ttl <= 0 {
			ttl = 7
		}
		smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
		portalURL := getEnv("PORTAL_BASE_URL", "http://localhost:5173")

		cfg = &Config{
			Port:     port,
			MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			MongoDB:  getEnv("MONGO_DB", "studio"),
			JWTKey:   getEnv("JWT_KEY", "dev-only-secret"),
			Debug:    getEnv("GIN_MODE", "debug") == "debug",

			AdminPassword: getEnv("ADMIN_PASSWORD", "changeme123"),

			InviteTTLDays:  ttl,
			PortalBaseURL:  portalURL,
			AllowedOrigins: allowedOrigins(portalURL),

			StripeSecretKey:       os.Getenv("STRIPE_SECRET_KEY"),
			StripePortalReturnURL: getEnv("STRIPE_PORTAL_RETURN_URL", portalURL+"/portal/billing"),

			SMTPHost: os.Getenv("SMTP_HOST"),
			SMTPPort: smtpPort,
			SMTPUser: os.Getenv("SMTP_USER"),
			SMTPPass: os.Getenv("SMTP_PASS"),
			MailFrom: getEnv("MAIL_FROM", "hello@pixelnest.studio"),

			ImageHostURL: os.Getenv("IMAGE_HOST_URL"),
			ImageHostKey: os.Getenv("IMAGE_HOST_KEY"),
		}
	})

	return cfg
}

// allowedOrigins builds the CORS origin list: CORS_ALLOWED_ORIGINS when
// set (comma-separated), otherwise the local frontend dev servers, with
// the portal origin always included.
func allowedOrigins(portalURL string) []string {
	raw := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	seen := map[string]bool{}
	var origins []string
	for _, origin := range strings.Split(raw+","+portalURL, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" || seen[origin] {
			continue
		}
		seen[origin] = true
		origins = append(origins, origin)
	}
	return origins
}

// getEnv returns the environment value or a default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
