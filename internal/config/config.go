package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	// VerificationCodesTable is the DynamoDB table holding outstanding codes.
	VerificationCodesTable string

	// DirectoryURL and DirectoryServiceKey point at the remote user directory
	// that owns the "does this purchaser exist" fact. Both are mandatory;
	// main exits when either is missing.
	DirectoryURL        string
	DirectoryServiceKey string

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	// APISecretKey is the static bearer secret the conversational agent must
	// present. Empty disables authentication (insecure mode).
	APISecretKey string

	// PublicBaseURL is the externally reachable base URL advertised in the
	// published OpenAPI document.
	PublicBaseURL string

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		VerificationCodesTable: getEnv("DYNAMO_TABLE_VERIFICATION_CODES", "codigos_verificacao"),

		DirectoryURL:        getEnv("DIRECTORY_URL", ""),
		DirectoryServiceKey: getEnv("DIRECTORY_SERVICE_KEY", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		APISecretKey:  getEnv("API_SECRET_KEY", ""),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
