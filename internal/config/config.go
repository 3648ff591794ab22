package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// It is built once in main and passed by value into the services that need
// it; nothing mutates it after Load returns.
type Config struct {
	AppPort string
	AppEnv  string
	AppName string
	AppLogo string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWT JWTConfig

	OTPDigits        int
	OTPExpiry        time.Duration
	PasswordHashCost int

	Mail MailConfig

	SentryDSN      string
	AllowedOrigins []string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts string
	OTPs     string
	Files    string
}

// JWTConfig carries one secret/expiry pair per token purpose. The three
// secrets are independent: a token signed for one purpose never verifies
// under another.
type JWTConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
	ResetSecret   string
	ResetExpiry   time.Duration
}

// MailConfig selects and configures the outbound mail provider.
// Provider is one of "smtp", "resend", or "log" (dev mode: log only).
type MailConfig struct {
	Provider     string
	From         string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPSecure   bool
	ResendAPIKey string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AppName: getEnv("APP_NAME", "Auth Flow"),
		AppLogo: getEnv("APP_LOGO_URL", ""),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts: getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			OTPs:     getEnv("DYNAMO_TABLE_OTPS", "otps"),
			Files:    getEnv("DYNAMO_TABLE_FILES", "files"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "auth-flow-files"),

		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
			AccessExpiry:  getEnvDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
			RefreshExpiry: getEnvDuration("JWT_REFRESH_EXPIRY", 30*24*time.Hour),
			ResetSecret:   getEnv("JWT_RESET_SECRET", ""),
			ResetExpiry:   getEnvDuration("JWT_RESET_EXPIRY", 10*time.Minute),
		},

		OTPDigits:        getEnvInt("OTP_DIGITS", 6),
		OTPExpiry:        getEnvDuration("OTP_EXPIRY", 5*time.Minute),
		PasswordHashCost: getEnvInt("PASSWORD_HASH_COST", 12),

		Mail: MailConfig{
			Provider:     getEnv("MAIL_PROVIDER", "log"),
			From:         getEnv("MAIL_FROM", "noreply@example.com"),
			SMTPHost:     getEnv("SMTP_HOST", "localhost"),
			SMTPPort:     getEnv("SMTP_PORT", "1025"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			SMTPSecure:   getEnvBool("SMTP_SECURE", false),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		},

		SentryDSN:      getEnv("SENTRY_DSN", ""),
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

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
