// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// TravelerProfile is the saved default profile offered during traveler
// collection ("auto-fill").
type TravelerProfile struct {
	FirstName       string
	LastName        string
	DateOfBirth     string
	Gender          string
	Email           string
	CountryCode     string
	Phone           string
	PassportNumber  string
	PassportExpiry  string
	PassportIssue   string
	PassportCountry string
	BirthPlace      string
}

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Metrics server
	MetricsPort  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Flight API (search, pricing, booking)
	AmadeusBaseURL      string
	AmadeusClientID     string
	AmadeusClientSecret string

	// Natural-language extractor
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Collaborator calls
	RequestTimeout time.Duration

	// Booking resilience policy. MaxBookingRetries counts resync cycles
	// after the first attempt; ResyncBackoff is the settle delay before a
	// fresh search.
	MaxBookingRetries int
	ResyncBackoff     time.Duration

	// Search snapshot export
	ExportDir string

	DefaultProfile TravelerProfile
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		MetricsPort:  getEnv("METRICS_PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		AmadeusBaseURL:      getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusClientID:     getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret: getEnv("AMADEUS_CLIENT_SECRET", ""),

		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),

		RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT", 30)) * time.Second,

		MaxBookingRetries: getEnvAsInt("MAX_BOOKING_RETRIES", 2),
		ResyncBackoff:     time.Duration(getEnvAsInt("RESYNC_BACKOFF_SECONDS", 3)) * time.Second,

		ExportDir: getEnv("EXPORT_DIR", "."),

		DefaultProfile: TravelerProfile{
			FirstName:       getEnv("PROFILE_FIRST_NAME", ""),
			LastName:        getEnv("PROFILE_LAST_NAME", ""),
			DateOfBirth:     getEnv("PROFILE_DATE_OF_BIRTH", ""),
			Gender:          getEnv("PROFILE_GENDER", ""),
			Email:           getEnv("PROFILE_EMAIL", ""),
			CountryCode:     getEnv("PROFILE_COUNTRY_CODE", ""),
			Phone:           getEnv("PROFILE_PHONE", ""),
			PassportNumber:  getEnv("PROFILE_PASSPORT_NUMBER", ""),
			PassportExpiry:  getEnv("PROFILE_PASSPORT_EXPIRY", ""),
			PassportIssue:   getEnv("PROFILE_PASSPORT_ISSUE", ""),
			PassportCountry: getEnv("PROFILE_PASSPORT_COUNTRY", ""),
			BirthPlace:      getEnv("PROFILE_BIRTH_PLACE", ""),
		},
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
