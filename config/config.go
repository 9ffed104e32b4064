package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/logging"
	"github.com/linesmerrill/civic-report-api/models"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset. It is refused in production.
const DevJWTSecret = "dev-secret-key"

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Environment  string

	JWTSecret     string
	JWTExpiration time.Duration

	GeocoderURL       string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration

	JurisdictionRadiusMeters float64

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration

	CloudinaryURL string
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, the real environment wins anyway
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")

	//setup zap logger and replace default logger
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         getEnv("PORT", "8080"),
		Environment:  env,

		JWTSecret:     getEnv("JWT_SECRET", DevJWTSecret),
		JWTExpiration: parseDuration(os.Getenv("JWT_EXPIRATION"), 24*time.Hour),

		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org/reverse"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "civic-report-api/1.0"),
		GeocoderTimeout:   parseDuration(os.Getenv("GEOCODER_TIMEOUT"), 10*time.Second),

		JurisdictionRadiusMeters: parseFloat(os.Getenv("JURISDICTION_RADIUS_METERS"), 20000),

		RateLimitRequests: parseInt(os.Getenv("RATE_LIMIT_REQUESTS"), 100),
		RateLimitWindow:   parseDuration(os.Getenv("RATE_LIMIT_WINDOW"), 60*time.Second),
		RequestTimeout:    parseDuration(os.Getenv("REQUEST_TIMEOUT"), 30*time.Second),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
	}
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate rejects settings that are only acceptable outside production
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.JWTSecret == "" || c.JWTSecret == DevJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.URL == "" {
		return errors.New("DB_URI must be set in production")
	}
	return nil
}

func setLogger(env string) (*zap.Logger, error) {
	return logging.New(env)
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	zap.S().Errorw(message, "status", httpStatusCode, "error", errText)
	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: models.MessageError{Message: message, Error: errText},
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_, _ = w.Write(b)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, defaultValue int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return defaultValue
}

func parseFloat(s string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultValue
}

// parseDuration accepts Go durations ("30s", "24h") or a bare number of seconds
func parseDuration(s string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if i, err := strconv.Atoi(s); err == nil {
		return time.Duration(i) * time.Second
	}
	return defaultValue
}
