package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	ServerAddr string
	GinMode    string

	DB  DBConfig
	Log LogConfig

	JWTSecret string
	JWTTTL    time.Duration

	FareRatePerKm        float64
	FareCompletionMarkup float64
	PasswordMinLength    int

	// Empty means any origin is echoed back.
	CORSAllowedOrigins []string
}

// DBConfig describes the postgres connection.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
	// Driver is "pgx" (default) or "postgres" for lib/pq.
	Driver string
}

// DSN builds a keyword/value connection string understood by both pgx and lib/pq.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	File   string
	Level  string
	Stdout bool
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	cfg := Config{
		ServerAddr: getEnv("SERVER_ADDR", "0.0.0.0:8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "cabsy"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "UTC"),
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "pgx")),
		},
		Log: LogConfig{
			File:  getEnv("LOG_FILE", "./logs/app.log"),
			Level: getEnv("LOG_LEVEL", "debug"),
		},
		JWTSecret:          getEnv("JWT_SECRET", "supersecret"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}

	var err error
	if cfg.Log.Stdout, err = getBool("LOG_STDOUT", false); err != nil {
		return Config{}, err
	}
	ttlHours, err := getInt("JWT_TTL_HOURS", 72)
	if err != nil {
		return Config{}, err
	}
	cfg.JWTTTL = time.Duration(ttlHours) * time.Hour
	if cfg.FareRatePerKm, err = getFloat("FARE_RATE_PER_KM", 15); err != nil {
		return Config{}, err
	}
	if cfg.FareCompletionMarkup, err = getFloat("FARE_COMPLETION_MARKUP", 1.05); err != nil {
		return Config{}, err
	}
	if cfg.PasswordMinLength, err = getInt("PASSWORD_MIN_LENGTH", 8); err != nil {
		return Config{}, err
	}

	switch cfg.DB.Driver {
	case "pgx", "postgres":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be pgx or postgres, got %q", cfg.DB.Driver)
	}
	if ttlHours <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", ttlHours)
	}
	if cfg.FareRatePerKm <= 0 || cfg.FareCompletionMarkup <= 0 {
		return Config{}, fmt.Errorf("fare rate and completion markup must be positive")
	}
	if cfg.PasswordMinLength < 1 {
		return Config{}, fmt.Errorf("PASSWORD_MIN_LENGTH must be at least 1, got %d", cfg.PasswordMinLength)
	}
	return cfg, nil
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
