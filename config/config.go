package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/barrelborn/digital-menu/utils"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver       string
	DBSource       string
	MongoURI       string
	MongoDatabase  string
	ConnectTimeout time.Duration

	AdminUsername     string
	AdminPassword     string
	AdminAuthRequired bool
	JWTSecret         []byte
	JWTTTL            time.Duration

	RestaurantID string
	Location     *time.Location

	RateLimitRPS    float64
	RateLimitBurst  int
	LoginRatePerMin int

	LogLevel  string
	LogFormat string
}

// Load reads the environment, after applying a .env file when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "3003"),
		GinMode:       getEnv("GIN_MODE", ""),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "mongo")),
		DBSource:      getEnv("DB_SOURCE", "menu.db"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "barrelborn"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		RestaurantID:  getEnv("RESTAURANT_ID", "6874cff2a880250859286de6"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.ConnectTimeout, err = getDuration("DB_CONNECT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AdminAuthRequired, err = getBool("ADMIN_AUTH_REQUIRED", false); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}
	if cfg.LoginRatePerMin, err = getInt("LOGIN_RATE_PER_MIN", 5); err != nil {
		return nil, err
	}
	if cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "UTC")); err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	// The name is handed to MongoDB date operators, which only know IANA zones.
	if cfg.Location == time.Local {
		return nil, fmt.Errorf("TIMEZONE: %q is not an IANA zone name", "Local")
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = []byte(secret)
	} else {
		utils.ErrorLogger.Warn("JWT_SECRET not set, using a per-process random secret")
		cfg.JWTSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.JWTSecret); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
	}

	switch cfg.DBDriver {
	case "mongo", "mongodb":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required for DB_DRIVER=%s", cfg.DBDriver)
		}
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		utils.ErrorLogger.Warn("ADMIN_USERNAME/ADMIN_PASSWORD not set, admin login disabled")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
