package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port       string
	Env        string // "production" switches cookies to Secure + SameSite=None
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// Optional: when set, refresh records live in Redis instead of the DB.
	RedisAddr string
	// Token settings. The two secrets must differ so access tokens can never
	// pass refresh verification or vice versa.
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		Env:        getenv("APP_ENV", "development"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "prysm_db"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),
		RedisAddr:  getenv("REDIS_ADDR", ""),

		AccessTokenSecret:  getenv("ACCESS_TOKEN_SECRET", "supersecret_change_me"),
		RefreshTokenSecret: getenv("REFRESH_TOKEN_SECRET", "supersecret_change_me_too"),
		AccessTokenTTL:     time.Duration(getenvInt("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL:    time.Duration(getenvInt("REFRESH_TOKEN_TTL_DAYS", 30)) * 24 * time.Hour,
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
