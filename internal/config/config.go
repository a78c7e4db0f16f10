package config

import (
	"os"
	"strconv"
	"time"

	"minesweeper/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string // empty disables game history
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	AllowedOrigin string

	// Board limits
	DefaultWidth  int
	DefaultHeight int
	DefaultMines  int
	MaxWidth      int
	MaxHeight     int

	SessionTTL time.Duration

	ClickRateLimit  int
	ClickRateWindow time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:         port,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       jwtSecret,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         envInt("REDIS_DB", 0),
		LogLevel:        logLevel,
		LogJSON:         os.Getenv("LOG_JSON") == "true",
		AllowedOrigin:   os.Getenv("ALLOWED_ORIGIN"),
		DefaultWidth:    envInt("DEFAULT_WIDTH", 10),
		DefaultHeight:   envInt("DEFAULT_HEIGHT", 10),
		DefaultMines:    envInt("DEFAULT_MINES", 8),
		MaxWidth:        envInt("MAX_WIDTH", 50),
		MaxHeight:       envInt("MAX_HEIGHT", 50),
		SessionTTL:      time.Duration(envInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		ClickRateLimit:  envInt("CLICK_RATE_LIMIT", 120),
		ClickRateWindow: time.Duration(envInt("CLICK_RATE_WINDOW", 60)) * time.Second,
	}
}

// envInt returns a positive int from env or def. REDIS_DB may be 0.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logger.Warn("ignoring invalid env value", "key", key, "value", v)
		return def
	}
	if n == 0 && key != "REDIS_DB" {
		return def
	}
	return n
}
