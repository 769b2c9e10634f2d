package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4/internal/domain"
)

type Config struct {
	Port               string
	BoardWidth         int
	BoardHeight        int
	Player1Color       string
	Player2Color       string
	AllowedOrigins     []string
	FrontendURL        string
	IdleTimeout        time.Duration
	CleanupInterval    time.Duration
	RedisURL           string
	RedisPassword      string
	RedisChannelPrefix string
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Board
	width := GetEnvAsInt("BOARD_WIDTH", domain.DefaultColumns)
	height := GetEnvAsInt("BOARD_HEIGHT", domain.DefaultRows)
	if width < domain.MinSize || height < domain.MinSize || width > domain.MaxSize || height > domain.MaxSize {
		log.Printf("Board %dx%d is outside %d..%d, using default: %dx%d",
			width, height, domain.MinSize, domain.MaxSize, domain.DefaultColumns, domain.DefaultRows)
		width, height = domain.DefaultColumns, domain.DefaultRows
	}

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:8080")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	return &Config{
		Port:               port,
		BoardWidth:         width,
		BoardHeight:        height,
		Player1Color:       GetEnv("PLAYER1_COLOR", "purple"),
		Player2Color:       GetEnv("PLAYER2_COLOR", "green"),
		AllowedOrigins:     allowedOrigins,
		FrontendURL:        frontendURL,
		IdleTimeout:        GetEnvAsDuration("GAME_IDLE_TIMEOUT_MINUTES", 60, time.Minute),
		CleanupInterval:    GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 10, time.Minute),
		RedisURL:           GetEnv("REDIS_URL", ""),
		RedisPassword:      GetEnv("REDIS_PASSWORD", ""),
		RedisChannelPrefix: GetEnv("REDIS_CHANNEL_PREFIX", "connect4:games"),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit. Non-positive values fall
// back to the default.
func GetEnvAsDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	value := GetEnvAsInt(key, defaultValue)
	if value <= 0 {
		log.Printf("Non-positive value for %s: %d, using default: %d", key, value, defaultValue)
		value = defaultValue
	}
	return time.Duration(value) * unit
}
