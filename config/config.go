package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"travelbook/logger"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port    string
	LogMode string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	StoreTimeout  time.Duration

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret string

	DefaultPageSize int
	MaxPageSize     int
	WriteRetries    int
	StatsScanLimit  int

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads .env when present and then the process environment. log may be
// nil; it only records which variables fell back to defaults.
func Load(log *logger.Logger) *Config {
	_ = godotenv.Load()

	port := GetEnv("PORT", ":8080", log)
	if port != "" && port[0] != ':' {
		port = ":" + port
	}

	return &Config{
		Port:    port,
		LogMode: GetEnv("LOG_MODE", "development", log),

		StoreDriver:   strings.ToLower(GetEnv("STORE_DRIVER", DriverMongo, log)),
		MongoURI:      GetEnv("MONGO_URI", "mongodb://localhost:27017", log),
		MongoDatabase: GetEnv("MONGO_DATABASE", "travelbook", log),
		StoreTimeout:  time.Duration(GetEnvAsInt("STORE_TIMEOUT_SECONDS", 5, log)) * time.Second,

		RedisAddr:     GetEnv("REDIS_ADDR", "", log),
		RedisPassword: GetEnv("REDIS_PASSWORD", "", log),
		CacheTTL:      time.Duration(GetEnvAsInt("CACHE_TTL_SECONDS", 300, log)) * time.Second,

		JWTSecret: GetEnv("JWT_SECRET", "", log),

		DefaultPageSize: GetEnvAsInt("DEFAULT_PAGE_SIZE", 20, log),
		MaxPageSize:     GetEnvAsInt("MAX_PAGE_SIZE", 100, log),
		WriteRetries:    GetEnvAsInt("WRITE_RETRIES", 3, log),
		StatsScanLimit:  GetEnvAsInt("STATS_SCAN_LIMIT", 5000, log),

		RateLimitPerSecond: GetEnvAsFloat("RATE_LIMIT_PER_SECOND", 10, log),
		RateLimitBurst:     GetEnvAsInt("RATE_LIMIT_BURST", 20, log),
	}
}

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", key)
	}
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable could not be parsed as int, using default", "providedVal", valStr, "defaultVal", defaultVal, "error", err)
		}
		return defaultVal
	}
	return i
}

func GetEnvAsFloat(key string, defaultVal float64, log *logger.Logger) float64 {
	if log != nil {
		log = log.With("env_var", key)
	}
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	f, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable could not be parsed as float, using default", "providedVal", valStr, "defaultVal", defaultVal, "error", err)
		}
		return defaultVal
	}
	return f
}
