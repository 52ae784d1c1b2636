package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Port    string
	LogMode string

	RawDataDir       string
	ProcessedDataDir string
	CuePatternsFile  string

	NERBackend    string
	GazetteerFile string
	GeminiKey     string
	GeminiModel   string

	MaxConcurrent  int
	RequestTimeout time.Duration
	ChunkMode      string
	ChunkSize      int
	ChunkOverlap   int
}

// LoadDotEnv copies a .env file from the working directory into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// LogMode is the LOG_MODE setting, readable before a logger exists.
func LogMode() string {
	return getEnv("LOG_MODE", "dev")
}

// Load reads a .env file when one is present and then the environment.
func Load() *Config {
	if err := LoadDotEnv(); err != nil {
		zap.S().Warnf("Failed to read .env file: %v", err)
	}
	zap.S().Info("Loading configuration from environment")

	geminiKey := getEnv("GEMINI_API_KEY", "")
	if geminiKey == "" {
		zap.S().Debug("GEMINI_API_KEY not set")
	} else {
		zap.S().Debug("GEMINI_API_KEY: [REDACTED]")
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		LogMode: LogMode(),

		RawDataDir:       getEnv("RAW_DATA_DIR", "data/raw"),
		ProcessedDataDir: getEnv("PROCESSED_DATA_DIR", "data/processed"),
		CuePatternsFile:  getEnv("CUE_PATTERNS_FILE", ""),

		NERBackend:    getEnv("NER_BACKEND", "prose"),
		GazetteerFile: getEnv("GAZETTEER_FILE", ""),
		GeminiKey:     geminiKey,
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		MaxConcurrent:  getEnvAsInt("MAX_CONCURRENT", 4),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 90*time.Second),
		ChunkMode:      getEnv("CHUNK_MODE", "transcript"),
		ChunkSize:      getEnvAsInt("CHUNK_SIZE", 900),
		ChunkOverlap:   getEnvAsInt("CHUNK_OVERLAP", 100),
	}

	zap.S().Debugf("Configuration loaded: NER=%s, MaxConcurrent=%d, ChunkMode=%s, ChunkSize=%d, ChunkOverlap=%d",
		cfg.NERBackend, cfg.MaxConcurrent, cfg.ChunkMode, cfg.ChunkSize, cfg.ChunkOverlap)
	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		zap.S().Warnf("Failed to parse %s as integer: %v, using default: %d", key, err, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		zap.S().Warnf("Failed to parse %s as duration: %v, using default: %v", key, err, defaultValue)
		return defaultValue
	}
	return value
}
