package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. Infrastructure settings come
// from environment variables (.env supported); search preferences may be
// overridden by an optional JSON document (see FileConfig).
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SerpAPIKey     string
	Sites          []string
	NumProducts    int
	ProductWeights map[string]float64

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	CacheTTLMin    int
	MockMode       bool

	CSVOutputPath string
	ConfigPath    string
	CatalogPath   string
	ChromeBin     string
}

// FileConfig mirrors the JSON configuration document. Every field is
// optional; present fields override the environment defaults.
type FileConfig struct {
	SerpAPIKey  string             `json:"serpapi_key"`
	NumProducts int                `json:"default_num_products"`
	Sites       []string           `json:"sites"`
	Weights     map[string]float64 `json:"weights"`
}

var defaultSites = []string{"amazon.in", "flipkart.com", "reliancedigital.in", "snapdeal.com"}

// Load reads the .env file, environment variables and the optional JSON
// config document, and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "comparator"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "comparator123"),
		PostgresDB:       getEnv("POSTGRES_DB", "products_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SerpAPIKey:  getEnv("SERPAPI_KEY", ""),
		Sites:       defaultSites,
		NumProducts: getEnvInt("DEFAULT_NUM_PRODUCTS", 5),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		CacheTTLMin:    getEnvInt("CACHE_TTL_MINUTES", 60),
		MockMode:       getEnvBool("MOCK_MODE", true),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/raw_results.csv"),
		ConfigPath:    getEnv("CONFIG_PATH", "./config.json"),
		CatalogPath:   getEnv("CATALOG_PATH", "./catalog.yaml"),
		ChromeBin:     getEnv("CHROME_BIN", ""),
	}

	cfg.applyFile(cfg.ConfigPath)
	return cfg
}

// applyFile overlays the JSON config document onto the defaults. A missing
// file is fine; a malformed one is reported and skipped.
func (c *Config) applyFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		log.Printf("[config] Ignoring malformed %s: %v", path, err)
		return
	}

	if fc.SerpAPIKey != "" {
		c.SerpAPIKey = fc.SerpAPIKey
	}
	if fc.NumProducts > 0 {
		c.NumProducts = fc.NumProducts
	}
	if len(fc.Sites) > 0 {
		c.Sites = fc.Sites
	}
	if len(fc.Weights) > 0 {
		c.ProductWeights = fc.Weights
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
