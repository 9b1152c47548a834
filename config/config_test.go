package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	doc := `{
		"serpapi_key": "test-key-123",
		"default_num_products": 8,
		"sites": ["amazon.in", "flipkart.com"],
		"weights": {"price": 0.5, "rating": 0.3, "reviews": 0.2}
	}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Sites: defaultSites, NumProducts: 5}
	cfg.applyFile(path)

	if cfg.SerpAPIKey != "test-key-123" {
		t.Errorf("SerpAPIKey: got %q", cfg.SerpAPIKey)
	}
	if cfg.NumProducts != 8 {
		t.Errorf("NumProducts: got %d, want 8", cfg.NumProducts)
	}
	if len(cfg.Sites) != 2 {
		t.Errorf("Sites: got %v, want the two overridden sites", cfg.Sites)
	}
	if cfg.ProductWeights["price"] != 0.5 {
		t.Errorf("ProductWeights: got %v", cfg.ProductWeights)
	}
}

func TestApplyFileMissingAndMalformed(t *testing.T) {
	cfg := &Config{Sites: defaultSites, NumProducts: 5}
	cfg.applyFile(filepath.Join(t.TempDir(), "does-not-exist.json"))

	if cfg.NumProducts != 5 || len(cfg.Sites) != len(defaultSites) {
		t.Errorf("missing file must leave defaults untouched, got %+v", cfg)
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.applyFile(path)

	if cfg.NumProducts != 5 || len(cfg.Sites) != len(defaultSites) {
		t.Errorf("malformed file must leave defaults untouched, got %+v", cfg)
	}
}

func TestApplyFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_num_products": 10}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Sites: defaultSites, NumProducts: 5, SerpAPIKey: "from-env"}
	cfg.applyFile(path)

	if cfg.NumProducts != 10 {
		t.Errorf("NumProducts: got %d, want 10", cfg.NumProducts)
	}
	if cfg.SerpAPIKey != "from-env" {
		t.Errorf("absent fields must keep their values, got %q", cfg.SerpAPIKey)
	}
	if len(cfg.Sites) != len(defaultSites) {
		t.Errorf("absent sites must keep defaults, got %v", cfg.Sites)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db.internal",
		PostgresPort:     "5433",
		PostgresUser:     "comparator",
		PostgresPassword: "secret",
		PostgresDB:       "products_db",
		PostgresSSLMode:  "disable",
	}

	want := "host=db.internal port=5433 user=comparator password=secret dbname=products_db sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN:\n got %q\nwant %q", got, want)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("PC_TEST_STR", "value")
	t.Setenv("PC_TEST_INT", "42")
	t.Setenv("PC_TEST_BAD_INT", "forty-two")
	t.Setenv("PC_TEST_BOOL", "false")

	if got := getEnv("PC_TEST_STR", "fallback"); got != "value" {
		t.Errorf("getEnv: got %q", got)
	}
	if got := getEnv("PC_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv fallback: got %q", got)
	}
	if got := getEnvInt("PC_TEST_INT", 1); got != 42 {
		t.Errorf("getEnvInt: got %d", got)
	}
	if got := getEnvInt("PC_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("getEnvInt on garbage: got %d, want fallback 1", got)
	}
	if got := getEnvBool("PC_TEST_BOOL", true); got != false {
		t.Errorf("getEnvBool: got %v, want false", got)
	}
	if got := getEnvBool("PC_TEST_UNSET", true); got != true {
		t.Errorf("getEnvBool fallback: got %v, want true", got)
	}
}
