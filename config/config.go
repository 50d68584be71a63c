package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the full run configuration. Values come from an optional
// YAML file (SAMPLER_CONFIG), overridden by environment variables.
type Config struct {
	ProductsPath string
	ReviewsPath  string
	OutputDir    string

	SampleProducts int
	SampleReviews  int
	Seed           int64

	// NormalizeFields lists the text fields run through markup stripping;
	// empty selects the built-in default set.
	NormalizeFields []string

	// SourceTimeoutSecs bounds remote source I/O; zero disables the bound.
	SourceTimeoutSecs int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	Debug bool
}

// fileConfig mirrors Config for the YAML file surface.
type fileConfig struct {
	ProductsPath      string   `yaml:"products_path"`
	ReviewsPath       string   `yaml:"reviews_path"`
	OutputDir         string   `yaml:"output_dir"`
	SampleProducts    int      `yaml:"sample_products"`
	SampleReviews     int      `yaml:"sample_reviews"`
	Seed              *int64   `yaml:"seed"`
	NormalizeFields   []string `yaml:"normalize_fields"`
	SourceTimeoutSecs int      `yaml:"source_timeout_secs"`
	Minio             struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"minio"`
}

// Load reads the .env file, the optional YAML config, and the environment,
// returning a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		OutputDir:      "./output",
		SampleProducts: 10000,
		SampleReviews:  50000,
		Seed:           42,
	}

	if path := os.Getenv("SAMPLER_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}

	if fc.ProductsPath != "" {
		c.ProductsPath = fc.ProductsPath
	}
	if fc.ReviewsPath != "" {
		c.ReviewsPath = fc.ReviewsPath
	}
	if fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}
	if fc.SampleProducts > 0 {
		c.SampleProducts = fc.SampleProducts
	}
	if fc.SampleReviews > 0 {
		c.SampleReviews = fc.SampleReviews
	}
	if fc.Seed != nil {
		c.Seed = *fc.Seed
	}
	if len(fc.NormalizeFields) > 0 {
		c.NormalizeFields = fc.NormalizeFields
	}
	if fc.SourceTimeoutSecs > 0 {
		c.SourceTimeoutSecs = fc.SourceTimeoutSecs
	}
	if fc.Minio.Endpoint != "" {
		c.MinioEndpoint = fc.Minio.Endpoint
		c.MinioAccessKey = fc.Minio.AccessKey
		c.MinioSecretKey = fc.Minio.SecretKey
		c.MinioUseSSL = fc.Minio.UseSSL
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ProductsPath = getEnv("PRODUCTS_PATH", c.ProductsPath)
	c.ReviewsPath = getEnv("REVIEWS_PATH", c.ReviewsPath)
	c.OutputDir = getEnv("OUTPUT_DIR", c.OutputDir)

	c.SampleProducts = getEnvInt("SAMPLE_PRODUCTS", c.SampleProducts)
	c.SampleReviews = getEnvInt("SAMPLE_REVIEWS", c.SampleReviews)
	c.Seed = getEnvInt64("SEED", c.Seed)
	c.SourceTimeoutSecs = getEnvInt("SOURCE_TIMEOUT_SECS", c.SourceTimeoutSecs)

	if fields := os.Getenv("NORMALIZE_FIELDS"); fields != "" {
		c.NormalizeFields = splitFields(fields)
	}

	c.MinioEndpoint = getEnv("MINIO_ENDPOINT", c.MinioEndpoint)
	c.MinioAccessKey = getEnv("MINIO_ACCESS_KEY", c.MinioAccessKey)
	c.MinioSecretKey = getEnv("MINIO_SECRET_KEY", c.MinioSecretKey)
	c.MinioUseSSL = getEnvBool("MINIO_USE_SSL", c.MinioUseSSL)
	c.Debug = getEnvBool("DEBUG", c.Debug)
}

func (c *Config) validate() error {
	if c.ProductsPath == "" {
		return errors.New("config: PRODUCTS_PATH is required")
	}
	if c.ReviewsPath == "" {
		return errors.New("config: REVIEWS_PATH is required")
	}
	if c.SampleProducts < 0 || c.SampleReviews < 0 {
		return errors.New("config: sample capacities must be non-negative")
	}
	return nil
}

func splitFields(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
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

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.ParseInt(val, 10, 64)
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
