package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvRootDir       = "RAYS_ROOT_DIR"
	EnvOutputDir     = "RAYS_OUTPUT_DIR"
	EnvSeed          = "RAYS_SEED"
	EnvServerAddress = "SERVER_ADDRESS"
	EnvS3AccessKey   = "S3_ACCESS_KEY"
	EnvS3SecretKey   = "S3_SECRET_KEY"
	EnvS3Endpoint    = "S3_ENDPOINT"
	EnvS3Region      = "S3_REGION"
	EnvS3Bucket      = "S3_BUCKET"
	EnvS3Prefix      = "S3_PREFIX"
)

// Config holds deployment settings read from the environment
type Config struct {
	RootDir       string
	OutputDir     string
	Seed          int64
	ServerAddress string
	S3AccessKey   string
	S3SecretKey   string
	S3Endpoint    string
	S3Region      string
	S3Bucket      string
	S3Prefix      string
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Load reads <RAYS_ROOT_DIR>/.env if present, then builds a Config from the
// environment. Variables already set in the environment win over the file.
// A missing .env is fine; an unreadable or malformed one is an error.
func Load() (*Config, error) {
	rootDir := getEnv(EnvRootDir, ".")
	envPath := filepath.Join(rootDir, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
	}

	return FromEnv(rootDir)
}

// FromEnv builds a Config from the current environment without touching files
func FromEnv(rootDir string) (*Config, error) {
	seed := int64(42)
	if raw := os.Getenv(EnvSeed); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvSeed, raw, err)
		}
		seed = parsed
	}

	return &Config{
		RootDir:       rootDir,
		OutputDir:     getEnv(EnvOutputDir, "output"),
		Seed:          seed,
		ServerAddress: getEnv(EnvServerAddress, ":8080"),
		S3AccessKey:   os.Getenv(EnvS3AccessKey),
		S3SecretKey:   os.Getenv(EnvS3SecretKey),
		S3Endpoint:    os.Getenv(EnvS3Endpoint),
		S3Region:      getEnv(EnvS3Region, "us-east-1"),
		S3Bucket:      os.Getenv(EnvS3Bucket),
		S3Prefix:      getEnv(EnvS3Prefix, "renders"),
	}, nil
}

// PublishEnabled reports whether enough S3 settings are present to upload
func (c *Config) PublishEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
