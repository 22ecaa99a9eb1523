package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string

	// BaseDir is the directory holding the executable. Relative paths
	// below are resolved against it.
	BaseDir string

	// Storage
	DBPath     string
	ExportDir  string
	ReceiptDir string

	// Presentation
	StoreName string
	Version   string
}

// Version is overridden at build time with -ldflags.
var Version = "1.0.0"

var appConfig *Config

// Load loads configuration from an optional .env file next to the
// executable and from environment variables.
func Load() (*Config, error) {
	baseDir := executableDir()

	// A missing .env is expected; the defaults cover a plain install.
	if err := godotenv.Load(filepath.Join(baseDir, ".env")); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		BaseDir:  baseDir,

		DBPath:     resolve(baseDir, getEnv("DB_PATH", "supermarket.db")),
		ExportDir:  resolve(baseDir, getEnv("EXPORT_DIR", "exports")),
		ReceiptDir: resolve(baseDir, getEnv("RECEIPT_DIR", "receipts")),

		StoreName: getEnv("STORE_NAME", "Supermarket"),
		Version:   Version,
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// executableDir returns the directory of the running binary, falling back
// to the working directory when it cannot be determined.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
