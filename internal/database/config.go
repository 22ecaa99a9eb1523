package database

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds database configuration
type Config struct {
	Path        string
	BusyTimeout time.Duration
	// LogSQL enables gorm's statement logging.
	LogSQL bool
}

// NewConfig creates a database configuration for the file at path.
func NewConfig(path string) *Config {
	return &Config{
		Path:        path,
		BusyTimeout: 5 * time.Second,
	}
}

// DSN returns the go-sqlite3 connection string. Foreign keys are enabled
// per connection here because the PRAGMA has no effect inside a migration
// transaction.
func (c *Config) DSN() string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_busy_timeout", fmt.Sprintf("%d", c.BusyTimeout.Milliseconds()))
	return c.Path + "?" + params.Encode()
}
