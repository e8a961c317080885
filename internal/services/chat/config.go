// File: internal/services/chat/config.go
package chat

import (
	"fmt"
	"time"
)

type Config struct {
	// Pagination of a chat's messages
	DefaultPageLimit int
	MaxPageLimit     int

	// Upper bound for one use case including its transaction. Zero disables it.
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.MaxPageLimit < 1 {
		return fmt.Errorf("max_page_limit must be positive")
	}
	if c.DefaultPageLimit < 1 || c.DefaultPageLimit > c.MaxPageLimit {
		return fmt.Errorf("default_page_limit must be between 1 and max_page_limit (%d)", c.MaxPageLimit)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		DefaultPageLimit: 20,
		MaxPageLimit:     100,
		Timeout:          10 * time.Second,
	}
}
