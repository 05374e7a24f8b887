// File: internal/services/mail/config.go
package mail

import (
	"fmt"
	"time"
)

type Config struct {
	RelayURL   string
	AccessKey  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

func (c *Config) Validate() error {
	if c.RelayURL == "" {
		return fmt.Errorf("MAIL_RELAY_URL is required")
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}
