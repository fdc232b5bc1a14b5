package config

import (
	"fmt"

	urlutil "github.com/law-makers/grabfood/internal/utils/url"
)

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := urlutil.ValidateURL(c.TargetURL); err != nil {
		return fmt.Errorf("target url: %w", err)
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be > 0")
	}
	if c.MaxScrolls <= 0 || c.MaxScrolls > DefaultMaxScrollsCap {
		return fmt.Errorf("scroll count must be between 1 and %d", DefaultMaxScrollsCap)
	}
	if c.ScrollWait < 0 || c.HarvestWait < 0 {
		return fmt.Errorf("scroll waits must not be negative")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file is required")
	}
	if c.DeliveryRate < 0 {
		return fmt.Errorf("delivery rate must not be negative")
	}
	return nil
}
