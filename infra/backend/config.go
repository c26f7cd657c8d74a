package backend

import "fmt"

// Config defines the connection parameters for the dispatch backend.
type Config struct {
	// BaseURL is the root of the dispatch API.
	BaseURL string `json:"base_url"`
	// AgreementsBaseURL is the root of the agreements API serving the outfit
	// listing. Defaults to BaseURL.
	AgreementsBaseURL string `json:"agreements_base_url"`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	if c.AgreementsBaseURL == "" {
		c.AgreementsBaseURL = c.BaseURL
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	return nil
}
