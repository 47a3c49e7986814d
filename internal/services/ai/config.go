// File: internal/services/ai/config.go
package ai

import "time"

// SystemPrompt pins the assistant to the insurance domain. It is sent with
// every completion request.
const SystemPrompt = "You are PolicyLens and you answer only questions related to insurance and its policies."

type Config struct {
	APIKey      string
	BaseURL     string // empty means the provider default
	Model       string
	Temperature float32
	TopP        float32
	Timeout     time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		TopP:        0.9,
		Timeout:     60 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return NewConfigError("API key is required")
	}
	if c.Model == "" {
		return NewConfigError("model name is required")
	}
	return nil
}
