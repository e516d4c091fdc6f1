package config

import (
	"errors"
	"fmt"
	"time"
)

// DefaultLLMBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// LLMConfig holds language model client configuration.
type LLMConfig struct {
	// APIKey authenticates against the completion endpoint.
	// It is not required at startup: /audit works without a model.
	APIKey string
	// BaseURL is an OpenAI-compatible API root.
	BaseURL string
	// Model is the model name passed with every completion request.
	Model string
	// Temperature is the sampling temperature.
	Temperature float64
	// Timeout bounds a single completion call.
	Timeout time.Duration
}

// LoadLLMConfigFromEnv loads language model configuration from environment variables.
func LoadLLMConfigFromEnv() LLMConfig {
	return LLMConfig{
		APIKey:      GetEnv("LLM_API_KEY", ""),
		BaseURL:     GetEnv("LLM_BASE_URL", DefaultLLMBaseURL),
		Model:       GetEnv("LLM_MODEL", "gemini-1.5-flash"),
		Temperature: GetEnvFloat("LLM_TEMPERATURE", 0),
		Timeout:     GetEnvDuration("LLM_TIMEOUT", 60*time.Second),
	}
}

// Validate validates language model configuration.
func (c LLMConfig) Validate() error {
	if c.Model == "" {
		return errors.New("LLM_MODEL is required")
	}
	if c.BaseURL == "" {
		return errors.New("LLM_BASE_URL is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %v", c.Temperature)
	}
	if c.Timeout <= 0 {
		return errors.New("LLM_TIMEOUT must be greater than 0")
	}
	return nil
}
