package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// GitHubConfig holds hosting API client configuration.
type GitHubConfig struct {
	// Token is sent as a bearer token; empty means anonymous access.
	Token string
	// Owner is the repository owner (user or organization).
	Owner string
	// Repo is the repository name.
	Repo string
	// BaseURL is the REST API root, e.g. https://api.github.com/.
	BaseURL string
	// PerPage is the page size for list calls (max 100).
	PerPage int
	// MaxPages caps how many pages each list call follows.
	MaxPages int
	// ReviewConcurrency bounds parallel review fetches.
	ReviewConcurrency int
	// Timeout bounds a single HTTP request.
	Timeout time.Duration
}

// LoadGitHubConfigFromEnv loads hosting API configuration from environment variables.
func LoadGitHubConfigFromEnv() GitHubConfig {
	return GitHubConfig{
		Token:             GetEnv("GITHUB_TOKEN", ""),
		Owner:             GetEnv("GITHUB_OWNER", "vulnerable-apps"),
		Repo:              GetEnv("GITHUB_REPO", "juice-shop"),
		BaseURL:           GetEnv("GITHUB_API_URL", "https://api.github.com/"),
		PerPage:           GetEnvInt("GITHUB_PER_PAGE", 100),
		MaxPages:          GetEnvInt("GITHUB_MAX_PAGES", 10),
		ReviewConcurrency: GetEnvInt("GITHUB_REVIEW_CONCURRENCY", 8),
		Timeout:           GetEnvDuration("GITHUB_TIMEOUT", 30*time.Second),
	}
}

// Validate validates hosting API configuration.
func (c GitHubConfig) Validate() error {
	if c.Owner == "" {
		return errors.New("GITHUB_OWNER is required")
	}
	if c.Repo == "" {
		return errors.New("GITHUB_REPO is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid GITHUB_API_URL: %q", c.BaseURL)
	}
	if c.PerPage <= 0 || c.PerPage > 100 {
		return fmt.Errorf("GITHUB_PER_PAGE must be between 1 and 100, got %d", c.PerPage)
	}
	if c.MaxPages <= 0 {
		return errors.New("GITHUB_MAX_PAGES must be greater than 0")
	}
	if c.ReviewConcurrency <= 0 {
		return errors.New("GITHUB_REVIEW_CONCURRENCY must be greater than 0")
	}
	if c.Timeout <= 0 {
		return errors.New("GITHUB_TIMEOUT must be greater than 0")
	}
	return nil
}
