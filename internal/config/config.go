// Package config provides environment configuration for the resume builder.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultAPIBaseURL   = "http://localhost:5000/api/v1"
	DefaultAPITimeoutMS = 10000
)

// Config holds the client-side configuration: where the resume API lives,
// how long to wait for it, where the fallback store persists, and the
// collection limits of an editing session.
type Config struct {
	APIBaseURL string
	APITimeout time.Duration
	// ProfileDir roots the file-backed fallback store.
	ProfileDir string

	MaxWorkExperiences  int
	MaxEducationEntries int
	MaxSkills           int
	MaxSummaryLength    int
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	timeoutMS, err := intEnv("RESUME_API_TIMEOUT_MS", DefaultAPITimeoutMS)
	if err != nil {
		return nil, err
	}

	maxExperiences, err := intEnv("RESUME_MAX_WORK_EXPERIENCES", 10)
	if err != nil {
		return nil, err
	}
	maxEducation, err := intEnv("RESUME_MAX_EDUCATION_ENTRIES", 5)
	if err != nil {
		return nil, err
	}
	maxSkills, err := intEnv("RESUME_MAX_SKILLS", 50)
	if err != nil {
		return nil, err
	}
	maxSummary, err := intEnv("RESUME_MAX_SUMMARY_LENGTH", 500)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIBaseURL:          stringEnv("RESUME_API_BASE_URL", DefaultAPIBaseURL),
		APITimeout:          time.Duration(timeoutMS) * time.Millisecond,
		ProfileDir:          stringEnv("RESUME_PROFILE_DIR", defaultProfileDir()),
		MaxWorkExperiences:  maxExperiences,
		MaxEducationEntries: maxEducation,
		MaxSkills:           maxSkills,
		MaxSummaryLength:    maxSummary,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("config error: API base URL cannot be empty")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("config error: API timeout must be positive, got %s", c.APITimeout)
	}
	for name, v := range map[string]int{
		"max work experiences":  c.MaxWorkExperiences,
		"max education entries": c.MaxEducationEntries,
		"max skills":            c.MaxSkills,
		"max summary length":    c.MaxSummaryLength,
	} {
		if v < 1 {
			return fmt.Errorf("config error: %s must be at least 1, got %d", name, v)
		}
	}
	return nil
}

func defaultProfileDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".resume-builder"
	}
	return home + "/.resume-builder"
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
