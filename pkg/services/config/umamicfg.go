package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Settings carries connection and run parameters for one Umami deployment.
// An empty field means "not set here" and falls through to the next
// configuration source.
type Settings struct {
	BaseURL     string
	APIKey      string
	BearerToken string
	UserAgent   string
	WebsiteID   string
	Timezone    string
}

// Merge fills every empty field of s from other and returns the result.
func (s Settings) Merge(other Settings) Settings {
	if s.BaseURL == "" {
		s.BaseURL = other.BaseURL
	}
	if s.APIKey == "" {
		s.APIKey = other.APIKey
	}
	if s.BearerToken == "" {
		s.BearerToken = other.BearerToken
	}
	if s.UserAgent == "" {
		s.UserAgent = other.UserAgent
	}
	if s.WebsiteID == "" {
		s.WebsiteID = other.WebsiteID
	}
	if s.Timezone == "" {
		s.Timezone = other.Timezone
	}
	return s
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetSettings(ctx context.Context, profile string) (Settings, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// NewRegistry loads an INI credentials file with one profile per section.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetSettings(_ context.Context, profile string) (Settings, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return Settings{}, fmt.Errorf("profile %s not found", profile)
	}

	return Settings{
		BaseURL:     section.Key("base_url").String(),
		APIKey:      section.Key("api_key").String(),
		BearerToken: section.Key("bearer_token").String(),
		UserAgent:   section.Key("user_agent").String(),
		WebsiteID:   section.Key("website_id").String(),
		Timezone:    section.Key("timezone").String(),
	}, nil
}

// FromEnv reads the UMAMI_* environment fallbacks.
func FromEnv() Settings {
	return Settings{
		BaseURL:     strings.TrimSpace(os.Getenv("UMAMI_BASE_URL")),
		APIKey:      strings.TrimSpace(os.Getenv("UMAMI_API_KEY")),
		BearerToken: strings.TrimSpace(os.Getenv("UMAMI_BEARER_TOKEN")),
		UserAgent:   strings.TrimSpace(os.Getenv("UMAMI_USER_AGENT")),
		WebsiteID:   strings.TrimSpace(os.Getenv("UMAMI_WEBSITE_ID")),
		Timezone:    strings.TrimSpace(os.Getenv("UMAMI_TIMEZONE")),
	}
}

// DefaultRegistryPath is $HOME/.umamirc.
func DefaultRegistryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home dir: %w", err)
	}
	return filepath.Join(home, ".umamirc"), nil
}
