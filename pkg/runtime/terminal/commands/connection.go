package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/umami-atlas/pkg/services/config"
	"github.com/de-tools/umami-atlas/pkg/store/umami"
)

const defaultProfile = "default"

// connectionOpts holds the flags shared by every command that talks to the
// Umami API. Explicit flags win over the credentials profile, which wins
// over UMAMI_* environment variables.
type connectionOpts struct {
	credentialsPath string
	profile         string
	baseURL         string
	websiteID       string
	timezone        string
	timeout         time.Duration
}

func addConnectionFlags(cmd *cobra.Command, opts *connectionOpts) {
	cmd.Flags().StringVar(&opts.credentialsPath, "credentials", "", "Path to an INI credentials file (default is $HOME/.umamirc when present)")
	cmd.Flags().StringVar(&opts.profile, "profile", defaultProfile, "Profile name inside the credentials file")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Umami API base URL. Example cloud: "+umami.DefaultBaseURL)
	cmd.Flags().StringVar(&opts.websiteID, "website-id", "", "Umami websiteId. Defaults to UMAMI_WEBSITE_ID env.")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "Timezone for day boundary. Defaults to UMAMI_TIMEZONE or UTC.")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP timeout. Default 30s.")
}

func (o *connectionOpts) resolve(ctx context.Context) (config.Settings, error) {
	fromProfile, err := o.profileSettings(ctx)
	if err != nil {
		return config.Settings{}, err
	}

	settings := config.Settings{
		BaseURL:   strings.TrimSpace(o.baseURL),
		WebsiteID: strings.TrimSpace(o.websiteID),
		Timezone:  strings.TrimSpace(o.timezone),
	}
	settings = settings.Merge(fromProfile).Merge(config.FromEnv())

	if settings.Timezone == "" {
		settings.Timezone = "UTC"
	}
	if settings.WebsiteID == "" {
		return config.Settings{}, errors.New("missing website id. Set --website-id or UMAMI_WEBSITE_ID")
	}
	return settings, nil
}

// profileSettings loads the selected profile. An explicit --credentials path
// must load; the default $HOME/.umamirc is used only when it exists.
func (o *connectionOpts) profileSettings(ctx context.Context) (config.Settings, error) {
	path := strings.TrimSpace(o.credentialsPath)
	explicit := path != ""
	if !explicit {
		defaultPath, err := config.DefaultRegistryPath()
		if err != nil {
			return config.Settings{}, nil
		}
		if _, err := os.Stat(defaultPath); err != nil {
			return config.Settings{}, nil
		}
		path = defaultPath
	}

	registry, err := config.NewRegistry(path)
	if err != nil {
		if explicit {
			return config.Settings{}, fmt.Errorf("failed to load credentials file %s: %w", path, err)
		}
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("skipping unreadable credentials file")
		return config.Settings{}, nil
	}

	settings, err := registry.GetSettings(ctx, o.profile)
	if err != nil {
		if explicit || o.profile != defaultProfile {
			return config.Settings{}, err
		}
		return config.Settings{}, nil
	}
	return settings, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func (o *connectionOpts) newClient(settings config.Settings) (*umami.Client, error) {
	return umami.NewClient(umami.Config{
		BaseURL:     settings.BaseURL,
		APIKey:      settings.APIKey,
		BearerToken: settings.BearerToken,
		UserAgent:   settings.UserAgent,
		Timeout:     o.timeout,
	})
}
