package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".umamirc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRegistry_GetSettings(t *testing.T) {
	path := writeCredentials(t, `[default]
base_url = https://api.umami.is/v1
api_key = key-123
website_id = site-1
timezone = Asia/Shanghai

[selfhosted]
base_url = https://umami.internal/api
bearer_token = tok-456
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("reads profile fields", func(t *testing.T) {
		settings, err := registry.GetSettings(ctx, "default")
		require.NoError(t, err)

		assert.Equal(t, "https://api.umami.is/v1", settings.BaseURL)
		assert.Equal(t, "key-123", settings.APIKey)
		assert.Equal(t, "site-1", settings.WebsiteID)
		assert.Equal(t, "Asia/Shanghai", settings.Timezone)
		assert.Empty(t, settings.BearerToken)
	})

	t.Run("second profile", func(t *testing.T) {
		settings, err := registry.GetSettings(ctx, "selfhosted")
		require.NoError(t, err)
		assert.Equal(t, "tok-456", settings.BearerToken)
		assert.Empty(t, settings.APIKey)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := registry.GetSettings(ctx, "missing")
		assert.Error(t, err)
	})

	t.Run("lists profiles with keys", func(t *testing.T) {
		profiles, err := registry.GetProfiles(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"default", "selfhosted"}, profiles)
	})
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSettings_Merge(t *testing.T) {
	flags := Settings{WebsiteID: "from-flag", Timezone: "UTC"}
	profile := Settings{WebsiteID: "from-profile", APIKey: "profile-key", BaseURL: "https://profile"}
	env := Settings{APIKey: "env-key", BearerToken: "env-token", UserAgent: "env-agent"}

	merged := flags.Merge(profile).Merge(env)

	assert.Equal(t, "from-flag", merged.WebsiteID, "flag wins over profile")
	assert.Equal(t, "UTC", merged.Timezone)
	assert.Equal(t, "profile-key", merged.APIKey, "profile wins over env")
	assert.Equal(t, "https://profile", merged.BaseURL)
	assert.Equal(t, "env-token", merged.BearerToken, "env fills remaining gaps")
	assert.Equal(t, "env-agent", merged.UserAgent)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("UMAMI_BASE_URL", " https://env.example/v1 ")
	t.Setenv("UMAMI_API_KEY", "env-key")
	t.Setenv("UMAMI_BEARER_TOKEN", "")
	t.Setenv("UMAMI_WEBSITE_ID", "env-site")
	t.Setenv("UMAMI_TIMEZONE", "Europe/Berlin")
	t.Setenv("UMAMI_USER_AGENT", "custom-agent")

	settings := FromEnv()

	assert.Equal(t, "https://env.example/v1", settings.BaseURL)
	assert.Equal(t, "env-key", settings.APIKey)
	assert.Empty(t, settings.BearerToken)
	assert.Equal(t, "env-site", settings.WebsiteID)
	assert.Equal(t, "Europe/Berlin", settings.Timezone)
	assert.Equal(t, "custom-agent", settings.UserAgent)
}
