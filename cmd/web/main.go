package main

import (
	"fmt"
	"net"
	"os"
	"os/user"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/umami-atlas/pkg/models/domain"
	"github.com/de-tools/umami-atlas/pkg/server"
	"github.com/de-tools/umami-atlas/pkg/services/config"
	"github.com/de-tools/umami-atlas/pkg/services/summary"
	"github.com/de-tools/umami-atlas/pkg/store/umami"
)

var (
	cfgPath     string
	funnelsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Umami Atlas",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.umamirc", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the .umamirc file (default is $HOME/.umamirc)")
	rootCmd.Flags().StringVar(&funnelsPath, "funnels-config", "",
		"Path to a YAML funnels config used as the default funnel set")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings := config.FromEnv()
	if _, err := os.Stat(cfgPath); err == nil {
		registry, err := config.NewRegistry(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}

		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

		profileName := os.Getenv("UMAMI_PROFILE")
		if profileName == "" {
			profileName = "default"
		}
		fromProfile, err := registry.GetSettings(ctx, profileName)
		if err != nil {
			profiles, _ := registry.GetProfiles(ctx)
			logger.Warn().Msgf("Profile `%s` not found, available: %v", profileName, profiles)
		} else {
			settings = fromProfile.Merge(settings)
		}
	}

	if settings.Timezone == "" {
		settings.Timezone = "UTC"
	}

	client, err := umami.NewClient(umami.Config{
		BaseURL:     settings.BaseURL,
		APIKey:      settings.APIKey,
		BearerToken: settings.BearerToken,
		UserAgent:   settings.UserAgent,
	})
	if err != nil {
		return err
	}

	funnels, err := defaultFunnels()
	if err != nil {
		return err
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Summarizer:      summary.NewController(client),
			DefaultTimezone: settings.Timezone,
			DefaultFunnels:  funnels,
		},
	})
	return webAPI.Start()
}

// defaultFunnels resolves the funnel set served when a request does not
// name one: the YAML config when given, then UMAMI_FUNNEL_NAMES, then the
// built-in defaults.
func defaultFunnels() ([]domain.FunnelRequest, error) {
	if funnelsPath != "" {
		return config.LoadFunnelRequests(funnelsPath)
	}

	if names := os.Getenv("UMAMI_FUNNEL_NAMES"); names != "" {
		reportMap, err := config.ParseReportMap(os.Getenv("UMAMI_FUNNEL_REPORT_MAP"))
		if err != nil {
			return nil, err
		}
		return config.BuildFunnelRequests(config.ParseFunnelNames(names), reportMap), nil
	}

	return config.DefaultFunnelRequests(), nil
}
