package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/optihire/internal/api"
	"github.com/jonathan/optihire/internal/auth"
	"github.com/jonathan/optihire/internal/config"
	"github.com/jonathan/optihire/internal/draft"
	"github.com/jonathan/optihire/internal/observability"
	"github.com/spf13/cobra"
)

// appEnv bundles everything a command needs: merged configuration, the
// local store, the session manager, and the backend client.
type appEnv struct {
	cfg     config.Config
	store   *draft.FileStore
	auth    *auth.Manager
	api     *api.Client
	printer *observability.Printer
}

// loadAppConfig merges, in priority order: CLI flags, the config file,
// environment variables, then package defaults.
func loadAppConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config

	if rootConfigPath != "" {
		loadedCfg, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if rootVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", rootConfigPath)
		}
	}

	// Environment fills what the file left empty.
	cfg = cfg.MergeWithDefaults(config.Config{
		BaseURL:     os.Getenv("OPTIHIRE_API_URL"),
		AuthURL:     os.Getenv("OPTIHIRE_AUTH_URL"),
		AuthAnonKey: os.Getenv("OPTIHIRE_ANON_KEY"),
		DataDir:     os.Getenv("OPTIHIRE_DATA_DIR"),
	})
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rootVerbose
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// newAppEnv builds the full environment. Commands that talk to the
// backend go through here; config-only commands use loadAppConfig.
func newAppEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend URL is required (set base_url in config or OPTIHIRE_API_URL)")
	}
	if cfg.AuthURL == "" {
		return nil, fmt.Errorf("auth URL is required (set auth_url in config or OPTIHIRE_AUTH_URL)")
	}

	store, err := draft.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	authClient, err := auth.NewClient(cfg.AuthURL, cfg.AuthAnonKey, auth.Options{Timeout: cfg.Timeout()})
	if err != nil {
		return nil, err
	}
	manager := auth.NewManager(authClient, store)

	apiClient, err := api.NewClient(cfg.BaseURL, manager, &api.Options{Timeout: cfg.Timeout()})
	if err != nil {
		return nil, err
	}

	return &appEnv{
		cfg:     cfg,
		store:   store,
		auth:    manager,
		api:     apiClient,
		printer: observability.NewPrinter(os.Stdout),
	}, nil
}

// friendlyError rewrites backend and auth errors into user-facing text.
func friendlyError(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.UserMessage())
	}
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		return errors.New(authErr.UserMessage())
	}
	if errors.Is(err, auth.ErrNoSession) {
		return errors.New("you are not signed in; run 'optihire login' first")
	}
	var authTransport *auth.TransportError
	if api.IsTransport(err) || errors.As(err, &authTransport) {
		return errors.New("could not reach the server; check your connection and try again")
	}
	return err
}
