package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cuenta-regresiva/backend/internal/clock"
	"github.com/cuenta-regresiva/backend/internal/config"
	"github.com/cuenta-regresiva/backend/internal/content"
	"github.com/cuenta-regresiva/backend/internal/i18n"
	"github.com/cuenta-regresiva/backend/internal/page"
	"github.com/cuenta-regresiva/backend/internal/storage"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const configFileName = "CuentaRegresiva.config"

var (
	configPath string
	profileID  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cuenta-regresiva",
		Short: "Serve the countdown page",
		Long:  "Serves a live countdown page with a progress timeline, a photo gallery and a city map.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "Path to the XML configuration file")
	rootCmd.PersistentFlags().StringVarP(&profileID, "profile", "p", "", "Page profile to use (overrides the configuration)")

	addServeCmd(rootCmd)
	addCountdownCmd(rootCmd)
	addCitiesCmd(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// defaultConfigPath places the configuration next to the executable.
func defaultConfigPath() string {
	exePath, err := os.Executable()
	if err != nil {
		return configFileName
	}
	return filepath.Join(filepath.Dir(exePath), configFileName)
}

// app is everything the commands share.
type app struct {
	cfg   *config.AppConfig
	doc   *content.Document
	store *storage.LocalStore
	page  *page.Service
}

// loadApp reads the configuration and page content and builds the page service.
func loadApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if profileID != "" {
		cfg.Page.Profile = profileID
	}

	var doc *content.Document
	if cfg.Page.PagesFile != "" {
		doc, err = content.ParseFile(cfg.Page.PagesFile)
	} else {
		doc, err = content.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load page content: %w", err)
	}

	profile, err := doc.Profile(cfg.Page.Profile)
	if err != nil {
		return nil, err
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("failed to load message catalogs: %w", err)
	}
	if !bundle.HasLocale(cfg.Page.Locale) {
		fmt.Printf("Warning: locale %q not available, using %s\n", cfg.Page.Locale, i18n.BaseLocale)
	}

	store, err := storage.NewLocalStore(cfg.Assets.ImageRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	svc := page.NewService(profile, doc.Cities(), store, bundle.Localizer(cfg.Page.Locale), clock.System{}, page.Options{
		MarkerImage:    cfg.Assets.MarkerImage,
		GeoJSONPath:    cfg.Assets.GeoJSONPath,
		MinimumPhotos:  cfg.Assets.MinimumPhotos,
		MapZoom:        cfg.Page.MapZoom,
		RefreshSeconds: cfg.Page.RefreshIntervalSeconds,
	})

	return &app{cfg: cfg, doc: doc, store: store, page: svc}, nil
}
