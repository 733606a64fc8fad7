// Package config provides XML-based configuration for the countdown server.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"CuentaRegresiva"`

	Server   ServerConfig   `xml:"Server"`
	Assets   AssetsConfig   `xml:"Assets"`
	Page     PageConfig     `xml:"Page"`
	Sessions SessionsConfig `xml:"Sessions"`
	Advanced AdvancedConfig `xml:"Advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
}

// AssetsConfig locates the photos, the marker image and the country shapes
type AssetsConfig struct {
	ImageRoot     string `xml:"ImageRoot"`
	MarkerImage   string `xml:"MarkerImage"`
	GeoJSONPath   string `xml:"GeoJSONPath"`
	MinimumPhotos int    `xml:"MinimumPhotos"` // below 1 uses the default of 10
}

// PageConfig selects what the page shows
type PageConfig struct {
	Profile                string `xml:"Profile"`
	PagesFile              string `xml:"PagesFile"` // empty: built-in content
	Locale                 string `xml:"Locale"`
	RefreshIntervalSeconds int    `xml:"RefreshIntervalSeconds"`
	MapZoom                int    `xml:"MapZoom"`
}

// SessionsConfig controls viewer selection sessions
type SessionsConfig struct {
	TimeoutMinutes         int `xml:"TimeoutMinutes"`
	CleanupIntervalMinutes int `xml:"CleanupIntervalMinutes"`
	MaxSessions            int `xml:"MaxSessions"`
}

// AdvancedConfig contains tuning options
type AdvancedConfig struct {
	EnableRequestLogging bool `xml:"EnableRequestLogging"`
	EnableCompression    bool `xml:"EnableCompression"`
	CompressionLevel     int  `xml:"CompressionLevel"`
}

// envOverrides lists the environment variables that take precedence over the file.
type envOverrides struct {
	Port        int    `env:"PORT"`
	BindAddress string `env:"BIND_ADDRESS"`
	ImageRoot   string `env:"IMAGE_ROOT"`
	GeoJSONPath string `env:"GEOJSON_PATH"`
	Profile     string `env:"PAGE_PROFILE"`
	Locale      string `env:"PAGE_LOCALE"`
	PagesFile   string `env:"PAGES_FILE"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8090,
			BindAddress:  "0.0.0.0",
			EnableCORS:   false,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
		},
		Assets: AssetsConfig{
			ImageRoot:     "./images",
			MarkerImage:   "airplane.png",
			GeoJSONPath:   "./data/countries.geojson",
			MinimumPhotos: 10,
		},
		Page: PageConfig{
			Profile:                "v3",
			Locale:                 "es-MX",
			RefreshIntervalSeconds: 1,
			MapZoom:                10,
		},
		Sessions: SessionsConfig{
			TimeoutMinutes:         60,
			CleanupIntervalMinutes: 5,
			MaxSessions:            1000,
		},
		Advanced: AdvancedConfig{
			EnableRequestLogging: true,
			EnableCompression:    true,
			CompressionLevel:     5,
		},
	}
}

// LoadConfig loads configuration from XML file, creating it with defaults when absent.
func LoadConfig(configPath string) (*AppConfig, error) {
	var config *AppConfig

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config = DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		config = DefaultConfig()
		if err := xml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.applyEnvironmentOverrides(nil); err != nil {
		return nil, err
	}

	config.resolvePaths(filepath.Dir(configPath))
	config.applyMinimums()

	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- Cuenta Regresiva Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides lets environment variables override config values.
// A nil environ reads the process environment.
func (c *AppConfig) applyEnvironmentOverrides(environ map[string]string) error {
	var o envOverrides
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.Port != 0 {
		c.Server.Port = o.Port
	}
	if o.BindAddress != "" {
		c.Server.BindAddress = o.BindAddress
	}
	if o.ImageRoot != "" {
		c.Assets.ImageRoot = o.ImageRoot
	}
	if o.GeoJSONPath != "" {
		c.Assets.GeoJSONPath = o.GeoJSONPath
	}
	if o.Profile != "" {
		c.Page.Profile = o.Profile
	}
	if o.Locale != "" {
		c.Page.Locale = o.Locale
	}
	if o.PagesFile != "" {
		c.Page.PagesFile = o.PagesFile
	}
	return nil
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Assets.ImageRoot) {
		c.Assets.ImageRoot = filepath.Join(configDir, c.Assets.ImageRoot)
	}
	if c.Assets.GeoJSONPath != "" && !filepath.IsAbs(c.Assets.GeoJSONPath) {
		c.Assets.GeoJSONPath = filepath.Join(configDir, c.Assets.GeoJSONPath)
	}
	if c.Page.PagesFile != "" && !filepath.IsAbs(c.Page.PagesFile) {
		c.Page.PagesFile = filepath.Join(configDir, c.Page.PagesFile)
	}
}

// applyMinimums replaces unusable values with defaults
func (c *AppConfig) applyMinimums() {
	d := DefaultConfig()
	if c.Page.RefreshIntervalSeconds < 1 {
		c.Page.RefreshIntervalSeconds = d.Page.RefreshIntervalSeconds
	}
	if c.Page.MapZoom < 1 {
		c.Page.MapZoom = d.Page.MapZoom
	}
	if c.Assets.MinimumPhotos < 1 {
		c.Assets.MinimumPhotos = d.Assets.MinimumPhotos
	}
	if c.Sessions.TimeoutMinutes < 1 {
		c.Sessions.TimeoutMinutes = d.Sessions.TimeoutMinutes
	}
	if c.Sessions.CleanupIntervalMinutes < 1 {
		c.Sessions.CleanupIntervalMinutes = d.Sessions.CleanupIntervalMinutes
	}
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// RefreshInterval returns how often the countdown is pushed.
func (c *AppConfig) RefreshInterval() time.Duration {
	return time.Duration(c.Page.RefreshIntervalSeconds) * time.Second
}

// SessionTimeout returns how long an idle selection session is kept.
func (c *AppConfig) SessionTimeout() time.Duration {
	return time.Duration(c.Sessions.TimeoutMinutes) * time.Minute
}

// CleanupInterval returns how often idle sessions are swept.
func (c *AppConfig) CleanupInterval() time.Duration {
	return time.Duration(c.Sessions.CleanupIntervalMinutes) * time.Minute
}

// EnsureDirectories creates the image root if it is missing
func (c *AppConfig) EnsureDirectories() error {
	if err := os.MkdirAll(c.Assets.ImageRoot, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Assets.ImageRoot, err)
	}
	return nil
}
