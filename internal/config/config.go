package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"storyscout/internal/eventbus"
)

// ConfigFileName is the per-directory config file
const ConfigFileName = ".storyscout.toml"

// Config represents the application configuration
type Config struct {
	Version         int               `toml:"version"`
	Refs            map[string]string `toml:"refs"` // ref id -> index file path
	ScanDirs        []string          `toml:"scan_dirs"`
	InitialQuery    string            `toml:"initial_query"`
	EnableShortcuts bool              `toml:"enable_shortcuts"`
	HistorySize     int               `toml:"history_size"`
	UISettings      UISettings        `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowStatusBadges bool `toml:"show_status_badges"`
	ShowFullPaths    bool `toml:"show_full_paths"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	scoutDir := filepath.Join(configDir, "storyscout")
	os.MkdirAll(scoutDir, 0755)

	return &configService{
		filePath: filepath.Join(scoutDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg := DefaultConfig()

		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{Refs: cfg.Refs})
		}

		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Refs: cfg.Refs})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Initialize maps if nil
	if cfg.Refs == nil {
		cfg.Refs = make(map[string]string)
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultHistorySize bounds the last-viewed list when the config does
// not say otherwise
const DefaultHistorySize = 20

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:         1,
		Refs:            make(map[string]string),
		EnableShortcuts: true,
		HistorySize:     DefaultHistorySize,
		UISettings: UISettings{
			ShowStatusBadges: true,
			ShowFullPaths:    false,
		},
	}
}
