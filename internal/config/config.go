package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds everything the client needs to reach the file store and
// the identity platform.
type Config struct {
	TenantID string `mapstructure:"tenant_id"`
	ClientID string `mapstructure:"client_id"`

	GraphBaseURL string `mapstructure:"graph_base_url"`
	SiteHostPath string `mapstructure:"site_host_path"`

	// Drive-root-relative paths on the resolved drive.
	WorkingPath   string `mapstructure:"working_path"`
	ArchivePath   string `mapstructure:"archive_path"`
	TemplatesPath string `mapstructure:"templates_path"`

	ScratchDir string `mapstructure:"scratch_dir"`
}

// Validate checks the fields without which no remote operation can run.
func (c Config) Validate() error {
	var missing []string

	if c.TenantID == "" {
		missing = append(missing, "tenant_id")
	}
	if c.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if c.SiteHostPath == "" {
		missing = append(missing, "site_host_path")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

type ConfigManager interface {
	IsConfigured(ctx context.Context) bool
	GetConfig(ctx context.Context) (Config, error)
	SaveConfig(ctx context.Context, config Config) error
	ResetConfig(ctx context.Context) error
}

type configManager struct {
	viper *viper.Viper
}

func NewConfigManager() (ConfigManager, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("DOSSIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"tenant_id":      "DOSSIER_TENANT_ID",
		"client_id":      "DOSSIER_CLIENT_ID",
		"graph_base_url": "DOSSIER_GRAPH_BASE_URL",
		"site_host_path": "DOSSIER_SITE_HOST_PATH",
		"working_path":   "DOSSIER_WORKING_PATH",
		"archive_path":   "DOSSIER_ARCHIVE_PATH",
		"templates_path": "DOSSIER_TEMPLATES_PATH",
		"scratch_dir":    "DOSSIER_SCRATCH_DIR",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.dossier")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Debug().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	return &configManager{viper: v}, nil
}

func (m *configManager) IsConfigured(ctx context.Context) bool {
	config, err := m.GetConfig(ctx)
	if err != nil {
		return false
	}
	return config.Validate() == nil
}

func (m *configManager) GetConfig(ctx context.Context) (Config, error) {
	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.ScratchDir == "" {
		config.ScratchDir = filepath.Join(configDir(), "scratch")
	}

	return config, nil
}

func (m *configManager) SaveConfig(ctx context.Context, config Config) error {
	m.viper.Set("tenant_id", config.TenantID)
	m.viper.Set("client_id", config.ClientID)
	m.viper.Set("graph_base_url", config.GraphBaseURL)
	m.viper.Set("site_host_path", config.SiteHostPath)
	m.viper.Set("working_path", config.WorkingPath)
	m.viper.Set("archive_path", config.ArchivePath)
	m.viper.Set("templates_path", config.TemplatesPath)
	m.viper.Set("scratch_dir", config.ScratchDir)

	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(dir, "config.json")
	if err := m.viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (m *configManager) ResetConfig(ctx context.Context) error {
	configPath := filepath.Join(configDir(), "config.json")
	if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	for key := range m.viper.AllSettings() {
		m.viper.Set(key, nil)
	}
	setDefaults(m.viper)

	return nil
}

// TokenCachePath is where the credential provider persists tokens.
func TokenCachePath() string {
	return filepath.Join(configDir(), "token.json")
}

func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".dossier"
	}
	return filepath.Join(homeDir, ".dossier")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("graph_base_url", "https://graph.microsoft.com/v1.0")
	v.SetDefault("working_path", "1-Essais/1-Temporaire")
	v.SetDefault("archive_path", "1-Essais/2-Archives")
	v.SetDefault("templates_path", "1-Essais/0-Documents/PVEA-Standards")
}
