package configmanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/devantler-tech/dbcli/pkg/client/containerruntime"
	"github.com/devantler-tech/dbcli/pkg/utils/logger"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by dbcli.
const EnvPrefix = "DBCLI"

// Setting keys. They double as flag names.
const (
	KeyRuntime  = "runtime"
	KeyConfig   = "config"
	KeyLogLevel = "log-level"
	KeyEngines  = "engines"
)

// DefaultSettingsRelativePath is the settings file location below the user config directory.
const DefaultSettingsRelativePath = "dbcli/settings.yaml"

// ConfigManager reads Settings through viper.
type ConfigManager struct {
	Viper        *viper.Viper
	settingsFile string
}

// NewConfigManager creates a manager reading settingsFile. An empty path selects
// DefaultSettingsPath. A missing settings file is not an error.
func NewConfigManager(settingsFile string) *ConfigManager {
	if settingsFile == "" {
		settingsFile = DefaultSettingsPath()
	}

	return &ConfigManager{
		Viper:        InitializeViper(),
		settingsFile: settingsFile,
	}
}

// SettingsEnvVar names the environment variable that relocates the settings file.
const SettingsEnvVar = EnvPrefix + "_SETTINGS"

// DefaultSettingsPath returns $DBCLI_SETTINGS when set, otherwise the settings
// file path under $XDG_CONFIG_HOME.
func DefaultSettingsPath() string {
	if path := os.Getenv(SettingsEnvVar); path != "" {
		return path
	}

	return filepath.Join(xdg.ConfigHome, DefaultSettingsRelativePath)
}

// InitializeViper returns a viper instance with dbcli's defaults and environment binding.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetDefault(KeyRuntime, containerruntime.DefaultBinary)
	viperInstance.SetDefault(KeyLogLevel, logger.DefaultLevel)
	viperInstance.SetDefault(KeyConfig, "")
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	return viperInstance
}

// SettingsFile returns the settings file path the manager reads.
func (m *ConfigManager) SettingsFile() string {
	return m.settingsFile
}

// BindFlags binds the flags named after setting keys that exist in flags.
func (m *ConfigManager) BindFlags(flags *pflag.FlagSet) error {
	for _, key := range []string{KeyRuntime, KeyConfig, KeyLogLevel} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}

		err := m.Viper.BindPFlag(key, flag)
		if err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", key, err)
		}
	}

	return nil
}

// Load reads the settings file, if any, and decodes the merged settings.
func (m *ConfigManager) Load() (*Settings, error) {
	err := m.readSettingsFile()
	if err != nil {
		return nil, err
	}

	settings := &Settings{}

	err = m.Viper.Unmarshal(settings, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			trimSliceHook(),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return settings, nil
}

// --- internals ---

func (m *ConfigManager) readSettingsFile() error {
	_, err := os.Stat(m.settingsFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat settings file: %w", err)
	}

	m.Viper.SetConfigFile(m.settingsFile)
	m.Viper.SetConfigType("yaml")

	err = m.Viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("failed to read settings file %s: %w", m.settingsFile, err)
	}

	return nil
}

// trimSliceHook trims whitespace around elements split from comma-separated strings.
func trimSliceHook() mapstructure.DecodeHookFuncType {
	return func(_, to reflect.Type, data any) (any, error) {
		if to.Kind() != reflect.Slice {
			return data, nil
		}

		items, ok := data.([]string)
		if !ok {
			return data, nil
		}

		trimmed := make([]string, 0, len(items))
		for _, item := range items {
			trimmed = append(trimmed, strings.TrimSpace(item))
		}

		return trimmed, nil
	}
}
