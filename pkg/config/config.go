/*
Package config manages the TOML (or YAML) config for glossygloss.

A missing file is created with builtin defaults, a broken TOML file is
salvaged section by section, and anything that cannot be read falls back to
DefaultConfig.

	[dict]
	backend = "hash"
	buckets = 25
	max_words = 0
	lowercase = false
	filter = false

	[server]
	max_top = 100

	[cli]
	default_top = 10
*/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blasterbug/glossygloss/internal/utils"
	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "glossygloss"

// Config holds the entire config structure
type Config struct {
	Dict   DictConfig   `toml:"dict" yaml:"dict"`
	Server ServerConfig `toml:"server" yaml:"server"`
	CLI    CliConfig    `toml:"cli" yaml:"cli"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Backend   string `toml:"backend" yaml:"backend"`
	Buckets   int    `toml:"buckets" yaml:"buckets"`
	MaxWords  int    `toml:"max_words" yaml:"max_words"`
	Lowercase bool   `toml:"lowercase" yaml:"lowercase"`
	Filter    bool   `toml:"filter" yaml:"filter"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxTop     int `toml:"max_top" yaml:"max_top"`
	MaxWordLen int `toml:"max_word_len" yaml:"max_word_len"`
}

// CliConfig holds cli defaults.
type CliConfig struct {
	DefaultTop int `toml:"default_top" yaml:"default_top"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			Backend:   "hash",
			Buckets:   25,
			MaxWords:  0,
			Lowercase: false,
			Filter:    false,
		},
		Server: ServerConfig{
			MaxTop:     100,
			MaxWordLen: 256,
		},
		CLI: CliConfig{
			DefaultTop: 10,
		},
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/glossygloss
// 2. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", AppName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/glossygloss/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads a TOML or YAML file, chosen by extension. Unset keys keep
// their default value.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if isYAML(configPath) {
		if err := utils.LoadYAMLFile(configPath, config); err != nil {
			return nil, err
		}
		return config, nil
	}
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps whatever sections of a TOML file still decode
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "backend"); ok {
		dict.Backend = val
	}
	if val, ok := utils.ExtractInt64(data, "buckets"); ok {
		dict.Buckets = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
	if val, ok := utils.ExtractBool(data, "lowercase"); ok {
		dict.Lowercase = val
	}
	if val, ok := utils.ExtractBool(data, "filter"); ok {
		dict.Filter = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_top"); ok {
		server.MaxTop = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		server.MaxWordLen = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_top"); ok {
		cli.DefaultTop = val
	}
}

// SaveConfig writes config as YAML or TOML depending on the extension
func SaveConfig(config *Config, configPath string) error {
	if isYAML(configPath) {
		return utils.SaveYAMLFile(config, configPath)
	}
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}
