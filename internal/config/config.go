// Package config loads LifeOS settings from ~/.lifeos/config.yaml with
// LIFEOS_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Assistant AssistantConfig `mapstructure:"assistant" yaml:"assistant"`
	Voice     VoiceConfig     `mapstructure:"voice" yaml:"voice"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// StorageConfig selects where snapshots are kept.
type StorageConfig struct {
	// Backend is one of "sqlite", "redis" or "memory"
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Path is the SQLite database file
	Path string `mapstructure:"path" yaml:"path"`
	// RedisURL is used by the redis backend, e.g. redis://localhost:6379/0
	RedisURL string `mapstructure:"redis_url" yaml:"redis_url,omitempty"`
	// KeyPrefix namespaces redis keys
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix,omitempty"`
}

// AssistantConfig tunes the responder and chat loop.
type AssistantConfig struct {
	DefaultUserName string `mapstructure:"default_user_name" yaml:"default_user_name"`
	// ThinkDelay is how long replies are held back in the chat loop
	ThinkDelay time.Duration `mapstructure:"think_delay" yaml:"think_delay"`
	// StatusInterval is how often the status readout is refreshed
	StatusInterval time.Duration `mapstructure:"status_interval" yaml:"status_interval"`
	// AutoLearning logs every input to the interaction log
	AutoLearning bool `mapstructure:"auto_learning" yaml:"auto_learning"`
	// EmotionDetection lets the mood rule re-detect the mood from input
	EmotionDetection bool `mapstructure:"emotion_detection" yaml:"emotion_detection"`
}

// VoiceConfig configures the external transcription command.
type VoiceConfig struct {
	Enabled  bool     `mapstructure:"enabled" yaml:"enabled"`
	Command  string   `mapstructure:"command" yaml:"command"`
	Args     []string `mapstructure:"args" yaml:"args"`
	Language string   `mapstructure:"language" yaml:"language"`
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Console bool   `mapstructure:"console" yaml:"console"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:   "sqlite",
			Path:      "~/.lifeos/lifeos.db",
			KeyPrefix: "lifeos:",
		},
		Assistant: AssistantConfig{
			DefaultUserName:  "User",
			ThinkDelay:       time.Second,
			StatusInterval:   5 * time.Second,
			AutoLearning:     true,
			EmotionDetection: true,
		},
		Voice: VoiceConfig{
			Enabled:  true,
			Command:  "whisper-listen",
			Args:     []string{"--language", "{lang}"},
			Language: "en-US",
		},
		Logging: LoggingConfig{
			Level:   "warn",
			Console: true,
		},
	}
}

// DefaultPath is ~/.lifeos/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".lifeos", "config.yaml"), nil
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from path and merges environment
// variables. A missing file is created with default values.
func LoadFromPath(path string) (*Config, error) {
	path = expandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeConfigFile(path, Default()); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v, Default())

	// Example: LIFEOS_STORAGE_BACKEND=redis
	v.SetEnvPrefix("LIFEOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.Path = expandPath(cfg.Storage.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so env overrides work for keys missing
// from the file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.redis_url", d.Storage.RedisURL)
	v.SetDefault("storage.key_prefix", d.Storage.KeyPrefix)
	v.SetDefault("assistant.default_user_name", d.Assistant.DefaultUserName)
	v.SetDefault("assistant.think_delay", d.Assistant.ThinkDelay)
	v.SetDefault("assistant.status_interval", d.Assistant.StatusInterval)
	v.SetDefault("assistant.auto_learning", d.Assistant.AutoLearning)
	v.SetDefault("assistant.emotion_detection", d.Assistant.EmotionDetection)
	v.SetDefault("voice.enabled", d.Voice.Enabled)
	v.SetDefault("voice.command", d.Voice.Command)
	v.SetDefault("voice.args", d.Voice.Args)
	v.SetDefault("voice.language", d.Voice.Language)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.console", d.Logging.Console)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite backend")
		}
	case "redis", "memory":
	default:
		return fmt.Errorf("invalid storage.backend %q (valid: sqlite, redis, memory)", c.Storage.Backend)
	}
	if c.Assistant.ThinkDelay < 0 {
		return fmt.Errorf("assistant.think_delay must not be negative")
	}
	if c.Assistant.StatusInterval <= 0 {
		return fmt.Errorf("assistant.status_interval must be positive")
	}
	return nil
}

// SaveToPath writes the configuration as YAML.
func (c *Config) SaveToPath(path string) error {
	return writeConfigFile(expandPath(path), c)
}

func writeConfigFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
