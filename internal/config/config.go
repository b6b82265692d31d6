package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Sequence SequenceConfig
	Editor   EditorConfig
	Generate GenerateConfig
}

// DatabaseConfig holds sqlite settings for the sequence library.
type DatabaseConfig struct {
	Path string
}

// SequenceConfig locates the working sequence file the editor persists to.
type SequenceConfig struct {
	Path string
}

// EditorConfig holds the metadata stamped onto saved sequences.
type EditorConfig struct {
	Author string
	Grid   string
	Prop   string
}

// GenerateConfig holds generation defaults.
type GenerateConfig struct {
	Length int
}

// Load reads configuration from file and env. Env var overrides use prefix JASKSEQ_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "jaskseq", "jaskseq.db"))
	v.SetDefault("sequence.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "jaskseq", "current_sequence.json"))
	v.SetDefault("editor.author", "")
	v.SetDefault("editor.grid", "diamond")
	v.SetDefault("editor.prop", "staff")
	v.SetDefault("generate.length", 8)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JASKSEQ_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jaskseq"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKSEQ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// This is primarily used by the TUI settings view for editor metadata.
func Save(cfg Config) error {
	path := os.Getenv("JASKSEQ_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "jaskseq", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("sequence.path", cfg.Sequence.Path)
	v.Set("editor.author", cfg.Editor.Author)
	v.Set("editor.grid", cfg.Editor.Grid)
	v.Set("editor.prop", cfg.Editor.Prop)
	v.Set("generate.length", cfg.Generate.Length)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
