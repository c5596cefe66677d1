package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/harrisonrobin/taskmgr/pkg/logging"
	"github.com/harrisonrobin/taskmgr/pkg/model"
)

const (
	xdgAppName = "taskmgr"
	configFile = "config.yaml"
	envPrefix  = "TASKMGR"
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Display  DisplayConfig  `mapstructure:"display"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Agenda   AgendaConfig   `mapstructure:"agenda"`
}

type LogConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level"`
	// File receives JSON log lines; empty logs to stderr.
	File string `mapstructure:"file"`
}

type DisplayConfig struct {
	Color bool `mapstructure:"color"`
}

// DefaultsConfig applies to task file entries that leave a field empty.
type DefaultsConfig struct {
	Priority string `mapstructure:"priority"`
	Kind     string `mapstructure:"kind"`
}

type AgendaConfig struct {
	// Duration is the length of calendar events for due dates with a time of day.
	Duration time.Duration `mapstructure:"duration"`
}

func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: logging.LevelWarn},
		Display:  DisplayConfig{Color: true},
		Defaults: DefaultsConfig{Priority: model.PriorityMedium.String(), Kind: model.KindFeature.String()},
		Agenda:   AgendaConfig{Duration: 30 * time.Minute},
	}
}

// Keys lists the settings understood by taskmgr.
var Keys = []string{
	"log.level",
	"log.file",
	"display.color",
	"defaults.priority",
	"defaults.kind",
	"agenda.duration",
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("display.color", d.Display.Color)
	v.SetDefault("defaults.priority", d.Defaults.Priority)
	v.SetDefault("defaults.kind", d.Defaults.Kind)
	v.SetDefault("agenda.duration", d.Agenda.Duration)
}

// ConfigDir returns $XDG_CONFIG_HOME/taskmgr, falling back to ~/.config/taskmgr.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, xdgAppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+xdgAppName)
	}
	return filepath.Join(home, ".config", xdgAppName)
}

func GetConfigPath() string {
	return filepath.Join(ConfigDir(), configFile)
}

// New returns a viper instance reading path, or the default config file when
// path is empty, with TASKMGR_* environment overrides. A missing file is not
// an error.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if _, err := model.ParsePriority(c.Defaults.Priority); err != nil {
		return fmt.Errorf("invalid defaults.priority: %w", err)
	}
	if _, err := model.ParseKind(c.Defaults.Kind); err != nil {
		return fmt.Errorf("invalid defaults.kind: %w", err)
	}
	if c.Agenda.Duration <= 0 {
		return fmt.Errorf("invalid agenda.duration %s", c.Agenda.Duration)
	}
	return nil
}

// DefaultPriority and DefaultKind return the parsed defaults; Validate has
// already checked them.
func (c *Config) DefaultPriority() model.Priority {
	p, _ := model.ParsePriority(c.Defaults.Priority)
	return p
}

func (c *Config) DefaultKind() model.Kind {
	k, _ := model.ParseKind(c.Defaults.Kind)
	return k
}

// Save sets key to value in v and writes the config file, creating its
// directory when needed. The resulting configuration must validate.
func Save(v *viper.Viper, key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	v.Set(key, value)
	if _, err := Load(v); err != nil {
		return err
	}

	path := v.ConfigFileUsed()
	if path == "" {
		path = GetConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
