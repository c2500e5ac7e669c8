package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/grocery-manager/internal/common"
)

// Setting keys shared by the config file, GROCER_ environment variables and
// command-line flags.
const (
	KeyDatabasePath  = "database.path"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyListFormat    = "list.format"
	KeyListColor     = "list.color"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// EnvPrefix prefixes every environment variable grocer reads.
const EnvPrefix = "GROCER"

// EnvKeyReplacer maps setting keys such as database.path onto environment
// variable names such as GROCER_DATABASE_PATH.
var EnvKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	ListFormat   string
	Color        bool
}

// DefaultDatabasePath returns $HOME/.local/share/grocer/grocer.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "grocer.db")
	}
	return filepath.Join(home, ".local", "share", "grocer", "grocer.db")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyListFormat, "table")
	v.SetDefault(KeyListColor, true)
}

// ReadConfigFile reads the config file into v. A path given explicitly must
// exist. With an empty path, config.yaml is looked up in $HOME/.config/grocer
// and the working directory, and finding none is not an error.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		if _, err := os.Stat(ExpandPath(path)); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: config file %s does not exist", common.ErrMissingConfig, path)
		}
		v.SetConfigFile(ExpandPath(path))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "grocer"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load resolves the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom resolves the configuration from v, in precedence order:
// flags, GROCER_ environment variables, config file, defaults.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		ListFormat:   v.GetString(KeyListFormat),
		Color:        v.GetBool(KeyListColor),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: %s must not be empty", common.ErrInvalidConfig, KeyDatabasePath)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %s must be console or json, got %q", common.ErrInvalidConfig, KeyLogFormat, c.LogFormat)
	}
	switch c.ListFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("%w: %s must be table, json or yaml, got %q", common.ErrInvalidConfig, KeyListFormat, c.ListFormat)
	}
	return nil
}
