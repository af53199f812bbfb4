package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "catlog"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "CATLOG"

// Config represents the top-level configuration structure.
type Config struct {
	MinLevel    string  `mapstructure:"min_level" yaml:"min_level" toml:"min_level"`
	Sinks       string  `mapstructure:"sinks" yaml:"sinks" toml:"sinks"`
	Directory   string  `mapstructure:"directory" yaml:"directory" toml:"directory"`
	KeepOldLogs bool    `mapstructure:"keep_old_logs" yaml:"keep_old_logs" toml:"keep_old_logs"`
	Color       string  `mapstructure:"color" yaml:"color" toml:"color"`
	Webhook     Webhook `mapstructure:"webhook" yaml:"webhook" toml:"webhook"`
}

// Webhook configures remote notifications.
type Webhook struct {
	URL           string `mapstructure:"url" yaml:"url" toml:"url"`
	MinLevel      string `mapstructure:"min_level" yaml:"min_level" toml:"min_level"`
	Timeout       string `mapstructure:"timeout" yaml:"timeout" toml:"timeout"`
	RatePerSecond int    `mapstructure:"rate_per_second" yaml:"rate_per_second" toml:"rate_per_second"`
	QueueSize     int    `mapstructure:"queue_size" yaml:"queue_size" toml:"queue_size"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		MinLevel:  "info",
		Sinks:     "both",
		Directory: paths.DefaultLogDir(),
		Color:     "auto",
		Webhook: Webhook{
			MinLevel:  "error",
			Timeout:   "10s",
			QueueSize: 256,
		},
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// The type follows the extension so config.toml works as well.
	viper.SetConfigName("config")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Every key needs a default so that Unmarshal sees environment overrides.
	def := Default()
	viper.SetDefault("min_level", def.MinLevel)
	viper.SetDefault("sinks", def.Sinks)
	viper.SetDefault("directory", def.Directory)
	viper.SetDefault("keep_old_logs", def.KeepOldLogs)
	viper.SetDefault("color", def.Color)
	viper.SetDefault("webhook.url", def.Webhook.URL)
	viper.SetDefault("webhook.min_level", def.Webhook.MinLevel)
	viper.SetDefault("webhook.timeout", def.Webhook.Timeout)
	viper.SetDefault("webhook.rate_per_second", def.Webhook.RatePerSecond)
	viper.SetDefault("webhook.queue_size", def.Webhook.QueueSize)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// the defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load, defaults apply
		case errors.As(err, &notFound), isNotExist(path):
			return nil, errors.Wrap(errors.ErrNotFound, "config file "+path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Used reports the config file Viper read, if any.
func Used() string {
	return viper.ConfigFileUsed()
}

func isNotExist(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}
