package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/catlog/internal/config"
	"github.com/thoreinstein/catlog/internal/editor"
	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/internal/paths"
	"github.com/thoreinstein/catlog/internal/validator"
	"github.com/thoreinstein/catlog/pkg/catlog/webhook"
	"github.com/thoreinstein/catlog/pkg/fileutil"
)

var (
	configValidateFormat string

	configInitFormat string
	configInitForce  bool
	configInitPath   string
)

func init() {
	configInitCmd.Flags().StringVar(&configInitFormat, "format", "yaml", "file format: yaml, toml")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "destination (default: ~/.config/catlog/config.<format>)")

	configValidateCmd.Flags().StringVar(&configValidateFormat, "format", "text", "report format: text, json")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage catlog configuration",
	Long: `Manage catlog configuration stored in ~/.config/catlog/config.yaml.

Without a subcommand, lists the effective configuration.`,
	Example: `  # List the effective configuration
  catlog config

  # Get a single value
  catlog config get webhook.min_level

  # Write a default config file
  catlog config init

See Also: catlog emit`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key. Nested keys use dot notation.`,
	Example: `  catlog config get sinks
  catlog config get webhook.timeout`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long: `List the effective configuration in YAML format, including defaults and
environment overrides. The webhook URL is redacted.`,
	RunE: runConfigList,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration",
	Long: `Check the effective configuration and report errors, warnings for
settings that have no effect and notes about the resulting behavior.

Exits non-zero when the configuration has errors.`,
	Example: `  catlog config validate
  catlog --config ./config.yaml config validate --format json`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi. The file in use is opened,
or the default location when none was found. If it does not exist yet a
default configuration is written first.`,
	Example: `  catlog config edit
  EDITOR="code --wait" catlog config edit

See Also: catlog config validate`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to the config directory.

An existing file is left alone unless --force is given.`,
	Example: `  catlog config init
  catlog config init --format toml --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !viper.IsSet(key) {
		fmt.Fprintln(cmd.OutOrStdout(), "not set")
		return nil
	}
	value := viper.GetString(key)
	if key == "webhook.url" {
		value = redactURL(value)
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	cfg := *currentConfig()
	cfg.Webhook.URL = redactURL(cfg.Webhook.URL)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if used := config.Used(); used != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", used)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	result := config.Check(currentConfig())
	result.Source = config.Used()

	format := validator.Format(strings.ToLower(configValidateFormat))
	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return errors.NewConfigError(err)
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.Used()
	if path == "" {
		path = paths.ConfigFile()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
			return errors.Wrap(err, "creating config directory")
		}
		if err := fileutil.AtomicWriteYAML(path, config.Default(), 0o644); err != nil {
			return errors.Wrap(err, "writing config file")
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", path)
	err := editor.Open(cmd.Context(), path, editor.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your editor command")
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(configInitFormat)
	if format != "yaml" && format != "toml" {
		return errors.NewUserError(errors.Newf("unsupported format %q", configInitFormat), "Use --format yaml or --format toml")
	}

	path := configInitPath
	if path == "" {
		path = filepath.Join(paths.ConfigDir(), "config."+format)
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", path), "Use --force to overwrite it")
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	var err error
	if format == "toml" {
		err = fileutil.AtomicWriteTOML(path, config.Default(), 0o644)
	} else {
		err = fileutil.AtomicWriteYAML(path, config.Default(), 0o644)
	}
	if err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func redactURL(u string) string {
	if u == "" {
		return ""
	}
	return webhook.Redact(u)
}
