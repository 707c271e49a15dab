package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/teranos/arcana/am"
	"github.com/teranos/arcana/display"
	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/sym"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: sym.Short("am"),
	Long: sym.AM + ` am — Manage arcana configuration

Configuration sources (in order of precedence):
1. Environment variables (ARCANA_* prefix)
2. Project config (nearest ./arcana.toml, searching up directories)
3. User config (~/.arcana/arcana.toml)
4. System config (/etc/arcana/arcana.toml)
5. Default values

Examples:
  arcana am show                    # Show current configuration
  arcana am show --format json      # Show configuration in JSON format
  arcana am get render.scale        # Get specific config value
  arcana am set output.format yaml  # Persist a value to the user config
  arcana am validate                # Validate current configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current arcana configuration from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., render.scale, templates.pages.dial)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Long:  "Write key = value to ~/.arcana/arcana.toml, keeping up to three backups of the previous file",
	Args:  cobra.ExactArgs(2),
	RunE:  runAmSet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate that the current arcana configuration is valid",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration files that were merged and the source of
every effective setting.`,
	RunE: runAmWhere,
}

func init() {
	amShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amSetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	out := cmd.OutOrStdout()
	switch format := display.FormatFor(cmd, "toml"); format {
	case display.FormatJSON, display.FormatYAML:
		return display.Write(out, cfg, format)
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# arcana configuration\n%s", string(data))
		return nil
	default:
		return errors.NewInvalidArgumentError("unsupported format: %s (supported: toml, json, yaml)", format)
	}
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !am.IsSet(key) {
		return errors.NewNotFoundError("configuration key %q not found", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmSet(cmd *cobra.Command, args []string) error {
	value := am.ParseValue(args[1])
	path, err := am.SetUserValue(args[0], value)
	if err != nil {
		return err
	}
	cfg, err := am.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.WithHintf(err, "the previous file is kept as %s.back1", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %v (%s)\n", sym.OK, args[0], value, path)
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	if _, err := LoadConfig(cmd); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration is valid\n", sym.OK)
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return errors.Wrap(err, "failed to get config introspection")
	}

	out := cmd.OutOrStdout()
	if format := display.FormatFor(cmd, display.FormatTable); format != display.FormatTable {
		return display.Write(out, intro, format)
	}

	files := &display.Table{Title: "Configuration files (later overrides earlier)", Header: []string{"source", "path"}}
	for _, f := range intro.Files {
		files.AddRow(f.Source, f.Path)
	}
	if len(intro.Files) == 0 {
		files.AddRow(am.SourceDefault, "no config files found")
	}
	if err := files.Render(out); err != nil {
		return err
	}

	settings := &display.Table{Title: "Settings", Header: []string{"key", "value", "source", "from"}}
	for _, s := range intro.Settings {
		settings.AddRow(s.Key, s.Value, s.Source, s.SourcePath)
	}
	return settings.Render(out)
}
