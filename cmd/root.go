package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/filterql/internal/config"
	"github.com/zjrosen/filterql/internal/flags"
	"github.com/zjrosen/filterql/internal/fql"
	"github.com/zjrosen/filterql/internal/log"
	"github.com/zjrosen/filterql/internal/paths"
)

// errSilent signals a failed command whose output has already been written.
var errSilent = errors.New("command failed")

var (
	version    = "dev"
	cfgFile    string
	cfg        config.Config
	schemaFlag string
	debugFlag  bool
	noColor    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "filterql",
	Short: "Parse, validate, format and evaluate filter queries",
	Long: `filterql works with a small filter query language over typed columns:

  [status] equals "open" AND ([price] > 100 OR [name] starts with "Pro")
  [createdAt] BETWEEN "2024-01-01" AND "2024-12-31"
  NOT [name] IS BLANK

Columns come from a schema in the config file or from a schema file passed
with --schema.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/filterql/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&schemaFlag, "schema", "s", "",
		"schema name from the config, or path to a YAML/JSON schema file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs (path from FILTERQL_LOG, default debug.log)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable styled output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"print machine-readable JSON")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("output.color", defaults.Output.Color)
	viper.SetDefault("output.format", defaults.Output.Format)

	path, found := paths.ResolveConfig(cfgFile, ".")
	switch {
	case found || cfgFile != "":
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			log.Warn(log.CatConfig, "Failed to read config, using defaults", "path", path, "error", err)
		}
	case path != "":
		// No config file found anywhere - create the default user config
		if err := config.WriteDefaultConfig(path); err == nil {
			viper.SetConfigFile(path)
			_ = viper.ReadInConfig()
		}
		// If write fails, just continue with defaults (no config file)
	}

	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
	if len(cfg.Schemas) == 0 {
		cfg.Schemas = defaults.Schemas
	}
}

// setupLogging enables the debug log when --debug or FILTERQL_DEBUG is set.
func setupLogging(cmd *cobra.Command, _ []string) error {
	if os.Getenv("FILTERQL_DEBUG") == "" && !debugFlag {
		return nil
	}
	logPath := os.Getenv("FILTERQL_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	cobra.OnFinalize(cleanup)

	log.Info(log.CatCLI, "filterql starting", "command", cmd.CommandPath(), "config", viper.ConfigFileUsed())
	return nil
}

// configPath returns the config file in use, falling back to the user config.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// resolveSchema picks the schema selected by --schema, the config's schema
// key, or the first configured schema, in that order.
func resolveSchema() (config.SchemaConfig, error) {
	if err := config.ValidateSchemas(cfg.Schemas); err != nil {
		return config.SchemaConfig{}, fmt.Errorf("invalid schema configuration: %w", err)
	}

	name := schemaFlag
	if name == "" {
		name = cfg.Schema
	}

	if name != "" && isSchemaFile(name) {
		cols, err := config.LoadSchemaFile(name)
		if err != nil {
			return config.SchemaConfig{}, err
		}
		return config.SchemaConfig{Name: strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)), Columns: cols}, nil
	}

	if name != "" {
		schema, ok := cfg.SchemaByName(name)
		if !ok {
			return config.SchemaConfig{}, fmt.Errorf("schema %q is not defined", name)
		}
		return schema, nil
	}

	schema, ok := cfg.ActiveSchema()
	if !ok {
		return config.SchemaConfig{}, errors.New("no schemas configured")
	}
	return schema, nil
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	_, err := os.Stat(name)
	return err == nil
}

// queryOptions translates the configured feature flags into pipeline options.
func queryOptions() []fql.Option {
	return flags.New(cfg.Flags).QueryOptions()
}

// wantJSON reports whether output should be JSON.
func wantJSON() bool {
	return jsonOutput || cfg.Output.Format == "json"
}

// readQuery returns the query argument, reading stdin when it is "-".
func readQuery(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("query argument is required")
	}
	if args[0] != "-" {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading query from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
