package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/filterql/internal/config"
)

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FILTERQL_DEBUG", "")

	viper.Reset()
	resetFlags(rootCmd)
	cfg = config.Config{}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeConfig writes the default config plus extra YAML to a temp file.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))
	if extra != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
		require.NoError(t, err)
		_, err = f.WriteString(extra)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	return path
}

func TestRoot_Help(t *testing.T) {
	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)
	require.Contains(t, stdout, "filterql")
	require.Contains(t, stdout, "--schema")
	for _, sub := range []string{"tokens", "parse", "format", "eval", "check", "schema", "init", "save"} {
		require.Contains(t, stdout, sub)
	}
}

func TestRoot_UsesConfigFile(t *testing.T) {
	path := writeConfig(t, "schema: orders\n")

	_, _, err := execute(t, "", "--config", path, "format", "[price] > 1")
	require.NoError(t, err)
	require.Equal(t, path, viper.ConfigFileUsed())
	require.Equal(t, "orders", cfg.Schema)
	require.Len(t, cfg.Schemas, 1)
}

func TestRoot_UnknownSchema(t *testing.T) {
	path := writeConfig(t, "")

	_, _, err := execute(t, "", "--config", path, "--schema", "missing", "parse", "[a] = 1")
	require.ErrorContains(t, err, `schema "missing" is not defined`)
}

func TestRoot_SchemaFile(t *testing.T) {
	path := writeConfig(t, "")
	schemaPath := filepath.Join(t.TempDir(), "books.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte("columns:\n  - id: title\n    type: string\n"), 0o600))

	stdout, _, err := execute(t, "", "--config", path, "--no-color", "--schema", schemaPath, "format", `[title] contains "go"`)
	require.NoError(t, err)
	require.Equal(t, "[title] contains \"go\"\n", stdout)
}

func TestRoot_InvalidSchemaConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "schemas:\n  - name: bad\n    columns:\n      - id: x\n        type: money\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, _, err := execute(t, "", "--config", path, "parse", "[x] = 1")
	require.ErrorContains(t, err, "invalid schema configuration")
}

func TestRoot_FlagsFromConfig(t *testing.T) {
	path := writeConfig(t, "flags:\n  strict-enums: true\n")

	_, stderr, err := execute(t, "", "--config", path, "--no-color", "parse", `[status] = "archived"`)
	require.ErrorIs(t, err, errSilent)
	require.Contains(t, stderr, "Invalid value 'archived' for enum column 'status'")

	_, _, err = execute(t, "", "--config", writeConfig(t, ""), "parse", `[status] = "archived"`)
	require.NoError(t, err, "enum membership is not checked without the flag")
}

func TestReadQuery_Stdin(t *testing.T) {
	path := writeConfig(t, "")

	stdout, _, err := execute(t, "[price]>=2\n", "--config", path, "--no-color", "format", "-")
	require.NoError(t, err)
	require.Equal(t, "[price] >= 2\n", stdout)
}

func TestCaretLine(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		start, end int
		want       string
	}{
		{"simple", "[price] > x", 10, 11, "          ^"},
		{"span", "[nope] = 1", 0, 6, "^^^^^^"},
		{"past end", "[price] >", 9, 10, "         ^"},
		{"wide runes before", "[名前] = x", 7, 8, "         ^"},
		{"wide runes in span", "[名前] = 1", 0, 4, "^^^^^^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, caretLine(tt.source, tt.start, tt.end))
		})
	}
}
