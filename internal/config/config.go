// Package config provides configuration types and defaults for filterql.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/filterql/internal/fql"
	"github.com/zjrosen/filterql/internal/log"
	"github.com/zjrosen/filterql/internal/paths"
)

// ColumnConfig defines a single filterable column.
type ColumnConfig struct {
	ID          string   `mapstructure:"id" yaml:"id"`
	Name        string   `mapstructure:"name" yaml:"name,omitempty"`
	Type        string   `mapstructure:"type" yaml:"type"`                           // string, number, boolean, date or enum
	EnumValues  []string `mapstructure:"enum_values" yaml:"enum_values,omitempty"`   // permitted values for enum columns
	DisplayName string   `mapstructure:"display_name" yaml:"display_name,omitempty"` // optional label for UIs
}

// QueryConfig is a named query saved alongside a schema.
type QueryConfig struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Query string `mapstructure:"query" yaml:"query"`
}

// SchemaConfig is a named column set plus its saved queries.
type SchemaConfig struct {
	Name    string         `mapstructure:"name" yaml:"name"`
	Columns []ColumnConfig `mapstructure:"columns" yaml:"columns"`
	Queries []QueryConfig  `mapstructure:"queries" yaml:"queries,omitempty"`
}

// OutputConfig controls how the CLI renders results.
type OutputConfig struct {
	Color  bool   `mapstructure:"color"`
	Format string `mapstructure:"format"` // "text" (default) or "json"
}

// Config holds all configuration options for filterql.
type Config struct {
	Schema  string          `mapstructure:"schema"` // active schema name; first schema when empty
	Schemas []SchemaConfig  `mapstructure:"schemas"`
	Output  OutputConfig    `mapstructure:"output"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// ColumnDef converts the column to the pipeline's schema type.
func (c ColumnConfig) ColumnDef() fql.ColumnDef {
	return fql.ColumnDef{
		ID:          c.ID,
		Name:        c.Name,
		Type:        fql.ColumnType(c.Type),
		EnumValues:  c.EnumValues,
		DisplayName: c.DisplayName,
	}
}

// ColumnDefs converts every column of the schema.
func (s SchemaConfig) ColumnDefs() []fql.ColumnDef {
	defs := make([]fql.ColumnDef, len(s.Columns))
	for i, c := range s.Columns {
		defs[i] = c.ColumnDef()
	}
	return defs
}

// ColumnsFromDefs converts pipeline column definitions back to config form.
func ColumnsFromDefs(defs []fql.ColumnDef) []ColumnConfig {
	cols := make([]ColumnConfig, len(defs))
	for i, d := range defs {
		cols[i] = ColumnConfig{
			ID:          d.ID,
			Name:        d.Name,
			Type:        string(d.Type),
			EnumValues:  d.EnumValues,
			DisplayName: d.DisplayName,
		}
	}
	return cols
}

// DefaultSchemas returns the example schema written to new config files.
func DefaultSchemas() []SchemaConfig {
	return []SchemaConfig{
		{
			Name: "orders",
			Columns: []ColumnConfig{
				{ID: "status", Name: "status", Type: "enum", EnumValues: []string{"open", "closed", "pending"}},
				{ID: "price", Name: "price", Type: "number"},
				{ID: "name", Name: "name", Type: "string"},
				{ID: "active", Name: "active", Type: "boolean"},
				{ID: "createdAt", Name: "createdAt", Type: "date"},
			},
			Queries: []QueryConfig{
				{Name: "Open and expensive", Query: `[status] equals "open" AND [price] > 100`},
				{Name: "Unnamed", Query: "[name] IS BLANK"},
				{Name: "This year", Query: `[createdAt] >= "2025-01-01"`},
			},
		},
	}
}

// ValidateColumns checks column configuration for errors.
// Returns nil if columns are valid or empty.
func ValidateColumns(cols []ColumnConfig) error {
	seen := make(map[string]bool, len(cols))
	for i, col := range cols {
		key := col.ColumnDef().Key()
		if key == "" {
			return fmt.Errorf("column %d: id or name is required", i)
		}
		if seen[key] {
			return fmt.Errorf("column %d (%s): duplicate column", i, key)
		}
		seen[key] = true

		if !fql.ColumnType(col.Type).Valid() {
			return fmt.Errorf("column %d (%s): invalid type %q (must be \"string\", \"number\", \"boolean\", \"date\" or \"enum\")", i, key, col.Type)
		}
		if len(col.EnumValues) > 0 && col.Type != string(fql.TypeEnum) {
			return fmt.Errorf("column %d (%s): enum_values is only valid for enum columns", i, key)
		}
	}
	return nil
}

// ValidateQueries checks saved queries for missing fields. Query syntax is
// checked separately against the schema.
func ValidateQueries(queries []QueryConfig) error {
	for i, q := range queries {
		if q.Name == "" {
			return fmt.Errorf("query %d: name is required", i)
		}
		if q.Query == "" {
			return fmt.Errorf("query %d (%s): query is required", i, q.Name)
		}
	}
	return nil
}

// ValidateSchemas checks schema configuration for errors.
// Returns nil if schemas are valid or empty.
func ValidateSchemas(schemas []SchemaConfig) error {
	seen := make(map[string]bool, len(schemas))
	for i, schema := range schemas {
		if schema.Name == "" {
			return fmt.Errorf("schema %d: name is required", i)
		}
		if seen[schema.Name] {
			return fmt.Errorf("schema %d (%s): duplicate schema name", i, schema.Name)
		}
		seen[schema.Name] = true

		if err := ValidateColumns(schema.Columns); err != nil {
			return fmt.Errorf("schema %d (%s): %w", i, schema.Name, err)
		}
		if err := ValidateQueries(schema.Queries); err != nil {
			return fmt.Errorf("schema %d (%s): %w", i, schema.Name, err)
		}
	}
	return nil
}

// ValidateOutput checks output configuration for errors.
func ValidateOutput(out OutputConfig) error {
	switch out.Format {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("output.format must be \"text\" or \"json\", got %q", out.Format)
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateSchemas(c.Schemas); err != nil {
		return err
	}
	if err := ValidateOutput(c.Output); err != nil {
		return err
	}
	if c.Schema != "" {
		if _, ok := c.SchemaByName(c.Schema); !ok {
			return fmt.Errorf("schema %q is not defined", c.Schema)
		}
	}
	return nil
}

// SchemaByName returns the schema with the given name.
func (c Config) SchemaByName(name string) (SchemaConfig, bool) {
	for _, s := range c.Schemas {
		if s.Name == name {
			return s, true
		}
	}
	return SchemaConfig{}, false
}

// ActiveSchema returns the schema selected by Schema, or the first schema
// when none is selected.
func (c Config) ActiveSchema() (SchemaConfig, bool) {
	if c.Schema != "" {
		return c.SchemaByName(c.Schema)
	}
	if len(c.Schemas) == 0 {
		return SchemaConfig{}, false
	}
	return c.Schemas[0], true
}

// schemaFile accepts either a bare column list or a mapping with a columns key.
type schemaFile struct {
	Columns []ColumnConfig `yaml:"columns"`
}

// LoadSchemaFile reads a column list from a YAML or JSON file.
func LoadSchemaFile(path string) ([]ColumnConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied schema file
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	var cols []ColumnConfig
	if err := yaml.Unmarshal(data, &cols); err != nil {
		var wrapped schemaFile
		if err2 := yaml.Unmarshal(data, &wrapped); err2 != nil {
			return nil, fmt.Errorf("parsing schema file: %w", err)
		}
		cols = wrapped.Columns
	}

	if err := ValidateColumns(cols); err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	log.Debug(log.CatConfig, "Loaded schema file", "path", path, "columns", len(cols))
	return cols, nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Schemas: DefaultSchemas(),
		Output: OutputConfig{
			Color:  true,
			Format: "text",
		},
		Flags: map[string]bool{},
	}
}

// DefaultConfigPath returns ~/.config/filterql/config.yaml, or an empty
// string if the home directory is unavailable.
func DefaultConfigPath() string {
	return paths.UserConfig()
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# filterql configuration
# https://github.com/zjrosen/filterql

# Schema used when --schema is not given. Defaults to the first schema.
# schema: orders

# Each schema lists the columns a query may reference and optional saved
# queries checked by "filterql check".
#
# Column types: string, number, boolean, date, enum
# Operators per type:
#   string:  equals, contains, starts with, ends with, is [not] blank
#   number:  equals, >, <, >=, <=
#   boolean: equals
#   date:    equals, >, <, >=, <= (values as "YYYY-MM-DD"), is [not] blank
#   enum:    equals, is [not] blank
schemas:
  - name: orders
    columns:
      - id: status
        name: status
        type: enum
        enum_values: [open, closed, pending]
      - id: price
        name: price
        type: number
      - id: name
        name: name
        type: string
      - id: active
        name: active
        type: boolean
      - id: createdAt
        name: createdAt
        type: date
    queries:
      - name: Open and expensive
        query: '[status] equals "open" AND [price] > 100'
      - name: Unnamed
        query: '[name] IS BLANK'
      - name: This year
        query: '[createdAt] >= "2025-01-01"'

# Output settings
output:
  color: true     # Styled diagnostics (disable with --no-color)
  format: text    # text or json (override with --json)

# Feature flags for opt-in query semantics
# flags:
#   strict-enums: true        # Reject enum values missing from enum_values
#   negate-not-equals: true   # Treat != and "not equals" as NOT (equals)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
