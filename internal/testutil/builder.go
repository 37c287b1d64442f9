// Package testutil builds row fixtures for evaluator and CLI tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Builder accumulates test rows.
type Builder struct {
	t    *testing.T
	rows []rowData
}

// NewBuilder creates an empty row builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithRow adds a row with optional configuration.
func (b *Builder) WithRow(id string, opts ...RowOption) *Builder {
	row := defaultRow(id)
	for _, opt := range opts {
		opt(&row)
	}
	b.rows = append(b.rows, row)
	return b
}

// Build returns the accumulated rows in insertion order.
func (b *Builder) Build() []map[string]any {
	b.t.Helper()
	out := make([]map[string]any, 0, len(b.rows))
	for _, r := range b.rows {
		m := make(map[string]any, len(r.fields))
		for k, v := range r.fields {
			m[k] = v
		}
		for _, k := range r.drop {
			delete(m, k)
		}
		out = append(out, m)
	}
	return out
}

// WriteJSON writes the rows as a JSON array to name inside a temp directory
// and returns the file path.
func (b *Builder) WriteJSON(name string) string {
	b.t.Helper()
	data, err := json.MarshalIndent(b.Build(), "", "  ")
	require.NoError(b.t, err)
	return b.write(name, data)
}

// WriteYAML writes the rows as a YAML sequence and returns the file path.
func (b *Builder) WriteYAML(name string) string {
	b.t.Helper()
	data, err := yaml.Marshal(b.Build())
	require.NoError(b.t, err)
	return b.write(name, data)
}

func (b *Builder) write(name string, data []byte) string {
	b.t.Helper()
	path := filepath.Join(b.t.TempDir(), name)
	require.NoError(b.t, os.WriteFile(path, data, 0o600))
	return path
}

// IDs returns the id field of each row, for compact assertions.
func IDs(rows []map[string]any) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		id, _ := r["id"].(string)
		ids = append(ids, id)
	}
	return ids
}
