package fql

import "github.com/samber/lo"

// ColumnType is the declared data type of a column.
type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeNumber  ColumnType = "number"
	TypeBoolean ColumnType = "boolean"
	TypeDate    ColumnType = "date"
	TypeEnum    ColumnType = "enum"
)

// ColumnTypes lists every valid column type.
var ColumnTypes = []ColumnType{TypeString, TypeNumber, TypeBoolean, TypeDate, TypeEnum}

// Valid reports whether t is a known column type.
func (t ColumnType) Valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean, TypeDate, TypeEnum:
		return true
	}
	return false
}

// ColumnDef describes a column that queries may reference.
type ColumnDef struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Type        ColumnType `json:"type" yaml:"type"`
	EnumValues  []string   `json:"enumValues,omitempty" yaml:"enum_values,omitempty"`
	DisplayName string     `json:"displayName,omitempty" yaml:"display_name,omitempty"`
}

// Key returns the identifier a field reference resolves against.
func (c ColumnDef) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}

// Label returns the name used in diagnostics.
func (c ColumnDef) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// columnIndex builds a key to column lookup for a single call.
func columnIndex(columns []ColumnDef) map[string]ColumnDef {
	return lo.KeyBy(columns, ColumnDef.Key)
}
