package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/filterql/internal/log"
)

// SaveSchemas updates the schemas section in the config file.
// Comments and formatting in other sections are preserved by editing a yaml.Node.
func SaveSchemas(configPath string, schemas []SchemaConfig) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path comes from config resolution
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	schemasNode, err := buildSchemasNode(schemas)
	if err != nil {
		return fmt.Errorf("building schemas node: %w", err)
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "schemas"},
						schemasNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return fmt.Errorf("config root must be a mapping")
		}
		setMappingValue(root, "schemas", schemasNode)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to save schemas", err, "path", configPath)
		return err
	}
	log.Debug(log.CatConfig, "Saved schemas", "path", configPath, "count", len(schemas))
	return nil
}

// SaveColumnsForSchema replaces the columns of the named schema, appending a
// new schema when no schema has that name.
func SaveColumnsForSchema(configPath, schemaName string, columns []ColumnConfig, allSchemas []SchemaConfig) error {
	if schemaName == "" {
		return fmt.Errorf("schema name is required")
	}
	if err := ValidateColumns(columns); err != nil {
		return err
	}

	schemas := make([]SchemaConfig, len(allSchemas))
	copy(schemas, allSchemas)

	found := false
	for i := range schemas {
		if schemas[i].Name == schemaName {
			schemas[i].Columns = columns
			found = true
			break
		}
	}
	if !found {
		schemas = append(schemas, SchemaConfig{Name: schemaName, Columns: columns})
	}

	return SaveSchemas(configPath, schemas)
}

// AddQuery stores a named query in the given schema, replacing any existing
// query with the same name.
func AddQuery(configPath, schemaName string, query QueryConfig, allSchemas []SchemaConfig) error {
	if err := ValidateQueries([]QueryConfig{query}); err != nil {
		return err
	}

	schemas := make([]SchemaConfig, len(allSchemas))
	copy(schemas, allSchemas)

	idx := -1
	for i := range schemas {
		if schemas[i].Name == schemaName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("schema %q is not defined", schemaName)
	}

	queries := make([]QueryConfig, 0, len(schemas[idx].Queries)+1)
	replaced := false
	for _, q := range schemas[idx].Queries {
		if q.Name == query.Name {
			q = query
			replaced = true
		}
		queries = append(queries, q)
	}
	if !replaced {
		queries = append(queries, query)
	}
	schemas[idx].Queries = queries

	return SaveSchemas(configPath, schemas)
}

// DeleteQuery removes the named query from a schema.
func DeleteQuery(configPath, schemaName, queryName string, allSchemas []SchemaConfig) error {
	schemas := make([]SchemaConfig, len(allSchemas))
	copy(schemas, allSchemas)

	for i := range schemas {
		if schemas[i].Name != schemaName {
			continue
		}
		kept := make([]QueryConfig, 0, len(schemas[i].Queries))
		for _, q := range schemas[i].Queries {
			if q.Name != queryName {
				kept = append(kept, q)
			}
		}
		if len(kept) == len(schemas[i].Queries) {
			return fmt.Errorf("query %q not found in schema %q", queryName, schemaName)
		}
		schemas[i].Queries = kept
		return SaveSchemas(configPath, schemas)
	}
	return fmt.Errorf("schema %q is not defined", schemaName)
}

// setMappingValue replaces the value for key in a mapping node, or appends it.
func setMappingValue(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

// writeAtomic writes to a temp file in the target directory, then renames it.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".filterql.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// buildSchemasNode creates a yaml.Node representing the schemas array.
func buildSchemasNode(schemas []SchemaConfig) (*yaml.Node, error) {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(schemas)),
	}

	for _, schema := range schemas {
		var schemaNode yaml.Node
		if err := schemaNode.Encode(schema); err != nil {
			return nil, fmt.Errorf("encoding schema %s: %w", schema.Name, err)
		}
		setFlowStyle(&schemaNode)
		node.Content = append(node.Content, &schemaNode)
	}

	return node, nil
}

// setFlowStyle renders enum_values lists inline, matching the default template.
func setFlowStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode {
		for i := 0; i < len(n.Content)-1; i += 2 {
			if n.Content[i].Value == "enum_values" && n.Content[i+1].Kind == yaml.SequenceNode {
				n.Content[i+1].Style = yaml.FlowStyle
			}
		}
	}
	for _, c := range n.Content {
		setFlowStyle(c)
	}
}
