package testutil

import "time"

// DateLayout is the date format used for date column values.
const DateLayout = "2006-01-02"

// rowData holds the fields of a row before it is materialized.
type rowData struct {
	id     string
	fields map[string]any
	drop   []string
}

// defaultRow returns a rowData with sensible defaults for the orders schema.
func defaultRow(id string) rowData {
	return rowData{
		id: id,
		fields: map[string]any{
			"id":        id,
			"status":    "open",
			"price":     float64(0),
			"name":      id, // Default name is the ID
			"active":    true,
			"createdAt": "2024-01-01",
		},
	}
}

// RowOption configures a row during builder setup.
type RowOption func(*rowData)

// Status sets the status enum value.
func Status(status string) RowOption {
	return func(r *rowData) { r.fields["status"] = status }
}

// Price sets the price.
func Price(price float64) RowOption {
	return func(r *rowData) { r.fields["price"] = price }
}

// Name sets the name.
func Name(name string) RowOption {
	return func(r *rowData) { r.fields["name"] = name }
}

// Active sets the active flag.
func Active(active bool) RowOption {
	return func(r *rowData) { r.fields["active"] = active }
}

// CreatedAt sets the creation date, formatted with DateLayout.
func CreatedAt(t time.Time) RowOption {
	return func(r *rowData) { r.fields["createdAt"] = t.Format(DateLayout) }
}

// Field sets an arbitrary field, including nil values.
func Field(key string, value any) RowOption {
	return func(r *rowData) { r.fields[key] = value }
}

// Without removes a field so the row has no entry for it at all.
func Without(keys ...string) RowOption {
	return func(r *rowData) { r.drop = append(r.drop, keys...) }
}
