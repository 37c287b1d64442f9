package fql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/filterql/internal/testutil"
)

type record map[string]any

func batchRows() []record {
	return []record{
		{"status": "open", "price": 50.0},
		{"status": "closed", "price": 150.0},
		{"status": "open", "price": 200.0},
		{"status": "pending"},
		{"status": "open", "price": 300.0},
	}
}

func TestEvaluateFilterBatch(t *testing.T) {
	g := mustParse(t, `[status] = "open" AND [price] > 100`)
	matched := EvaluateFilterBatch(g, batchRows(), testColumns)
	assert.Equal(t, []record{
		{"status": "open", "price": 200.0},
		{"status": "open", "price": 300.0},
	}, matched)

	assert.Empty(t, EvaluateFilterBatch(g, []record{}, testColumns))
	assert.Len(t, EvaluateFilterBatch(FilterGroup{Op: OpOr}, batchRows(), testColumns), 5)
}

func TestCountMatches(t *testing.T) {
	assert.Equal(t, 3, CountMatches(mustParse(t, `[status] = "open"`), batchRows(), testColumns))
	assert.Equal(t, 1, CountMatches(and(cond("price", FuncIsBlank)), []Row{{"price": nil}, {"price": 1.0}}, []ColumnDef{{ID: "price", Type: TypeString}}))
	assert.Equal(t, 0, CountMatches(mustParse(t, `[price] > 1000`), batchRows(), testColumns))
}

func TestFindFirstMatch(t *testing.T) {
	row, ok := FindFirstMatch(mustParse(t, `[price] >= 150`), batchRows(), testColumns)
	require.True(t, ok)
	assert.Equal(t, record{"status": "closed", "price": 150.0}, row)

	row, ok = FindFirstMatch(mustParse(t, `[status] = "archived"`), batchRows(), testColumns)
	assert.False(t, ok)
	assert.Nil(t, row)
}

func TestBatch_OrderFixtures(t *testing.T) {
	rows := testutil.NewBuilder(t).WithOrderTestData().Build()

	tests := []struct {
		query string
		want  []string
	}{
		{`[status] = "open"`, []string{"order-1", "order-4"}},
		{`[name] IS BLANK`, []string{"order-3", "order-5"}},
		{`[name] CONTAINS "idget"`, []string{"order-1", "order-4"}},
		{`[createdAt] >= "2024-01-01"`, []string{"order-1", "order-3", "order-5"}},
		{`[price] BETWEEN 0 AND 100`, []string{"order-2", "order-3"}},
		{`NOT [active] = true OR [price] < 0`, []string{"order-2", "order-4", "order-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			g := mustParse(t, tt.query)
			matched := EvaluateFilterBatch(g, rows, testColumns)
			assert.Equal(t, tt.want, testutil.IDs(matched))
			assert.Equal(t, len(tt.want), CountMatches(g, rows, testColumns))
		})
	}
}
