package fql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFormatQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces symbolic operators", "[price]>100", "[price] > 100"},
		{"negation gets parens", "not [active] equals true", "NOT ([active] equals true)"},
		{"double equals", "[price] == 100", "[price] equals 100"},
		{"single equals", `[status] = "open"`, `[status] equals "open"`},
		{"starts with", `[name] starts with "John"`, `[name] STARTS WITH "John"`},
		{"ends with", `[name] ends with "son"`, `[name] ENDS WITH "son"`},
		{"is blank", "[name] is blank", "[name] IS BLANK"},
		{"is not blank", "[name] is not blank", "[name] IS NOT BLANK"},
		{"escaped quote", `[name] contains "test\"value"`, `[name] contains "test\"value"`},
		{"decimal", "[price] = 123.45", "[price] equals 123.45"},
		{"word operators", "[price] greater than or equal 5 and [price] less than 10",
			"[price] >= 5 AND [price] < 10"},
		{"mixed case", `[price] GrEaTeR tHaN 100 AnD [status] EqUaLs "open"`, `[price] > 100 AND [status] equals "open"`},
		{"complex nesting",
			`(([price] > 100 or [price] < 10) and [status] = "open") or ([active] equals true and [name] contains "test")`,
			`(([price] > 100 OR [price] < 10) AND [status] equals "open") OR ([active] equals true AND [name] contains "test")`},
		{"redundant parens", `(([price] > 1))`, `[price] > 1`},
		{"negated group", `not ([price] > 1 or [price] < 0)`, `NOT ([price] > 1 OR [price] < 0)`},
		{"double negation", `not not [active] = true`, `[active] equals true`},
		{"between", "[price] BETWEEN 65 AND 18", "[price] >= 18 AND [price] <= 65"},
		{"collapses whitespace", "  [price]\t>\n100  ", "[price] > 100"},
		{"not contains", `[name] not contains "x"`, `NOT ([name] contains "x")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatQuery(tt.input, testColumns)
			require.Empty(t, result.Errors)
			assert.Equal(t, tt.expected, result.Formatted)
			assert.True(t, IsIdempotent(tt.input, testColumns))
			assert.True(t, IsCanonical(result.Formatted, testColumns))
		})
	}
}

func TestFormatQuery_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		result := FormatQuery(input, testColumns)
		assert.Equal(t, "", result.Formatted)
		assert.Empty(t, result.Errors)
	}
}

func TestFormatQuery_ErrorsReturnOriginal(t *testing.T) {
	tests := []string{
		"[price] >>> 100",
		`[unknown] = "x"`,
		`[name] > "test"`,
		"([price] > 1",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			result := FormatQuery(input, testColumns)
			assert.Equal(t, input, result.Formatted)
			assert.NotEmpty(t, result.Errors)
			assert.False(t, IsCanonical(input, testColumns))
			assert.False(t, IsIdempotent(input, testColumns))
		})
	}
}

func TestFormatQueryString(t *testing.T) {
	out, err := FormatQueryString("[price]>1", testColumns)
	require.NoError(t, err)
	assert.Equal(t, "[price] > 1", out)

	_, err = FormatQueryString(`[nope] = 1`, testColumns)
	require.Error(t, err)
	assert.Equal(t, "Column 'nope' does not exist", err.Error())
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("[price] > 100", testColumns))
	assert.False(t, IsCanonical("[price]>100", testColumns))
	assert.False(t, IsCanonical("[price] greater than 100", testColumns))
}

func TestFormatQueryMultiple(t *testing.T) {
	results := FormatQueryMultiple("[price]>1 and [price]<5", testColumns, 3)
	assert.Equal(t, []string{
		"[price] > 1 AND [price] < 5",
		"[price] > 1 AND [price] < 5",
		"[price] > 1 AND [price] < 5",
	}, results)

	results = FormatQueryMultiple("[price] >", testColumns, 3)
	assert.Equal(t, []string{"[price] >"}, results)
}

func TestFormatQuery_Options(t *testing.T) {
	result := FormatQuery("[price] != 3", testColumns)
	assert.Equal(t, "[price] equals 3", result.Formatted)

	result = FormatQuery("[price] != 3", testColumns, WithNegatedNotEquals())
	assert.Equal(t, "NOT ([price] equals 3)", result.Formatted)

	result = FormatQuery(`[status] = "archived"`, testColumns, WithStrictEnums())
	assert.NotEmpty(t, result.Errors)
}

// Generators for ASTs that are valid against testColumns.

var testDates = []string{"2023-01-01", "2023-06-15", "2024-02-29", "2024-12-31"}

func genCondition(t *rapid.T) Filter {
	column := rapid.SampledFrom(testColumns).Draw(t, "column")
	fn := rapid.SampledFrom(AllowedOperators(column.Type)).Draw(t, "function")

	var f Filter
	if fn.IsBlankCheck() {
		f = cond(column.ID, fn)
	} else {
		var arg any
		switch column.Type {
		case TypeString:
			arg = rapid.StringMatching(`[a-zA-Z0-9 "]{0,8}`).Draw(t, "string")
		case TypeNumber:
			arg = rapid.Float64Range(-1e6, 1e6).Draw(t, "number")
		case TypeBoolean:
			arg = rapid.Bool().Draw(t, "bool")
		case TypeDate:
			arg = rapid.SampledFrom(testDates).Draw(t, "date")
		case TypeEnum:
			arg = rapid.SampledFrom(column.EnumValues).Draw(t, "enum")
		}
		f = cond(column.ID, fn, arg)
	}
	f.Negate = rapid.Bool().Draw(t, "negate")
	return f
}

func genGroup(t *rapid.T, depth int) FilterGroup {
	op := rapid.SampledFrom([]LogicalOp{OpAnd, OpOr}).Draw(t, "op")
	n := rapid.IntRange(1, 3).Draw(t, "filters")
	g := FilterGroup{Op: op}
	for i := 0; i < n; i++ {
		if depth < 3 && rapid.IntRange(0, 3).Draw(t, "kind") == 0 {
			f := GroupFilter(genGroup(t, depth+1))
			f.Negate = rapid.Bool().Draw(t, "negateGroup")
			g.Filters = append(g.Filters, f)
			continue
		}
		g.Filters = append(g.Filters, genCondition(t))
	}
	return g
}

func TestFormatQuery_IdempotentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := PrintFilterGroup(genGroup(t, 0))

		first := FormatQuery(text, testColumns)
		require.Empty(t, first.Errors, "printed text must parse: %s", text)

		second := FormatQuery(first.Formatted, testColumns)
		require.Empty(t, second.Errors)
		require.Equal(t, first.Formatted, second.Formatted)
		require.True(t, IsCanonical(first.Formatted, testColumns))
	})
}

func TestFormatQuery_PreservesMeaningProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := genGroup(t, 0)
		result := ParseQuery(PrintFilterGroup(g), testColumns)
		require.True(t, result.OK())

		row := genRow(t)
		require.Equal(t, EvaluateFilter(g, row, testColumns), EvaluateFilter(*result.Filters, row, testColumns))
	})
}
