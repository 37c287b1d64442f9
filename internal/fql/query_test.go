package fql

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/filterql/internal/log"
)

func TestParseQuery_Empty(t *testing.T) {
	for _, input := range []string{"", "  ", "\t\n"} {
		result := ParseQuery(input, testColumns)
		require.True(t, result.OK())
		assert.Equal(t, &FilterGroup{Op: OpAnd, Filters: []Filter{}}, result.Filters)
		assert.Empty(t, result.Errors)
	}
}

func TestParseQuery_Success(t *testing.T) {
	result := ParseQuery(`[status] equals "open" AND [price] > 100`, testColumns)
	require.True(t, result.OK())
	assert.Empty(t, result.Errors)
	assert.Equal(t, and(
		cond("status", FuncEquals, "open"),
		cond("price", FuncGreaterThan, 100.0),
	), *result.Filters)
}

func TestParseQuery_SyntaxErrorsSkipValidation(t *testing.T) {
	result := ParseQuery(`[unknown] >>> 1`, testColumns)
	assert.Nil(t, result.Filters)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "mismatched input")
}

func TestParseQuery_SemanticErrors(t *testing.T) {
	result := ParseQuery(`[name] > "test"`, testColumns)
	assert.Nil(t, result.Filters)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Operator 'greater than' is not compatible with type 'string'", result.Errors[0].Message)

	result = ParseQuery(`[a] = 1 AND [b] = 2 AND [name] < "x"`, testColumns)
	assert.Equal(t, []string{
		"Column 'a' does not exist",
		"Column 'b' does not exist",
		"Operator 'less than' is not compatible with type 'string'",
	}, messages(result.Errors))
}

func TestParseQuery_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	restore := log.InitWriter(&buf)
	defer restore()

	ParseQuery("[price] >", testColumns)
	assert.Contains(t, buf.String(), "[query] Syntax errors")

	ParseQuery("[price] BETWEEN 2 AND 1", testColumns)
	assert.Contains(t, buf.String(), "Expanded BETWEEN")
}

func TestParseQueryStrict(t *testing.T) {
	g, err := ParseQueryStrict(`[price] = 1`, testColumns)
	require.NoError(t, err)
	assert.Equal(t, and(cond("price", FuncEquals, 1.0)), g)

	_, err = ParseQueryStrict(`[x] = 1 AND [y] = 2`, testColumns)
	require.Error(t, err)
	assert.Equal(t, "parse errors: Column 'x' does not exist; Column 'y' does not exist", err.Error())

	var perrs ParseErrors
	require.True(t, errors.As(err, &perrs))
	assert.Len(t, perrs, 2)
}

func TestErrorCollector(t *testing.T) {
	c := NewErrorCollector()
	assert.False(t, c.HasErrors())

	c.AddWarning("heads up")
	assert.False(t, c.HasErrors())

	c.AddSyntaxError("bad", 2, 5)
	c.AddSemanticError("worse")
	c.AddInputError("whole", "héllo")
	assert.True(t, c.HasErrors())

	assert.Equal(t, []ParseError{
		{Message: "heads up", Severity: SeverityWarning},
		{Message: "bad", Start: 2, End: 5, Severity: SeverityError},
		{Message: "worse", Severity: SeverityError},
		{Message: "whole", Start: 0, End: 5, Severity: SeverityError},
	}, c.Errors())
	assert.True(t, c.Errors()[0].IsWarning())

	c.Clear()
	assert.Empty(t, c.Errors())
}
