package fql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/filterql/internal/testutil"
)

func TestInferColumns(t *testing.T) {
	rows := testutil.NewBuilder(t).WithOrderTestData().Build()

	cols := InferColumns(rows, 0)
	require.Equal(t, []ColumnDef{
		{ID: "active", Name: "active", Type: TypeBoolean},
		{ID: "createdAt", Name: "createdAt", Type: TypeDate},
		{ID: "id", Name: "id", Type: TypeString},
		{ID: "name", Name: "name", Type: TypeString},
		{ID: "price", Name: "price", Type: TypeNumber},
		{ID: "status", Name: "status", Type: TypeString},
	}, cols)
}

func TestInferColumns_Enums(t *testing.T) {
	rows := testutil.NewBuilder(t).WithOrderTestData().Build()

	cols := InferColumns(rows, 3)
	byKey := columnIndex(cols)

	require.Equal(t, TypeEnum, byKey["status"].Type)
	require.Equal(t, []string{"closed", "open", "pending"}, byKey["status"].EnumValues)
	require.Equal(t, TypeString, byKey["id"].Type, "five distinct ids exceed the threshold")
	require.Equal(t, TypeDate, byKey["createdAt"].Type)
}

func TestInferColumns_MixedAndNull(t *testing.T) {
	rows := []Row{
		{"mixed": "a", "onlyNull": nil, "num": 1},
		{"mixed": 2.0, "num": 2.5},
	}

	cols := InferColumns(rows, 10)
	byKey := columnIndex(cols)

	require.Equal(t, TypeString, byKey["mixed"].Type)
	require.Empty(t, byKey["mixed"].EnumValues)
	require.Equal(t, TypeString, byKey["onlyNull"].Type)
	require.Equal(t, TypeNumber, byKey["num"].Type)
}

func TestInferColumns_InferredSchemaValidatesRows(t *testing.T) {
	rows := testutil.NewBuilder(t).WithOrderTestData().Build()
	cols := InferColumns(rows, 3)

	g := mustParse(t, `[status] = "open"`)
	require.Equal(t, 2, CountMatches(g, rows, cols))
}
