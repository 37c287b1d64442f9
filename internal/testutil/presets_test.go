package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreset_OrderTestData(t *testing.T) {
	rows := NewBuilder(t).WithOrderTestData().Build()

	require.Equal(t, []string{"order-1", "order-2", "order-3", "order-4", "order-5"}, IDs(rows))

	require.Equal(t, "Widget", rows[0]["name"])
	require.Equal(t, float64(120), rows[0]["price"])

	require.Equal(t, "", rows[2]["name"])

	_, ok := rows[3]["createdAt"]
	require.False(t, ok, "order-4 has no createdAt entry")

	name, ok := rows[4]["name"]
	require.True(t, ok)
	require.Nil(t, name)
}
