package wiredb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceRowsColumns(t *testing.T) {
	r := &sliceRows{rows: []memRow{{key: "k1", identifier: "7", data: []byte{1, 2}}}}
	require.True(t, r.Next())

	require.Equal(t, "k1", r.Text(ColKey))
	require.Equal(t, "7", r.Text(ColIdentifier))
	require.Equal(t, []byte{1, 2}, r.Bytes(ColData))
	require.Equal(t, int64(7), r.Long(ColIdentifier))

	require.Panics(t, func() { r.Text("ident") })
	require.Panics(t, func() { r.Bytes("ident") })

	require.False(t, r.Next())
}

func TestSortRowsByIdentifierLimit(t *testing.T) {
	rows := []memRow{
		{key: "k1", identifier: "10"},
		{key: "k2", identifier: "banana"},
		{key: "k3", identifier: "2"},
	}
	sorted := sortRowsByIdentifier(rows, 2)
	require.Len(t, sorted, 2)
	require.Equal(t, "k2", sorted[0].key)
	require.Equal(t, "k3", sorted[1].key)
}
