package wiredb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anubisdb/wiredb/wirebuf"
)

type profile struct {
	Nick  string   `msgpack:"n"`
	Level int      `msgpack:"l"`
	Perks []string `msgpack:"p"`
}

func TestMsgpackObjectRoundTrip(t *testing.T) {
	in := &MsgpackObject[profile]{Value: profile{Nick: "zed", Level: 7, Perks: []string{"fast", "quiet"}}}

	buf := wirebuf.Acquire()
	defer buf.Release()
	in.EncodeTo(buf)

	out := &MsgpackObject[profile]{}
	require.NoError(t, out.DecodeFrom(buf))
	require.Equal(t, in.Value, out.Value)
}

func TestMsgpackObjectInTable(t *testing.T) {
	db := OpenMemory(Options{})
	defer db.Close()
	tbl, err := OpenTable[*MsgpackObject[profile]](db, "profiles")
	require.NoError(t, err)

	mustWait(t, tbl.Insert("p1", "7", &MsgpackObject[profile]{Value: profile{Nick: "zed", Level: 7}}))
	got := mustWait(t, tbl.Get("p1", ""))
	require.NotNil(t, got)
	require.Equal(t, "zed", got.Value.Nick)
	require.Equal(t, 7, got.Value.Level)
}
