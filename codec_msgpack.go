package wiredb

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/anubisdb/wiredb/wirebuf"
)

// MsgpackObject makes any msgpack-marshalable struct persistable without
// writing field-by-field codecs: the whole value travels as one
// length-prefixed msgpack frame.
//
//	profiles, _ := wiredb.OpenTable[*wiredb.MsgpackObject[Profile]](db, "profiles")
//	profiles.Insert("p1", "7", &wiredb.MsgpackObject[Profile]{Value: profile})
type MsgpackObject[T any] struct {
	Value T
}

func (m *MsgpackObject[T]) EncodeTo(b *wirebuf.Buffer) {
	data, err := msgpack.Marshal(m.Value)
	if err != nil {
		panic(fmt.Errorf("%T: marshaling: %w", m.Value, err))
	}
	b.PutByteArray(data)
}

func (m *MsgpackObject[T]) DecodeFrom(b *wirebuf.Buffer) error {
	data, err := b.ReadByteArray()
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(data, &m.Value); err != nil {
		return fmt.Errorf("%T: unmarshaling: %w", m.Value, err)
	}
	return nil
}
