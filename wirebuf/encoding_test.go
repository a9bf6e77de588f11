package wirebuf

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type point struct {
	X uint32
	Y uint32
}

func (p *point) EncodeTo(b *Buffer) {
	b.PutVarUint32(p.X).PutVarUint32(p.Y)
}

func (p *point) DecodeFrom(b *Buffer) error {
	var err error
	if p.X, err = b.ReadVarUint32(); err != nil {
		return err
	}
	p.Y, err = b.ReadVarUint32()
	return err
}

func TestVarUint32Boundaries(t *testing.T) {
	tests := []struct {
		value uint32
		wire  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16383, []byte{0xff, 0x7f}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{0xffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tt := range tests {
		b := Acquire()
		b.PutVarUint32(tt.value)
		require.Equal(t, tt.wire, b.Bytes(), "encoding %d", tt.value)
		got, err := b.ReadVarUint32()
		require.NoError(t, err)
		require.Equal(t, tt.value, got)
		b.Release()
	}
}

func TestVarUint32RedundantGroups(t *testing.T) {
	// Six groups decode even though five suffice for 32 bits.
	b := Wrap([]byte{0x81, 0x80, 0x80, 0x80, 0x80, 0x00})
	defer b.Release()
	got, err := b.ReadVarUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(1), got)
}

func TestVarUint32TooLong(t *testing.T) {
	b := Wrap([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00})
	defer b.Release()
	_, err := b.ReadVarUint32()
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestVarUint32Truncated(t *testing.T) {
	b := Wrap([]byte{0x80, 0x80})
	defer b.Release()
	_, err := b.ReadVarUint32()
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestByteArrayRoundTrip(t *testing.T) {
	b := Acquire()
	defer b.Release()
	b.PutByteArray([]byte("payload"))
	require.Equal(t, append([]byte{7}, "payload"...), b.Bytes())
	got, err := b.ReadByteArray()
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)

	b.PutByteArray(nil)
	got, err = b.ReadByteArray()
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestByteArrayTruncated(t *testing.T) {
	b := Wrap([]byte{5, 'a', 'b'}) // declares 5 bytes, carries 2
	defer b.Release()
	_, err := b.ReadByteArray()
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "hello", "héllo wörld", "日本語"} {
		b := Acquire()
		b.PutString(&s)
		got, err := b.ReadString()
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, s, *got)
		b.Release()
	}
}

func TestStringAbsent(t *testing.T) {
	b := Acquire()
	defer b.Release()
	b.PutString(nil)
	require.Equal(t, []byte{1}, b.Bytes())
	got, err := b.ReadString()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStringInvalidUTF8(t *testing.T) {
	b := Acquire()
	defer b.Release()
	b.AppendBool(false)
	b.PutByteArray([]byte{0xff, 0xfe})
	_, err := b.ReadString()
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestUniqueIDRoundTrip(t *testing.T) {
	id := uuid.MustParse("a7a0c6b2-4f9d-41f3-9b54-7e3fbb3cf112")
	b := Acquire()
	defer b.Release()
	b.PutUniqueID(&id)

	// Presence byte, then the raw halves big-endian, most-significant first.
	require.Equal(t, append([]byte{0}, id[:]...), b.Bytes())

	got, err := b.ReadUniqueID()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, id, *got)
}

func TestUniqueIDAbsent(t *testing.T) {
	b := Acquire()
	defer b.Release()
	b.PutUniqueID(nil)
	require.Equal(t, []byte{1}, b.Bytes())
	got, err := b.ReadUniqueID()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestObjectRoundTrip(t *testing.T) {
	b := Acquire()
	defer b.Release()
	b.PutObject(&point{X: 300, Y: 7})

	got, err := ReadObject[*point](b)
	require.NoError(t, err)
	require.Equal(t, &point{X: 300, Y: 7}, got)
}

func TestObjectAbsent(t *testing.T) {
	b := Acquire()
	defer b.Release()
	b.PutObject(nil)
	var nilPoint *point
	b.PutObject(nilPoint) // typed nil encodes as absent too

	require.Equal(t, []byte{1, 1}, b.Bytes())
	for i := 0; i < 2; i++ {
		got, err := ReadObject[*point](b)
		require.NoError(t, err)
		require.Nil(t, got)
	}
}

func TestObjectMalformed(t *testing.T) {
	b := Wrap([]byte{0, 0x80}) // present, then a truncated varint
	defer b.Release()
	_, err := ReadObject[*point](b)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestObjectsRoundTrip(t *testing.T) {
	in := []*point{{1, 2}, {3, 4}, {300, 400}}
	b := Acquire()
	defer b.Release()
	PutObjects(b, in)

	out, err := ReadObjects[*point](b)
	require.NoError(t, err)
	require.Equal(t, in, out)
	require.Equal(t, 0, b.ReadableBytes())
}

type flaky struct {
	n uint32
}

func (f *flaky) EncodeTo(b *Buffer) {
	b.PutVarUint32(f.n)
}

func (f *flaky) DecodeFrom(b *Buffer) error {
	var err error
	f.n, err = b.ReadVarUint32()
	return err
}

func TestObjectsPartialDecodeOnConstructionFailure(t *testing.T) {
	constructed := 0
	Register(func() *flaky {
		constructed++
		if constructed == 3 {
			return nil
		}
		return new(flaky)
	})

	b := Acquire()
	defer b.Release()
	PutObjects(b, []*flaky{{10}, {11}, {12}, {13}, {14}})

	// The third element cannot be constructed: the two already read are
	// returned and the bytes of elements 3–5 stay unread on the buffer.
	out, err := ReadObjects[*flaky](b)
	require.NoError(t, err)
	require.Equal(t, []*flaky{{10}, {11}}, out)
	require.Equal(t, 3, b.ReadableBytes())
}
