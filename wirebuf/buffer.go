package wirebuf

import (
	"encoding/binary"
	"fmt"
)

// Buffer is a cursor-addressed view over one reference to a shared byte
// region. Reads advance the reader index, writes advance the writer index and
// grow the region as needed; 0 ≤ reader ≤ writer ≤ capacity holds at all
// times. A Buffer is not safe for concurrent use.
//
// Every Buffer must be released exactly once on every exit path. Acquire one
// immediately before an encode or decode cycle and defer Release.
type Buffer struct {
	reg *region
	r   int
	w   int
}

// Acquire returns an empty pooled buffer ready for encoding.
func Acquire() *Buffer {
	return &Buffer{reg: acquireRegion()}
}

// Wrap returns a buffer reading from caller-owned bytes without copying.
// The writer index starts at len(data).
func Wrap(data []byte) *Buffer {
	return &Buffer{reg: wrapRegion(data), w: len(data)}
}

// Retain adds one reference to the underlying region.
func (b *Buffer) Retain() *Buffer {
	b.reg.retain()
	return b
}

// Release drops one reference; the region is recycled once all holders
// released theirs. Returns true when the region was freed.
func (b *Buffer) Release() bool {
	return b.reg.release()
}

// RefCount reports the current number of references to the region.
func (b *Buffer) RefCount() int {
	return int(b.reg.refs.Load())
}

func (b *Buffer) ReaderIndex() int { return b.r }
func (b *Buffer) WriterIndex() int { return b.w }

func (b *Buffer) SetReaderIndex(i int) {
	if i < 0 || i > b.w {
		panic(fmt.Errorf("wirebuf: reader index %d out of range [0,%d]", i, b.w))
	}
	b.r = i
}

func (b *Buffer) SetWriterIndex(i int) {
	if i < b.r || i > len(b.reg.buf) {
		panic(fmt.Errorf("wirebuf: writer index %d out of range [%d,%d]", i, b.r, len(b.reg.buf)))
	}
	b.w = i
}

// ReadableBytes reports how many bytes remain between the cursors.
func (b *Buffer) ReadableBytes() int { return b.w - b.r }

func (b *Buffer) Capacity() int { return cap(b.reg.buf) }

// Clear resets both cursors without touching the region's contents.
func (b *Buffer) Clear() {
	b.r, b.w = 0, 0
}

// Bytes returns the unread portion as a view into the region. The view is
// valid until the next write or Release.
func (b *Buffer) Bytes() []byte {
	return b.reg.buf[b.r:b.w]
}

// ToByteArray drains all unread bytes as an owned copy, advancing the reader
// index to the writer index.
func (b *Buffer) ToByteArray() []byte {
	out := make([]byte, b.w-b.r)
	copy(out, b.reg.buf[b.r:b.w])
	b.r = b.w
	return out
}

func (b *Buffer) Skip(n int) error {
	if b.r+n > b.w {
		return decodeErrf(b.reg.buf[:b.w], b.r, nil, "cannot skip %d bytes, %d readable", n, b.w-b.r)
	}
	b.r += n
	return nil
}

// IndexOf returns the absolute index of the first occurrence of v in
// [from, to), or -1.
func (b *Buffer) IndexOf(from, to int, v byte) int {
	if from < 0 {
		from = 0
	}
	if to > b.w {
		to = b.w
	}
	for i := from; i < to; i++ {
		if b.reg.buf[i] == v {
			return i
		}
	}
	return -1
}

// Slice returns a view of [from, to) without moving the cursors.
func (b *Buffer) Slice(from, to int) []byte {
	if from < 0 || to > b.w || from > to {
		panic(fmt.Errorf("wirebuf: slice [%d,%d) out of range [0,%d]", from, to, b.w))
	}
	return b.reg.buf[from:to]
}

// reserve makes room for n bytes at the writer index and returns their offset.
func (b *Buffer) reserve(n int) int {
	end := b.w + n
	if end > len(b.reg.buf) {
		b.reg.ensureCapacity(end)
		b.reg.buf = b.reg.buf[:end]
	}
	off := b.w
	b.w = end
	return off
}

// take consumes n bytes at the reader index and returns their offset.
func (b *Buffer) take(n int) (int, error) {
	if b.r+n > b.w {
		return 0, decodeErrf(b.reg.buf[:b.w], b.r, nil, "not enough data: %d bytes readable, %d wanted", b.w-b.r, n)
	}
	off := b.r
	b.r += n
	return off, nil
}

func (b *Buffer) AppendByte(v byte) {
	off := b.reserve(1)
	b.reg.buf[off] = v
}

func (b *Buffer) AppendBool(v bool) {
	if v {
		b.AppendByte(1)
	} else {
		b.AppendByte(0)
	}
}

func (b *Buffer) AppendUint16(v uint16) {
	off := b.reserve(2)
	binary.BigEndian.PutUint16(b.reg.buf[off:], v)
}

func (b *Buffer) AppendUint32(v uint32) {
	off := b.reserve(4)
	binary.BigEndian.PutUint32(b.reg.buf[off:], v)
}

func (b *Buffer) AppendUint64(v uint64) {
	off := b.reserve(8)
	binary.BigEndian.PutUint64(b.reg.buf[off:], v)
}

func (b *Buffer) AppendInt64(v int64) {
	b.AppendUint64(uint64(v))
}

func (b *Buffer) AppendRaw(v []byte) {
	off := b.reserve(len(v))
	copy(b.reg.buf[off:], v)
}

func (b *Buffer) ReadByte() (byte, error) {
	off, err := b.take(1)
	if err != nil {
		return 0, err
	}
	return b.reg.buf[off], nil
}

func (b *Buffer) ReadBool() (bool, error) {
	v, err := b.ReadByte()
	return v != 0, err
}

func (b *Buffer) ReadUint16() (uint16, error) {
	off, err := b.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b.reg.buf[off:]), nil
}

func (b *Buffer) ReadUint32() (uint32, error) {
	off, err := b.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b.reg.buf[off:]), nil
}

func (b *Buffer) ReadUint64() (uint64, error) {
	off, err := b.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b.reg.buf[off:]), nil
}

func (b *Buffer) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	off, err := b.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.reg.buf[off:])
	return out, nil
}

// ByteAt and SetByteAt access written bytes without moving the cursors.

func (b *Buffer) ByteAt(i int) byte {
	if i < 0 || i >= b.w {
		panic(fmt.Errorf("wirebuf: index %d out of range [0,%d)", i, b.w))
	}
	return b.reg.buf[i]
}

func (b *Buffer) SetByteAt(i int, v byte) {
	if i < 0 || i >= b.w {
		panic(fmt.Errorf("wirebuf: index %d out of range [0,%d)", i, b.w))
	}
	b.reg.buf[i] = v
}

func (b *Buffer) Uint64At(i int) uint64 {
	if i < 0 || i+8 > b.w {
		panic(fmt.Errorf("wirebuf: index %d out of range [0,%d)", i, b.w))
	}
	return binary.BigEndian.Uint64(b.reg.buf[i:])
}

func (b *Buffer) SetUint64At(i int, v uint64) {
	if i < 0 || i+8 > b.w {
		panic(fmt.Errorf("wirebuf: index %d out of range [0,%d)", i, b.w))
	}
	binary.BigEndian.PutUint64(b.reg.buf[i:], v)
}
