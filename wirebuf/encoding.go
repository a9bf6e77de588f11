package wirebuf

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/google/uuid"
)

// maxVarGroups is how many 7-bit groups the reader tolerates before declaring
// the data corrupt. Five groups cover 32 bits; the extra slack keeps payloads
// produced by encoders that emit redundant continuation groups decodable.
const maxVarGroups = 6

// PutVarUint32 writes v as 1–5 groups of 7 payload bits, least-significant
// group first, high bit set on every group except the last.
func (b *Buffer) PutVarUint32(v uint32) *Buffer {
	for {
		group := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			group |= 0x80
		}
		b.AppendByte(group)
		if v == 0 {
			return b
		}
	}
}

// ReadVarUint32 consumes groups until one has the continuation bit clear.
// Consuming a seventh group fails with a *DecodeError.
func (b *Buffer) ReadVarUint32() (uint32, error) {
	var result uint32
	for n := 0; ; n++ {
		group, err := b.ReadByte()
		if err != nil {
			return 0, err
		}
		if n >= maxVarGroups {
			return 0, decodeErrf(b.reg.buf[:b.w], b.r, nil, "varint too long")
		}
		if shift := 7 * n; shift < 32 {
			result |= uint32(group&0x7f) << shift
		}
		if group&0x80 == 0 {
			return result, nil
		}
	}
}

// PutByteArray writes a varint length followed by the raw bytes.
func (b *Buffer) PutByteArray(v []byte) *Buffer {
	b.PutVarUint32(uint32(len(v)))
	b.AppendRaw(v)
	return b
}

// ReadByteArray reads a varint length then exactly that many bytes. Fewer
// remaining bytes than declared is a *DecodeError.
func (b *Buffer) ReadByteArray() ([]byte, error) {
	n, err := b.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	return b.ReadBytes(int(n))
}

// PutString writes a presence byte (1 = absent), then the UTF-8 bytes as a
// byte array.
func (b *Buffer) PutString(s *string) *Buffer {
	b.AppendBool(s == nil)
	if s == nil {
		return b
	}
	b.PutByteArray([]byte(*s))
	return b
}

// ReadString mirrors PutString. Invalid UTF-8 is a *DecodeError.
func (b *Buffer) ReadString() (*string, error) {
	absent, err := b.ReadBool()
	if err != nil || absent {
		return nil, err
	}
	raw, err := b.ReadByteArray()
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, decodeErrf(b.reg.buf[:b.w], b.r, nil, "string is not valid UTF-8")
	}
	s := string(raw)
	return &s, nil
}

// PutUniqueID writes a presence byte, then the id's two 64-bit halves
// big-endian, most-significant first.
func (b *Buffer) PutUniqueID(id *uuid.UUID) *Buffer {
	b.AppendBool(id == nil)
	if id == nil {
		return b
	}
	b.AppendUint64(binary.BigEndian.Uint64(id[:8]))
	b.AppendUint64(binary.BigEndian.Uint64(id[8:]))
	return b
}

// ReadUniqueID mirrors PutUniqueID.
func (b *Buffer) ReadUniqueID() (*uuid.UUID, error) {
	absent, err := b.ReadBool()
	if err != nil || absent {
		return nil, err
	}
	msb, err := b.ReadUint64()
	if err != nil {
		return nil, err
	}
	lsb, err := b.ReadUint64()
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], msb)
	binary.BigEndian.PutUint64(id[8:], lsb)
	return &id, nil
}

// PutObject writes a presence byte, then delegates to the object's encoder.
// A nil object (or a typed nil pointer) encodes as absent.
func (b *Buffer) PutObject(obj Object) *Buffer {
	absent := isNilObject(obj)
	b.AppendBool(absent)
	if absent {
		return b
	}
	obj.EncodeTo(b)
	return b
}

// ReadObject reads an optional object of type T. An absent marker or a failed
// construction (logged) yields the zero value with no error; a malformed body
// is a *DecodeError.
func ReadObject[T Object](b *Buffer) (T, error) {
	var zero T
	absent, err := b.ReadBool()
	if err != nil || absent {
		return zero, err
	}
	obj, ok := newValue[T]()
	if !ok {
		return zero, nil
	}
	if err := obj.DecodeFrom(b); err != nil {
		return zero, err
	}
	return obj, nil
}

// PutObjects writes a varint count, then each element back to back with no
// per-element presence byte.
func PutObjects[T Object](b *Buffer, objects []T) *Buffer {
	b.PutVarUint32(uint32(len(objects)))
	for _, obj := range objects {
		obj.EncodeTo(b)
	}
	return b
}

// ReadObjects reads a collection frame of T. On the first element that cannot
// be constructed the partial slice read so far is returned and the remaining
// element bytes stay unread; callers that keep decoding past a truncated
// collection will be misaligned. A malformed element is a *DecodeError.
func ReadObjects[T Object](b *Buffer) ([]T, error) {
	n, err := b.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for i := uint32(0); i < n; i++ {
		obj, ok := newValue[T]()
		if !ok {
			return out, nil
		}
		if err := obj.DecodeFrom(b); err != nil {
			return out, err
		}
		out = append(out, obj)
	}
	return out, nil
}
