/*
Package wirebuf implements the binary wire format used to persist documents:
a cursor-addressed byte buffer with variable-length integers, presence-byte
optionals and recursive object framing on top of raw fixed-width primitives.

We implement:

1. Buffers, cursor pairs (reader, writer) over growable reference-counted
byte regions acquired from a pool.

2. Extended encodings: varints, length-prefixed byte arrays, nullable strings,
nullable 128-bit unique ids, nullable objects and object collections.

3. The Object capability, the encode/decode contract a value type implements
to become persistable, plus a factory registry used to construct blank
instances during decode.

# Wire format

Varint: 1–5 groups of 7 payload bits, least-significant group first,
high bit set on every group except the last. The reader tolerates up to six
groups (redundant continuation groups decode fine) and faults once a seventh
group is consumed.

Byte array: varint length, then the raw bytes.

Presence byte: one byte preceding every optional field; 1 means absent.

Unique id: presence byte, then two big-endian 64-bit halves,
most-significant first.

String: presence byte, then the UTF-8 bytes as a byte array.

Object: presence byte, then the object's fields in its fixed field order.
No type tag is embedded anywhere; reader and writer must agree on the type.

Object collection: varint count, then each element back to back with no
per-element presence byte.
*/
package wirebuf
