package wiredb

import "github.com/anubisdb/wiredb/wirebuf"

// Entry is one materialized row: primary key, classification identifier, and
// the decoded value. Entries returned by a table keep a handle back to it,
// so a caller iterating entries can write back or delete without threading
// the table through.
type Entry[V wirebuf.Object] struct {
	Key        string
	Identifier string
	Value      V

	table *Table[V]
}

// Save re-inserts the entry's current value under its key and identifier.
func (e Entry[V]) Save() *Future[struct{}] {
	return e.table.Insert(e.Key, e.Identifier, e.Value)
}

// Remove deletes the entry's row.
func (e Entry[V]) Remove() *Future[struct{}] {
	return e.table.Remove(e.Key)
}
