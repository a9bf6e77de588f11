package wiredb

import (
	"context"

	"go.uber.org/zap"

	"github.com/anubisdb/wiredb/wirebuf"
)

// Table is the generic async CRUD surface over one logical table. Each row is
// a (key, identifier, data) triple: key is the stable identity, identifier a
// mutable non-unique classification field used for alternate lookup, bulk
// removal and numeric ordering, data the value encoded through wirebuf.
type Table[V wirebuf.Object] struct {
	db   *DB
	name string
}

// OpenTable creates the table if it does not exist and returns a handle to
// it. There is no further lifecycle: a table handle is ready on return and
// never transitions to a closed state of its own.
func OpenTable[V wirebuf.Object](db *DB, name string) (*Table[V], error) {
	_, err := db.exec.ExecUpdate(context.Background(), Statement{Kind: StmtCreateTable, Table: name})
	if err != nil {
		return nil, stmtErrf(name, StmtCreateTable, err)
	}
	return &Table[V]{db: db, name: name}, nil
}

func (t *Table[V]) Name() string {
	return t.name
}

// encodeValue runs one encode cycle: acquire a buffer, encode, drain.
func (t *Table[V]) encodeValue(value V) []byte {
	buf := wirebuf.Acquire()
	defer buf.Release()
	value.EncodeTo(buf)
	return buf.ToByteArray()
}

// decodeValue runs one decode cycle over a row payload. ok=false with a nil
// error means construction degraded and the row yields nothing; a non-nil
// error is malformed data.
func (t *Table[V]) decodeValue(data []byte) (V, bool, error) {
	var zero V
	obj, ok := wirebuf.New[V]()
	if !ok {
		return zero, false, nil
	}
	buf := wirebuf.Wrap(data)
	defer buf.Release()
	if err := obj.DecodeFrom(buf); err != nil {
		return zero, false, err
	}
	return obj, true, nil
}

// decodeRowOrSkip applies the multi-row failure policy: a row whose payload
// is absent or does not decode is skipped, not surfaced.
func (t *Table[V]) decodeRowOrSkip(key string, data []byte) (V, bool) {
	var zero V
	if data == nil {
		return zero, false
	}
	value, ok, err := t.decodeValue(data)
	if err != nil {
		t.db.logger.Warn("skipping row with undecodable data",
			zap.String("table", t.name), zap.String("key", key), zap.Error(err))
		return zero, false
	}
	return value, ok
}

func (t *Table[V]) execUpdate(ctx context.Context, stmt Statement) (bool, error) {
	applied, err := t.db.exec.ExecUpdate(ctx, stmt)
	if err != nil {
		return false, stmtErrf(t.name, stmt.Kind, err)
	}
	return applied, nil
}

func (t *Table[V]) query(ctx context.Context, stmt Statement) (Rows, error) {
	rows, err := t.db.exec.Query(ctx, stmt)
	if err != nil {
		return nil, stmtErrf(t.name, stmt.Kind, err)
	}
	return rows, nil
}
