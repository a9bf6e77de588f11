package wiredb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/anubisdb/wiredb/wirebuf"
)

// boltExecutor interprets the statement shapes over a Bolt file, one bucket
// per table keyed by primary key. It is the embedded alternative to a
// relational engine: same contract, no server.
//
// Unlike a bare table, a bucket cannot hold two rows with the same key, so
// the duplicate-row outcome of racing inserts cannot happen here; the insert
// statement reports "not applied" instead.
type boltExecutor struct {
	bdb *bbolt.DB
}

// OpenBoltExecutor opens (creating if needed) a Bolt-backed executor at path.
func OpenBoltExecutor(path string) (Executor, error) {
	bdb, err := bbolt.Open(path, 0666, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("wiredb: %w", err)
	}
	return &boltExecutor{bdb: bdb}, nil
}

// NewBoltExecutor wraps an already open Bolt database.
func NewBoltExecutor(bdb *bbolt.DB) Executor {
	return &boltExecutor{bdb: bdb}
}

// Row payload inside the bucket: identifier as a nullable string, then the
// data column under a presence byte, framed with the wire buffer itself.
func encodeBoltRow(identifier string, data []byte) []byte {
	buf := wirebuf.Acquire()
	defer buf.Release()
	buf.PutString(&identifier)
	buf.AppendBool(data == nil)
	if data != nil {
		buf.PutByteArray(data)
	}
	return buf.ToByteArray()
}

func decodeBoltRow(key, payload []byte) (memRow, error) {
	buf := wirebuf.Wrap(payload)
	defer buf.Release()
	row := memRow{key: string(key)}
	identifier, err := buf.ReadString()
	if err != nil {
		return row, err
	}
	if identifier != nil {
		row.identifier = *identifier
	}
	absent, err := buf.ReadBool()
	if err != nil {
		return row, err
	}
	if !absent {
		row.data, err = buf.ReadByteArray()
		if err != nil {
			return row, err
		}
	}
	return row, nil
}

func (e *boltExecutor) ExecUpdate(ctx context.Context, stmt Statement) (bool, error) {
	applied := false
	err := e.bdb.Update(func(tx *bbolt.Tx) error {
		if stmt.Kind == StmtCreateTable {
			_, err := tx.CreateBucketIfNotExists([]byte(stmt.Table))
			applied = err == nil
			return err
		}
		if stmt.Kind == StmtClear {
			if tx.Bucket([]byte(stmt.Table)) != nil {
				if err := tx.DeleteBucket([]byte(stmt.Table)); err != nil {
					return err
				}
			}
			_, err := tx.CreateBucketIfNotExists([]byte(stmt.Table))
			applied = err == nil
			return err
		}

		b := tx.Bucket([]byte(stmt.Table))
		if b == nil {
			return fmt.Errorf("no such table %q", stmt.Table)
		}
		switch stmt.Kind {
		case StmtInsertRow:
			if b.Get([]byte(stmt.Key)) != nil {
				return nil // row exists: not applied, store falls back to update
			}
			applied = true
			return b.Put([]byte(stmt.Key), encodeBoltRow(stmt.Identifier, stmt.Data))

		case StmtUpdateData:
			// The bucket must not change under ForEach: collect first, put after.
			var matched []memRow
			err := e.forEachRow(b, func(row memRow) error {
				if row.key == stmt.Key || row.identifier == stmt.Identifier {
					matched = append(matched, row)
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, row := range matched {
				if err := b.Put([]byte(row.key), encodeBoltRow(row.identifier, stmt.Data)); err != nil {
					return err
				}
			}
			applied = len(matched) > 0
			return nil

		case StmtUpdateIdentifier:
			payload := b.Get([]byte(stmt.Key))
			if payload == nil {
				return nil // silent no-op when the key is absent
			}
			row, err := decodeBoltRow([]byte(stmt.Key), payload)
			if err != nil {
				return err
			}
			applied = true
			return b.Put([]byte(stmt.Key), encodeBoltRow(stmt.Identifier, row.data))

		case StmtDeleteByKey:
			applied = b.Get([]byte(stmt.Key)) != nil
			return b.Delete([]byte(stmt.Key))

		case StmtDeleteByIdentifier:
			var doomed [][]byte
			err := e.forEachRow(b, func(row memRow) error {
				if row.identifier == stmt.Identifier {
					doomed = append(doomed, []byte(row.key))
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, key := range doomed {
				if err := b.Delete(key); err != nil {
					return err
				}
			}
			applied = len(doomed) > 0
			return nil

		default:
			return fmt.Errorf("unsupported update statement %v", stmt.Kind)
		}
	})
	return applied, err
}

func (e *boltExecutor) Query(ctx context.Context, stmt Statement) (Rows, error) {
	var out Rows
	err := e.bdb.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(stmt.Table))
		if b == nil {
			return fmt.Errorf("no such table %q", stmt.Table)
		}
		if stmt.Kind == StmtCountRows {
			out = &countRows{n: int64(b.Stats().KeyN)}
			return nil
		}

		var rows []memRow
		err := e.forEachRow(b, func(row memRow) error {
			switch stmt.Kind {
			case StmtSelectData:
				if row.key == stmt.Key || (stmt.HasIdentifier && row.identifier == stmt.Identifier) {
					rows = append(rows, row)
				}
			case StmtSelectAll, StmtSelectKeys, StmtSelectSorted:
				rows = append(rows, row)
			default:
				return fmt.Errorf("unsupported query statement %v", stmt.Kind)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if stmt.Kind == StmtSelectSorted {
			rows = sortRowsByIdentifier(rows, stmt.Limit)
		}
		out = &sliceRows{rows: rows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *boltExecutor) forEachRow(b *bbolt.Bucket, fn func(row memRow) error) error {
	return b.ForEach(func(key, payload []byte) error {
		row, err := decodeBoltRow(key, payload)
		if err != nil {
			return err
		}
		return fn(row)
	})
}

func (e *boltExecutor) Close() error {
	return e.bdb.Close()
}
