package wiredb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrClosed is returned by executors after Close.
var ErrClosed = errors.New("executor closed")

// Executor runs the fixed statement shapes against a backing engine
// (MySQL, Bolt, memory...). The store issues exactly the statements
// enumerated on StatementKind; the only ordering guarantee is within a
// single statement.
type Executor interface {
	// ExecUpdate runs an update statement. For StmtInsertRow a false result
	// with a nil error means "not applied" (typically: the row already
	// exists); the store reacts with its update fallback. Other kinds report
	// backend failures through err.
	ExecUpdate(ctx context.Context, stmt Statement) (applied bool, err error)

	// Query runs a query statement and returns a row cursor. The caller must
	// Close the cursor.
	Query(ctx context.Context, stmt Statement) (Rows, error)

	Close() error
}

// Rows is a cursor over a query result with typed column accessors.
// Accessors address columns by the Col* names.
type Rows interface {
	Next() bool
	Text(col string) string
	Long(col string) int64
	// Bytes returns the column value, or nil for NULL.
	Bytes(col string) []byte
	Err() error
	Close() error
}

// StatementError reports a failed statement execution. It is propagated as a
// failed future to the caller; nothing in the store retries.
type StatementError struct {
	Table string
	Kind  StatementKind
	Err   error
}

func stmtErrf(table string, kind StatementKind, err error) error {
	return &StatementError{Table: table, Kind: kind, Err: err}
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Table, e.Kind, e.Err)
}

// memRow is one materialized row, shared by the bolt and memory executors.
type memRow struct {
	key        string
	identifier string
	data       []byte // nil when the data column is NULL
}

// identifierNum applies the backing engine's numeric-cast rule used by
// sorted selects: non-numeric identifiers sort as zero.
func identifierNum(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func sortRowsByIdentifier(rows []memRow, limit int) []memRow {
	sort.SliceStable(rows, func(i, j int) bool {
		return identifierNum(rows[i].identifier) < identifierNum(rows[j].identifier)
	})
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// sliceRows serves materialized rows through the Rows contract.
type sliceRows struct {
	rows []memRow
	i    int
}

func (r *sliceRows) Next() bool {
	if r.i >= len(r.rows) {
		return false
	}
	r.i++
	return true
}

func (r *sliceRows) cur() memRow {
	return r.rows[r.i-1]
}

func (r *sliceRows) Text(col string) string {
	switch col {
	case ColKey:
		return r.cur().key
	case ColIdentifier:
		return r.cur().identifier
	case ColData:
		return string(r.cur().data)
	default:
		panic(fmt.Errorf("wiredb: unknown column %q", col))
	}
}

func (r *sliceRows) Long(col string) int64 {
	v, _ := strconv.ParseInt(r.Text(col), 10, 64)
	return v
}

func (r *sliceRows) Bytes(col string) []byte {
	switch col {
	case ColKey:
		return []byte(r.cur().key)
	case ColIdentifier:
		return []byte(r.cur().identifier)
	case ColData:
		return r.cur().data
	default:
		panic(fmt.Errorf("wiredb: unknown column %q", col))
	}
}

func (r *sliceRows) Err() error   { return nil }
func (r *sliceRows) Close() error { return nil }

// countRows is the single-row result of StmtCountRows.
type countRows struct {
	n    int64
	done bool
}

func (r *countRows) Next() bool {
	if r.done {
		return false
	}
	r.done = true
	return true
}

func (r *countRows) Text(string) string  { return strconv.FormatInt(r.n, 10) }
func (r *countRows) Long(string) int64   { return r.n }
func (r *countRows) Bytes(string) []byte { return []byte(r.Text("")) }
func (r *countRows) Err() error          { return nil }
func (r *countRows) Close() error        { return nil }
