package wiredb

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// memExecutor is a transient in-memory executor intended for tests and
// throwaway stores. Rows live in insertion order in a plain slice, so like a
// real table (and unlike the Bolt executor) it happily holds duplicate rows
// for one key when racing inserts both get applied.
type memExecutor struct {
	mu     sync.Mutex
	tables map[string][]memRow
	closed bool
}

// NewMemoryExecutor returns an empty in-memory executor.
func NewMemoryExecutor() Executor {
	return &memExecutor{tables: make(map[string][]memRow)}
}

func (e *memExecutor) ExecUpdate(ctx context.Context, stmt Statement) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false, ErrClosed
	}

	switch stmt.Kind {
	case StmtCreateTable:
		if _, ok := e.tables[stmt.Table]; !ok {
			e.tables[stmt.Table] = nil
		}
		return true, nil
	case StmtClear:
		if _, err := e.table(stmt.Table); err != nil {
			return false, err
		}
		e.tables[stmt.Table] = nil
		return true, nil
	}

	rows, err := e.table(stmt.Table)
	if err != nil {
		return false, err
	}
	switch stmt.Kind {
	case StmtInsertRow:
		for _, row := range rows {
			if row.key == stmt.Key {
				return false, nil // not applied; store falls back to update
			}
		}
		e.tables[stmt.Table] = append(rows, memRow{stmt.Key, stmt.Identifier, slices.Clone(stmt.Data)})
		return true, nil

	case StmtUpdateData:
		applied := false
		for i, row := range rows {
			if row.key == stmt.Key || row.identifier == stmt.Identifier {
				rows[i].data = slices.Clone(stmt.Data)
				applied = true
			}
		}
		return applied, nil

	case StmtUpdateIdentifier:
		applied := false
		for i, row := range rows {
			if row.key == stmt.Key {
				rows[i].identifier = stmt.Identifier
				applied = true
			}
		}
		return applied, nil

	case StmtDeleteByKey:
		kept := slices.DeleteFunc(rows, func(row memRow) bool { return row.key == stmt.Key })
		e.tables[stmt.Table] = kept
		return len(kept) < len(rows), nil

	case StmtDeleteByIdentifier:
		kept := slices.DeleteFunc(rows, func(row memRow) bool { return row.identifier == stmt.Identifier })
		e.tables[stmt.Table] = kept
		return len(kept) < len(rows), nil

	default:
		return false, fmt.Errorf("unsupported update statement %v", stmt.Kind)
	}
}

func (e *memExecutor) Query(ctx context.Context, stmt Statement) (Rows, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	rows, err := e.table(stmt.Table)
	if err != nil {
		return nil, err
	}

	switch stmt.Kind {
	case StmtCountRows:
		return &countRows{n: int64(len(rows))}, nil
	case StmtSelectData:
		var out []memRow
		for _, row := range rows {
			if row.key == stmt.Key || (stmt.HasIdentifier && row.identifier == stmt.Identifier) {
				out = append(out, row)
			}
		}
		return &sliceRows{rows: out}, nil
	case StmtSelectAll, StmtSelectKeys:
		return &sliceRows{rows: slices.Clone(rows)}, nil
	case StmtSelectSorted:
		return &sliceRows{rows: sortRowsByIdentifier(slices.Clone(rows), stmt.Limit)}, nil
	default:
		return nil, fmt.Errorf("unsupported query statement %v", stmt.Kind)
	}
}

func (e *memExecutor) table(name string) ([]memRow, error) {
	rows, ok := e.tables[name]
	if !ok {
		return nil, fmt.Errorf("no such table %q", name)
	}
	return rows, nil
}

func (e *memExecutor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.tables = nil
	return nil
}
