package wiredb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// sqlExecutor runs statements against a relational engine through
// database/sql, rendering each statement shape to parameterized MySQL.
type sqlExecutor struct {
	db *sql.DB
}

// NewSQLExecutor wraps an open database handle. The handle's driver must
// speak MySQL syntax (LONGBLOB, identifier+0 numeric cast, TRUNCATE).
func NewSQLExecutor(db *sql.DB) Executor {
	return &sqlExecutor{db: db}
}

func renderSQL(stmt Statement) (string, []any) {
	tbl := quoteIdent(stmt.Table)
	switch stmt.Kind {
	case StmtCreateTable:
		return "CREATE TABLE IF NOT EXISTS " + tbl + " (`key` TEXT, `identifier` TEXT, `data` LONGBLOB)", nil
	case StmtInsertRow:
		return "INSERT INTO " + tbl + " (`key`, `identifier`, `data`) VALUES (?, ?, ?)",
			[]any{stmt.Key, stmt.Identifier, stmt.Data}
	case StmtUpdateData:
		return "UPDATE " + tbl + " SET `data` = ? WHERE `key` = ? OR `identifier` = ?",
			[]any{stmt.Data, stmt.Key, stmt.Identifier}
	case StmtUpdateIdentifier:
		return "UPDATE " + tbl + " SET `identifier` = ? WHERE `key` = ?",
			[]any{stmt.Identifier, stmt.Key}
	case StmtDeleteByKey:
		return "DELETE FROM " + tbl + " WHERE `key` = ?", []any{stmt.Key}
	case StmtDeleteByIdentifier:
		return "DELETE FROM " + tbl + " WHERE `identifier` = ?", []any{stmt.Identifier}
	case StmtClear:
		return "TRUNCATE TABLE " + tbl, nil
	case StmtSelectData:
		if stmt.HasIdentifier {
			return "SELECT `data` FROM " + tbl + " WHERE `key` = ? OR `identifier` = ?",
				[]any{stmt.Key, stmt.Identifier}
		}
		return "SELECT `data` FROM " + tbl + " WHERE `key` = ?", []any{stmt.Key}
	case StmtSelectAll:
		return "SELECT `key`, `identifier`, `data` FROM " + tbl, nil
	case StmtSelectKeys:
		return "SELECT `key` FROM " + tbl, nil
	case StmtSelectSorted:
		return "SELECT `key`, `identifier`, `data` FROM " + tbl + " ORDER BY `identifier`+0 LIMIT ?",
			[]any{stmt.Limit}
	case StmtCountRows:
		return "SELECT COUNT(`key`) AS `count` FROM " + tbl, nil
	default:
		panic(fmt.Errorf("wiredb: unknown statement kind %v", stmt.Kind))
	}
}

func quoteIdent(name string) string {
	out := make([]byte, 0, len(name)+2)
	out = append(out, '`')
	for i := 0; i < len(name); i++ {
		if name[i] == '`' {
			out = append(out, '`')
		}
		out = append(out, name[i])
	}
	return string(append(out, '`'))
}

func (e *sqlExecutor) ExecUpdate(ctx context.Context, stmt Statement) (bool, error) {
	query, args := renderSQL(stmt)
	_, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		if stmt.Kind == StmtInsertRow {
			// The engine's rejection of a duplicate insert is the store's
			// "not applied" signal, not an error.
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (e *sqlExecutor) Query(ctx context.Context, stmt Statement) (Rows, error) {
	query, args := renderSQL(stmt)
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &sqlRows{rows: rows, cols: cols}, nil
}

func (e *sqlExecutor) Close() error {
	return e.db.Close()
}

type sqlRows struct {
	rows *sql.Rows
	cols []string
	vals map[string][]byte
	err  error
}

func (r *sqlRows) Next() bool {
	if r.err != nil || !r.rows.Next() {
		return false
	}
	ptrs := make([]any, len(r.cols))
	cells := make([][]byte, len(r.cols))
	for i := range ptrs {
		ptrs[i] = &cells[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		r.err = err
		return false
	}
	r.vals = make(map[string][]byte, len(r.cols))
	for i, col := range r.cols {
		r.vals[col] = cells[i]
	}
	return true
}

func (r *sqlRows) Text(col string) string {
	return string(r.vals[col])
}

func (r *sqlRows) Long(col string) int64 {
	v, _ := strconv.ParseInt(r.Text(col), 10, 64)
	return v
}

func (r *sqlRows) Bytes(col string) []byte {
	return r.vals[col]
}

func (r *sqlRows) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.rows.Err()
}

func (r *sqlRows) Close() error {
	return r.rows.Close()
}
