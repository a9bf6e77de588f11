package wiredb

import "fmt"

// StatementKind enumerates the fixed statement shapes the store issues. The
// store never builds ad-hoc queries: every backend only has to understand
// this closed set against the one table shape (key TEXT, identifier TEXT,
// data LONGBLOB).
type StatementKind int

const (
	StmtCreateTable StatementKind = iota
	StmtInsertRow
	StmtUpdateData
	StmtUpdateIdentifier
	StmtDeleteByKey
	StmtDeleteByIdentifier
	StmtClear
	StmtSelectData
	StmtSelectAll
	StmtSelectKeys
	StmtSelectSorted
	StmtCountRows
)

func (k StatementKind) String() string {
	switch k {
	case StmtCreateTable:
		return "create table"
	case StmtInsertRow:
		return "insert row"
	case StmtUpdateData:
		return "update data"
	case StmtUpdateIdentifier:
		return "update identifier"
	case StmtDeleteByKey:
		return "delete by key"
	case StmtDeleteByIdentifier:
		return "delete by identifier"
	case StmtClear:
		return "clear"
	case StmtSelectData:
		return "select data"
	case StmtSelectAll:
		return "select all"
	case StmtSelectKeys:
		return "select keys"
	case StmtSelectSorted:
		return "select sorted"
	case StmtCountRows:
		return "count rows"
	default:
		return fmt.Sprintf("statement(%d)", int(k))
	}
}

// Statement is one parameterized statement against a single table. Which
// fields are meaningful depends on Kind:
//
//	StmtInsertRow          Key, Identifier, Data
//	StmtUpdateData         Key, Identifier (match: key OR identifier), Data
//	StmtUpdateIdentifier   Key (match), Identifier (new value)
//	StmtDeleteByKey        Key
//	StmtDeleteByIdentifier Identifier
//	StmtSelectData         Key, plus Identifier when HasIdentifier
//	StmtSelectSorted       Limit
type Statement struct {
	Kind          StatementKind
	Table         string
	Key           string
	Identifier    string
	HasIdentifier bool
	Data          []byte
	Limit         int
}

// Column names of the one table shape, also the keys Rows accessors accept.
const (
	ColKey        = "key"
	ColIdentifier = "identifier"
	ColData       = "data"
	ColCount      = "count"
)
