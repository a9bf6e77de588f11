package wiredb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderSQL(t *testing.T) {
	data := []byte{1, 2, 3}
	tests := []struct {
		name  string
		stmt  Statement
		query string
		args  []any
	}{
		{
			name:  "create table",
			stmt:  Statement{Kind: StmtCreateTable, Table: "players"},
			query: "CREATE TABLE IF NOT EXISTS `players` (`key` TEXT, `identifier` TEXT, `data` LONGBLOB)",
		},
		{
			name:  "insert row",
			stmt:  Statement{Kind: StmtInsertRow, Table: "players", Key: "k1", Identifier: "id1", Data: data},
			query: "INSERT INTO `players` (`key`, `identifier`, `data`) VALUES (?, ?, ?)",
			args:  []any{"k1", "id1", data},
		},
		{
			name:  "update data",
			stmt:  Statement{Kind: StmtUpdateData, Table: "players", Key: "k1", Identifier: "id1", Data: data},
			query: "UPDATE `players` SET `data` = ? WHERE `key` = ? OR `identifier` = ?",
			args:  []any{data, "k1", "id1"},
		},
		{
			name:  "update identifier",
			stmt:  Statement{Kind: StmtUpdateIdentifier, Table: "players", Key: "k1", Identifier: "id2"},
			query: "UPDATE `players` SET `identifier` = ? WHERE `key` = ?",
			args:  []any{"id2", "k1"},
		},
		{
			name:  "delete by key",
			stmt:  Statement{Kind: StmtDeleteByKey, Table: "players", Key: "k1"},
			query: "DELETE FROM `players` WHERE `key` = ?",
			args:  []any{"k1"},
		},
		{
			name:  "delete by identifier",
			stmt:  Statement{Kind: StmtDeleteByIdentifier, Table: "players", Identifier: "id1"},
			query: "DELETE FROM `players` WHERE `identifier` = ?",
			args:  []any{"id1"},
		},
		{
			name:  "clear",
			stmt:  Statement{Kind: StmtClear, Table: "players"},
			query: "TRUNCATE TABLE `players`",
		},
		{
			name:  "select data by key",
			stmt:  Statement{Kind: StmtSelectData, Table: "players", Key: "k1"},
			query: "SELECT `data` FROM `players` WHERE `key` = ?",
			args:  []any{"k1"},
		},
		{
			name:  "select data by key or identifier",
			stmt:  Statement{Kind: StmtSelectData, Table: "players", Key: "k1", Identifier: "id1", HasIdentifier: true},
			query: "SELECT `data` FROM `players` WHERE `key` = ? OR `identifier` = ?",
			args:  []any{"k1", "id1"},
		},
		{
			name:  "select all",
			stmt:  Statement{Kind: StmtSelectAll, Table: "players"},
			query: "SELECT `key`, `identifier`, `data` FROM `players`",
		},
		{
			name:  "select keys",
			stmt:  Statement{Kind: StmtSelectKeys, Table: "players"},
			query: "SELECT `key` FROM `players`",
		},
		{
			name:  "select sorted",
			stmt:  Statement{Kind: StmtSelectSorted, Table: "players", Limit: 5},
			query: "SELECT `key`, `identifier`, `data` FROM `players` ORDER BY `identifier`+0 LIMIT ?",
			args:  []any{5},
		},
		{
			name:  "count rows",
			stmt:  Statement{Kind: StmtCountRows, Table: "players"},
			query: "SELECT COUNT(`key`) AS `count` FROM `players`",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := renderSQL(tt.stmt)
			require.Equal(t, tt.query, query)
			require.Equal(t, tt.args, args)
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	require.Equal(t, "`players`", quoteIdent("players"))
	require.Equal(t, "`we``ird`", quoteIdent("we`ird"))
}
