package wiredb

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// DB owns an executor, the shared worker pool every operation is dispatched
// to, and a logger. Tables are opened on top of one DB and share all three.
type DB struct {
	exec   Executor
	pool   *workerPool
	logger *zap.Logger
}

type Options struct {
	// Logger receives row-skip and degradation messages. Defaults to
	// zap.NewNop().
	Logger *zap.Logger
	// Workers bounds concurrently running operations. Defaults to twice
	// GOMAXPROCS.
	Workers int
}

// Open builds a DB on top of any executor.
func Open(exec Executor, opt Options) *DB {
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		exec:   exec,
		pool:   newWorkerPool(opt.Workers),
		logger: logger,
	}
}

// OpenMemory returns a transient in-memory DB (tests, throwaway stores).
func OpenMemory(opt Options) *DB {
	return Open(NewMemoryExecutor(), opt)
}

// OpenBolt opens an embedded Bolt-backed DB at path.
func OpenBolt(path string, opt Options) (*DB, error) {
	exec, err := OpenBoltExecutor(path)
	if err != nil {
		return nil, err
	}
	return Open(exec, opt), nil
}

// OpenMySQL connects to a MySQL server. The dsn is in go-sql-driver form,
// e.g. "user:pass@tcp(host:3306)/dbname".
func OpenMySQL(dsn string, opt Options) (*DB, error) {
	sdb, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("wiredb: %w", err)
	}
	if err := sdb.Ping(); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("wiredb: %w", err)
	}
	return Open(NewSQLExecutor(sdb), opt), nil
}

// Executor exposes the underlying executor.
func (db *DB) Executor() Executor {
	return db.exec
}

func (db *DB) Close() error {
	return db.exec.Close()
}
