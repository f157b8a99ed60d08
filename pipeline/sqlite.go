// Package pipeline provides a SQLite-backed snapshot writer.
package pipeline

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/aluiziolira/go-scrape-carrera/models"
	"github.com/go-gorp/gorp/v3"
	_ "github.com/mattn/go-sqlite3"
)

type resultEntity struct {
	ID int64 `db:"id, primarykey, autoincrement"`
	models.Result
}

// SQLiteWriter persists the snapshot into a local SQLite database,
// recreating the results table on every run.
type SQLiteWriter struct {
	db    *sql.DB
	dbmap *gorp.DbMap
	mu    sync.Mutex
}

// NewSQLiteWriter opens (or creates) the database file and resets the
// results table.
func NewSQLiteWriter(file string) (*SQLiteWriter, error) {
	if err := ensureDir(file); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.SqliteDialect{}}
	dbmap.AddTableWithName(resultEntity{}, "resultados")
	if err := dbmap.DropTablesIfExists(); err != nil {
		db.Close()
		return nil, fmt.Errorf("drop stale tables: %w", err)
	}
	if err := dbmap.CreateTablesIfNotExists(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &SQLiteWriter{db: db, dbmap: dbmap}, nil
}

// Write inserts the full record set in one transaction.
func (sw *SQLiteWriter) Write(records []models.Result) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	tx, err := sw.dbmap.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	for i := range records {
		if err := tx.Insert(&resultEntity{Result: records[i]}); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the database handle.
func (sw *SQLiteWriter) Close() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.db.Close()
}

// Validate ensures the results table has rows.
func (sw *SQLiteWriter) Validate() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	count, err := sw.dbmap.SelectInt("SELECT COUNT(*) FROM resultados")
	if err != nil {
		return fmt.Errorf("count results: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("results table is empty")
	}
	return nil
}
