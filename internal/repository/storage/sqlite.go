package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "modernc.org/sqlite"
)

type SQLiteStorage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	// sqlite allows one writer at a time.
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SQLiteStorage{Connection: conn}, nil
}

func (that *SQLiteStorage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		data       TEXT    NOT NULL,
		expires_at INTEGER NOT NULL
	)`

	_, err := that.Connection.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *SQLiteStorage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
