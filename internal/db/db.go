package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

// ErrWrongKey is returned when the file exists but cannot be decrypted
var ErrWrongKey = errors.New("database key does not match")

type DB struct {
	*sql.DB
	path string
}

// Open opens (creating if needed) the SQLCipher database at dbPath.
func Open(dbPath, key string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", dsn(dbPath, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// PRAGMAs are per connection; a single connection keeps them in force
	sqlDB.SetMaxOpenConns(1)

	if err := unlock(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA journal_mode = WAL"} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return &DB{DB: sqlDB, path: dbPath}, nil
}

// dsn keys the connection through the driver's _pragma_key parameter
func dsn(dbPath, key string) string {
	return fmt.Sprintf("%s?_pragma_key=%s&_pragma_cipher_page_size=4096", dbPath, url.QueryEscape(key))
}

// unlock reads the schema, the first access that needs the key
func unlock(sqlDB *sql.DB) error {
	var n int
	if err := sqlDB.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&n); err != nil {
		return fmt.Errorf("%w: %v", ErrWrongKey, err)
	}
	return nil
}

// Path returns the database file location
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
