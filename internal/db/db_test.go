package db

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "nested", "worklog.db"), "secret&key=1")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.RunMigrations())
	return database
}

func TestRunMigrations_Idempotent(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, database.RunMigrations())

	v, err := database.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestCascadeDelete(t *testing.T) {
	database := openTestDB(t)

	_, err := database.Exec(`INSERT INTO clients (id, name) VALUES ('c1', 'ACME')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO time_records (client_id, date) VALUES ('c1', '2026-01-05')`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO time_records (client_id, date) VALUES ('c1', '2026-01-05')`)
	assert.Error(t, err, "one record per client and day")

	_, err = database.Exec(`DELETE FROM clients WHERE id = 'c1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM time_records`).Scan(&n))
	assert.Zero(t, n)
}

func TestReset(t *testing.T) {
	database := openTestDB(t)

	_, err := database.Exec(`INSERT INTO clients (id, name) VALUES ('c1', 'ACME')`)
	require.NoError(t, err)
	require.NoError(t, database.Reset())

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpen_WrongKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklog.db")
	database, err := Open(path, "right")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations())
	require.NoError(t, database.Close())

	_, err = Open(path, "wrong")
	assert.ErrorIs(t, err, ErrWrongKey)

	database, err = Open(path, "right")
	require.NoError(t, err)
	defer database.Close()
	assert.Equal(t, path, database.Path())

	v, err := database.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestOpen_FileIsEncrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklog.db")
	database, err := Open(path, "secret")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations())
	_, err = database.Exec(`INSERT INTO clients (id, name) VALUES ('c1', 'TOPSECRETCLIENT')`)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(raw, []byte("SQLite format 3")), "header must not be plaintext")
	assert.False(t, bytes.Contains(raw, []byte("TOPSECRETCLIENT")), "rows must not be plaintext")
}
