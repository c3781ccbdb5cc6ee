package credentials

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/medmate/internal/client/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	require.NoError(t, err)
	_, err = provider.Up(context.Background())
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	s := NewSQLiteStore(openDB(t, filepath.Join(t.TempDir(), "c.db")))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_SaveLoadAcrossConnections(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "c.db")

	first := openDB(t, path)
	require.NoError(t, NewSQLiteStore(first).Save(ctx, StoredCredentials{Username: "alice", Password: "s3cret"}))
	require.NoError(t, first.Close())

	got, err := NewSQLiteStore(openDB(t, path)).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, &StoredCredentials{Username: "alice", Password: "s3cret"}, got)
}

func TestSQLiteStore_PasswordIsNotStoredInClear(t *testing.T) {
	ctx := context.Background()
	db := openDB(t, filepath.Join(t.TempDir(), "c.db"))
	require.NoError(t, NewSQLiteStore(db).Save(ctx, StoredCredentials{Username: "alice", Password: "s3cret"}))

	var sealed []byte
	require.NoError(t, db.QueryRow(`SELECT sealed_password FROM stored_credentials`).Scan(&sealed))
	assert.NotContains(t, string(sealed), "s3cret")
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(openDB(t, filepath.Join(t.TempDir(), "c.db")))

	require.NoError(t, s.Save(ctx, StoredCredentials{Username: "alice", Password: "one"}))
	require.NoError(t, s.Save(ctx, StoredCredentials{Username: "bob", Password: "two"}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, &StoredCredentials{Username: "bob", Password: "two"}, got)
}

func TestSQLiteStore_Erase(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(openDB(t, filepath.Join(t.TempDir(), "c.db")))

	require.NoError(t, s.Save(ctx, StoredCredentials{Username: "alice", Password: "s3cret"}))
	require.NoError(t, s.Erase(ctx))
	require.NoError(t, s.Erase(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_TamperedRecordIsCorrupted(t *testing.T) {
	ctx := context.Background()
	db := openDB(t, filepath.Join(t.TempDir(), "c.db"))
	s := NewSQLiteStore(db)
	require.NoError(t, s.Save(ctx, StoredCredentials{Username: "alice", Password: "s3cret"}))

	_, err := db.Exec(`UPDATE stored_credentials SET username = 'mallory'`)
	require.NoError(t, err)

	got, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrCorrupted)
	assert.Nil(t, got)
}

func TestSQLiteStore_MissingSecretIsCorrupted(t *testing.T) {
	ctx := context.Background()
	db := openDB(t, filepath.Join(t.TempDir(), "c.db"))
	s := NewSQLiteStore(db)
	require.NoError(t, s.Save(ctx, StoredCredentials{Username: "alice", Password: "s3cret"}))

	_, err := db.Exec(`DELETE FROM metadata`)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrCorrupted)
}

func TestSQLiteStore_SaveRejectsEmpty(t *testing.T) {
	s := NewSQLiteStore(openDB(t, filepath.Join(t.TempDir(), "c.db")))
	require.Error(t, s.Save(context.Background(), StoredCredentials{Username: "alice"}))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Save(ctx, StoredCredentials{Username: "alice", Password: "pw"}))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	got.Username = "changed"
	again, _ := s.Load(ctx)
	assert.Equal(t, "alice", again.Username)

	require.NoError(t, s.Erase(ctx))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
