package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM credentials`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_LoadWhenEmpty(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	tok, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSQLiteRepository_SaveLoadRoundTrip(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok-1"))

	tok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
}

func TestSQLiteRepository_LastWriteWins(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok-1"))
	require.NoError(t, repo.Save(ctx, "tok-2"))

	tok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok-1"))
	require.NoError(t, repo.Clear(ctx))

	tok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSQLiteRepository_ClearWhenEmpty(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	require.NoError(t, repo.Clear(context.Background()))
}
