package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

func stores(t *testing.T) map[string]store {
	t.Helper()
	dir, err := OpenDir(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "nova.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return map[string]store{
		"memory": NewMemory(),
		"dir":    dir,
		"sqlite": db,
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "nova_theme")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, "nova_theme", []byte(`"dark"`)))
			got, err := s.Get(ctx, "nova_theme")
			require.NoError(t, err)
			assert.Equal(t, `"dark"`, string(got))

			require.NoError(t, s.Put(ctx, "nova_theme", []byte(`"light"`)))
			got, err = s.Get(ctx, "nova_theme")
			require.NoError(t, err)
			assert.Equal(t, `"light"`, string(got))

			_, err = s.Get(ctx, "nova_budgets")
			assert.ErrorIs(t, err, ErrNotFound, "keys are independent")
		})
	}
}

func TestInvalidKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "..", "a/b", `a\b`, "a b"} {
				assert.ErrorIs(t, s.Put(ctx, key, []byte("x")), ErrInvalidKey, "Put(%q)", key)
				_, err := s.Get(ctx, key)
				assert.ErrorIs(t, err, ErrInvalidKey, "Get(%q)", key)
			}
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	var m Memory
	value := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	got[1] = 'y'

	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestDirLayout(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir()
	d, err := OpenDir(path)
	require.NoError(t, err)
	require.NoError(t, d.Put(ctx, "nova_transactions", []byte("[]")))

	entries, err := os.ReadDir(path)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files are cleaned up")
	assert.Equal(t, "nova_transactions.json", entries[0].Name())
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nova.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, "nova_budgets", []byte(`{"Food":200}`)))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err, "migrations are idempotent")
	defer db.Close()
	got, err := db.Get(ctx, "nova_budgets")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Food":200}`, string(got))
}
