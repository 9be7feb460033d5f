package blob_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parkmoor/clubhouse/internal/portal/blob"
)

func TestMemoryStorage_PutAndList(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStorage()

	put := func(key, content string) {
		t.Helper()
		err := store.Put(ctx, key, strings.NewReader(content), int64(len(content)), "text/plain")
		require.NoError(t, err)
	}

	put("users/alice/a.txt", "aaa")
	put("users/alice/b.txt", "bbbb")
	put("users/bob/c.txt", "c")

	objects, err := store.List(ctx, "users/alice/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	require.Equal(t, "users/alice/a.txt", objects[0].Key)
	require.Equal(t, int64(3), objects[0].Size)
	require.Equal(t, "users/alice/b.txt", objects[1].Key)

	data, ok := store.Get("users/bob/c.txt")
	require.True(t, ok)
	require.Equal(t, []byte("c"), data)
}

func TestMemoryStorage_ListEmptyPrefix(t *testing.T) {
	store := blob.NewMemoryStorage()

	objects, err := store.List(context.Background(), "users/nobody/")
	require.NoError(t, err)
	require.Empty(t, objects)
}

func TestMemoryStorage_OverwriteReplaces(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStorage()

	require.NoError(t, store.Put(ctx, "k", strings.NewReader("one"), 3, "text/plain"))
	require.NoError(t, store.Put(ctx, "k", strings.NewReader("twotwo"), 6, "text/plain"))

	objects, err := store.List(ctx, "k")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	require.Equal(t, int64(6), objects[0].Size)
}
