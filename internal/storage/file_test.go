package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestFileStoreCreateThenRead(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	in := record{Name: "alice", Count: 3}
	require.NoError(t, s.Create(ctx, CollectionUsers, "alice@x.com", in))

	var out record
	require.NoError(t, s.Read(ctx, CollectionUsers, "alice@x.com", &out))
	assert.Equal(t, in, out)
}

func TestFileStoreReadIsIdempotent(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, CollectionCarts, "a@b.c", record{Name: "x"}))

	var first, second record
	require.NoError(t, s.Read(ctx, CollectionCarts, "a@b.c", &first))
	require.NoError(t, s.Read(ctx, CollectionCarts, "a@b.c", &second))
	assert.Equal(t, first, second)
}

func TestFileStoreDuplicateCreateKeepsOriginal(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, CollectionUsers, "k", record{Name: "original"}))

	err := s.Create(ctx, CollectionUsers, "k", record{Name: "intrus"})
	require.ErrorIs(t, err, ErrAlreadyExists)

	var out record
	require.NoError(t, s.Read(ctx, CollectionUsers, "k", &out))
	assert.Equal(t, "original", out.Name)
}

func TestFileStoreReadMissing(t *testing.T) {
	s := newFileStore(t)

	var out record
	err := s.Read(context.Background(), CollectionOrders, "absente", &out)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreUpdate(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	err := s.Update(ctx, CollectionUsers, "k", record{Name: "v"})
	require.ErrorIs(t, err, ErrNotFound, "update sans create préalable")

	require.NoError(t, s.Create(ctx, CollectionUsers, "k", record{Name: "avant"}))
	require.NoError(t, s.Update(ctx, CollectionUsers, "k", record{Name: "après"}))

	var out record
	require.NoError(t, s.Read(ctx, CollectionUsers, "k", &out))
	assert.Equal(t, "après", out.Name)
}

func TestFileStoreDeleteThenRead(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, CollectionTokens, "t", record{}))
	require.NoError(t, s.Delete(ctx, CollectionTokens, "t"))

	var out record
	require.ErrorIs(t, s.Read(ctx, CollectionTokens, "t", &out), ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, CollectionTokens, "t"), ErrNotFound)
}

func TestFileStoreCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	// Octets invalides écrits directement sous le store.
	path := filepath.Join(dir, CollectionUsers, "cassé.json")
	require.NoError(t, os.WriteFile(path, []byte("{pas du json"), 0o644))

	var out record
	err = s.Read(context.Background(), CollectionUsers, "cassé", &out)
	require.ErrorIs(t, err, ErrCorruptRecord)
}

func TestFileStoreList(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	keys, err := s.List(ctx, CollectionOrders)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, s.Create(ctx, CollectionOrders, "o1", record{}))
	require.NoError(t, s.Create(ctx, CollectionOrders, "o2", record{}))

	keys, err = s.List(ctx, CollectionOrders)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"o1", "o2"}, keys)
}

func TestFileStoreRejectsUnknownCollectionAndBadKeys(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	require.ErrorIs(t, s.Create(ctx, "factures", "k", record{}), ErrInvalidKey)
	require.ErrorIs(t, s.Create(ctx, CollectionUsers, "../évasion", record{}), ErrInvalidKey)
	require.ErrorIs(t, s.Create(ctx, CollectionUsers, "", record{}), ErrInvalidKey)

	_, err := s.List(ctx, "factures")
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestFileStoreConcurrentCreateSingleWinner(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	wins := make(chan int, n)

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Create(ctx, CollectionCarts, "même-clé", record{Count: i}); err == nil {
				wins <- i
			} else {
				assert.ErrorIs(t, err, ErrAlreadyExists)
			}
		}()
	}
	wg.Wait()
	close(wins)

	require.Len(t, wins, 1, "exactement un gagnant")

	var out record
	require.NoError(t, s.Read(ctx, CollectionCarts, "même-clé", &out))
	assert.Equal(t, <-wins, out.Count, "la valeur stockée est celle du gagnant")
}
