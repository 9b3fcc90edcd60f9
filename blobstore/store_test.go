package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	data := []byte("hello mdfs")
	require.NoError(t, store.Put(ctx, "sets/a.mdfs", data))

	blob, err := store.Open(ctx, "sets/a.mdfs")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	assert.Equal(t, "mdfs", string(buf[:n]))

	got, err := ReadAll(ctx, store, "sets/a.mdfs")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir)

	require.NoError(t, store.Put(ctx, "x", []byte("first")))
	require.NoError(t, store.Put(ctx, "x", []byte("second")))

	got, err := ReadAll(ctx, store, "x")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files left behind")
}

func TestLocalStoreNotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = ReadAll(context.Background(), store, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStoreCanceled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("abc"), 0o644))
	store := NewLocalStore(dir)

	ctx, cancel := context.WithCancel(context.Background())
	blob, err := store.Open(ctx, "f")
	require.NoError(t, err)
	defer blob.Close()

	cancel()
	_, err = blob.ReadAt(ctx, make([]byte, 3), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

// mapStore is a Store over fixed contents. Blobs listed in short report one
// byte more than they hold.
type mapStore struct {
	blobs map[string]string
	short map[string]bool
}

func (m *mapStore) Open(_ context.Context, name string) (Blob, error) {
	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &mapBlob{data: data, short: m.short[name]}, nil
}

func (m *mapStore) Put(_ context.Context, name string, data []byte) error {
	m.blobs[name] = string(data)
	return nil
}

type mapBlob struct {
	data  string
	short bool
}

func (b *mapBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *mapBlob) Close() error { return nil }

func (b *mapBlob) Size() int64 {
	if b.short {
		return int64(len(b.data)) + 1
	}
	return int64(len(b.data))
}

func TestReadAll(t *testing.T) {
	ctx := context.Background()
	store := &mapStore{
		blobs: map[string]string{"m": "abcdef", "cut": "abc"},
		short: map[string]bool{"cut": true},
	}

	got, err := ReadAll(ctx, store, "m")
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(got))

	_, err = ReadAll(ctx, store, "cut")
	assert.ErrorContains(t, err, "short read")

	_, err = ReadAll(ctx, store, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

type downloadStore struct {
	*mapStore
	calls int
}

func (d *downloadStore) Download(ctx context.Context, name string) ([]byte, error) {
	d.calls++
	return []byte("downloaded"), nil
}

func TestReadAllPrefersDownloader(t *testing.T) {
	store := &downloadStore{mapStore: &mapStore{blobs: map[string]string{"any": "stored"}}}
	got, err := ReadAll(context.Background(), store, "any")
	require.NoError(t, err)
	assert.Equal(t, "downloaded", string(got))
	assert.Equal(t, 1, store.calls)
}
