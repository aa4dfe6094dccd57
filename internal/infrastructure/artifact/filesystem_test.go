package artifact

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngPayload(t *testing.T, shade uint8) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: shade, G: shade, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "author/j-r-r-tolkien.png", Key(CategoryAuthor, "J.R.R. Tolkien"))
	assert.Equal(t, "author/superhero/j-r-r-tolkien.png", Key(CategorySuperhero, "J.R.R. Tolkien"))
	assert.Equal(t, "", Key(CategoryBook, "  ...  "))
}

func TestFileStore_StoreOnce(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir, nil)

	assert.False(t, store.Exists(ctx, CategoryAuthor, "J.R.R. Tolkien"))

	first := pngPayload(t, 10)
	require.NoError(t, store.Store(ctx, CategoryAuthor, "J.R.R. Tolkien", first))
	assert.True(t, store.Exists(ctx, CategoryAuthor, "J.R.R. Tolkien"))

	target := filepath.Join(dir, "author", "j-r-r-tolkien.png")
	original, err := os.ReadFile(target)
	require.NoError(t, err)

	// second store with different bytes is a no-op
	require.NoError(t, store.Store(ctx, CategoryAuthor, "J.R.R. Tolkien", pngPayload(t, 200)))
	after, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, original, after)

	entries, err := os.ReadDir(filepath.Join(dir, "author"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_StripsDataURIPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir(), nil)

	payload := "data:image/png;base64," + pngPayload(t, 50)
	require.NoError(t, store.Store(ctx, CategoryBook, "The Hobbit", payload))

	data, err := os.ReadFile(filepath.Join(store.Dir(), "book", "the-hobbit.png"))
	require.NoError(t, err)
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestFileStore_NestedCategory(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir(), nil)

	require.NoError(t, store.Store(ctx, CategorySuperhero, "Agatha Christie", pngPayload(t, 1)))
	assert.FileExists(t, filepath.Join(store.Dir(), "author", "superhero", "agatha-christie.png"))
}

func TestFileStore_RejectsInvalidPayload(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir(), nil)

	err := store.Store(ctx, CategoryCharacter, "Bilbo Baggins", "%%% not base64 %%%")
	assert.ErrorIs(t, err, ErrWrite)

	notImage := base64.StdEncoding.EncodeToString([]byte("hello world"))
	err = store.Store(ctx, CategoryCharacter, "Bilbo Baggins", notImage)
	assert.ErrorIs(t, err, ErrWrite)

	err = store.Store(ctx, CategoryCharacter, "Bilbo Baggins", "")
	assert.ErrorIs(t, err, ErrWrite)

	assert.False(t, store.Exists(ctx, CategoryCharacter, "Bilbo Baggins"))
}

func TestFileStore_EmptySlug(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)
	err := store.Store(context.Background(), CategoryAuthor, "!!!", pngPayload(t, 1))
	assert.ErrorIs(t, err, ErrWrite)
}

func TestFileStore_ConcurrentWritersKeepOneFile(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir(), nil)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Store(ctx, CategoryAuthor, "Ursula K. Le Guin", pngPayload(t, uint8(i)))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	entries, err := os.ReadDir(filepath.Join(store.Dir(), "author"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
