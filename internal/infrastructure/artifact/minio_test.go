package artifact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects   map[string][]byte
	statErr   error
	uploadErr error
	uploads   int
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}}
}

func (f *fakeObjects) Exists(_ context.Context, key string) (bool, error) {
	if f.statErr != nil {
		return false, f.statErr
	}
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeObjects) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads++
	f.objects[key] = data
	return "http://minio.test/catalog/" + key, nil
}

func TestObjectStore_StoreOnce(t *testing.T) {
	ctx := context.Background()
	objects := newFakeObjects()
	store := NewObjectStore(objects, nil)

	require.NoError(t, store.Store(ctx, CategoryAuthor, "J.R.R. Tolkien", pngPayload(t, 1)))
	require.NoError(t, store.Store(ctx, CategoryAuthor, "J.R.R. Tolkien", pngPayload(t, 2)))

	assert.Equal(t, 1, objects.uploads)
	assert.Contains(t, objects.objects, "author/j-r-r-tolkien.png")
	assert.True(t, store.Exists(ctx, CategoryAuthor, "J.R.R. Tolkien"))
}

func TestObjectStore_ExistsNeverFails(t *testing.T) {
	objects := newFakeObjects()
	objects.statErr = errors.New("connection refused")
	store := NewObjectStore(objects, nil)

	assert.False(t, store.Exists(context.Background(), CategoryBook, "The Hobbit"))
}

func TestObjectStore_UploadFailure(t *testing.T) {
	objects := newFakeObjects()
	objects.uploadErr = errors.New("bucket gone")
	store := NewObjectStore(objects, nil)

	err := store.Store(context.Background(), CategoryBook, "The Hobbit", pngPayload(t, 1))
	assert.ErrorIs(t, err, ErrWrite)
}
