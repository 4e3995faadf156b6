package memory

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vixip/internal/port"
)

func TestUploadAndDownload(t *testing.T) {
	store := NewMemoryStore()

	out, err := store.Upload(context.Background(), port.UploadInput{
		Bucket: "bucket",
		Key:    "decks/1/source.pptx",
		Body:   bytes.NewReader([]byte("deck bytes")),
		Size:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, "bucket/decks/1/source.pptx", out.Location)

	data, err := store.Download(context.Background(), "bucket", "decks/1/source.pptx")
	require.NoError(t, err)
	assert.Equal(t, []byte("deck bytes"), data)
}

func TestDownload_MissingObject(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Download(context.Background(), "bucket", "nope")
	assert.Error(t, err)
}

func TestDownload_ReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Upload(context.Background(), port.UploadInput{
		Bucket: "bucket",
		Key:    "key",
		Body:   bytes.NewReader([]byte("original")),
	})
	require.NoError(t, err)

	first, err := store.Download(context.Background(), "bucket", "key")
	require.NoError(t, err)
	first[0] = 'X'

	second, err := store.Download(context.Background(), "bucket", "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), second)
}

func TestDelete(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Upload(context.Background(), port.UploadInput{
		Bucket: "bucket",
		Key:    "key",
		Body:   bytes.NewReader([]byte("data")),
	})
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "bucket", "key"))

	_, err = store.Download(context.Background(), "bucket", "key")
	assert.Error(t, err)
}

func TestDelete_MissingObjectIsIdempotent(t *testing.T) {
	store := NewMemoryStore()

	assert.NoError(t, store.Delete(context.Background(), "bucket", "never-existed"))
}

func TestBucketsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Upload(context.Background(), port.UploadInput{
		Bucket: "a",
		Key:    "key",
		Body:   bytes.NewReader([]byte("in a")),
	})
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "b", "key")
	assert.Error(t, err)
}
