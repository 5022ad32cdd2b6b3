package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	er "github.com/flowstack/resendstack/internal/errors"
)

type fakeS3Client struct {
	gotBucket string
	gotKey    string
	data      []byte
	err       error
}

func (f *fakeS3Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	f.gotBucket = bucket
	f.gotKey = key
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func TestOpenRead_FullyQualifiedURI(t *testing.T) {
	client := &fakeS3Client{data: []byte("payload")}
	store := NewBlobStore(client, StorageConfig{DefaultBucket: "workflow-files"})

	reader, err := store.OpenRead(context.Background(), "s3://my-bucket/runs/2026/input.bin")

	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "my-bucket", client.gotBucket)
	assert.Equal(t, "runs/2026/input.bin", client.gotKey)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestOpenRead_BareKeyUsesDefaultBucket(t *testing.T) {
	client := &fakeS3Client{data: []byte("x")}
	store := NewBlobStore(client, StorageConfig{DefaultBucket: "workflow-files"})

	_, err := store.OpenRead(context.Background(), "store://abc")

	require.NoError(t, err)
	assert.Equal(t, "workflow-files", client.gotBucket)
	assert.Equal(t, "abc", client.gotKey)
}

func TestOpenRead_HostlessPathUsesDefaultBucket(t *testing.T) {
	client := &fakeS3Client{data: []byte("x")}
	store := NewBlobStore(client, StorageConfig{DefaultBucket: "workflow-files"})

	_, err := store.OpenRead(context.Background(), "store:///runs/2026/input.bin")

	require.NoError(t, err)
	assert.Equal(t, "workflow-files", client.gotBucket)
	assert.Equal(t, "runs/2026/input.bin", client.gotKey)
}

func TestOpenRead_SchemelessURIFails(t *testing.T) {
	client := &fakeS3Client{}
	store := NewBlobStore(client, StorageConfig{DefaultBucket: "workflow-files"})

	_, err := store.OpenRead(context.Background(), "just-a-file.txt")

	require.Error(t, err)
	assert.Empty(t, client.gotBucket)
}

func TestOpenRead_EmptyKeyFails(t *testing.T) {
	client := &fakeS3Client{}
	store := NewBlobStore(client, StorageConfig{DefaultBucket: "workflow-files"})

	_, err := store.OpenRead(context.Background(), "store://")

	require.Error(t, err)
}

func TestOpenRead_NotFoundPassedThrough(t *testing.T) {
	client := &fakeS3Client{err: er.ErrBlobNotFound}
	store := NewBlobStore(client, StorageConfig{DefaultBucket: "workflow-files"})

	_, err := store.OpenRead(context.Background(), "store://missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, er.ErrBlobNotFound)
}
