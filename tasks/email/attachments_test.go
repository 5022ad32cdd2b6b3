package email

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	er "github.com/flowstack/resendstack/internal/errors"
	"github.com/flowstack/resendstack/services/render"
	"github.com/flowstack/resendstack/tasks"
)

type countingReadCloser struct {
	reader     io.Reader
	readErr    error
	closeCount int
}

func (r *countingReadCloser) Read(p []byte) (int, error) {
	if r.readErr != nil {
		return 0, r.readErr
	}
	return r.reader.Read(p)
}

func (r *countingReadCloser) Close() error {
	r.closeCount++
	return nil
}

type fakeBlobStore struct {
	blobs     map[string][]byte
	readErr   error
	openErr   error
	openCalls []string
	handles   []*countingReadCloser
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[string][]byte{}}
}

func (s *fakeBlobStore) OpenRead(ctx context.Context, uri string) (io.ReadCloser, error) {
	s.openCalls = append(s.openCalls, uri)
	if s.openErr != nil {
		return nil, s.openErr
	}
	data, ok := s.blobs[uri]
	if !ok {
		return nil, er.ErrBlobNotFound
	}
	handle := &countingReadCloser{reader: bytes.NewReader(data), readErr: s.readErr}
	s.handles = append(s.handles, handle)
	return handle, nil
}

func newResolverRuntime(store *fakeBlobStore, vars map[string]interface{}) *tasks.Runtime {
	return &tasks.Runtime{
		Renderer: render.NewRenderer(vars),
		Storage:  store,
	}
}

func TestResolveAttachments_PathOnlyNeverReadsBlobStore(t *testing.T) {
	store := newFakeBlobStore()
	task := &Send{Attachments: []Attachment{
		{Name: "report.pdf", Path: "https://files.example.com/report.pdf", ContentType: "application/pdf"},
	}}

	resolved, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, nil))

	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "report.pdf", resolved[0].Filename)
	assert.Equal(t, "https://files.example.com/report.pdf", resolved[0].Path)
	assert.Equal(t, "application/pdf", resolved[0].ContentType)
	assert.Empty(t, resolved[0].Content)
	assert.Empty(t, store.openCalls)
}

func TestResolveAttachments_URIReadsAndEncodesExactBytes(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["store://abc"] = []byte{0x68, 0x69}
	task := &Send{Attachments: []Attachment{
		{Name: "f.txt", URI: "store://abc"},
	}}

	resolved, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, nil))

	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "aGk=", resolved[0].Content)
	assert.Empty(t, resolved[0].Path)
	assert.Equal(t, []string{"store://abc"}, store.openCalls)
}

func TestResolveAttachments_NoSourceFailsNamingTheAttachment(t *testing.T) {
	store := newFakeBlobStore()
	task := &Send{Attachments: []Attachment{
		{Name: "f.txt"},
	}}

	resolved, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, nil))

	require.Error(t, err)
	assert.Nil(t, resolved)
	var invalidErr *er.InvalidAttachmentError
	require.True(t, errors.As(err, &invalidErr))
	assert.Equal(t, "f.txt", invalidErr.Name)
	assert.Equal(t, 0, invalidErr.Index)
	assert.Contains(t, err.Error(), "f.txt")
	assert.Empty(t, store.openCalls)
}

func TestResolveAttachments_ResolutionIsAllOrNothing(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["store://ok"] = []byte("fine")
	task := &Send{Attachments: []Attachment{
		{Name: "first.txt", URI: "store://ok"},
		{Name: "broken.txt"},
	}}

	resolved, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, nil))

	require.Error(t, err)
	assert.Nil(t, resolved)
	var invalidErr *er.InvalidAttachmentError
	require.True(t, errors.As(err, &invalidErr))
	assert.Equal(t, 1, invalidErr.Index)
}

func TestResolveAttachments_OutputOrderMatchesInputOrder(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["store://one"] = []byte("1")
	store.blobs["store://three"] = []byte("3")
	task := &Send{Attachments: []Attachment{
		{Name: "one.txt", URI: "store://one"},
		{Name: "two.txt", Path: "https://example.com/two.txt"},
		{Name: "three.txt", URI: "store://three"},
	}}

	resolved, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, nil))

	require.NoError(t, err)
	require.Len(t, resolved, 3)
	assert.Equal(t, "one.txt", resolved[0].Filename)
	assert.Equal(t, "two.txt", resolved[1].Filename)
	assert.Equal(t, "three.txt", resolved[2].Filename)
}

func TestResolveAttachments_RenderedURI(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["store://runs/input.bin"] = []byte("payload")
	task := &Send{Attachments: []Attachment{
		{Name: "{{ .filename }}", URI: "{{ .userFile }}"},
	}}
	vars := map[string]interface{}{
		"filename": "input.bin",
		"userFile": "store://runs/input.bin",
	}

	resolved, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, vars))

	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "input.bin", resolved[0].Filename)
	assert.Equal(t, []string{"store://runs/input.bin"}, store.openCalls)
}

func TestResolveAttachments_HandleClosedOnSuccess(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["store://abc"] = []byte("hi")
	task := &Send{Attachments: []Attachment{
		{Name: "f.txt", URI: "store://abc"},
	}}

	_, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, nil))

	require.NoError(t, err)
	require.Len(t, store.handles, 1)
	assert.Equal(t, 1, store.handles[0].closeCount)
}

func TestResolveAttachments_HandleClosedOnReadFailure(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["store://abc"] = []byte("hi")
	store.readErr = errors.New("stream interrupted")
	task := &Send{Attachments: []Attachment{
		{Name: "f.txt", URI: "store://abc"},
	}}

	resolved, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, nil))

	require.Error(t, err)
	assert.Nil(t, resolved)
	var blobErr *er.BlobReadError
	require.True(t, errors.As(err, &blobErr))
	assert.Equal(t, "store://abc", blobErr.URI)
	require.Len(t, store.handles, 1)
	assert.Equal(t, 1, store.handles[0].closeCount)
}

func TestResolveAttachments_BlobNotFound(t *testing.T) {
	store := newFakeBlobStore()
	task := &Send{Attachments: []Attachment{
		{Name: "f.txt", URI: "store://missing"},
	}}

	_, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, nil))

	require.Error(t, err)
	var blobErr *er.BlobReadError
	require.True(t, errors.As(err, &blobErr))
	assert.True(t, errors.Is(err, er.ErrBlobNotFound))
}

func TestResolveAttachments_RenderFailureAborts(t *testing.T) {
	store := newFakeBlobStore()
	task := &Send{Attachments: []Attachment{
		{Name: "{{ .missing }}", Path: "https://example.com/f.txt"},
	}}

	_, err := task.resolveAttachments(context.Background(), newResolverRuntime(store, map[string]interface{}{}))

	require.Error(t, err)
	var renderErr *er.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Empty(t, store.openCalls)
}
