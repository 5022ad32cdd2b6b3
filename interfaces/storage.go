package interfaces

import (
	"context"
	"io"
)

// BlobStore is the orchestration platform's internal file storage,
// addressed by URI. Read-only from the tasks' point of view.
type BlobStore interface {
	// OpenRead returns a streaming handle on the blob. The caller owns
	// the handle and must close it on every exit path.
	OpenRead(ctx context.Context, uri string) (io.ReadCloser, error)
}
