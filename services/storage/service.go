package storage

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/flowstack/resendstack/interfaces"
	"github.com/flowstack/resendstack/internal/tracing"
	"github.com/flowstack/resendstack/services/storage/aws_client"
)

// objectBlobStore implements BlobStore on top of an S3-compatible bucket.
// Blob URIs are either fully qualified (s3://bucket/path/to/key) or
// relative to the default bucket (store://path/to/key).
type objectBlobStore struct {
	client        aws_client.S3Client
	defaultBucket string
}

// StorageConfig holds configuration for the blob store
type StorageConfig struct {
	DefaultBucket string
}

// NewBlobStore creates a blob store backed by the given S3 client
func NewBlobStore(client aws_client.S3Client, config StorageConfig) interfaces.BlobStore {
	return &objectBlobStore{
		client:        client,
		defaultBucket: config.DefaultBucket,
	}
}

// OpenRead resolves the blob URI to a bucket and key and opens a
// streaming read handle on it.
func (s *objectBlobStore) OpenRead(ctx context.Context, uri string) (io.ReadCloser, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "objectBlobStore.OpenRead")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	span.LogKV("uri", uri)

	bucket, key, err := s.resolveURI(uri)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return s.client.GetObject(ctx, bucket, key)
}

// resolveURI maps a blob URI onto bucket and key. When the URI carries no
// path component the host is the key and the default bucket applies; the
// "store://abc" form the orchestrator emits for run-scoped files lands
// there.
func (s *objectBlobStore) resolveURI(uri string) (string, string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", "", errors.Wrap(err, "invalid blob URI")
	}
	if parsed.Scheme == "" {
		return "", "", errors.Errorf("blob URI %q has no scheme", uri)
	}

	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		if parsed.Host == "" {
			return "", "", errors.Errorf("blob URI %q has no object key", uri)
		}
		return s.defaultBucket, parsed.Host, nil
	}

	bucket := parsed.Host
	if bucket == "" {
		bucket = s.defaultBucket
	}
	return bucket, key, nil
}
