package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// common errors
	ErrBlobNotFound = errors.New("blob not found")

	// attachment errors
	ErrAttachmentSourceMissing = errors.New("attachment must define either 'uri' (internal storage) or 'path' (remote file)")
)

// RenderError marks a configuration field whose template expression could
// not be resolved against the run variables. The invocation aborts and
// nothing is sent.
type RenderError struct {
	Field string
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render field %q: %v", e.Field, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// InvalidAttachmentError identifies an attachment spec with neither a
// usable uri nor path after rendering. Raised before any provider call.
type InvalidAttachmentError struct {
	Index int
	Name  string
}

func (e *InvalidAttachmentError) Error() string {
	return fmt.Sprintf("attachment %q (index %d): %v", e.Name, e.Index, ErrAttachmentSourceMissing)
}

func (e *InvalidAttachmentError) Unwrap() error {
	return ErrAttachmentSourceMissing
}

// BlobReadError wraps a blob store failure for a uri-sourced attachment.
type BlobReadError struct {
	URI   string
	Cause error
}

func (e *BlobReadError) Error() string {
	return fmt.Sprintf("cannot read attachment content from %q: %v", e.URI, e.Cause)
}

func (e *BlobReadError) Unwrap() error {
	return e.Cause
}

// ProviderError carries the Resend API rejection verbatim. Transport
// failures set Cause and leave StatusCode zero. Not retried, not
// recovered.
type ProviderError struct {
	StatusCode int
	Name       string
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("resend: %s (status %d): %s", e.Name, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("resend: request failed: %v", e.Cause)
	}
	return fmt.Sprintf("resend: request failed with status %d: %s", e.StatusCode, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
