package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/opentracing/opentracing-go"

	"github.com/flowstack/resendstack/interfaces"
	er "github.com/flowstack/resendstack/internal/errors"
	"github.com/flowstack/resendstack/internal/models"
	"github.com/flowstack/resendstack/internal/tracing"
	"github.com/flowstack/resendstack/tasks"
)

// resolveAttachments turns the configured specs into provider-ready
// attachments, in input order. Resolution is all-or-nothing: the first
// failing spec aborts the whole send before any provider call.
func (t *Send) resolveAttachments(ctx context.Context, rt *tasks.Runtime) ([]models.Attachment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "email.Send.resolveAttachments")
	defer span.Finish()
	tracing.SetDefaultTaskSpanTags(ctx, span)

	resolved := make([]models.Attachment, 0, len(t.Attachments))
	for i, spec := range t.Attachments {
		attachment, err := resolveAttachment(ctx, rt, i, spec)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		resolved = append(resolved, *attachment)
	}
	return resolved, nil
}

func resolveAttachment(ctx context.Context, rt *tasks.Runtime, index int, spec Attachment) (*models.Attachment, error) {
	name, err := renderAttachmentField(rt.Renderer, index, "name", spec.Name)
	if err != nil {
		return nil, err
	}
	contentID, err := renderAttachmentField(rt.Renderer, index, "contentId", spec.ContentID)
	if err != nil {
		return nil, err
	}
	contentType, err := renderAttachmentField(rt.Renderer, index, "contentType", spec.ContentType)
	if err != nil {
		return nil, err
	}

	// A remote path wins over a blob URI; the provider fetches it itself,
	// so no blob read happens on this branch.
	path, err := renderAttachmentField(rt.Renderer, index, "path", spec.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		return &models.Attachment{
			Filename:    name,
			Path:        path,
			ContentID:   contentID,
			ContentType: contentType,
		}, nil
	}

	uri, err := renderAttachmentField(rt.Renderer, index, "uri", spec.URI)
	if err != nil {
		return nil, err
	}
	if uri != "" {
		content, err := readBlobAsBase64(ctx, rt.Storage, uri)
		if err != nil {
			return nil, err
		}
		return &models.Attachment{
			Filename:    name,
			Content:     content,
			ContentID:   contentID,
			ContentType: contentType,
		}, nil
	}

	return nil, &er.InvalidAttachmentError{Index: index, Name: name}
}

// readBlobAsBase64 streams the blob to completion and base64-encodes it.
// The read handle is closed on every exit path.
func readBlobAsBase64(ctx context.Context, store interfaces.BlobStore, uri string) (string, error) {
	reader, err := store.OpenRead(ctx, uri)
	if err != nil {
		return "", &er.BlobReadError{URI: uri, Cause: err}
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", &er.BlobReadError{URI: uri, Cause: err}
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

func renderAttachmentField(r interfaces.TemplateRenderer, index int, field, expr string) (string, error) {
	return renderString(r, fmt.Sprintf("attachments[%d].%s", index, field), expr)
}
