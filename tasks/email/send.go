// Package email implements the task that sends one transactional email
// through Resend.
package email

import (
	"context"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"

	"github.com/flowstack/resendstack/interfaces"
	er "github.com/flowstack/resendstack/internal/errors"
	"github.com/flowstack/resendstack/internal/models"
	"github.com/flowstack/resendstack/internal/tracing"
	"github.com/flowstack/resendstack/tasks"
)

// Send is the email-send task configuration. Every field may carry
// template expressions and is rendered against the run variables before
// use. Beyond rendering and attachment resolution no local validation
// happens; a missing body or bad address is the provider's call.
type Send struct {
	APIKey  string   `json:"apiKey"`
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`

	Cc      []string          `json:"cc,omitempty"`
	Bcc     []string          `json:"bcc,omitempty"`
	ReplyTo []string          `json:"replyTo,omitempty"`
	Html    string            `json:"html,omitempty"`
	Text    string            `json:"text,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`

	// IdempotencyKey is accepted and rendered but not forwarded yet:
	// Resend takes it as an Idempotency-Key request header, which the
	// client does not set.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`

	// ScheduledAt is an ISO-8601 timestamp, passed through to the
	// provider without local validation.
	ScheduledAt string `json:"scheduledAt,omitempty"`

	// Attachments nil means the attachments key is left off the provider
	// payload entirely; an empty non-nil list sends an empty array.
	Attachments []Attachment `json:"attachments,omitempty"`

	Tags []Tag `json:"tags,omitempty"`
}

// Attachment is the configured attachment spec. Exactly one of URI
// (internal blob storage) or Path (remote http/https file the provider
// fetches) must render to a non-empty value.
type Attachment struct {
	Name        string `json:"name"`
	URI         string `json:"uri,omitempty"`
	Path        string `json:"path,omitempty"`
	ContentID   string `json:"contentId,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Output carries the provider-assigned delivery ID.
type Output struct {
	ID string `json:"id"`
}

// Run renders the configuration, resolves attachments and submits one
// email. Every failure aborts the invocation; nothing is retried and no
// partial output is produced.
func (t *Send) Run(ctx context.Context, rt *tasks.Runtime) (*Output, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "email.Send.Run")
	defer span.Finish()
	tracing.SetDefaultTaskSpanTags(ctx, span)

	apiKey, err := renderString(rt.Renderer, "apiKey", t.APIKey)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	payload, err := t.buildPayload(ctx, rt)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	response, err := rt.NewClient(apiKey).SendEmail(ctx, payload)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogFields(tracingLog.String("result.id", response.ID))
	return &Output{ID: response.ID}, nil
}

func (t *Send) buildPayload(ctx context.Context, rt *tasks.Runtime) (*models.EmailPayload, error) {
	r := rt.Renderer
	payload := &models.EmailPayload{}

	var err error
	if payload.From, err = renderString(r, "from", t.From); err != nil {
		return nil, err
	}
	if payload.To, err = renderStringSlice(r, "to", t.To); err != nil {
		return nil, err
	}
	if payload.Subject, err = renderString(r, "subject", t.Subject); err != nil {
		return nil, err
	}
	if payload.Cc, err = renderStringSlice(r, "cc", t.Cc); err != nil {
		return nil, err
	}
	if payload.Bcc, err = renderStringSlice(r, "bcc", t.Bcc); err != nil {
		return nil, err
	}
	if payload.ReplyTo, err = renderStringSlice(r, "replyTo", t.ReplyTo); err != nil {
		return nil, err
	}
	if payload.Html, err = renderString(r, "html", t.Html); err != nil {
		return nil, err
	}
	if payload.Text, err = renderString(r, "text", t.Text); err != nil {
		return nil, err
	}
	if payload.Headers, err = renderStringMap(r, "headers", t.Headers); err != nil {
		return nil, err
	}
	if payload.ScheduledAt, err = renderString(r, "scheduledAt", t.ScheduledAt); err != nil {
		return nil, err
	}
	if payload.Tags, err = t.renderTags(r); err != nil {
		return nil, err
	}

	// rendered for early failure surfacing, not forwarded (see field doc)
	if _, err = renderString(r, "idempotencyKey", t.IdempotencyKey); err != nil {
		return nil, err
	}

	if t.Attachments != nil {
		resolved, err := t.resolveAttachments(ctx, rt)
		if err != nil {
			return nil, err
		}
		payload.Attachments = &resolved
	}

	return payload, nil
}

func (t *Send) renderTags(r interfaces.TemplateRenderer) ([]models.Tag, error) {
	if len(t.Tags) == 0 {
		return nil, nil
	}

	tags := make([]models.Tag, 0, len(t.Tags))
	for _, tag := range t.Tags {
		name, err := renderString(r, "tags.name", tag.Name)
		if err != nil {
			return nil, err
		}
		value, err := renderString(r, "tags.value", tag.Value)
		if err != nil {
			return nil, err
		}
		tags = append(tags, models.Tag{Name: name, Value: value})
	}
	return tags, nil
}

func renderString(r interfaces.TemplateRenderer, field, expr string) (string, error) {
	value, err := r.String(expr)
	if err != nil {
		return "", &er.RenderError{Field: field, Cause: err}
	}
	return value, nil
}

func renderStringSlice(r interfaces.TemplateRenderer, field string, exprs []string) ([]string, error) {
	values, err := r.StringSlice(exprs)
	if err != nil {
		return nil, &er.RenderError{Field: field, Cause: err}
	}
	return values, nil
}

func renderStringMap(r interfaces.TemplateRenderer, field string, exprs map[string]string) (map[string]string, error) {
	values, err := r.StringMap(exprs)
	if err != nil {
		return nil, &er.RenderError{Field: field, Cause: err}
	}
	return values, nil
}
