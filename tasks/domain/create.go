// Package domain implements the task that registers a sending domain
// with Resend.
package domain

import (
	"context"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"

	er "github.com/flowstack/resendstack/internal/errors"
	"github.com/flowstack/resendstack/internal/models"
	"github.com/flowstack/resendstack/internal/tracing"
	"github.com/flowstack/resendstack/internal/utils"
	"github.com/flowstack/resendstack/tasks"
)

const defaultRegion = "us-east-1"

// Create is the domain-registration task configuration. Name and APIKey
// are required; Region falls back to us-east-1 and CustomReturnPath is
// left to the provider default ("send") when empty after rendering.
type Create struct {
	APIKey           string `json:"apiKey"`
	Name             string `json:"name"`
	Region           string `json:"region,omitempty"`
	CustomReturnPath string `json:"customReturnPath,omitempty"`
}

// Output carries the created domain ID and the provider response
// mapping, passed through without filtering (DNS records included).
type Output struct {
	ID     string                 `json:"id"`
	Result map[string]interface{} `json:"result"`
}

// Run renders the configuration and submits one domain-registration
// request. Same no-retry, fail-the-invocation semantics as the email
// task.
func (t *Create) Run(ctx context.Context, rt *tasks.Runtime) (*Output, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "domain.Create.Run")
	defer span.Finish()
	tracing.SetDefaultTaskSpanTags(ctx, span)

	apiKey, err := t.render(rt, "apiKey", t.APIKey)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	name, err := t.render(rt, "name", t.Name)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	region, err := t.render(rt, "region", t.Region)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	customReturnPath, err := t.render(rt, "customReturnPath", t.CustomReturnPath)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	payload := &models.DomainPayload{
		Name:             name,
		Region:           utils.StringOrDefault(region, defaultRegion),
		CustomReturnPath: customReturnPath,
	}

	response, err := rt.NewClient(apiKey).CreateDomain(ctx, payload)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogFields(tracingLog.String("result.id", response.ID))
	tracing.LogObjectAsJson(span, "response", response.Raw)
	rt.Log.Infof("created Resend domain %s (%s)", payload.Name, response.ID)

	return &Output{ID: response.ID, Result: response.Raw}, nil
}

func (t *Create) render(rt *tasks.Runtime, field, expr string) (string, error) {
	value, err := rt.Renderer.String(expr)
	if err != nil {
		return "", &er.RenderError{Field: field, Cause: err}
	}
	return value, nil
}
