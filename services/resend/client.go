package resend

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/flowstack/resendstack/interfaces"
	er "github.com/flowstack/resendstack/internal/errors"
	"github.com/flowstack/resendstack/internal/models"
	"github.com/flowstack/resendstack/internal/tracing"
)

// Resend API reference: https://resend.com/docs/api-reference
const DefaultBaseURL = "https://api.resend.com"

type resendClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*resendClient)

func WithBaseURL(baseURL string) Option {
	return func(c *resendClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *resendClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func NewClient(apiKey string, opts ...Option) interfaces.MailClient {
	c := &resendClient{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendEmail submits one outbound email and returns the provider-assigned
// delivery ID.
func (c *resendClient) SendEmail(ctx context.Context, payload *models.EmailPayload) (*models.SendEmailResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "resendClient.SendEmail")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.from", payload.From)
	span.LogKV("request.subject", payload.Subject)

	body, err := c.post(ctx, "/emails", payload)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	var response models.SendEmailResponse
	if err := json.Unmarshal(body, &response); err != nil {
		err = errors.Wrap(err, "failed to parse Resend email response")
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogFields(tracingLog.String("response.id", response.ID))
	return &response, nil
}

// CreateDomain registers a sending domain and returns the full response
// mapping untouched, DNS records included.
func (c *resendClient) CreateDomain(ctx context.Context, payload *models.DomainPayload) (*models.CreateDomainResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "resendClient.CreateDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.name", payload.Name)
	span.LogKV("request.region", payload.Region)

	body, err := c.post(ctx, "/domains", payload)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		err = errors.Wrap(err, "failed to parse Resend domain response")
		tracing.TraceErr(span, err)
		return nil, err
	}

	id, _ := raw["id"].(string)
	span.LogFields(tracingLog.String("response.id", id))

	return &models.CreateDomainResponse{ID: id, Raw: raw}, nil
}

func (c *resendClient) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode Resend request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(requestBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build Resend request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &er.ProviderError{Cause: err}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &er.ProviderError{StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, providerError(resp.StatusCode, responseBody)
	}

	return responseBody, nil
}

// providerError surfaces the Resend error body verbatim. The body shape
// is {"statusCode": 422, "name": "validation_error", "message": "..."}.
func providerError(statusCode int, body []byte) error {
	var parsed struct {
		StatusCode int    `json:"statusCode"`
		Name       string `json:"name"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Message == "" && parsed.Name == "" {
		return &er.ProviderError{StatusCode: statusCode, Message: string(body)}
	}

	if parsed.StatusCode == 0 {
		parsed.StatusCode = statusCode
	}
	return &er.ProviderError{
		StatusCode: parsed.StatusCode,
		Name:       parsed.Name,
		Message:    parsed.Message,
	}
}
