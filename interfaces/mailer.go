package interfaces

import (
	"context"

	"github.com/flowstack/resendstack/internal/models"
)

// MailClient is the Resend API surface the tasks consume. Both calls are
// synchronous, over HTTPS, authenticated by the bearer API key the client
// was built with. No retries, no local timeout beyond the HTTP client's.
type MailClient interface {
	SendEmail(ctx context.Context, payload *models.EmailPayload) (*models.SendEmailResponse, error)
	CreateDomain(ctx context.Context, payload *models.DomainPayload) (*models.CreateDomainResponse, error)
}

// MailClientFactory builds a client for the API key rendered out of the
// task configuration. The key is per invocation, not ambient.
type MailClientFactory func(apiKey string) MailClient
