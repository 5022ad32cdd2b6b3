package tasks

import (
	"github.com/flowstack/resendstack/interfaces"
	"github.com/flowstack/resendstack/internal/logger"
)

// Runtime bundles the collaborators the orchestrator hands to a single
// task invocation. The renderer is already bound to the run's variables;
// the mail client is built per run from the rendered API key.
type Runtime struct {
	Renderer  interfaces.TemplateRenderer
	Storage   interfaces.BlobStore
	NewClient interfaces.MailClientFactory
	Log       logger.Logger
}
