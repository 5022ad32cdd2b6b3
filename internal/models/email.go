package models

// EmailPayload is the request body for Resend POST /emails.
type EmailPayload struct {
	From        string            `json:"from"`
	To          []string          `json:"to"`
	Subject     string            `json:"subject"`
	Cc          []string          `json:"cc,omitempty"`
	Bcc         []string          `json:"bcc,omitempty"`
	ReplyTo     []string          `json:"reply_to,omitempty"`
	Html        string            `json:"html,omitempty"`
	Text        string            `json:"text,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	ScheduledAt string            `json:"scheduled_at,omitempty"`
	// Attachments distinguishes "not configured" (nil pointer, key absent
	// from the wire payload) from "configured but empty" (pointer to an
	// empty slice, key present as an empty array).
	Attachments *[]Attachment `json:"attachments,omitempty"`
	Tags        []Tag         `json:"tags,omitempty"`
}

// Attachment is a resolved attachment as Resend accepts it: either
// Content (base64 of the blob bytes) or Path (a remote URL the provider
// fetches itself), never both.
type Attachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content,omitempty"`
	Path        string `json:"path,omitempty"`
	ContentID   string `json:"content_id,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type SendEmailResponse struct {
	ID string `json:"id"`
}
