package models

// DomainPayload is the request body for Resend POST /domains.
type DomainPayload struct {
	Name             string `json:"name"`
	Region           string `json:"region,omitempty"`
	CustomReturnPath string `json:"custom_return_path,omitempty"`
}

// CreateDomainResponse keeps the provider response untyped: Raw carries
// every field Resend returned, nested DNS records included, with no
// filtering. ID is extracted for convenience.
type CreateDomainResponse struct {
	ID  string
	Raw map[string]interface{}
}
