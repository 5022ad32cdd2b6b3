package config

type AppConfig struct {
	Namespace string `env:"TASK_NAMESPACE" envDefault:"default"`
}

type ResendConfig struct {
	BaseURL string `env:"RESEND_BASE_URL" envDefault:"https://api.resend.com"`
}

// BlobStorageConfig selects and configures the object store backing the
// internal blob URIs attachments may reference.
type BlobStorageConfig struct {
	Provider string `env:"BLOB_STORAGE_PROVIDER" envDefault:"s3"`
	Bucket   string `env:"BLOB_STORAGE_BUCKET" envDefault:"workflow-files"`

	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSAccessKeySecret string `env:"AWS_ACCESS_KEY_SECRET"`

	R2AccountID       string `env:"CLOUDFLARE_R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"CLOUDFLARE_R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string `env:"CLOUDFLARE_R2_ACCESS_KEY_SECRET"`
}
