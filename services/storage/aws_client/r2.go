package aws_client

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

// R2Config holds configuration specific to Cloudflare R2
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
}

// NewR2Client creates an S3Client configured for Cloudflare R2
func NewR2Client(config R2Config) S3Client {
	awsCfg := &aws.Config{
		// R2 exposes an S3-compatible endpoint per account
		Endpoint:    aws.String("https://" + config.AccountID + ".r2.cloudflarestorage.com"),
		Region:      aws.String("auto"), // R2 uses "auto" region
		Credentials: credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		// This is important for R2 compatibility
		S3ForcePathStyle: aws.Bool(true),
	}

	s := session.Must(session.NewSession(awsCfg))

	return &s3Client{
		Config:  awsCfg,
		Session: s,
	}
}
