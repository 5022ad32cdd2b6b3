package storage

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"

	"github.com/flowstack/resendstack/interfaces"
	"github.com/flowstack/resendstack/services/storage/aws_client"
)

// NewS3BlobStore creates a BlobStore configured for AWS S3
func NewS3BlobStore(awsRegion, accessKeyID, accessKeySecret, defaultBucket string) interfaces.BlobStore {
	s3Client := aws_client.NewS3Client(&aws.Config{
		Region:      aws.String(awsRegion),
		Credentials: credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
	})

	return NewBlobStore(s3Client, StorageConfig{
		DefaultBucket: defaultBucket,
	})
}

// NewR2BlobStore creates a BlobStore configured for Cloudflare R2
func NewR2BlobStore(accountID, accessKeyID, accessKeySecret, defaultBucket string) interfaces.BlobStore {
	r2Client := aws_client.NewR2Client(aws_client.R2Config{
		AccountID:       accountID,
		AccessKeyID:     accessKeyID,
		AccessKeySecret: accessKeySecret,
	})

	return NewBlobStore(r2Client, StorageConfig{
		DefaultBucket: defaultBucket,
	})
}
