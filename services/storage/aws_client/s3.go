package aws_client

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/opentracing/opentracing-go"

	er "github.com/flowstack/resendstack/internal/errors"
	"github.com/flowstack/resendstack/internal/tracing"
)

type S3Client interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

type s3Client struct {
	Config  *aws.Config
	Session *session.Session
}

func NewS3Client(config *aws.Config) S3Client {
	s := session.Must(session.NewSession(config))
	return &s3Client{
		Config:  config,
		Session: s,
	}
}

// GetObject returns the streaming body of the object. The caller closes it.
func (s *s3Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "s3Client.GetObject")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	span.LogKV("bucket", bucket)
	span.LogKV("key", key)

	svc := s3.New(s.Session)
	out, err := svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if awsErr, ok := err.(awserr.Error); ok {
			switch awsErr.Code() {
			case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
				tracing.TraceErr(span, er.ErrBlobNotFound)
				return nil, er.ErrBlobNotFound
			}
		}
		tracing.TraceErr(span, err)
		return nil, err
	}

	return out.Body, nil
}
