package publish

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client is the subset of the S3 API the publisher needs.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Credentials holds a static access key pair.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client creates a client for an S3-compatible endpoint. An empty
// endpoint uses the AWS default for region.
func NewS3Client(endpoint, region string, creds Credentials) (*s3.Client, error) {
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return nil, ErrMissingCredentials
	}

	if region == "" {
		region = "auto"
	}

	opts := s3.Options{
		Credentials: credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID,
			creds.SecretAccessKey,
			"",
		),
		Region: region,
	}

	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	return s3.New(opts), nil
}
