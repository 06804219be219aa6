package source

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultS3Region = "us-east-1"

// S3Options specifies how S3 targets
// are reached.
type S3Options struct {
	Region    string
	Endpoint  string
	PathStyle bool

	AccessKeyId     string
	SecretAccessKey string
	SessionToken    string
}

// Retrieve implements aws.CredentialsProvider
// using the static credentials in S3Options.
func (opts S3Options) Retrieve(_ context.Context) (aws.Credentials, error) {
	return aws.Credentials{
		AccessKeyID:     opts.AccessKeyId,
		SecretAccessKey: opts.SecretAccessKey,
		SessionToken:    opts.SessionToken,
		Source:          "ucode-sniffer configuration",
	}, nil
}

func (opts S3Options) hasCredentials() bool {
	return len(opts.AccessKeyId) > 0 && len(opts.SecretAccessKey) > 0
}

func (opts *Options) getS3Client() *s3.Client {
	opts.s3ClientOnce.Do(func() {
		s3Opts := s3.Options{
			Region:       opts.S3.Region,
			UsePathStyle: opts.S3.PathStyle,
			Credentials:  aws.AnonymousCredentials{},
		}

		if len(s3Opts.Region) == 0 {
			s3Opts.Region = defaultS3Region
		}

		if len(opts.S3.Endpoint) > 0 {
			s3Opts.BaseEndpoint = aws.String(opts.S3.Endpoint)
		}

		if opts.S3.hasCredentials() {
			s3Opts.Credentials = opts.S3
		}

		opts.s3Client = s3.New(s3Opts)
	})

	return opts.s3Client
}

type s3Source struct {
	name   string
	bucket string
	key    string
	client *s3.Client
}

func (src *s3Source) Name() string {
	return src.name
}

func (src *s3Source) ReadHead(ctx context.Context, limit int64) ([]byte, error) {
	obj, err := src.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(src.bucket),
		Key:    aws.String(src.key),
		Range:  aws.String(fmt.Sprintf("bytes=0-%d", limit-1)),
	})
	if err != nil {
		return nil, fmt.Errorf("get S3 object: %w", err)
	}
	defer obj.Body.Close()

	return readHead(obj.Body, limit)
}
