package objectStore

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Options struct {
	AccountId       string
	AccessKeyId     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

// R2Store talks to Cloudflare R2 through its S3 compatible API.
type R2Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewR2Store(opts R2Options) *R2Store {
	cfg := aws.Config{
		Region:      "auto",
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKeyId, opts.SecretAccessKey, ""),
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", opts.AccountId))
	})
	return &R2Store{client: client, bucket: opts.Bucket, publicURL: opts.PublicURL}
}

func (s *R2Store) Put(ctx context.Context, key string, localPath string, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return "", fmt.Errorf("r2 put %s: %w", key, err)
	}
	return joinURL(s.publicURL, key), nil
}

func (s *R2Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
