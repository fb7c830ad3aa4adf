// Package objectstore uploads payment proofs and QRIS images to S3-compatible
// storage and hands back their public URLs.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Client wraps the S3 client.
type Client struct {
	api    objectAPI
	config *Config
}

// NewClient creates a new object storage client and checks the default bucket.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	client := &Client{api: s3Client, config: cfg}
	if _, err := client.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		return nil, fmt.Errorf("bucket %s not accessible: %w", cfg.Bucket, err)
	}

	log.Infof("[ObjectStore] Successfully initialized client for bucket: %s", cfg.Bucket)
	return client, nil
}

// DefaultBucket returns the configured bucket.
func (c *Client) DefaultBucket() string {
	return c.config.Bucket
}

// Upload stores data under key and returns its public URL. An empty bucket
// means the configured default.
func (c *Client) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	if bucket == "" {
		bucket = c.config.Bucket
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err)
	}

	log.Infof("[ObjectStore] Uploaded s3://%s/%s (%d bytes)", bucket, key, len(data))
	return c.PublicURL(bucket, key), nil
}

// Delete removes an object.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	if bucket == "" {
		bucket = c.config.Bucket
	}
	if _, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL builds the public address of an object.
func (c *Client) PublicURL(bucket, key string) string {
	escaped := escapeKey(key)
	switch {
	case c.config.PublicBaseURL != "":
		return fmt.Sprintf("%s/%s/%s", c.config.PublicBaseURL, bucket, escaped)
	case c.config.EndpointURL != "":
		return fmt.Sprintf("%s/%s/%s", c.config.EndpointURL, bucket, escaped)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, c.config.Region, escaped)
	}
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// Unavailable stands in for a client that could not be created. Every
// upload fails with Err.
type Unavailable struct {
	Err error
}

func (u Unavailable) Upload(context.Context, string, string, []byte, string) (string, error) {
	return "", fmt.Errorf("object storage unavailable: %w", u.Err)
}
