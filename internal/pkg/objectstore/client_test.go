package objectstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	bucket      string
	key         string
	body        []byte
	contentType string
	putErr      error
	deleted     []string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	f.contentType = aws.ToString(in.ContentType)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, nil
}

func TestUploadReturnsPublicURL(t *testing.T) {
	api := &fakeS3{}
	c := &Client{api: api, config: &Config{Bucket: "receipts", EndpointURL: "https://storage.example.com"}}

	url, err := c.Upload(context.Background(), "", "proof-1-ana@example.com.jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "receipts", api.bucket)
	assert.Equal(t, "proof-1-ana@example.com.jpg", api.key)
	assert.Equal(t, "image/jpeg", api.contentType)
	assert.Equal(t, []byte("jpeg"), api.body)
	assert.Equal(t, "https://storage.example.com/receipts/proof-1-ana@example.com.jpg", url)
}

func TestUploadError(t *testing.T) {
	c := &Client{api: &fakeS3{putErr: errors.New("denied")}, config: &Config{Bucket: "receipts"}}
	_, err := c.Upload(context.Background(), "other", "k", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://other/k")
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "public base", cfg: Config{PublicBaseURL: "https://cdn.example.com", EndpointURL: "https://s3.example.com"}, want: "https://cdn.example.com/receipts/a%20b.jpg"},
		{name: "endpoint", cfg: Config{EndpointURL: "https://s3.example.com"}, want: "https://s3.example.com/receipts/a%20b.jpg"},
		{name: "aws", cfg: Config{Region: "ap-southeast-1"}, want: "https://receipts.s3.ap-southeast-1.amazonaws.com/a%20b.jpg"},
	}
	for _, tt := range tests {
		cfg := tt.cfg
		c := &Client{config: &cfg}
		if got := c.PublicURL("receipts", "a b.jpg"); got != tt.want {
			t.Fatalf("%s: PublicURL = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeleteUsesDefaultBucket(t *testing.T) {
	api := &fakeS3{}
	c := &Client{api: api, config: &Config{Bucket: "receipts"}}
	require.NoError(t, c.Delete(context.Background(), "", "qris-1.png"))
	assert.Equal(t, []string{"qris-1.png"}, api.deleted)
}

func TestUnavailableUpload(t *testing.T) {
	cause := errors.New("S3_ACCESS_KEY_ID is required")
	_, err := Unavailable{Err: cause}.Upload(context.Background(), "", "k", []byte("x"), "")
	assert.ErrorIs(t, err, cause)
}
