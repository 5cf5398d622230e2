package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images", "products")
	s := NewLocalStore(dir, "images/products/")

	url, err := s.Put(context.Background(), "a.png", "image/png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "/images/products/a.png", url)

	b, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	// names are never reused
	_, err = s.Put(context.Background(), "a.png", "image/png", strings.NewReader("other"))
	require.Error(t, err)
}

func TestLocalStore_RejectsPaths(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "/x")
	for _, name := range []string{"", "../evil.png", "sub/a.png"} {
		_, err := s.Put(context.Background(), name, "image/png", strings.NewReader("x"))
		assert.Error(t, err, name)
	}
}

type fakeS3 struct {
	s3iface.S3API
	in   *s3.PutObjectInput
	body string
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.in = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakeS3{}
	s := &S3Store{Client: fake, Bucket: "shop", Region: "eu-west-1", Prefix: "products"}

	url, err := s.Put(context.Background(), "a.png", "image/png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "https://shop.s3.eu-west-1.amazonaws.com/products/a.png", url)
	assert.Equal(t, "products/a.png", aws.StringValue(fake.in.Key))
	assert.Equal(t, "image/png", aws.StringValue(fake.in.ContentType))
	assert.Equal(t, s3.ObjectCannedACLPublicRead, aws.StringValue(fake.in.ACL))
	assert.EqualValues(t, 6, aws.Int64Value(fake.in.ContentLength))
	assert.Equal(t, "pixels", fake.body)

	s.PublicBaseURL = "https://cdn.example.com"
	url, err = s.Put(context.Background(), "b.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/products/b.png", url)
}

func TestNewS3Store_StaticCredentials(t *testing.T) {
	s, err := NewS3Store("shop", "us-east-1", "AKIA", "secret", "/products/", "https://cdn.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "products", s.Prefix)
	assert.Equal(t, "https://cdn.example.com", s.PublicBaseURL)
}
