package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(input.Body)
	f.inputs = append(f.inputs, input)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func newTestStore(client S3Client, cfg Config) *S3ImageStore {
	s := NewS3ImageStoreWithClient(client, cfg)
	s.now = func() time.Time { return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestS3ImageStore_PutImage(t *testing.T) {
	client := &fakeS3{}
	store := newTestStore(client, Config{Bucket: "assets", Region: "eu-west-1", Prefix: "designs"})

	u, err := store.PutImage(context.Background(), "Hero Banner.PNG", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "assets", aws.StringValue(in.Bucket))
	assert.Equal(t, "image/png", aws.StringValue(in.ContentType))
	assert.Equal(t, s3.ObjectCannedACLPublicRead, aws.StringValue(in.ACL))
	assert.Equal(t, []byte("png-bytes"), client.bodies[0])

	key := aws.StringValue(in.Key)
	assert.Regexp(t, regexp.MustCompile(`^designs/2026/05/[0-9a-f]{16}-hero-banner\.png$`), key)
	assert.Equal(t, "https://assets.s3.eu-west-1.amazonaws.com/"+key, u)
}

func TestS3ImageStore_Rejects(t *testing.T) {
	client := &fakeS3{}
	store := newTestStore(client, Config{Bucket: "assets"})
	ctx := context.Background()

	_, err := store.PutImage(ctx, "a.png", "image/png", nil)
	assert.EqualError(t, err, "invalid image: image is empty")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = store.PutImage(ctx, "a.exe", "application/octet-stream", []byte("x"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image content type")

	_, err = store.PutImage(ctx, "big.png", "image/png", make([]byte, MaxImageSize+1))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum allowed size")
	assert.ErrorIs(t, err, ErrInvalidImage)

	assert.Empty(t, client.inputs)
}

func TestS3ImageStore_UploadError(t *testing.T) {
	store := newTestStore(&fakeS3{err: errors.New("access denied")}, Config{Bucket: "assets"})

	_, err := store.PutImage(context.Background(), "a.jpg", "image/jpeg; charset=binary", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload image")
	assert.Contains(t, err.Error(), "access denied")
	assert.NotErrorIs(t, err, ErrInvalidImage)
}

func TestS3ImageStore_PublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"public base", Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com/2026/05/x.png"},
		{"path style", Config{Bucket: "b", Endpoint: "http://minio:9000", PathStyle: true}, "http://minio:9000/b/2026/05/x.png"},
		{"virtual host", Config{Bucket: "b", Endpoint: "https://s3.example.com"}, "https://b.s3.example.com/2026/05/x.png"},
		{"aws", Config{Bucket: "b", Region: "us-east-1"}, "https://b.s3.us-east-1.amazonaws.com/2026/05/x.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(&fakeS3{}, tt.cfg)
			assert.Equal(t, tt.want, store.publicURL("2026/05/x.png"))
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hero-banner-2", slugify("Hero  Banner (2)"))
	assert.Equal(t, "", slugify("---"))
	assert.Equal(t, "t", slugify("été"))
	assert.Len(t, slugify("a very long file name that keeps going and going forever"), 40)
}

func TestNewS3ImageStore(t *testing.T) {
	_, err := NewS3ImageStore(Config{})
	assert.Error(t, err)

	store, err := NewS3ImageStore(Config{Bucket: "assets", Endpoint: "http://localhost:9000", PathStyle: true, AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", store.config.Region)
}
