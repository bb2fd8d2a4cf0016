package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

//go:generate mockgen -destination=../mocks/mock_image_store.go -package=pkgmocks github.com/ypamar/newsletter/pkg/storage ImageStore

// MaxImageSize caps a single upload
const MaxImageSize = 5 << 20

// ErrInvalidImage is wrapped by every PutImage rejection that happens before the upload
var ErrInvalidImage = errors.New("invalid image")

var allowedContentTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// ImageStore persists uploaded images and returns a URL usable as an image src
type ImageStore interface {
	PutImage(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// S3Client is the subset of the S3 API used by S3ImageStore
type S3Client interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Config holds the S3 settings
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the base of returned URLs; defaults to the bucket URL
	PublicURL string
	// PathStyle addresses the bucket in the path, needed by MinIO and friends
	PathStyle bool
	Prefix    string
}

// S3ImageStore uploads images to an S3-compatible bucket
type S3ImageStore struct {
	client S3Client
	config Config
	now    func() time.Time
}

// NewS3ImageStore creates a store backed by an aws-sdk session
func NewS3ImageStore(cfg Config) (*S3ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.PathStyle),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	return NewS3ImageStoreWithClient(s3.New(sess), cfg), nil
}

// NewS3ImageStoreWithClient wires an existing client, used by tests
func NewS3ImageStoreWithClient(client S3Client, cfg Config) *S3ImageStore {
	return &S3ImageStore{client: client, config: cfg, now: time.Now}
}

// PutImage uploads data under a random key and returns its public URL
func (s *S3ImageStore) PutImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: image is empty", ErrInvalidImage)
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: size (%d bytes) exceeds maximum allowed size (%d bytes)", ErrInvalidImage, len(data), MaxImageSize)
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image content type: %q", ErrInvalidImage, contentType)
	}

	key, err := s.objectKey(filename, ext)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.config.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
		ACL:          aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.publicURL(key), nil
}

// objectKey builds prefix/2006/01/<random>-<name><ext>
func (s *S3ImageStore) objectKey(filename, ext string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate object key: %w", err)
	}

	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	name := hex.EncodeToString(buf)
	if slug := slugify(base); slug != "" {
		name += "-" + slug
	}

	return path.Join(s.config.Prefix, s.now().UTC().Format("2006/01"), name+ext), nil
}

func (s *S3ImageStore) publicURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if s.config.PublicURL != "" {
		return strings.TrimRight(s.config.PublicURL, "/") + "/" + escaped
	}
	if s.config.Endpoint != "" {
		endpoint := strings.TrimRight(s.config.Endpoint, "/")
		if s.config.PathStyle {
			return endpoint + "/" + s.config.Bucket + "/" + escaped
		}
		if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
			return u.Scheme + "://" + s.config.Bucket + "." + u.Host + "/" + escaped
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.Bucket, s.config.Region, escaped)
}

// slugify keeps lowercase ascii letters and digits, joining runs of anything else with a dash
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if len(out) > 40 {
		out = strings.TrimRight(out[:40], "-")
	}
	return out
}
