package publish

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-path-tracer/pkg/config"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 10 * time.Second

// S3Publisher uploads finished renders to an S3-compatible bucket
type S3Publisher struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Publisher builds a session from static credentials with path-style
// addressing, which S3-compatible stores such as MinIO expect
func NewS3Publisher(cfg *config.Config) (*S3Publisher, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("no S3 bucket configured")
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Region:           aws.String(cfg.S3Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.S3Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.S3Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3PublisherWithClient(s3.New(sess), cfg.S3Bucket, cfg.S3Prefix), nil
}

// NewS3PublisherWithClient wraps an existing S3 client
func NewS3PublisherWithClient(client s3iface.S3API, bucket, prefix string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Prefix returns the key prefix renders are stored under
func (p *S3Publisher) Prefix() string {
	return p.prefix
}

// Upload stores data under key
func (p *S3Publisher) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to S3 (%d bytes)", key, size)
	return nil
}

// RenderKey names an object as <prefix>/<scene>/render_<timestamp>.<ext>
func RenderKey(prefix, sceneName string, timestamp time.Time, ext string) string {
	name := fmt.Sprintf("render_%s.%s", timestamp.Format("20060102_150405"), ext)
	return path.Join(prefix, sceneName, name)
}

// ThumbnailKey names the thumbnail that accompanies a render
func ThumbnailKey(prefix, sceneName string, timestamp time.Time) string {
	name := fmt.Sprintf("render_%s_thumb.png", timestamp.Format("20060102_150405"))
	return path.Join(prefix, sceneName, name)
}
