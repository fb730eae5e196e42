package publish

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-path-tracer/pkg/config"
)

// fakeS3 records PutObject calls
type fakeS3 struct {
	s3iface.S3API
	inputs   []*s3.PutObjectInput
	bodies   [][]byte
	deadline bool
	err      error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	_, f.deadline = ctx.Deadline()
	body, _ := io.ReadAll(input.Body)
	f.inputs = append(f.inputs, input)
	f.bodies = append(f.bodies, body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	fake := &fakeS3{}
	publisher := NewS3PublisherWithClient(fake, "bucket", "renders")

	data := []byte("P3\n1 1\n255\n0 0 0\n")
	if err := publisher.Upload(context.Background(), "renders/default/a.ppm", data, "image/x-portable-pixmap"); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if len(fake.inputs) != 1 {
		t.Fatalf("Expected 1 PutObject call, got %d", len(fake.inputs))
	}
	input := fake.inputs[0]
	if aws.StringValue(input.Bucket) != "bucket" || aws.StringValue(input.Key) != "renders/default/a.ppm" {
		t.Errorf("Unexpected bucket/key %s/%s", aws.StringValue(input.Bucket), aws.StringValue(input.Key))
	}
	if aws.StringValue(input.ContentType) != "image/x-portable-pixmap" {
		t.Errorf("Unexpected content type %s", aws.StringValue(input.ContentType))
	}
	if aws.Int64Value(input.ContentLength) != int64(len(data)) || string(fake.bodies[0]) != string(data) {
		t.Errorf("Body mismatch: got %q (%d)", fake.bodies[0], aws.Int64Value(input.ContentLength))
	}
	if !fake.deadline {
		t.Error("Expected upload to run under a timeout")
	}
}

func TestUpload_WrapsError(t *testing.T) {
	cause := errors.New("access denied")
	publisher := NewS3PublisherWithClient(&fakeS3{err: cause}, "bucket", "")

	err := publisher.Upload(context.Background(), "k", []byte("x"), "image/png")
	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
}

func TestRenderKey(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{"with prefix", "renders", "renders/metal/render_20240309_140507.png"},
		{"nested prefix", "a/b/", "a/b/metal/render_20240309_140507.png"},
		{"no prefix", "", "metal/render_20240309_140507.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderKey(tt.prefix, "metal", ts, "png"); got != tt.expected {
				t.Errorf("RenderKey = %q, want %q", got, tt.expected)
			}
		})
	}

	if got := ThumbnailKey("renders", "metal", ts); got != "renders/metal/render_20240309_140507_thumb.png" {
		t.Errorf("ThumbnailKey = %q", got)
	}
}

func TestNewS3Publisher(t *testing.T) {
	if _, err := NewS3Publisher(&config.Config{}); err == nil {
		t.Error("Expected error without a bucket")
	}

	publisher, err := NewS3Publisher(&config.Config{
		S3Bucket:    "bucket",
		S3AccessKey: "key",
		S3SecretKey: "secret",
		S3Region:    "us-east-1",
		S3Endpoint:  "http://localhost:9000",
		S3Prefix:    "renders",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if publisher.Prefix() != "renders" {
		t.Errorf("Expected prefix renders, got %q", publisher.Prefix())
	}
}
