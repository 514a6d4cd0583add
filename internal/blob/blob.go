// Package blob stores uploaded images in an S3-compatible bucket.
// Objects are addressed by path (e.g. "estatuas/3f2c....jpg"); records keep
// the path and public URLs are derived from it on the way out.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Store is the blob-store capability the services depend on.
type Store interface {
	// Upload writes data under path, replacing any existing object.
	Upload(ctx context.Context, path, contentType string, data []byte) error
	// PublicURL returns the URL browsers use to fetch path.
	PublicURL(path string) string
	// Remove deletes every object in paths. Missing objects are not an error.
	Remove(ctx context.Context, paths []string) error
}

// Config holds the bucket coordinates and credentials.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // empty for AWS; set for Supabase Storage, MinIO...
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string // prefix of public object URLs; derived when empty
}

// objectAPI is the subset of *s3.Client used by S3Store.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Store implements Store on top of the AWS SDK S3 client.
type S3Store struct {
	client     objectAPI
	bucket     string
	publicBase string
}

// NewS3Store builds an S3 client from static credentials. A custom endpoint
// switches to path-style addressing, which S3-compatible servers expect.
func NewS3Store(cfg Config) *S3Store {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return newS3Store(s3.New(opts), cfg)
}

func newS3Store(client objectAPI, cfg Config) *S3Store {
	return &S3Store{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: publicBase(cfg),
	}
}

// publicBase picks the configured public prefix or derives one from the
// endpoint (path-style) or the AWS virtual-host bucket URL.
func publicBase(cfg Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Upload puts data at path with the given content type.
func (s *S3Store) Upload(ctx context.Context, path, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("blob.S3Store.Upload %s: %w", path, err)
	}
	return nil
}

// PublicURL joins the public base and path.
func (s *S3Store) PublicURL(path string) string {
	return s.publicBase + "/" + strings.TrimLeft(path, "/")
}

// Remove deletes all paths in one batch request. Per-key failures reported
// by the server are joined into the returned error.
func (s *S3Store) Remove(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	objects := make([]s3types.ObjectIdentifier, len(paths))
	for i, p := range paths {
		objects[i] = s3types.ObjectIdentifier{Key: aws.String(p)}
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &s3types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("blob.S3Store.Remove: %w", err)
	}

	var errs []error
	for _, e := range out.Errors {
		errs = append(errs, fmt.Errorf("%s: %s", aws.ToString(e.Key), aws.ToString(e.Message)))
	}
	if len(errs) > 0 {
		return fmt.Errorf("blob.S3Store.Remove: %w", errors.Join(errs...))
	}
	return nil
}
