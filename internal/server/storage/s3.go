package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/logging"
)

// Object-store key namespaces.
const (
	s3TempPrefix  = "temp/"
	s3FinalPrefix = "zones/"
)

// S3 stores files in an S3-compatible bucket, staged entries under temp/
// and permanent entries under zones/.
type S3 struct {
	client *s3.Client
	bucket string
	logger logging.Logger
}

// NewS3 builds the object-store strategy and verifies the bucket is
// reachable so the caller can fall back to local storage when it is not.
func NewS3(ctx context.Context, opts S3Options, logger logging.Logger) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.User, opts.Password, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(opts.Bucket)}); err != nil {
		return nil, fmt.Errorf("s3 bucket %q unreachable: %w", opts.Bucket, err)
	}

	return &S3{client: client, bucket: opts.Bucket, logger: logger.With("store", "s3")}, nil
}

func (s *S3) SaveTemp(ctx context.Context, data []byte, kind, originalName string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("save temp %q: %w", originalName, common.ErrEmptyUpload)
	}

	name := TempFileName(kind, originalName)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3TempPrefix + name),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("save temp %q: %w", name, err)
	}

	s.logger.Info(ctx, "temp object saved", "name", name)
	return name, nil
}

func (s *S3) Confirm(ctx context.Context, tempName, finalName string) error {
	tempKey := s3TempPrefix + tempName

	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(s.bucket + "/" + tempKey),
		Key:        aws.String(s3FinalPrefix + finalName),
	})
	if err != nil {
		if isMissingObject(err) {
			s.logger.Warn(ctx, "temp object absent on confirm, skipping", "name", tempName)
			return nil
		}
		return fmt.Errorf("confirm %q: %w", finalName, err)
	}

	s.deleteObject(ctx, tempKey)
	s.logger.Info(ctx, "object confirmed", "temp", tempName, "final", finalName)
	return nil
}

func (s *S3) DeleteQuietly(ctx context.Context, fileName string) {
	if fileName == "" {
		return
	}
	s.deleteObject(ctx, s3FinalPrefix+fileName)
	s.deleteObject(ctx, s3TempPrefix+fileName)
}

func (s *S3) Exists(ctx context.Context, fileName string) bool {
	if fileName == "" {
		return false
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3FinalPrefix + fileName),
	})
	return err == nil
}

func (s *S3) Open(ctx context.Context, fileName string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3FinalPrefix + fileName),
	})
	if err != nil {
		if isMissingObject(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("open %q: %w", fileName, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", fileName, err)
	}
	return data, nil
}

func (s *S3) deleteObject(ctx context.Context, key string) {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Warn(ctx, "object delete failed", "key", key, "error", err.Error())
	}
}

func isMissingObject(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noKey) || errors.As(err, &notFound)
}
