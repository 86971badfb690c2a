package artifact

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"packetgen/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// BucketSink publishes artifacts to an object storage bucket. Object names are
// the artifact path in slash form under Prefix.
type BucketSink struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger

	// CreateBucket makes the bucket when it does not exist instead of failing.
	CreateBucket bool
}

// NewBucketSink creates a sink that uploads to bucket under prefix.
func NewBucketSink(client storage.Client, bucket, prefix string, logger *zap.Logger) *BucketSink {
	return &BucketSink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// ObjectName returns the object key used for an artifact path.
func (s *BucketSink) ObjectName(p string) string {
	name := strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "/")
	name = strings.TrimPrefix(name, "./")
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Flush implements Sink.
func (s *BucketSink) Flush(ctx context.Context, artifacts []Artifact) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if !s.CreateBucket {
			return fmt.Errorf("bucket %s does not exist", s.bucket)
		}
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
		s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	}

	for _, a := range artifacts {
		name := s.ObjectName(a.Path)
		_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(a.Data), int64(len(a.Data)), minio.PutObjectOptions{
			ContentType: contentType(name),
		})
		if err != nil {
			s.logger.Error("Failed to publish artifact", zap.String("object", name), zap.Error(err))
			return fmt.Errorf("failed to upload %s: %w", name, err)
		}
		s.logger.Info("Published artifact", zap.String("bucket", s.bucket), zap.String("object", name))
	}
	return nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}
