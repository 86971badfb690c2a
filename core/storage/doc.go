// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface so generated artifacts
// can be published to AWS S3 or a self-hosted MinIO instance after a run.
// Publishing is optional and disabled by default; local files remain the
// primary output.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket if needed.
//   - PutObject: Uploads content (with size and options).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
