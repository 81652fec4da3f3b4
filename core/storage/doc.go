// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the card cache can run against AWS S3 or a
// self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: Verify or create the cache bucket.
//   - StatObject: HEAD-style existence and last-modified check.
//   - PutObject / GetObject: Write and read cached payloads.
//   - ListObjects / RemoveObjects: Enumerate and purge cache objects under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	created, err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
