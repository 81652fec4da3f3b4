package cache

import (
	"bytes"
	"context"
	"io"
	"path"

	"card-catalog/core/storage"

	"github.com/minio/minio-go/v7"
)

// MinioBackend stores payloads as JSON objects in an S3-compatible bucket.
type MinioBackend struct {
	client storage.Client
	bucket string
	prefix string
}

// NewMinioBackend creates a backend writing under prefix inside bucket.
func NewMinioBackend(client storage.Client, bucket, prefix string) *MinioBackend {
	return &MinioBackend{client: client, bucket: bucket, prefix: prefix}
}

func (b *MinioBackend) Name() string { return BackendMinio }

func (b *MinioBackend) objectName(key string) string {
	if b.prefix == "" {
		return key
	}
	return path.Join(b.prefix, key)
}

func (b *MinioBackend) Get(ctx context.Context, key string) (Object, bool, error) {
	name := b.objectName(key)
	info, err := b.client.StatObject(ctx, b.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return Object{}, false, nil
		}
		return Object{}, false, &BackendError{Op: "stat", Key: name, Err: err}
	}

	reader, err := b.client.GetObject(ctx, b.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return Object{}, false, nil
		}
		return Object{}, false, &BackendError{Op: "get", Key: name, Err: err}
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		// Removed between stat and read.
		if storage.IsNotFound(err) {
			return Object{}, false, nil
		}
		return Object{}, false, &BackendError{Op: "read", Key: name, Err: err}
	}
	return Object{Data: data, LastModified: info.LastModified}, true, nil
}

func (b *MinioBackend) Put(ctx context.Context, key string, data []byte) error {
	name := b.objectName(key)
	_, err := b.client.PutObject(ctx, b.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return &BackendError{Op: "put", Key: name, Err: err}
	}
	return nil
}

func (b *MinioBackend) Clear(ctx context.Context) (int, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if b.prefix != "" {
		opts.Prefix = b.prefix + "/"
	}

	objectsCh := make(chan minio.ObjectInfo)
	listed := make(chan struct{})
	var count int
	var listErr error

	go func() {
		defer close(listed)
		defer close(objectsCh)
		for obj := range b.client.ListObjects(ctx, b.bucket, opts) {
			if obj.Err != nil {
				listErr = obj.Err
				return
			}
			select {
			case objectsCh <- obj:
				count++
			case <-ctx.Done():
				listErr = ctx.Err()
				return
			}
		}
	}()

	var failed int
	var removeErr error
	for rErr := range b.client.RemoveObjects(ctx, b.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed++
		if removeErr == nil {
			removeErr = &BackendError{Op: "remove", Key: rErr.ObjectName, Err: rErr.Err}
		}
	}
	<-listed

	removed := count - failed
	if listErr != nil {
		if storage.IsNotFound(listErr) {
			return removed, nil
		}
		return removed, &BackendError{Op: "list", Key: opts.Prefix, Err: listErr}
	}
	return removed, removeErr
}
