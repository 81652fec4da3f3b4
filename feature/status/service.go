package status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"card-catalog/core/resilience"
	"card-catalog/core/storage"
	"card-catalog/feature/search"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrBreakerKey is returned when a breaker reset names no service or operation.
var ErrBreakerKey = errors.New("service and operation are required")

// CachePrefixes are the key families written by the card cache.
var CachePrefixes = []string{"search", "entity"}

// BucketReport describes the cache bucket.
type BucketReport struct {
	Bucket  string `json:"bucket"`
	Exists  bool   `json:"exists"`
	Created bool   `json:"created,omitempty"`
	// Populated maps each cache key family to whether at least one object exists under it.
	Populated map[string]bool `json:"populated,omitempty"`
}

// Report is the combined operational status.
type Report struct {
	CacheBackend string                `json:"cache_backend"`
	Bucket       *BucketReport         `json:"bucket,omitempty"`
	BucketError  string                `json:"bucket_error,omitempty"`
	Breakers     []resilience.Snapshot `json:"breakers"`
	Search       *search.Health        `json:"search,omitempty"`
}

// Service inspects the cache storage, the circuit breakers and the search index.
type Service struct {
	client  storage.Client
	bucket  string
	region  string
	prefix  string
	backend string
	exec    *resilience.Executor
	engine  search.Engine
	logger  *zap.Logger
}

// Config names the cache storage the service inspects. Client may be nil when the
// cache does not live in object storage.
type Config struct {
	Client  storage.Client
	Bucket  string
	Region  string
	Prefix  string
	Backend string
	Engine  search.Engine
}

// NewService creates a new status service.
func NewService(cfg Config, exec *resilience.Executor, logger *zap.Logger) *Service {
	return &Service{
		client:  cfg.Client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		prefix:  cfg.Prefix,
		backend: cfg.Backend,
		exec:    exec,
		engine:  cfg.Engine,
		logger:  logger,
	}
}

// HasBucket reports whether the cache lives in object storage.
func (s *Service) HasBucket() bool {
	return s.client != nil
}

// CheckBucket reports whether the bucket exists and which key families hold objects.
func (s *Service) CheckBucket(ctx context.Context) (*BucketReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("cache backend %s has no bucket", s.backend)
	}
	report := &BucketReport{Bucket: s.bucket}

	exists, err := resilience.Do(ctx, s.exec, resilience.ServiceObjectStorage, "bucket.exists", func(ctx context.Context) (bool, error) {
		return s.client.BucketExists(ctx, s.bucket)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.Exists = exists
	if !exists {
		return report, nil
	}

	report.Populated = make(map[string]bool, len(CachePrefixes))
	for _, family := range CachePrefixes {
		prefix := family + "/"
		if s.prefix != "" {
			prefix = strings.TrimSuffix(s.prefix, "/") + "/" + prefix
		}
		opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true, MaxKeys: 1}

		listCtx, cancel := context.WithCancel(ctx)
		found := false
		for obj := range s.client.ListObjects(listCtx, s.bucket, opts) {
			if obj.Err == nil {
				found = true
			}
			break
		}
		cancel()
		report.Populated[family] = found
	}
	return report, nil
}

// FixBucket creates the bucket when it is missing.
func (s *Service) FixBucket(ctx context.Context) (*BucketReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("cache backend %s has no bucket", s.backend)
	}
	created, err := resilience.Do(ctx, s.exec, resilience.ServiceObjectStorage, "bucket.ensure", func(ctx context.Context) (bool, error) {
		return storage.EnsureBucket(ctx, s.client, s.bucket, s.region)
	}, nil)
	if err != nil {
		s.logger.Error("Failed to create cache bucket", zap.String("bucket", s.bucket), zap.Error(err))
		return nil, err
	}
	if created {
		s.logger.Info("Created missing cache bucket", zap.String("bucket", s.bucket))
	}

	report, err := s.CheckBucket(ctx)
	if err != nil {
		return nil, err
	}
	report.Created = created
	return report, nil
}

// Breakers returns every known circuit breaker.
func (s *Service) Breakers() []resilience.Snapshot {
	snaps := s.exec.Snapshots()
	if snaps == nil {
		return []resilience.Snapshot{}
	}
	return snaps
}

// ResetBreaker forces one breaker closed.
func (s *Service) ResetBreaker(service, operation string) (resilience.Snapshot, error) {
	service, operation = strings.TrimSpace(service), strings.TrimSpace(operation)
	if service == "" || operation == "" {
		return resilience.Snapshot{}, ErrBreakerKey
	}
	s.exec.ResetCircuitBreaker(service, operation)
	s.logger.Info("Circuit breaker reset", zap.String("service", service), zap.String("operation", operation))
	return s.exec.Snapshot(service, operation), nil
}

// Report gathers bucket, breaker and search index status. Partial failures are reported inline.
func (s *Service) Report(ctx context.Context) Report {
	r := Report{CacheBackend: s.backend, Breakers: s.Breakers()}
	if s.client != nil {
		if b, err := s.CheckBucket(ctx); err != nil {
			r.BucketError = err.Error()
		} else {
			r.Bucket = b
		}
	}
	if s.engine != nil {
		h := s.engine.Health(ctx)
		r.Search = &h
	}
	return r
}
