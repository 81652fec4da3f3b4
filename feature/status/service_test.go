package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"card-catalog/core/resilience"
	"card-catalog/core/storage"
	"card-catalog/core/storage/mocks"
	"card-catalog/feature/search"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type healthyEngine struct{ search.Engine }

func (healthyEngine) Health(ctx context.Context) search.Health {
	return search.Health{Status: search.StatusHealthy}
}

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func newTestService(client *mocks.Client, engine search.Engine) (*Service, *resilience.Executor) {
	exec := resilience.New(zap.NewNop(), resilience.WithRetryConfig(resilience.RetryConfig{MaxRetries: 0}))
	cfg := Config{Bucket: "card-cache", Prefix: "cards", Backend: "minio", Engine: engine}
	if client != nil {
		cfg.Client = client
	}
	return NewService(cfg, exec, zap.NewNop()), exec
}

func TestService_CheckBucket(t *testing.T) {
	m := new(mocks.Client)
	m.On("BucketExists", mock.Anything, "card-cache").Return(true, nil)
	m.On("ListObjects", mock.Anything, "card-cache", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "cards/search/"
	})).Return(listing("cards/search/magic/x.json"))
	m.On("ListObjects", mock.Anything, "card-cache", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "cards/entity/"
	})).Return(listing())

	svc, _ := newTestService(m, nil)
	report, err := svc.CheckBucket(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Exists)
	assert.Equal(t, map[string]bool{"search": true, "entity": false}, report.Populated)
}

func TestService_CheckBucketRetriesThrottling(t *testing.T) {
	exec := resilience.New(zap.NewNop(),
		resilience.WithRetryConfig(resilience.RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond}),
		resilience.WithSleeper(func(ctx context.Context, d time.Duration) error { return ctx.Err() }),
		resilience.WithClassifier(resilience.ServiceObjectStorage, storage.Classifier),
	)

	t.Run("SlowDown", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "card-cache").
			Return(false, minio.ErrorResponse{Code: "SlowDown", StatusCode: 503, Message: "Please reduce your request rate."}).Twice()
		m.On("BucketExists", mock.Anything, "card-cache").Return(false, nil).Once()

		svc := NewService(Config{Client: m, Bucket: "card-cache", Backend: "minio"}, exec, zap.NewNop())
		report, err := svc.CheckBucket(context.Background())
		require.NoError(t, err)
		assert.False(t, report.Exists)
		m.AssertNumberOfCalls(t, "BucketExists", 3)
	})

	t.Run("AccessDenied", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "card-cache").
			Return(false, minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403, Message: "Access Denied."})

		svc := NewService(Config{Client: m, Bucket: "card-cache", Backend: "minio"}, exec, zap.NewNop())
		_, err := svc.CheckBucket(context.Background())
		assert.Error(t, err)
		m.AssertNumberOfCalls(t, "BucketExists", 1)
	})
}

func TestService_FixBucket(t *testing.T) {
	m := new(mocks.Client)
	m.On("BucketExists", mock.Anything, "card-cache").Return(false, nil).Once()
	m.On("MakeBucket", mock.Anything, "card-cache", mock.Anything).Return(nil)
	m.On("BucketExists", mock.Anything, "card-cache").Return(true, nil)
	m.On("ListObjects", mock.Anything, "card-cache", mock.Anything).Return(listing())

	svc, _ := newTestService(m, nil)
	report, err := svc.FixBucket(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Created)
	assert.True(t, report.Exists)
	m.AssertCalled(t, "MakeBucket", mock.Anything, "card-cache", mock.Anything)
}

func TestService_WithoutBucket(t *testing.T) {
	svc, _ := newTestService(nil, nil)
	assert.False(t, svc.HasBucket())
	_, err := svc.CheckBucket(context.Background())
	assert.Error(t, err)

	r := svc.Report(context.Background())
	assert.Nil(t, r.Bucket)
	assert.Empty(t, r.BucketError)
	assert.NotNil(t, r.Breakers)
}

func TestService_Breakers(t *testing.T) {
	svc, exec := newTestService(nil, nil)
	ctx := context.Background()
	fail := func(ctx context.Context) error { return errors.New("upstream status 500") }
	opts := &resilience.BreakerOptions{FailureThreshold: 1}

	_ = exec.Call(ctx, "scryfall", "search", fail, opts)
	snaps := svc.Breakers()
	require.Len(t, snaps, 1)
	assert.Equal(t, resilience.StateOpen, snaps[0].State)

	snap, err := svc.ResetBreaker("scryfall", "search")
	require.NoError(t, err)
	assert.Equal(t, resilience.StateClosed, snap.State)
	assert.Zero(t, snap.Failures)

	_, err = svc.ResetBreaker("scryfall", "")
	assert.ErrorIs(t, err, ErrBreakerKey)
}

func TestService_Report(t *testing.T) {
	m := new(mocks.Client)
	m.On("BucketExists", mock.Anything, "card-cache").Return(false, errors.New("access denied"))

	svc, _ := newTestService(m, healthyEngine{})
	r := svc.Report(context.Background())
	assert.Equal(t, "minio", r.CacheBackend)
	assert.Contains(t, r.BucketError, "access denied")
	require.NotNil(t, r.Search)
	assert.Equal(t, search.StatusHealthy, r.Search.Status)
}
