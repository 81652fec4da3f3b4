package cmd

import (
	"context"
	"testing"

	"card-catalog/core/cache"
	"card-catalog/core/config"
	"card-catalog/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Cache.Backend = cache.BackendMemory
	cfg.Database = database.Config{Driver: database.DriverSQLite, Name: ":memory:"}
	return cfg
}

func TestNewApplication_WithSearchIndex(t *testing.T) {
	cfg := testConfig(t)

	a, err := newApplication(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	require.NotNil(t, a.index)
	assert.NotNil(t, a.engine())
	assert.False(t, a.status.HasBucket())

	report := a.status.Report(context.Background())
	assert.Equal(t, cache.BackendMemory, report.CacheBackend)
	require.NotNil(t, report.Search)
	assert.Nil(t, report.Bucket)
}

func TestNewApplication_SearchDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Search.Enabled = false

	a, err := newApplication(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Nil(t, a.index)
	assert.Nil(t, a.engine())
	assert.Nil(t, a.status.Report(context.Background()).Search)
}

func TestNewApplication_IndexFailureIsOptional(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	a, err := newApplication(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, a.index)
	assert.NotNil(t, a.cards)
}

func TestNewApplication_UnknownCacheBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = "etcd"

	_, err := newApplication(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewApplication_MinioBackendHasBucket(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = cache.BackendMinio
	cfg.Search.Enabled = false

	a, err := newApplication(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, a.status.HasBucket())
}
