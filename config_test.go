package flexql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql"
)

func TestConfig_ValidateRejectsNegativeCacheSize(t *testing.T) {
	cfg := flexql.Config{CacheSize: -1}
	assert.Error(t, cfg.Validate())
}

func TestConfig_NormalizeDefaultsNilMaps(t *testing.T) {
	cfg := flexql.Config{}
	cfg.Normalize()
	assert.NotNil(t, cfg.ProjectionIndirection)
	assert.NotNil(t, cfg.Overrides)
}

func TestLoadConfig_DecodesAndValidates(t *testing.T) {
	data := []byte(`
projection_indirection:
  Order: true
cache_size: 128
cache_redis_addr: "localhost:6379"
`)
	cfg, err := flexql.LoadConfig(data)
	require.NoError(t, err)
	assert.True(t, cfg.ProjectionIndirection["Order"])
	assert.Equal(t, 128, cfg.CacheSize)
	assert.Equal(t, "localhost:6379", cfg.CacheRedisAddr)
}

func TestLoadConfig_RejectsInvalidCacheSize(t *testing.T) {
	data := []byte(`cache_size: -5`)
	_, err := flexql.LoadConfig(data)
	assert.Error(t, err)
}

func TestDecodeOverride_DecodesRegisteredKey(t *testing.T) {
	overrides := map[string]any{
		"Order": map[string]any{"maxPageSize": 50},
	}
	var target struct {
		MaxPageSize int `mapstructure:"maxPageSize"`
	}
	require.NoError(t, flexql.DecodeOverride(overrides, "Order", &target))
	assert.Equal(t, 50, target.MaxPageSize)
}

func TestDecodeOverride_MissingKeyIsNoop(t *testing.T) {
	var target struct{ X int }
	require.NoError(t, flexql.DecodeOverride(map[string]any{}, "missing", &target))
}
