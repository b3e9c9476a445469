package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1000, cfg.OpenData.ParksLimit)
	assert.Equal(t, 500, cfg.OpenData.TrailLimit)
	assert.Equal(t, []string{"Current", "REVISED"}, cfg.OpenData.TrafficStatuses)
	assert.Equal(t, time.Duration(0), cfg.OpenData.RequestTimeout)
	assert.Equal(t, 40, cfg.Geocode.MaxPerCycle)
	assert.Equal(t, []string{"the_geom", "geometry_multipolygon"}, cfg.Geocode.GeometryColumns)
	assert.Equal(t, CacheBackendMemory, cfg.Geocode.CacheBackend)
	assert.False(t, cfg.Geocode.RetryFailed)
	assert.NotEmpty(t, cfg.Map.TrailEmbedURL)
	assert.NotEmpty(t, cfg.Map.TrafficEmbedURL)
	assert.False(t, cfg.Warmup.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Warmup.Interval)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("API_HOST", "0.0.0.0")
	v.Set("API_PORT", 9090)
	v.Set("OPENDATA_REQUEST_TIMEOUT", 15)
	v.Set("OPENDATA_TRAFFIC_STATUSES", " Current , Planned ,")
	v.Set("GEOCODE_CACHE_BACKEND", "Redis")
	v.Set("GEOCODE_RETRY_FAILED", true)
	v.Set("GEOCODE_MAX_PER_CYCLE", 10)
	v.Set("WARMUP_ENABLED", true)
	v.Set("WARMUP_INTERVAL", 120)

	cfg := fromViper(v)

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddr())
	assert.Equal(t, 15*time.Second, cfg.OpenData.RequestTimeout)
	assert.Equal(t, []string{"Current", "Planned"}, cfg.OpenData.TrafficStatuses)
	assert.Equal(t, CacheBackendRedis, cfg.Geocode.CacheBackend)
	assert.True(t, cfg.Geocode.RetryFailed)
	assert.Equal(t, 10, cfg.Geocode.MaxPerCycle)
	assert.True(t, cfg.Warmup.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Warmup.Interval)
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList(""))
	assert.Equal(t, []string{"a", "b"}, parseList("a, ,b"))
}
