package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()

	assert.Equal(t, "", cfg.WatchNamespace)
	assert.Equal(t, 30*time.Second, cfg.DefaultSyncInterval)
	assert.Equal(t, 60*time.Second, cfg.DefaultScaleUpCooldown)
	assert.Equal(t, 300*time.Second, cfg.DefaultScaleDownCooldown)
	assert.Equal(t, int32(5), cfg.DefaultMaxIncrement)
	assert.Equal(t, int32(2), cfg.DefaultMaxDecrement)
	assert.Equal(t, 10*time.Second, cfg.MetricFetchTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, float32(20), cfg.QPS)
	assert.Equal(t, 30, cfg.Burst)
}

func TestAbsoluteBounds(t *testing.T) {
	assert.Equal(t, 0, AbsoluteMinReplicas)
	assert.Equal(t, 100, AbsoluteMaxReplicas)
}

func TestLoad_AppliesEnvironment(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WATCH_NAMESPACE", "production")
	t.Setenv("METRICS_PORT", "9999")
	t.Setenv("MAX_CONCURRENT_RECONCILES", "7")

	cfg := Load()

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.WatchNamespace)
	assert.Equal(t, 9999, cfg.MetricsPort)
	assert.Equal(t, 7, cfg.MaxConcurrentReconciles)
}

func TestLoad_IgnoresInvalidEnvironment(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("METRICS_PORT", "not-a-port")
	t.Setenv("KUBE_CLIENT_QPS", "-5")

	cfg := Load()

	assert.Equal(t, 9090, cfg.MetricsPort)
	assert.Equal(t, float32(20), cfg.QPS)
}

func TestLoad_ReturnsSameInstance(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first := Load()
	second := Load()
	assert.Same(t, first, second)
	assert.Same(t, first, Get())
}

func TestSyncInterval(t *testing.T) {
	cfg := GetDefaults()

	assert.Equal(t, 30*time.Second, cfg.SyncInterval(0))
	assert.Equal(t, 30*time.Second, cfg.SyncInterval(-10))
	assert.Equal(t, 45*time.Second, cfg.SyncInterval(45))
}
