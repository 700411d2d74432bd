// Copyright (C) 2025 GeneralScaler contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config provides configuration management for the GeneralScaler operator.
package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Absolute replica bounds. Spec values outside these are rejected at
// registration regardless of what the resource declares.
const (
	AbsoluteMinReplicas = 0
	AbsoluteMaxReplicas = 100
)

// Config holds operator-wide settings. Per-resource scaling parameters live
// on the GeneralScaler spec; these are the process-level defaults and knobs.
type Config struct {
	mu sync.RWMutex

	// Kubernetes configuration
	WatchNamespace string // Empty means all namespaces

	// Default scaling behavior, used when the resource omits a field
	DefaultSyncInterval      time.Duration
	DefaultScaleUpCooldown   time.Duration
	DefaultScaleDownCooldown time.Duration
	DefaultMaxIncrement      int32
	DefaultMaxDecrement      int32

	// MetricFetchTimeout bounds every provider fetch
	MetricFetchTimeout time.Duration

	// Operational configuration
	LogLevel      string // debug, info, warn, error
	MaxRetries    int    // Retry attempts for workload API writes
	RetryInterval time.Duration

	// Rate limiting and concurrency control
	QPS                     float32 // Queries Per Second for the K8s API client
	Burst                   int     // Burst capacity for the K8s API client
	MaxConcurrentReconciles int

	// Observability
	MetricsPort     int
	HealthProbePort int
	AuditEnabled    bool
}

// Global config instance with thread-safe access
var (
	Global     *Config
	globalLock sync.RWMutex
)

// GetDefaults returns a new Config with default values
func GetDefaults() *Config {
	return &Config{
		WatchNamespace: "",

		DefaultSyncInterval:      30 * time.Second,
		DefaultScaleUpCooldown:   60 * time.Second,
		DefaultScaleDownCooldown: 300 * time.Second,
		DefaultMaxIncrement:      5,
		DefaultMaxDecrement:      2,

		MetricFetchTimeout: 10 * time.Second,

		LogLevel:      "info",
		MaxRetries:    3,
		RetryInterval: 5 * time.Second,

		QPS:                     20,
		Burst:                   30,
		MaxConcurrentReconciles: 3,

		MetricsPort:     9090,
		HealthProbePort: 8081,
		AuditEnabled:    true,
	}
}

// Load initializes the global configuration from defaults overlaid with
// environment variables.
func Load() *Config {
	globalLock.Lock()
	defer globalLock.Unlock()

	if Global == nil {
		cfg := GetDefaults()
		cfg.applyEnv()
		Global = cfg
	}
	return Global
}

// Get returns the global config instance, loading it if necessary
func Get() *Config {
	globalLock.RLock()
	if Global != nil {
		defer globalLock.RUnlock()
		return Global
	}
	globalLock.RUnlock()
	return Load()
}

// applyEnv overlays environment variables onto the config
func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("WATCH_NAMESPACE"); v != "" {
		c.WatchNamespace = v
	}
	if v := os.Getenv("METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.MetricsPort = port
		}
	}
	if v := os.Getenv("HEALTH_PROBE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.HealthProbePort = port
		}
	}
	if v := os.Getenv("KUBE_CLIENT_QPS"); v != "" {
		if qps, err := strconv.ParseFloat(v, 32); err == nil && qps > 0 {
			c.QPS = float32(qps)
		}
	}
	if v := os.Getenv("KUBE_CLIENT_BURST"); v != "" {
		if burst, err := strconv.Atoi(v); err == nil && burst > 0 {
			c.Burst = burst
		}
	}
	if v := os.Getenv("MAX_CONCURRENT_RECONCILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxConcurrentReconciles = n
		}
	}
	if v := os.Getenv("AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AuditEnabled = b
		}
	}
}

// SyncInterval resolves a resource's sync interval, falling back to the default.
func (c *Config) SyncInterval(seconds int32) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if seconds <= 0 {
		return c.DefaultSyncInterval
	}
	return time.Duration(seconds) * time.Second
}

// Reset clears the global config. Intended for tests.
func Reset() {
	globalLock.Lock()
	defer globalLock.Unlock()
	Global = nil
}
