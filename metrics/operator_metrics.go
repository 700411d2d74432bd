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

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

// OperatorMetrics holds all Prometheus metrics for the GeneralScaler operator
type OperatorMetrics struct {
	// Tick metrics
	TicksTotal        prometheus.Counter
	TicksSkippedTotal *prometheus.CounterVec

	// Scale operation metrics
	ScaleOperationsTotal *prometheus.CounterVec
	ScaleFailuresTotal   *prometheus.CounterVec

	// Metric provider metrics
	MetricFetchFailuresTotal *prometheus.CounterVec
	MetricFetchDuration      *prometheus.HistogramVec

	// Registry metrics
	RegisteredResources  prometheus.Gauge
	RegistrationFailures prometheus.Counter

	// Retry metrics
	RetryAttemptsTotal *prometheus.CounterVec
	RetrySuccessTotal  *prometheus.CounterVec
}

var (
	operatorMetricsInstance *OperatorMetrics
	operatorMetricsOnce     sync.Once
)

// NewOperatorMetrics creates and registers all Prometheus metrics with the
// controller-runtime registry. Singleton to prevent duplicate registration.
func NewOperatorMetrics() *OperatorMetrics {
	operatorMetricsOnce.Do(func() {
		operatorMetricsInstance = createOperatorMetrics(ctrlmetrics.Registry)
	})
	return operatorMetricsInstance
}

func createOperatorMetrics(reg prometheus.Registerer) *OperatorMetrics {
	m := &OperatorMetrics{
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "generalscaler_ticks_total",
			Help: "Total number of reconciliation ticks executed",
		}),

		TicksSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generalscaler_ticks_skipped_total",
				Help: "Total number of ticks that ended without a scaling attempt",
			},
			[]string{"namespace", "name", "reason"},
		),

		ScaleOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generalscaler_scale_operations_total",
				Help: "Total number of successful scale operations",
			},
			[]string{"namespace", "name", "direction"},
		),

		ScaleFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generalscaler_scale_failures_total",
				Help: "Total number of failed scale operations",
			},
			[]string{"namespace", "name"},
		),

		MetricFetchFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generalscaler_metric_fetch_failures_total",
				Help: "Total number of metric fetches that returned no data",
			},
			[]string{"provider"},
		),

		MetricFetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "generalscaler_metric_fetch_duration_seconds",
				Help:    "Duration of metric provider fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		RegisteredResources: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "generalscaler_registered_resources",
			Help: "Number of GeneralScaler resources currently registered",
		}),

		RegistrationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "generalscaler_registration_failures_total",
			Help: "Total number of rejected resource registrations",
		}),

		RetryAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generalscaler_retry_attempts_total",
				Help: "Total number of attempts by operation, first attempts included",
			},
			[]string{"operation"},
		),

		RetrySuccessTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generalscaler_retry_success_total",
				Help: "Total number of operations that succeeded after retrying",
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(
		m.TicksTotal,
		m.TicksSkippedTotal,
		m.ScaleOperationsTotal,
		m.ScaleFailuresTotal,
		m.MetricFetchFailuresTotal,
		m.MetricFetchDuration,
		m.RegisteredResources,
		m.RegistrationFailures,
		m.RetryAttemptsTotal,
		m.RetrySuccessTotal,
	)

	return m
}

// RecordTick counts one executed tick
func (m *OperatorMetrics) RecordTick() {
	if m == nil {
		return
	}
	m.TicksTotal.Inc()
}

// RecordTickSkipped counts a tick that ended without a scaling attempt
func (m *OperatorMetrics) RecordTickSkipped(namespace, name, reason string) {
	if m == nil {
		return
	}
	m.TicksSkippedTotal.WithLabelValues(namespace, name, reason).Inc()
}

// RecordScale counts a successful scale operation
func (m *OperatorMetrics) RecordScale(namespace, name, direction string) {
	if m == nil {
		return
	}
	m.ScaleOperationsTotal.WithLabelValues(namespace, name, direction).Inc()
}

// RecordScaleFailure counts a failed scale operation
func (m *OperatorMetrics) RecordScaleFailure(namespace, name string) {
	if m == nil {
		return
	}
	m.ScaleFailuresTotal.WithLabelValues(namespace, name).Inc()
}

// RecordMetricFetchFailure counts an unavailable metric fetch
func (m *OperatorMetrics) RecordMetricFetchFailure(provider string) {
	if m == nil {
		return
	}
	m.MetricFetchFailuresTotal.WithLabelValues(provider).Inc()
}

// ObserveMetricFetch records the duration of a provider fetch
func (m *OperatorMetrics) ObserveMetricFetch(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.MetricFetchDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// SetRegisteredResources tracks the registry size
func (m *OperatorMetrics) SetRegisteredResources(n int) {
	if m == nil {
		return
	}
	m.RegisteredResources.Set(float64(n))
}

// RecordRegistrationFailure counts a rejected registration
func (m *OperatorMetrics) RecordRegistrationFailure() {
	if m == nil {
		return
	}
	m.RegistrationFailures.Inc()
}

// RecordRetryAttempt counts one attempt of an operation run through the
// retryer; the first attempt is counted as well as every retry
func (m *OperatorMetrics) RecordRetryAttempt(operation string, attempt int) {
	if m == nil {
		return
	}
	m.RetryAttemptsTotal.WithLabelValues(operation).Inc()
}

// RecordRetrySuccess counts an operation that succeeded after retries
func (m *OperatorMetrics) RecordRetrySuccess(operation string) {
	if m == nil {
		return
	}
	m.RetrySuccessTotal.WithLabelValues(operation).Inc()
}
