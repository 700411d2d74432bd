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

// Package metrics contains the pluggable metric providers that feed the
// scaling loop, plus the operator's own Prometheus instrumentation.
package metrics

import (
	"context"
	"strings"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/errors"
)

// Provider fetches a scalar metric from an external source.
//
// Fetch errors are soft: the reconciler skips the tick and retries on the
// next one. Validate errors are hard registration errors. Release frees the
// provider's network resources; the registry calls it exactly once when the
// provider is retired.
type Provider interface {
	Validate() error
	Fetch(ctx context.Context) (float64, error)
	Release()
}

// NewProvider constructs a provider from the metric block of a
// GeneralScaler spec, dispatching on the type field.
func NewProvider(metric v1alpha1.MetricSpec) (Provider, error) {
	switch strings.ToLower(metric.Type) {
	case "prometheus":
		if metric.Prometheus == nil {
			return nil, errors.New(errors.CategoryConfiguration, "NewProvider",
				"metric type is prometheus but the prometheus block is missing")
		}
		return NewPrometheusProvider(metric.Prometheus)
	case "redis":
		if metric.Redis == nil {
			return nil, errors.New(errors.CategoryConfiguration, "NewProvider",
				"metric type is redis but the redis block is missing")
		}
		return NewRedisProvider(metric.Redis), nil
	case "pubsub":
		if metric.PubSub == nil {
			return nil, errors.New(errors.CategoryConfiguration, "NewProvider",
				"metric type is pubsub but the pubsub block is missing")
		}
		return NewPubSubProvider(metric.PubSub), nil
	default:
		return nil, errors.Newf(errors.CategoryConfiguration, "NewProvider",
			"unknown metric type %q", metric.Type)
	}
}
