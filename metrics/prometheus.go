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
	"context"
	"math"
	"net/http"
	"net/url"
	"time"

	promapi "github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/errors"
	"github.com/ngofficial99/GeneralScaler/logger"
)

// PrometheusProvider runs an instant query against a Prometheus server and
// reports the first sample of the result.
type PrometheusProvider struct {
	serverURL string
	query     string
	api       promv1.API
}

// headerRoundTripper injects static headers into every query request
type headerRoundTripper struct {
	headers map[string]string
	next    http.RoundTripper
}

func (rt *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range rt.headers {
		req.Header.Set(k, v)
	}
	return rt.next.RoundTrip(req)
}

// NewPrometheusProvider builds a provider from the prometheus metric block
func NewPrometheusProvider(src *v1alpha1.PrometheusMetricSource) (*PrometheusProvider, error) {
	p := &PrometheusProvider{
		serverURL: src.ServerURL,
		query:     src.Query,
	}

	var rt http.RoundTripper = promapi.DefaultRoundTripper
	if len(src.Headers) > 0 {
		rt = &headerRoundTripper{headers: src.Headers, next: rt}
	}

	client, err := promapi.NewClient(promapi.Config{
		Address:      src.ServerURL,
		RoundTripper: rt,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfiguration, "NewPrometheusProvider",
			"failed to create Prometheus client")
	}
	p.api = promv1.NewAPI(client)

	return p, nil
}

// Validate checks the provider configuration
func (p *PrometheusProvider) Validate() error {
	if p.serverURL == "" {
		return errors.New(errors.CategoryValidation, "prometheus", "server URL is required")
	}
	if _, err := url.ParseRequestURI(p.serverURL); err != nil {
		return errors.Wrapf(err, errors.CategoryValidation, "prometheus",
			"invalid server URL %q", p.serverURL)
	}
	if p.query == "" {
		return errors.New(errors.CategoryValidation, "prometheus", "query is required")
	}
	return nil
}

// Fetch runs the instant query and returns the first sample value. Empty
// results, non-success responses and unparseable values all surface as
// errors, which the reconciler treats as "no data this tick".
func (p *PrometheusProvider) Fetch(ctx context.Context) (float64, error) {
	result, warnings, err := p.api.Query(ctx, p.query, time.Now())
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryMetrics, "prometheus", "query failed")
	}
	for _, w := range warnings {
		logger.Warn("Prometheus query warning: %s", w)
	}

	var value float64
	switch v := result.(type) {
	case model.Vector:
		if v.Len() == 0 {
			return 0, errors.New(errors.CategoryMetrics, "prometheus", "query returned no series")
		}
		value = float64(v[0].Value)
	case *model.Scalar:
		value = float64(v.Value)
	default:
		return 0, errors.Newf(errors.CategoryMetrics, "prometheus",
			"unexpected result type %s", result.Type())
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.New(errors.CategoryMetrics, "prometheus", "query returned a non-finite value")
	}

	logger.Debug("Prometheus metric value: %f (query: %s)", value, p.query)
	return value, nil
}

// Release is a no-op; the HTTP client holds no persistent connections worth
// tearing down beyond idle keep-alives.
func (p *PrometheusProvider) Release() {}
