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
	"fmt"
	"sync"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/errors"
	"github.com/ngofficial99/GeneralScaler/logger"
)

// undeliveredMetricType is the Cloud Monitoring metric holding the
// per-subscription backlog.
const undeliveredMetricType = "pubsub.googleapis.com/subscription/num_undelivered_messages"

// backlogWindow is how far back the time-series query looks. The metric is
// sampled roughly once a minute; five minutes always covers a fresh point.
const backlogWindow = 5 * time.Minute

// PubSubProvider reports the undelivered message count of a Pub/Sub
// subscription via the Cloud Monitoring API. When the query fails or
// returns no points the metric is unavailable; the provider never reports
// a made-up zero.
type PubSubProvider struct {
	projectID       string
	subscriptionID  string
	credentialsPath string

	mu     sync.Mutex
	client *monitoring.MetricClient
}

// NewPubSubProvider builds a provider from the pubsub metric block
func NewPubSubProvider(src *v1alpha1.PubSubMetricSource) *PubSubProvider {
	return &PubSubProvider{
		projectID:       src.ProjectID,
		subscriptionID:  src.SubscriptionID,
		credentialsPath: src.CredentialsPath,
	}
}

// Validate checks the provider configuration
func (p *PubSubProvider) Validate() error {
	if p.projectID == "" {
		return errors.New(errors.CategoryValidation, "pubsub", "project ID is required")
	}
	if p.subscriptionID == "" {
		return errors.New(errors.CategoryValidation, "pubsub", "subscription ID is required")
	}
	return nil
}

// getClient lazily dials the Monitoring API, reusing the client across ticks
func (p *PubSubProvider) getClient(ctx context.Context) (*monitoring.MetricClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	var opts []option.ClientOption
	if p.credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(p.credentialsPath))
	}

	client, err := monitoring.NewMetricClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryMetrics, "pubsub",
			"failed to create Cloud Monitoring client")
	}
	p.client = client
	return client, nil
}

// Fetch returns the most recent undelivered-message count for the subscription
func (p *PubSubProvider) Fetch(ctx context.Context) (float64, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	req := &monitoringpb.ListTimeSeriesRequest{
		Name: "projects/" + p.projectID,
		Filter: fmt.Sprintf(
			`metric.type = %q AND resource.labels.subscription_id = %q`,
			undeliveredMetricType, p.subscriptionID),
		Interval: &monitoringpb.TimeInterval{
			StartTime: timestamppb.New(now.Add(-backlogWindow)),
			EndTime:   timestamppb.New(now),
		},
		View: monitoringpb.ListTimeSeriesRequest_FULL,
	}

	it := client.ListTimeSeries(ctx, req)
	series, err := it.Next()
	if err == iterator.Done {
		return 0, errors.Newf(errors.CategoryMetrics, "pubsub",
			"no backlog data for subscription %q in the last %s", p.subscriptionID, backlogWindow)
	}
	if err != nil {
		return 0, errors.Wrapf(err, errors.CategoryMetrics, "pubsub",
			"failed to query backlog for subscription %q", p.subscriptionID)
	}

	points := series.GetPoints()
	if len(points) == 0 {
		return 0, errors.Newf(errors.CategoryMetrics, "pubsub",
			"empty time series for subscription %q", p.subscriptionID)
	}

	// Points are returned newest first
	backlog := float64(points[0].GetValue().GetInt64Value())
	logger.Debug("Pub/Sub subscription %q backlog: %f", p.subscriptionID, backlog)
	return backlog, nil
}

// Release closes the Monitoring client
func (p *PubSubProvider) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		if err := p.client.Close(); err != nil {
			logger.Warn("Error closing Monitoring client for %q: %v", p.subscriptionID, err)
		}
		p.client = nil
	}
}
