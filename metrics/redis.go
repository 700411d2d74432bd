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

	"github.com/redis/go-redis/v9"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/errors"
	"github.com/ngofficial99/GeneralScaler/logger"
)

// RedisProvider reports the depth of a Redis-backed queue: list length for
// list keys, cardinality for sorted sets. A missing key is an empty queue,
// not an error.
type RedisProvider struct {
	queueName string
	host      string
	client    *redis.Client
}

// NewRedisProvider builds a provider from the redis metric block
func NewRedisProvider(src *v1alpha1.RedisMetricSource) *RedisProvider {
	port := src.Port
	if port == 0 {
		port = 6379
	}
	return &RedisProvider{
		queueName: src.QueueName,
		host:      src.Host,
		client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", src.Host, port),
			Password: src.Password,
			DB:       int(src.DB),
		}),
	}
}

// Validate checks the provider configuration
func (p *RedisProvider) Validate() error {
	if p.queueName == "" {
		return errors.New(errors.CategoryValidation, "redis", "queue name is required")
	}
	if p.host == "" {
		return errors.New(errors.CategoryValidation, "redis", "host is required")
	}
	return nil
}

// Fetch returns the queue depth of the configured key
func (p *RedisProvider) Fetch(ctx context.Context) (float64, error) {
	keyType, err := p.client.Type(ctx, p.queueName).Result()
	if err != nil {
		return 0, errors.Wrapf(err, errors.CategoryMetrics, "redis",
			"failed to inspect key %q", p.queueName)
	}

	var length int64
	switch keyType {
	case "none":
		// Key absent: the queue is empty, which is a valid observation
		logger.Debug("Redis key %q does not exist, reporting 0", p.queueName)
		return 0, nil
	case "list":
		length, err = p.client.LLen(ctx, p.queueName).Result()
	case "zset":
		length, err = p.client.ZCard(ctx, p.queueName).Result()
	default:
		return 0, errors.Newf(errors.CategoryMetrics, "redis",
			"unsupported key type %q for %q, only list and zset are supported", keyType, p.queueName)
	}
	if err != nil {
		return 0, errors.Wrapf(err, errors.CategoryMetrics, "redis",
			"failed to read length of %q", p.queueName)
	}

	logger.Debug("Redis queue %q depth: %d", p.queueName, length)
	return float64(length), nil
}

// Release closes the connection pool
func (p *RedisProvider) Release() {
	if err := p.client.Close(); err != nil {
		logger.Warn("Error closing Redis client for %q: %v", p.queueName, err)
	}
}
