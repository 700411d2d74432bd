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

// Package registry tracks, per GeneralScaler resource, the active metric
// provider, policy and spec snapshot. It is the single owner of providers:
// every provider constructed here is released here, exactly once.
package registry

import (
	"sync"
	"time"

	"k8s.io/apimachinery/pkg/api/equality"
	"k8s.io/apimachinery/pkg/types"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/config"
	"github.com/ngofficial99/GeneralScaler/errors"
	"github.com/ngofficial99/GeneralScaler/logger"
	"github.com/ngofficial99/GeneralScaler/metrics"
	"github.com/ngofficial99/GeneralScaler/policy"
	"github.com/ngofficial99/GeneralScaler/scaling"
)

// Entry is the registered state of one GeneralScaler resource.
//
// The spec snapshot, provider and policy are immutable once the entry is
// inserted; a spec change builds a whole new entry. LastScaleAt and
// LastScaleDirection are written only through MarkScaled and read within a
// tick. Cooldown state lives only here: it survives spec-preserving ticks
// but not spec changes or controller restarts, so after a restart the first
// tick may scale immediately.
type Entry struct {
	Spec     v1alpha1.GeneralScalerSpec
	Provider metrics.Provider
	Policy   policy.Policy

	LastScaleAt        *time.Time
	LastScaleDirection scaling.Direction
}

// Registry maps resources to their entries
type Registry struct {
	mu      sync.RWMutex
	entries map[types.NamespacedName]*Entry
	metrics *metrics.OperatorMetrics
}

// New creates an empty registry
func New(m *metrics.OperatorMetrics) *Registry {
	return &Registry{
		entries: make(map[types.NamespacedName]*Entry),
		metrics: m,
	}
}

// validateSpec checks the invariants the CRD schema cannot fully express
func validateSpec(spec v1alpha1.GeneralScalerSpec) error {
	if spec.TargetRef.Name == "" {
		return errors.New(errors.CategoryValidation, "spec", "targetRef.name is required")
	}
	if spec.TargetRef.Kind != "" && spec.TargetRef.Kind != "Deployment" {
		return errors.Newf(errors.CategoryValidation, "spec",
			"unsupported target kind %q, only Deployment is supported", spec.TargetRef.Kind)
	}
	if spec.MinReplicas < config.AbsoluteMinReplicas {
		return errors.New(errors.CategoryValidation, "spec", "minReplicas must be non-negative")
	}
	if spec.MaxReplicas > config.AbsoluteMaxReplicas {
		return errors.Newf(errors.CategoryValidation, "spec",
			"maxReplicas must not exceed %d", config.AbsoluteMaxReplicas)
	}
	if spec.MinReplicas > spec.MaxReplicas {
		return errors.New(errors.CategoryValidation, "spec", "minReplicas cannot be greater than maxReplicas")
	}
	if spec.Metric.TargetValue <= 0 {
		return errors.New(errors.CategoryValidation, "spec", "metric.targetValue must be positive")
	}
	if b := spec.Behavior.ScaleUp; b != nil {
		if b.CooldownSeconds != nil && *b.CooldownSeconds < 0 {
			return errors.New(errors.CategoryValidation, "spec", "scaleUp.cooldownSeconds must be non-negative")
		}
		if b.MaxIncrement != nil && *b.MaxIncrement < 1 {
			return errors.New(errors.CategoryValidation, "spec", "scaleUp.maxIncrement must be at least 1")
		}
	}
	if b := spec.Behavior.ScaleDown; b != nil {
		if b.CooldownSeconds != nil && *b.CooldownSeconds < 0 {
			return errors.New(errors.CategoryValidation, "spec", "scaleDown.cooldownSeconds must be non-negative")
		}
		if b.MaxDecrement != nil && *b.MaxDecrement < 1 {
			return errors.New(errors.CategoryValidation, "spec", "scaleDown.maxDecrement must be at least 1")
		}
	}
	return nil
}

// Upsert registers or refreshes the entry for key.
//
// An unchanged spec keeps the existing entry, preserving its cooldown
// state. A changed spec builds the replacement first: only when the new
// provider and policy validate is the old entry swapped out and its
// provider released, so a bad update leaves the previous registration
// intact. A spec change deliberately resets cooldown state, since the
// operator of the system revised intent.
func (r *Registry) Upsert(key types.NamespacedName, spec v1alpha1.GeneralScalerSpec) (*Entry, error) {
	r.mu.RLock()
	existing := r.entries[key]
	r.mu.RUnlock()

	if existing != nil && equality.Semantic.DeepEqual(existing.Spec, spec) {
		return existing, nil
	}

	if err := validateSpec(spec); err != nil {
		r.metrics.RecordRegistrationFailure()
		return nil, err
	}

	provider, err := metrics.NewProvider(spec.Metric)
	if err != nil {
		r.metrics.RecordRegistrationFailure()
		return nil, err
	}
	if err := provider.Validate(); err != nil {
		provider.Release()
		r.metrics.RecordRegistrationFailure()
		return nil, errors.Wrap(err, errors.CategoryValidation, "Upsert", "invalid metric provider configuration")
	}

	pol := policy.New(spec.Policy)
	if err := pol.Validate(); err != nil {
		provider.Release()
		r.metrics.RecordRegistrationFailure()
		return nil, errors.Wrap(err, errors.CategoryValidation, "Upsert", "invalid policy configuration")
	}

	entry := &Entry{
		Spec:     spec,
		Provider: provider,
		Policy:   pol,
	}

	r.mu.Lock()
	old := r.entries[key]
	r.entries[key] = entry
	size := len(r.entries)
	r.mu.Unlock()

	if old != nil {
		old.Provider.Release()
		logger.Info("Replaced registration for %s (spec changed, cooldown reset)", key)
	} else {
		logger.Info("Registered %s (metric: %s, policy: %s)", key, spec.Metric.Type, spec.Policy.Type)
	}
	r.metrics.SetRegisteredResources(size)

	return entry, nil
}

// Get returns the entry for key, or nil when the resource is not registered
func (r *Registry) Get(key types.NamespacedName) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[key]
}

// Delete removes the entry for key and releases its provider
func (r *Registry) Delete(key types.NamespacedName) {
	r.mu.Lock()
	entry := r.entries[key]
	delete(r.entries, key)
	size := len(r.entries)
	r.mu.Unlock()

	if entry != nil {
		entry.Provider.Release()
		logger.Info("Unregistered %s", key)
	}
	r.metrics.SetRegisteredResources(size)
}

// MarkScaled records a successful scale for cooldown bookkeeping. The
// timestamp lands on the entry only if it is still the registered one, so a
// concurrent spec change is not resurrected with stale cooldown state.
func (r *Registry) MarkScaled(key types.NamespacedName, entry *Entry, dir scaling.Direction, when time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries[key] != entry {
		return
	}
	t := when
	entry.LastScaleAt = &t
	entry.LastScaleDirection = dir
}

// Count returns the number of registered resources
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close releases every provider; called on process teardown
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[types.NamespacedName]*Entry)
	r.mu.Unlock()

	for key, entry := range entries {
		entry.Provider.Release()
		logger.Debug("Released provider for %s", key)
	}
	r.metrics.SetRegisteredResources(0)
}
