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

package policy

import (
	"math"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/errors"
	"github.com/ngofficial99/GeneralScaler/logger"
)

// Defaults for the SLO policy
const (
	DefaultTargetLatencyMs        = 100.0
	DefaultTargetErrorRate        = 0.01
	DefaultSLOViolationMultiplier = 1.5
)

// SLOPolicy scales proportionally to metric/target, amplifying scale-up when
// the metric exceeds the target (the SLO is being violated).
type SLOPolicy struct {
	targetLatencyMs        float64
	targetErrorRate        float64
	sloViolationMultiplier float64
}

// NewSLOPolicy builds an SLO policy; a nil config uses defaults
func NewSLOPolicy(cfg *v1alpha1.SLOPolicyConfig) *SLOPolicy {
	p := &SLOPolicy{
		targetLatencyMs:        DefaultTargetLatencyMs,
		targetErrorRate:        DefaultTargetErrorRate,
		sloViolationMultiplier: DefaultSLOViolationMultiplier,
	}
	if cfg == nil {
		return p
	}
	if cfg.TargetLatencyMs != nil {
		p.targetLatencyMs = *cfg.TargetLatencyMs
	}
	if cfg.TargetErrorRate != nil {
		p.targetErrorRate = *cfg.TargetErrorRate
	}
	if cfg.SLOViolationMultiplier != nil {
		p.sloViolationMultiplier = *cfg.SLOViolationMultiplier
	}
	return p
}

// Validate checks the policy configuration
func (p *SLOPolicy) Validate() error {
	if p.targetLatencyMs <= 0 {
		return errors.New(errors.CategoryValidation, "slo", "target latency must be positive")
	}
	if p.targetErrorRate < 0 || p.targetErrorRate > 1 {
		return errors.New(errors.CategoryValidation, "slo", "target error rate must be between 0 and 1")
	}
	if p.sloViolationMultiplier <= 0 {
		return errors.New(errors.CategoryValidation, "slo", "SLO violation multiplier must be positive")
	}
	return nil
}

// Compute returns the desired replica count for the observed metric
func (p *SLOPolicy) Compute(current int32, metric, target float64, min, max int32) int32 {
	if metric <= 0 {
		logger.Debug("SLO policy: metric is zero or negative, holding at %d replicas", current)
		return current
	}
	if target <= 0 {
		logger.Debug("SLO policy: target is zero or negative, holding at %d replicas", current)
		return current
	}

	ratio := metric / target

	var desired int32
	if ratio > 1.0 {
		// SLO violated: bias toward faster scale-up
		desired = int32(math.Ceil(float64(current) * ratio * p.sloViolationMultiplier))
		logger.Warn("SLO violation: metric=%.2f target=%.2f ratio=%.2f, scaling from %d to %d",
			metric, target, ratio, current, desired)
	} else {
		desired = int32(math.Ceil(float64(current) * ratio))
		logger.Debug("SLO maintained: metric=%.2f target=%.2f ratio=%.2f, desired %d",
			metric, target, ratio, desired)
	}

	clamped := clamp(desired, min, max)
	if clamped != desired {
		logger.Debug("SLO policy: clamping desired replicas %d to %d (min=%d, max=%d)",
			desired, clamped, min, max)
	}
	return clamped
}
