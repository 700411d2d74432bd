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

// hoursPerMonth is the averaged month length used for cost projection
const hoursPerMonth = 730

// CostAwarePolicy applies proportional scaling weighted by a preferred
// direction, then caps the result at the largest replica count whose
// projected monthly cost stays within budget. The budget never pushes the
// count below the declared minimum.
type CostAwarePolicy struct {
	maxMonthlyCost    float64
	costPerPodPerHour float64
	direction         string

	scaleUpFactor   float64
	scaleDownFactor float64
}

// NewCostAwarePolicy builds a cost-aware policy; a nil config uses a
// balanced direction and no budget ceiling
func NewCostAwarePolicy(cfg *v1alpha1.CostAwarePolicyConfig) *CostAwarePolicy {
	p := &CostAwarePolicy{
		maxMonthlyCost:  math.Inf(1),
		direction:       "balanced",
		scaleUpFactor:   1.0,
		scaleDownFactor: 1.0,
	}
	if cfg == nil {
		return p
	}

	if cfg.MaxMonthlyCost != nil {
		p.maxMonthlyCost = *cfg.MaxMonthlyCost
	}
	p.costPerPodPerHour = cfg.CostPerPodPerHour
	if cfg.PreferredScaleDirection != "" {
		p.direction = cfg.PreferredScaleDirection
	}

	switch p.direction {
	case "down":
		p.scaleDownFactor = 1.2
		p.scaleUpFactor = 0.8
	case "up":
		p.scaleUpFactor = 1.2
		p.scaleDownFactor = 0.8
	}

	return p
}

// Validate checks the policy configuration
func (p *CostAwarePolicy) Validate() error {
	if p.costPerPodPerHour < 0 {
		return errors.New(errors.CategoryValidation, "costaware", "cost per pod per hour must be non-negative")
	}
	if p.maxMonthlyCost < 0 {
		return errors.New(errors.CategoryValidation, "costaware", "max monthly cost must be non-negative")
	}
	switch p.direction {
	case "up", "down", "balanced":
	default:
		return errors.Newf(errors.CategoryValidation, "costaware",
			"preferred scale direction must be up, down or balanced, got %q", p.direction)
	}
	return nil
}

// monthlyCost projects the monthly cost of running the given replicas
func (p *CostAwarePolicy) monthlyCost(replicas int32) float64 {
	return float64(replicas) * p.costPerPodPerHour * hoursPerMonth
}

// withinBudget reports whether the replica count fits the budget ceiling
func (p *CostAwarePolicy) withinBudget(replicas int32) bool {
	if math.IsInf(p.maxMonthlyCost, 1) {
		return true
	}
	return p.monthlyCost(replicas) <= p.maxMonthlyCost
}

// Compute returns the desired replica count for the observed metric
func (p *CostAwarePolicy) Compute(current int32, metric, target float64, min, max int32) int32 {
	if metric <= 0 {
		logger.Debug("Cost-aware policy: metric is zero or negative, holding at %d replicas", current)
		return current
	}
	if target <= 0 {
		logger.Debug("Cost-aware policy: target is zero or negative, holding at %d replicas", current)
		return current
	}

	ratio := metric / target

	var desired int32
	if ratio > 1.0 {
		desired = int32(math.Ceil(float64(current) * ratio * p.scaleUpFactor))
	} else {
		desired = int32(math.Ceil(float64(current) * ratio * p.scaleDownFactor))
	}

	desired = clamp(desired, min, max)

	if !p.withinBudget(desired) {
		constrained := desired
		for r := desired; r >= min; r-- {
			if p.withinBudget(r) {
				constrained = r
				break
			}
			constrained = r
		}

		if !p.withinBudget(constrained) {
			// Even the minimum exceeds the budget; the declared floor wins
			logger.Warn("Cost-aware policy: even minimum replicas (%d) exceeds budget of $%.2f/mo, using minimum anyway",
				min, p.maxMonthlyCost)
			constrained = min
		} else if constrained != desired {
			logger.Warn("Cost-aware policy: budget constraint reduces %d to %d replicas ($%.2f/mo, max $%.2f/mo)",
				desired, constrained, p.monthlyCost(constrained), p.maxMonthlyCost)
		}
		desired = constrained
	}

	logger.Debug("Cost-aware policy: current=%d ($%.2f/mo) desired=%d ($%.2f/mo) direction=%s",
		current, p.monthlyCost(current), desired, p.monthlyCost(desired), p.direction)

	return desired
}
