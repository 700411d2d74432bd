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

// Package policy translates an observed metric into a desired replica count.
package policy

import (
	"strings"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/logger"
)

// Policy maps (current replicas, observed metric, target metric, bounds) to
// a desired replica count.
//
// Contract: Compute returns a value in [min, max]. A non-positive metric or
// target carries no information to act on, so Compute returns current
// unchanged. Policies never perform I/O.
type Policy interface {
	Validate() error
	Compute(current int32, metric, target float64, min, max int32) int32
}

// New constructs a policy from the policy block of a GeneralScaler spec.
// An unknown or empty type falls back to the SLO policy with defaults; an
// invalid config for a known type is a hard registration error.
func New(spec v1alpha1.PolicySpec) Policy {
	switch strings.ToLower(spec.Type) {
	case "slo":
		return NewSLOPolicy(spec.SLO)
	case "costaware":
		return NewCostAwarePolicy(spec.CostAware)
	default:
		if spec.Type != "" {
			logger.Info("Unknown policy type %q, using SLO policy with defaults", spec.Type)
		}
		return NewSLOPolicy(nil)
	}
}

// clamp bounds replicas to [min, max]
func clamp(replicas, min, max int32) int32 {
	if replicas < min {
		return min
	}
	if replicas > max {
		return max
	}
	return replicas
}
