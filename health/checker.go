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

// Package health tracks the health of operator components and exposes it
// through the manager's healthz endpoint.
package health

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ngofficial99/GeneralScaler/logger"
)

// ComponentStatus represents the health status of a component
type ComponentStatus struct {
	Healthy     bool
	LastChecked time.Time
	Message     string
}

// OperatorHealthChecker aggregates component health for the operator
type OperatorHealthChecker struct {
	mu         sync.RWMutex
	components map[string]*ComponentStatus
}

// NewOperatorHealthChecker creates a health checker with the operator's
// known components preregistered
func NewOperatorHealthChecker() *OperatorHealthChecker {
	now := time.Now()
	return &OperatorHealthChecker{
		components: map[string]*ComponentStatus{
			"controller": {
				Healthy:     true,
				LastChecked: now,
				Message:     "Controller initialized",
			},
			"registry": {
				Healthy:     true,
				LastChecked: now,
				Message:     "Registry initialized",
			},
			"workload-api": {
				Healthy:     true,
				LastChecked: now,
				Message:     "Workload API reachable",
			},
		},
	}
}

// UpdateComponentStatus updates the status of a specific component
func (h *OperatorHealthChecker) UpdateComponentStatus(component string, healthy bool, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if status, exists := h.components[component]; exists {
		status.Healthy = healthy
		status.LastChecked = time.Now()
		status.Message = message
	} else {
		h.components[component] = &ComponentStatus{
			Healthy:     healthy,
			LastChecked: time.Now(),
			Message:     message,
		}
	}

	logger.Debug("Health status updated for %s: healthy=%v, message=%s", component, healthy, message)
}

// GetComponentStatus returns the status of a specific component
func (h *OperatorHealthChecker) GetComponentStatus(component string) (*ComponentStatus, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status, exists := h.components[component]
	if !exists {
		return nil, false
	}
	copied := *status
	return &copied, true
}

// IsHealthy reports whether every component is healthy
func (h *OperatorHealthChecker) IsHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, status := range h.components {
		if !status.Healthy {
			return false
		}
	}
	return true
}

// Check implements healthz.Checker for the controller-runtime manager
func (h *OperatorHealthChecker) Check(_ *http.Request) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for name, status := range h.components {
		if !status.Healthy {
			return fmt.Errorf("component %s unhealthy: %s", name, status.Message)
		}
	}
	return nil
}
