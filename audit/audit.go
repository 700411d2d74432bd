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

// Package audit keeps a trail of every scale operation the controller
// commits (and every one that failed at the workload API).
package audit

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ngofficial99/GeneralScaler/logger"
)

// Event records one scale attempt
type Event struct {
	Timestamp    time.Time `json:"timestamp"`
	Namespace    string    `json:"namespace"`
	ResourceName string    `json:"resourceName"`
	Workload     string    `json:"workload"`
	FromReplicas int32     `json:"fromReplicas"`
	ToReplicas   int32     `json:"toReplicas"`
	Direction    string    `json:"direction"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"` // success or failed
	Error        string    `json:"error,omitempty"`
}

// maxEvents bounds the in-memory trail
const maxEvents = 500

// Logger keeps a bounded in-memory trail and writes one structured log
// line per event.
type Logger struct {
	mu      sync.RWMutex
	enabled bool
	events  []Event
}

// NewLogger creates an audit logger
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		events:  make([]Event, 0, 64),
	}
}

// Record stores the event and emits it as a JSON log line
func (l *Logger) Record(ev Event) {
	if l == nil || !l.enabled {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	l.mu.Lock()
	if len(l.events) >= maxEvents {
		l.events = l.events[1:]
	}
	l.events = append(l.events, ev)
	l.mu.Unlock()

	line, err := json.Marshal(ev)
	if err != nil {
		logger.Warn("Failed to marshal audit event: %v", err)
		return
	}
	logger.Info("audit %s", string(line))
}

// Events returns a copy of the recorded trail, oldest first
func (l *Logger) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}
