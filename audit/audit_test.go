package audit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_RecordAndList(t *testing.T) {
	l := NewLogger(true)

	l.Record(Event{
		Namespace:    "default",
		ResourceName: "scaler",
		Workload:     "web",
		FromReplicas: 5,
		ToReplicas:   10,
		Direction:    "up",
		Reason:       "scaling up from 5 to 10",
		Status:       "success",
	})

	events := l.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "web", events[0].Workload)
	assert.Equal(t, int32(10), events[0].ToReplicas)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestLogger_DisabledRecordsNothing(t *testing.T) {
	l := NewLogger(false)

	l.Record(Event{Workload: "web", Status: "success"})
	assert.Empty(t, l.Events())
}

func TestLogger_TrailIsBounded(t *testing.T) {
	l := NewLogger(true)

	for i := 0; i < maxEvents+25; i++ {
		l.Record(Event{Workload: fmt.Sprintf("web-%d", i), Status: "success"})
	}

	events := l.Events()
	assert.Len(t, events, maxEvents)
	// Oldest entries were dropped
	assert.Equal(t, "web-25", events[0].Workload)
}

func TestLogger_EventsReturnsCopy(t *testing.T) {
	l := NewLogger(true)
	l.Record(Event{Workload: "web", Status: "success"})

	events := l.Events()
	events[0].Workload = "mutated"

	assert.Equal(t, "web", l.Events()[0].Workload)
}
