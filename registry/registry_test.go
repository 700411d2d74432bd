package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/types"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/metrics"
	"github.com/ngofficial99/GeneralScaler/scaling"
)

func int32Ptr(v int32) *int32 { return &v }

func validSpec() v1alpha1.GeneralScalerSpec {
	return v1alpha1.GeneralScalerSpec{
		TargetRef:   v1alpha1.TargetReference{Kind: "Deployment", Name: "web"},
		MinReplicas: 1,
		MaxReplicas: 10,
		Metric: v1alpha1.MetricSpec{
			Type:        "redis",
			TargetValue: 100,
			Redis:       &v1alpha1.RedisMetricSource{Host: "localhost", QueueName: "jobs"},
		},
	}
}

func newTestRegistry() *Registry {
	return New(metrics.NewOperatorMetrics())
}

func key(name string) types.NamespacedName {
	return types.NamespacedName{Namespace: "default", Name: name}
}

func TestRegistry_UpsertAndGet(t *testing.T) {
	r := newTestRegistry()
	defer r.Close()

	entry, err := r.Upsert(key("scaler"), validSpec())
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Same(t, entry, r.Get(key("scaler")))
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_GetUnknownReturnsNil(t *testing.T) {
	r := newTestRegistry()
	assert.Nil(t, r.Get(key("missing")))
}

func TestRegistry_UpsertRejectsInvalidSpec(t *testing.T) {
	r := newTestRegistry()
	defer r.Close()

	for _, tc := range []struct {
		name   string
		mutate func(*v1alpha1.GeneralScalerSpec)
	}{
		{"missing target name", func(s *v1alpha1.GeneralScalerSpec) { s.TargetRef.Name = "" }},
		{"unsupported kind", func(s *v1alpha1.GeneralScalerSpec) { s.TargetRef.Kind = "StatefulSet" }},
		{"min above max", func(s *v1alpha1.GeneralScalerSpec) { s.MinReplicas = 11 }},
		{"max above absolute limit", func(s *v1alpha1.GeneralScalerSpec) { s.MaxReplicas = 500 }},
		{"zero target value", func(s *v1alpha1.GeneralScalerSpec) { s.Metric.TargetValue = 0 }},
		{"negative cooldown", func(s *v1alpha1.GeneralScalerSpec) {
			s.Behavior.ScaleUp = &v1alpha1.ScaleUpBehavior{CooldownSeconds: int32Ptr(-1)}
		}},
		{"zero increment", func(s *v1alpha1.GeneralScalerSpec) {
			s.Behavior.ScaleUp = &v1alpha1.ScaleUpBehavior{MaxIncrement: int32Ptr(0)}
		}},
		{"unknown metric type", func(s *v1alpha1.GeneralScalerSpec) { s.Metric.Type = "smoke-signals" }},
		{"missing metric block", func(s *v1alpha1.GeneralScalerSpec) { s.Metric.Redis = nil }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(&spec)

			_, err := r.Upsert(key(tc.name), spec)
			assert.Error(t, err)
			assert.Nil(t, r.Get(key(tc.name)))
		})
	}
}

func TestRegistry_UpsertRejectsInvalidProviderConfig(t *testing.T) {
	r := newTestRegistry()
	defer r.Close()

	spec := validSpec()
	spec.Metric.Redis.QueueName = ""

	_, err := r.Upsert(key("scaler"), spec)
	assert.Error(t, err)
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_UnchangedSpecKeepsEntry(t *testing.T) {
	r := newTestRegistry()
	defer r.Close()

	first, err := r.Upsert(key("scaler"), validSpec())
	require.NoError(t, err)

	r.MarkScaled(key("scaler"), first, scaling.DirectionUp, time.Now())

	second, err := r.Upsert(key("scaler"), validSpec())
	require.NoError(t, err)

	// Same entry, cooldown state intact
	assert.Same(t, first, second)
	assert.NotNil(t, second.LastScaleAt)
}

func TestRegistry_SpecChangeReplacesEntryAndResetsCooldown(t *testing.T) {
	r := newTestRegistry()
	defer r.Close()

	first, err := r.Upsert(key("scaler"), validSpec())
	require.NoError(t, err)
	r.MarkScaled(key("scaler"), first, scaling.DirectionUp, time.Now())

	changed := validSpec()
	changed.MaxReplicas = 20

	second, err := r.Upsert(key("scaler"), changed)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Nil(t, second.LastScaleAt)
	assert.Equal(t, int32(20), second.Spec.MaxReplicas)
}

func TestRegistry_FailedUpdateKeepsOldEntry(t *testing.T) {
	r := newTestRegistry()
	defer r.Close()

	first, err := r.Upsert(key("scaler"), validSpec())
	require.NoError(t, err)

	bad := validSpec()
	bad.Metric.TargetValue = -5

	_, err = r.Upsert(key("scaler"), bad)
	assert.Error(t, err)

	// The old registration survives a rejected update
	assert.Same(t, first, r.Get(key("scaler")))
}

func TestRegistry_Delete(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Upsert(key("scaler"), validSpec())
	require.NoError(t, err)

	r.Delete(key("scaler"))
	assert.Nil(t, r.Get(key("scaler")))
	assert.Equal(t, 0, r.Count())

	// Deleting twice is harmless
	r.Delete(key("scaler"))
}

func TestRegistry_MarkScaledIgnoresStaleEntry(t *testing.T) {
	r := newTestRegistry()
	defer r.Close()

	stale, err := r.Upsert(key("scaler"), validSpec())
	require.NoError(t, err)

	changed := validSpec()
	changed.MinReplicas = 2
	fresh, err := r.Upsert(key("scaler"), changed)
	require.NoError(t, err)

	// The displaced entry must not receive cooldown state
	r.MarkScaled(key("scaler"), stale, scaling.DirectionUp, time.Now())
	assert.Nil(t, fresh.LastScaleAt)

	r.MarkScaled(key("scaler"), fresh, scaling.DirectionDown, time.Now())
	assert.NotNil(t, fresh.LastScaleAt)
	assert.Equal(t, scaling.DirectionDown, fresh.LastScaleDirection)
}

func TestRegistry_PolicyDefaultsToSLO(t *testing.T) {
	r := newTestRegistry()
	defer r.Close()

	spec := validSpec()
	spec.Policy = v1alpha1.PolicySpec{Type: "does-not-exist"}

	entry, err := r.Upsert(key("scaler"), spec)
	require.NoError(t, err)
	assert.NotNil(t, entry.Policy)
}

func TestRegistry_Close(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Upsert(key("a"), validSpec())
	require.NoError(t, err)
	_, err = r.Upsert(key("b"), validSpec())
	require.NoError(t, err)

	r.Close()
	assert.Equal(t, 0, r.Count())
}
