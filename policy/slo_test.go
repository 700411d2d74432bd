package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
)

func float64Ptr(v float64) *float64 { return &v }

func TestSLOPolicy_Defaults(t *testing.T) {
	p := NewSLOPolicy(nil)

	assert.NoError(t, p.Validate())
	assert.Equal(t, DefaultSLOViolationMultiplier, p.sloViolationMultiplier)
}

func TestSLOPolicy_Validate(t *testing.T) {
	for _, tc := range []struct {
		name    string
		cfg     *v1alpha1.SLOPolicyConfig
		wantErr bool
	}{
		{"nil config", nil, false},
		{"valid", &v1alpha1.SLOPolicyConfig{TargetLatencyMs: float64Ptr(200)}, false},
		{"zero latency", &v1alpha1.SLOPolicyConfig{TargetLatencyMs: float64Ptr(0)}, true},
		{"negative error rate", &v1alpha1.SLOPolicyConfig{TargetErrorRate: float64Ptr(-0.1)}, true},
		{"error rate above one", &v1alpha1.SLOPolicyConfig{TargetErrorRate: float64Ptr(1.5)}, true},
		{"zero multiplier", &v1alpha1.SLOPolicyConfig{SLOViolationMultiplier: float64Ptr(0)}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := NewSLOPolicy(tc.cfg).Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSLOPolicy_ViolationAmplifiesScaleUp(t *testing.T) {
	p := NewSLOPolicy(nil)

	// ratio 1.5, multiplier 1.5: ceil(5 * 1.5 * 1.5) = 12
	desired := p.Compute(5, 150, 100, 1, 20)
	assert.Equal(t, int32(12), desired)
}

func TestSLOPolicy_ProportionalScaleDown(t *testing.T) {
	p := NewSLOPolicy(nil)

	// ratio 0.5, no multiplier below target: ceil(10 * 0.5) = 5
	desired := p.Compute(10, 50, 100, 1, 20)
	assert.Equal(t, int32(5), desired)
}

func TestSLOPolicy_ClampsToMin(t *testing.T) {
	p := NewSLOPolicy(nil)

	// ceil(5 * 0.01) = 1, clamped up to min 2
	desired := p.Compute(5, 1, 100, 2, 20)
	assert.Equal(t, int32(2), desired)
}

func TestSLOPolicy_ClampsToMax(t *testing.T) {
	p := NewSLOPolicy(nil)

	desired := p.Compute(10, 1000, 100, 1, 20)
	assert.Equal(t, int32(20), desired)
}

func TestSLOPolicy_HoldsOnNonPositiveInputs(t *testing.T) {
	p := NewSLOPolicy(nil)

	assert.Equal(t, int32(5), p.Compute(5, 0, 100, 1, 20))
	assert.Equal(t, int32(5), p.Compute(5, -3, 100, 1, 20))
	assert.Equal(t, int32(5), p.Compute(5, 50, 0, 1, 20))
	assert.Equal(t, int32(5), p.Compute(5, 50, -1, 1, 20))
}

func TestSLOPolicy_CustomMultiplier(t *testing.T) {
	p := NewSLOPolicy(&v1alpha1.SLOPolicyConfig{SLOViolationMultiplier: float64Ptr(2.0)})

	// ceil(4 * 1.25 * 2.0) = 10
	desired := p.Compute(4, 125, 100, 1, 20)
	assert.Equal(t, int32(10), desired)
}

func TestSLOPolicy_AlwaysWithinBounds(t *testing.T) {
	p := NewSLOPolicy(nil)

	for metric := 0.0; metric <= 500; metric += 25 {
		desired := p.Compute(5, metric, 100, 2, 15)
		assert.GreaterOrEqual(t, desired, int32(2))
		assert.LessOrEqual(t, desired, int32(15))
	}
}

func TestNew_FallsBackToSLO(t *testing.T) {
	for _, kind := range []string{"", "unknown", "simple"} {
		p := New(v1alpha1.PolicySpec{Type: kind})
		_, ok := p.(*SLOPolicy)
		assert.True(t, ok, "policy type %q should fall back to SLO", kind)
		assert.NoError(t, p.Validate())
	}
}

func TestNew_SelectsByType(t *testing.T) {
	_, ok := New(v1alpha1.PolicySpec{Type: "slo"}).(*SLOPolicy)
	assert.True(t, ok)

	_, ok = New(v1alpha1.PolicySpec{Type: "costaware"}).(*CostAwarePolicy)
	assert.True(t, ok)
}
