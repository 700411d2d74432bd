package scaling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/config"
)

func int32Ptr(v int32) *int32 { return &v }

func behavior(upCooldown, maxInc, downCooldown, maxDec int32) v1alpha1.BehaviorSpec {
	return v1alpha1.BehaviorSpec{
		ScaleUp: &v1alpha1.ScaleUpBehavior{
			CooldownSeconds: int32Ptr(upCooldown),
			MaxIncrement:    int32Ptr(maxInc),
		},
		ScaleDown: &v1alpha1.ScaleDownBehavior{
			CooldownSeconds: int32Ptr(downCooldown),
			MaxDecrement:    int32Ptr(maxDec),
		},
	}
}

func TestDecide_NoOpWhenAtDesired(t *testing.T) {
	cfg := config.GetDefaults()

	decision := Decide(Inputs{
		Current:       5,
		PolicyDesired: 5,
		Min:           1,
		Max:           20,
		Now:           time.Now(),
	}, cfg)

	assert.False(t, decision.ShouldScale)
	assert.Equal(t, int32(5), decision.TargetReplicas)
	assert.Equal(t, "already at desired replica count", decision.Reason)
}

func TestDecide_RateLimitsScaleUp(t *testing.T) {
	cfg := config.GetDefaults()

	// Policy wants 12, default maxIncrement is 5
	decision := Decide(Inputs{
		Current:       5,
		PolicyDesired: 12,
		Min:           1,
		Max:           20,
		Behavior:      behavior(0, 5, 0, 2),
		Now:           time.Now(),
	}, cfg)

	assert.True(t, decision.ShouldScale)
	assert.Equal(t, DirectionUp, decision.Direction)
	assert.Equal(t, int32(10), decision.TargetReplicas)
}

func TestDecide_RateLimitsScaleDown(t *testing.T) {
	cfg := config.GetDefaults()

	// Policy wants the minimum of 2, maxDecrement 2 only allows 5 -> 3
	decision := Decide(Inputs{
		Current:       5,
		PolicyDesired: 2,
		Min:           2,
		Max:           20,
		Behavior:      behavior(0, 5, 0, 2),
		Now:           time.Now(),
	}, cfg)

	assert.True(t, decision.ShouldScale)
	assert.Equal(t, DirectionDown, decision.Direction)
	assert.Equal(t, int32(3), decision.TargetReplicas)
}

func TestDecide_CooldownBlocksScaleUp(t *testing.T) {
	cfg := config.GetDefaults()
	lastScale := time.Now().Add(-10 * time.Second)

	decision := Decide(Inputs{
		Current:       10,
		PolicyDesired: 15,
		Min:           1,
		Max:           20,
		Behavior:      behavior(60, 5, 0, 2),
		LastScaleAt:   &lastScale,
		Now:           time.Now(),
	}, cfg)

	assert.False(t, decision.ShouldScale)
	assert.Equal(t, int32(10), decision.TargetReplicas)
	assert.Equal(t, "in up cooldown period", decision.Reason)
}

func TestDecide_CooldownArmedByEitherDirection(t *testing.T) {
	cfg := config.GetDefaults()
	// The last scale was upward, but the shared timestamp still blocks the
	// downward transition within its cooldown window.
	lastScale := time.Now().Add(-30 * time.Second)

	decision := Decide(Inputs{
		Current:       10,
		PolicyDesired: 8,
		Min:           1,
		Max:           20,
		Behavior:      behavior(60, 5, 300, 2),
		LastScaleAt:   &lastScale,
		Now:           time.Now(),
	}, cfg)

	assert.False(t, decision.ShouldScale)
	assert.Equal(t, "in down cooldown period", decision.Reason)
}

func TestDecide_CooldownExpired(t *testing.T) {
	cfg := config.GetDefaults()
	lastScale := time.Now().Add(-120 * time.Second)

	decision := Decide(Inputs{
		Current:       10,
		PolicyDesired: 12,
		Min:           1,
		Max:           20,
		Behavior:      behavior(60, 5, 300, 2),
		LastScaleAt:   &lastScale,
		Now:           time.Now(),
	}, cfg)

	assert.True(t, decision.ShouldScale)
	assert.Equal(t, int32(12), decision.TargetReplicas)
}

func TestDecide_NoCooldownWhenNeverScaled(t *testing.T) {
	cfg := config.GetDefaults()

	decision := Decide(Inputs{
		Current:       5,
		PolicyDesired: 7,
		Min:           1,
		Max:           20,
		Behavior:      behavior(3600, 5, 3600, 2),
		Now:           time.Now(),
	}, cfg)

	assert.True(t, decision.ShouldScale)
	assert.Equal(t, int32(7), decision.TargetReplicas)
}

func TestDecide_ZeroCooldownNeverBlocks(t *testing.T) {
	cfg := config.GetDefaults()
	lastScale := time.Now()

	decision := Decide(Inputs{
		Current:       5,
		PolicyDesired: 6,
		Min:           1,
		Max:           20,
		Behavior:      behavior(0, 5, 0, 2),
		LastScaleAt:   &lastScale,
		Now:           time.Now(),
	}, cfg)

	assert.True(t, decision.ShouldScale)
}

func TestDecide_TargetStaysWithinBounds(t *testing.T) {
	cfg := config.GetDefaults()

	for _, tc := range []struct {
		name     string
		current  int32
		desired  int32
		min      int32
		max      int32
		expected int32
	}{
		{"clamped to max", 18, 30, 1, 20, 20},
		{"clamped to min", 3, 1, 2, 20, 2},
		{"within bounds", 5, 8, 1, 20, 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			decision := Decide(Inputs{
				Current:       tc.current,
				PolicyDesired: tc.desired,
				Min:           tc.min,
				Max:           tc.max,
				Behavior:      behavior(0, 100, 0, 100),
				Now:           time.Now(),
			}, cfg)

			assert.True(t, decision.ShouldScale)
			assert.GreaterOrEqual(t, decision.TargetReplicas, tc.min)
			assert.LessOrEqual(t, decision.TargetReplicas, tc.max)
			assert.Equal(t, tc.expected, decision.TargetReplicas)
		})
	}
}

func TestDecide_ChangeNeverExceedsRateLimit(t *testing.T) {
	cfg := config.GetDefaults()

	for desired := int32(0); desired <= 40; desired++ {
		decision := Decide(Inputs{
			Current:       10,
			PolicyDesired: desired,
			Min:           0,
			Max:           40,
			Behavior:      behavior(0, 5, 0, 2),
			Now:           time.Now(),
		}, cfg)

		if !decision.ShouldScale {
			continue
		}
		change := decision.TargetReplicas - 10
		if change < 0 {
			change = -change
		}
		if decision.Direction == DirectionUp {
			assert.LessOrEqual(t, change, int32(5))
		} else {
			assert.LessOrEqual(t, change, int32(2))
		}
	}
}

func TestDecide_Deterministic(t *testing.T) {
	cfg := config.GetDefaults()
	lastScale := time.Now().Add(-45 * time.Second)
	now := time.Now()

	in := Inputs{
		Current:       5,
		PolicyDesired: 9,
		Min:           1,
		Max:           20,
		Behavior:      behavior(30, 5, 300, 2),
		LastScaleAt:   &lastScale,
		Now:           now,
	}

	first := Decide(in, cfg)
	second := Decide(in, cfg)

	assert.Equal(t, first, second)
}

func TestDecide_DefaultsFromConfig(t *testing.T) {
	cfg := config.GetDefaults()

	// Empty behavior block falls back to default maxIncrement of 5
	decision := Decide(Inputs{
		Current:       5,
		PolicyDesired: 20,
		Min:           1,
		Max:           20,
		Now:           time.Now(),
	}, cfg)

	assert.True(t, decision.ShouldScale)
	assert.Equal(t, int32(10), decision.TargetReplicas)
}
