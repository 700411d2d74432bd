package scaling

import (
	"fmt"
	"time"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/config"
	"github.com/ngofficial99/GeneralScaler/logger"
)

// Direction of a scale operation
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Decision captures the outcome of the safety checks for one tick.
// Constructed fresh per tick; never stored.
type Decision struct {
	ShouldScale    bool
	TargetReplicas int32
	Direction      Direction
	Reason         string
}

// Inputs collects everything the safety layer needs for a decision.
// LastScaleAt is nil when the resource has never been scaled (or the
// controller restarted; cooldown state is not persisted).
type Inputs struct {
	Current       int32
	PolicyDesired int32
	Min           int32
	Max           int32
	Behavior      v1alpha1.BehaviorSpec
	LastScaleAt   *time.Time
	Now           time.Time
}

// behaviorLimits resolves the per-direction cooldown and rate limit,
// falling back to the operator defaults for omitted fields.
func behaviorLimits(b v1alpha1.BehaviorSpec, dir Direction, cfg *config.Config) (cooldown time.Duration, maxChange int32) {
	if dir == DirectionUp {
		cooldown = cfg.DefaultScaleUpCooldown
		maxChange = cfg.DefaultMaxIncrement
		if b.ScaleUp != nil {
			if b.ScaleUp.CooldownSeconds != nil {
				cooldown = time.Duration(*b.ScaleUp.CooldownSeconds) * time.Second
			}
			if b.ScaleUp.MaxIncrement != nil {
				maxChange = *b.ScaleUp.MaxIncrement
			}
		}
		return cooldown, maxChange
	}

	cooldown = cfg.DefaultScaleDownCooldown
	maxChange = cfg.DefaultMaxDecrement
	if b.ScaleDown != nil {
		if b.ScaleDown.CooldownSeconds != nil {
			cooldown = time.Duration(*b.ScaleDown.CooldownSeconds) * time.Second
		}
		if b.ScaleDown.MaxDecrement != nil {
			maxChange = *b.ScaleDown.MaxDecrement
		}
	}
	return cooldown, maxChange
}

// Decide applies the safety rules in order: no-op short-circuit, cooldown,
// rate limit, final clamp. Pure with respect to its inputs; performs no I/O.
func Decide(in Inputs, cfg *config.Config) Decision {
	// No scaling needed
	if in.PolicyDesired == in.Current {
		return Decision{
			ShouldScale:    false,
			TargetReplicas: in.Current,
			Reason:         "already at desired replica count",
		}
	}

	dir := DirectionDown
	if in.PolicyDesired > in.Current {
		dir = DirectionUp
	}

	cooldown, maxChange := behaviorLimits(in.Behavior, dir, cfg)

	// A scale in either direction arms both cooldowns against their
	// respective next transitions, so only the timestamp matters here.
	if in.LastScaleAt != nil {
		elapsed := in.Now.Sub(*in.LastScaleAt)
		if elapsed < cooldown {
			logger.Debug("In %s cooldown: %s elapsed of %s", dir, elapsed.Round(time.Second), cooldown)
			return Decision{
				ShouldScale:    false,
				TargetReplicas: in.Current,
				Direction:      dir,
				Reason:         fmt.Sprintf("in %s cooldown period", dir),
			}
		}
	}

	// Rate limit the change
	change := in.PolicyDesired - in.Current
	if change < 0 {
		change = -change
	}
	if change > maxChange {
		logger.Debug("Rate limiting: desired change of %d exceeds max %d", change, maxChange)
		change = maxChange
	}

	target := in.Current + change
	if dir == DirectionDown {
		target = in.Current - change
	}

	// Final bounds check
	if target < in.Min {
		target = in.Min
	}
	if target > in.Max {
		target = in.Max
	}

	return Decision{
		ShouldScale:    true,
		TargetReplicas: target,
		Direction:      dir,
		Reason:         fmt.Sprintf("scaling %s from %d to %d", dir, in.Current, target),
	}
}
