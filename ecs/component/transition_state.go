package component

import "github.com/milk9111/shapetransition/easing"

// TransitionPhase is the lifecycle of the single active transition.
type TransitionPhase int

const (
	// TransitionIdle: nothing running, the screen shows Color1 unchanged.
	TransitionIdle TransitionPhase = iota
	// TransitionRunning: progress is below 1 and the driver follows the curve.
	TransitionRunning
	// TransitionCompleting: progress reached 1; waiting out the completion
	// epsilon before the target is committed.
	TransitionCompleting
)

func (p TransitionPhase) String() string {
	switch p {
	case TransitionIdle:
		return "idle"
	case TransitionRunning:
		return "running"
	case TransitionCompleting:
		return "completing"
	default:
		return "unknown"
	}
}

// TransitionState holds timing and easing for the active transition.
type TransitionState struct {
	Phase  TransitionPhase
	Easing easing.Kind
	// Duration is in seconds.
	Duration float32
	// Progress is the accumulated fraction of Duration. Only [0,1] is
	// meaningful but it is not clamped.
	Progress float32
	// StartedAt is the world time in seconds the transition started. Only
	// meaningful when Phase != TransitionIdle.
	StartedAt float64
}

// Active reports whether a transition is in flight.
func (s *TransitionState) Active() bool {
	return s != nil && s.Phase != TransitionIdle
}

// DefaultTransitionState is the idle state the plugin spawns with.
func DefaultTransitionState() TransitionState {
	return TransitionState{Phase: TransitionIdle, Easing: easing.Linear}
}

var TransitionStateComponent = NewComponent[TransitionState]()
