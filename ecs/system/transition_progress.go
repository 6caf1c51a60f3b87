package system

import (
	"github.com/milk9111/shapetransition/easing"
	"github.com/milk9111/shapetransition/ecs"
	"github.com/milk9111/shapetransition/ecs/component"
)

// CompletionEpsilon is how long, in seconds, a transition lingers past its
// duration before the target colour is committed.
const CompletionEpsilon = 0.01

// TransitionProgressSystem advances the running transition by the frame
// delta and re-evaluates the driver from the accumulated progress.
type TransitionProgressSystem struct{}

func NewTransitionProgressSystem() *TransitionProgressSystem { return &TransitionProgressSystem{} }

func (s *TransitionProgressSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	state, uniform, ok := transitionSingleton(w)
	if !ok {
		return
	}
	StepTransition(state, uniform, w.Time().Elapsed(), w.Time().Delta())
}

// StepTransition runs one tick of the transition state machine.
//
// Progress integrates delta/duration instead of being derived from the
// elapsed time. Completion is decided by elapsed time alone.
func StepTransition(state *component.TransitionState, uniform *component.TransitionUniform, now, delta float64) {
	if !state.Active() || uniform == nil {
		return
	}

	elapsed := now - state.StartedAt
	if elapsed > float64(state.Duration)+CompletionEpsilon {
		state.Phase = component.TransitionIdle
		state.Progress = 0
		state.StartedAt = 0
		uniform.Driver = 0
		uniform.Color1 = uniform.Color2
		return
	}

	if delta > 0 && state.Duration > 0 {
		state.Progress += float32(delta) / state.Duration
	}
	if v, ok := easing.Sample(state.Easing, state.Progress); ok {
		uniform.Driver = v
	}
	if state.Progress >= 1 {
		state.Phase = component.TransitionCompleting
	}
}
