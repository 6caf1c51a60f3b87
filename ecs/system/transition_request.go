package system

import (
	"fmt"
	"log"

	"github.com/milk9111/shapetransition/ecs"
	"github.com/milk9111/shapetransition/ecs/component"
)

// TransitionRequestSystem drains the transition requests queued this tick.
// Requests are applied in arrival order, so the last one wins; a request
// always restarts the transition, it never queues behind the running one.
type TransitionRequestSystem struct{}

func NewTransitionRequestSystem() *TransitionRequestSystem { return &TransitionRequestSystem{} }

func (s *TransitionRequestSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	events := w.Events().Take(ecs.EventTransitionRequest)
	if len(events) == 0 {
		return
	}

	state, uniform, ok := transitionSingleton(w)
	if !ok {
		log.Printf("transition: dropped %d request(s), no transition entity", len(events))
		return
	}

	now := w.Time().Elapsed()
	for _, evt := range events {
		req, ok := requestFromEvent(evt)
		if !ok {
			log.Printf("transition: ignoring %T on request channel", evt.Data)
			continue
		}
		if err := ApplyTransitionRequest(state, uniform, req, now); err != nil {
			log.Printf("transition: %v", err)
		}
	}
}

// ApplyTransitionRequest starts req at world time now. Invalid requests leave
// both state and uniform untouched.
func ApplyTransitionRequest(state *component.TransitionState, uniform *component.TransitionUniform, req component.TransitionRequest, now float64) error {
	if state == nil || uniform == nil {
		return fmt.Errorf("transition: nil state or uniform")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	switch req.Mode {
	case component.RequestContinue:
		uniform.Color1 = uniform.Color2
		uniform.Color2 = req.Color.Linear()
	case component.RequestReset:
		uniform.Color1 = req.From.Linear()
		uniform.Color2 = req.Color.Linear()
	}
	uniform.Driver = 0
	uniform.MovementAngle = req.NormalizedAngle()

	state.Phase = component.TransitionRunning
	state.Easing = req.Easing
	state.Duration = req.Duration
	state.Progress = 0
	state.StartedAt = now
	return nil
}

func requestFromEvent(evt ecs.Event) (component.TransitionRequest, bool) {
	switch v := evt.Data.(type) {
	case component.TransitionRequest:
		return v, true
	case *component.TransitionRequest:
		if v != nil {
			return *v, true
		}
	}
	return component.TransitionRequest{}, false
}

func transitionSingleton(w *ecs.World) (*component.TransitionState, *component.TransitionUniform, bool) {
	ent, ok := ecs.First(w, component.TransitionStateComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	state, ok := ecs.Get(w, ent, component.TransitionStateComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	uniform, ok := ecs.Get(w, ent, component.TransitionUniformComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	return state, uniform, true
}
