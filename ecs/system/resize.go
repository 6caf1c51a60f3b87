package system

import (
	"github.com/milk9111/shapetransition/ecs"
	"github.com/milk9111/shapetransition/ecs/component"
)

// ResizeSystem copies the most recent window size of the tick into the
// transition uniform.
type ResizeSystem struct{}

func NewResizeSystem() *ResizeSystem { return &ResizeSystem{} }

func (s *ResizeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := w.Events().Take(ecs.EventWindowResized)
	if len(events) == 0 {
		return
	}

	var (
		last  component.WindowResized
		found bool
	)
	for _, evt := range events {
		switch v := evt.Data.(type) {
		case component.WindowResized:
			last, found = v, true
		case *component.WindowResized:
			if v != nil {
				last, found = *v, true
			}
		}
	}
	if !found {
		return
	}

	ecs.ForEach(w, component.TransitionUniformComponent.Kind(), func(_ ecs.Entity, u *component.TransitionUniform) {
		u.Resolution = [2]float32{float32(last.Width), float32(last.Height)}
	})
}
