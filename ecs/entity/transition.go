package entity

import (
	"fmt"

	"github.com/milk9111/shapetransition/ecs"
	"github.com/milk9111/shapetransition/ecs/component"
)

// NewTransition spawns the transition singleton: an idle state and a zeroed
// uniform on one entity.
func NewTransition(world *ecs.World) (ecs.Entity, error) {
	entity := ecs.CreateEntity(world)

	state := component.DefaultTransitionState()
	if err := ecs.Add(world, entity, component.TransitionStateComponent.Kind(), &state); err != nil {
		return 0, fmt.Errorf("transition: failed to add state component: %w", err)
	}

	if err := ecs.Add(world, entity, component.TransitionUniformComponent.Kind(), &component.TransitionUniform{}); err != nil {
		return 0, fmt.Errorf("transition: failed to add uniform component: %w", err)
	}

	return entity, nil
}
