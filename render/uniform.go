package render

import (
	"math"

	"github.com/milk9111/shapetransition/common"
	"github.com/milk9111/shapetransition/ecs/component"
)

const (
	TransitionUniformName = "TransitionUniform"
	GlobalsUniformName    = "GlobalsUniform"
)

// UniformBinding is a read-only snapshot of one uniform block, addressed by
// the field names the shader declares.
type UniformBinding struct {
	name   string
	fields map[string]any
}

func (UniformBinding) BindingType() BindingType { return BindingUniformBuffer }

func (b UniformBinding) Name() string { return b.name }

// Fields returns the snapshot. Callers must not modify it.
func (b UniformBinding) Fields() map[string]any { return b.fields }

// UniformBuffer holds the current frame's value of a uniform block. It has no
// binding until the first Write.
type UniformBuffer struct {
	name    string
	fields  map[string]any
	written bool
}

func NewUniformBuffer(name string) *UniformBuffer {
	return &UniformBuffer{name: name}
}

// Write replaces the buffer contents with a copy of fields.
func (b *UniformBuffer) Write(fields map[string]any) {
	if b == nil {
		return
	}
	snapshot := make(map[string]any, len(fields))
	for k, v := range fields {
		snapshot[k] = v
	}
	b.fields = snapshot
	b.written = true
}

// Clear drops the binding until the next Write.
func (b *UniformBuffer) Clear() {
	if b == nil {
		return
	}
	b.fields = nil
	b.written = false
}

func (b *UniformBuffer) Binding() (UniformBinding, bool) {
	if b == nil || !b.written {
		return UniformBinding{}, false
	}
	return UniformBinding{name: b.name, fields: b.fields}, true
}

// TransitionUniformFields lays u out for the transition shader. The driver is
// clamped to [0,1] and NaN becomes 0, so curves that overshoot still give
// the fragment stage a usable blend factor.
func TransitionUniformFields(u component.TransitionUniform) map[string]any {
	return map[string]any{
		"Color1":        [4]float32(u.Color1),
		"Color2":        [4]float32(u.Color2),
		"Resolution":    u.Resolution,
		"Driver":        common.Clamp01(u.Driver),
		"MovementAngle": u.MovementAngle,
	}
}

// globalsWrap keeps Time small enough to stay precise in a float32.
const globalsWrap = 3600.0

// Globals is the per-frame uniform shared by every pass.
type Globals struct {
	Time       float32
	DeltaTime  float32
	FrameCount uint32
}

// NewGlobals builds Globals from the world clock.
func NewGlobals(elapsed, delta float64, frames uint64) Globals {
	return Globals{
		Time:       float32(math.Mod(elapsed, globalsWrap)),
		DeltaTime:  float32(delta),
		FrameCount: uint32(frames),
	}
}

func (g Globals) Fields() map[string]any {
	return map[string]any{
		"Time":       g.Time,
		"DeltaTime":  g.DeltaTime,
		"FrameCount": float32(g.FrameCount),
	}
}
