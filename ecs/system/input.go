package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/shapetransition/ecs"
	"github.com/milk9111/shapetransition/ecs/component"
)

// PresetInputSystem turns key presses into transition requests. Schedule it
// ahead of TransitionRequestSystem.
type PresetInputSystem struct {
	keys        []ebiten.Key
	bindings    map[ebiten.Key]component.TransitionRequest
	justPressed func(ebiten.Key) bool
}

func NewPresetInputSystem(bindings map[ebiten.Key]component.TransitionRequest) *PresetInputSystem {
	s := &PresetInputSystem{justPressed: inpututil.IsKeyJustPressed}
	s.SetBindings(bindings)
	return s
}

// SetBindings replaces every binding. Keys are polled in ascending order so
// two presses in one tick resolve the same way every time.
func (s *PresetInputSystem) SetBindings(bindings map[ebiten.Key]component.TransitionRequest) {
	s.bindings = make(map[ebiten.Key]component.TransitionRequest, len(bindings))
	s.keys = s.keys[:0]
	for k, req := range bindings {
		s.bindings[k] = req
		s.keys = append(s.keys, k)
	}
	sort.Slice(s.keys, func(i, j int) bool { return s.keys[i] < s.keys[j] })
}

func (s *PresetInputSystem) Update(w *ecs.World) {
	if w == nil || s.justPressed == nil {
		return
	}
	for _, k := range s.keys {
		if s.justPressed(k) {
			w.Events().Push(ecs.Event{Type: ecs.EventTransitionRequest, Data: s.bindings[k]})
		}
	}
}
