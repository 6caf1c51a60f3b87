package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/shapetransition/easing"
	"github.com/milk9111/shapetransition/ecs"
	"github.com/milk9111/shapetransition/ecs/component"
	"github.com/milk9111/shapetransition/prefabs"
)

const scriptDispatch = `
update(__engine, __state)
`

// TransitionScriptSystem runs a tengo script once per tick. The script
// defines `update(engine, state)` and drives transitions through
// engine.submit; `state` is a map that survives between ticks and reloads.
//
// It must be scheduled before TransitionRequestSystem so requests submitted
// by the script land in the same tick.
type TransitionScriptSystem struct {
	name      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	failed    bool
}

// NewTransitionScriptSystem compiles src. name is only used in log lines.
func NewTransitionScriptSystem(name string, src []byte) (*TransitionScriptSystem, error) {
	s := &TransitionScriptSystem{
		name:      name,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if err := s.Reload(src); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadTransitionScriptSystem loads a script from the prefab scripts folder.
func LoadTransitionScriptSystem(path string) (*TransitionScriptSystem, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return NewTransitionScriptSystem(path, src)
}

// Reload swaps in new source. On error the previous script keeps running.
func (s *TransitionScriptSystem) Reload(src []byte) error {
	if s == nil {
		return fmt.Errorf("script: nil system")
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", s.name, err)
	}
	s.compiled = compiled
	s.failed = false
	return nil
}

func (s *TransitionScriptSystem) Update(w *ecs.World) {
	if s == nil || s.compiled == nil || w == nil || s.failed {
		return
	}
	if err := s.compiled.Set("__engine", buildTransitionScriptEngine(w)); err != nil {
		log.Printf("script: %s: %v", s.name, err)
		return
	}
	if err := s.compiled.Set("__state", s.stateData); err != nil {
		log.Printf("script: %s: %v", s.name, err)
		return
	}
	if err := s.compiled.Run(); err != nil {
		// Stop until the next reload instead of logging every frame.
		log.Printf("script: %s stopped: %v", s.name, err)
		s.failed = true
	}
}

func buildTransitionScriptEngine(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["elapsed"] = &tengo.UserFunction{Name: "elapsed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: w.Time().Elapsed()}, nil
	}}

	values["delta"] = &tengo.UserFunction{Name: "delta", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: w.Time().Delta()}, nil
	}}

	values["phase"] = &tengo.UserFunction{Name: "phase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		state, _, ok := transitionSingleton(w)
		if !ok {
			return &tengo.String{Value: component.TransitionIdle.String()}, nil
		}
		return &tengo.String{Value: state.Phase.String()}, nil
	}}

	values["progress"] = &tengo.UserFunction{Name: "progress", Value: func(args ...tengo.Object) (tengo.Object, error) {
		state, _, ok := transitionSingleton(w)
		if !ok {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: float64(state.Progress)}, nil
	}}

	values["driver"] = &tengo.UserFunction{Name: "driver", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, uniform, ok := transitionSingleton(w)
		if !ok {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: float64(uniform.Driver)}, nil
	}}

	values["easings"] = &tengo.UserFunction{Name: "easings", Value: func(args ...tengo.Object) (tengo.Object, error) {
		kinds := easing.Kinds()
		out := make([]tengo.Object, 0, len(kinds))
		for _, k := range kinds {
			out = append(out, &tengo.String{Value: k.String()})
		}
		return &tengo.ImmutableArray{Value: out}, nil
	}}

	// submit({angle, color, from?, duration, easing}) queues a request and
	// returns true, or an error value the script can test with is_error.
	values["submit"] = &tengo.UserFunction{Name: "submit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return scriptError("submit: missing request"), nil
		}
		fields, ok := objectToAny(args[0]).(map[string]any)
		if !ok {
			return scriptError("submit: request must be a map"), nil
		}
		req, err := requestFromScript(fields)
		if err != nil {
			return scriptError(err.Error()), nil
		}
		if err := req.Validate(); err != nil {
			return scriptError(err.Error()), nil
		}
		w.Events().Push(ecs.Event{Type: ecs.EventTransitionRequest, Data: req})
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func requestFromScript(fields map[string]any) (component.TransitionRequest, error) {
	angle, _ := asFloat(fields["angle"])
	duration, ok := asFloat(fields["duration"])
	if !ok {
		return component.TransitionRequest{}, fmt.Errorf("submit: duration must be a number")
	}

	kind := easing.Linear
	if raw, ok := fields["easing"]; ok && raw != nil {
		name, _ := raw.(string)
		parsed, err := easing.Parse(name)
		if err != nil {
			return component.TransitionRequest{}, fmt.Errorf("submit: %w", err)
		}
		kind = parsed
	}

	to, err := colorFromScript(fields["color"])
	if err != nil {
		return component.TransitionRequest{}, fmt.Errorf("submit: color: %w", err)
	}
	if raw, ok := fields["from"]; ok && raw != nil {
		from, err := colorFromScript(raw)
		if err != nil {
			return component.TransitionRequest{}, fmt.Errorf("submit: from: %w", err)
		}
		return component.ResetRequest(float32(angle), from, to, float32(duration), kind), nil
	}
	return component.ContinueRequest(float32(angle), to, float32(duration), kind), nil
}

// colorFromScript accepts a CSS string or an [r, g, b] / [r, g, b, a] array
// of display-space components in [0,1].
func colorFromScript(v any) (component.Color, error) {
	switch c := v.(type) {
	case string:
		return prefabs.ParseColor(c)
	case []any:
		if len(c) != 3 && len(c) != 4 {
			return component.Color{}, fmt.Errorf("want 3 or 4 components, got %d", len(c))
		}
		var rgba [4]float64
		rgba[3] = 1
		for i, item := range c {
			f, ok := asFloat(item)
			if !ok {
				return component.Color{}, fmt.Errorf("component %d is not a number", i)
			}
			rgba[i] = f
		}
		return component.SRGBA(rgba[0], rgba[1], rgba[2], rgba[3]), nil
	case nil:
		return component.Color{}, fmt.Errorf("missing")
	default:
		return component.Color{}, fmt.Errorf("unsupported value %v", v)
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func scriptError(msg string) tengo.Object {
	return &tengo.Error{Value: &tengo.String{Value: msg}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return objectAsString(v)
	}
}
