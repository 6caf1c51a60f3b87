package prefabs

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
	"github.com/milk9111/shapetransition/easing"
	"github.com/milk9111/shapetransition/ecs/component"
	"gopkg.in/yaml.v3"
)

// TransitionSpecFile is the default settings file.
const TransitionSpecFile = "transition.yaml"

type TransitionSpec struct {
	Name       string       `yaml:"name"`
	Window     WindowSpec   `yaml:"window"`
	ClearColor *YAMLColor   `yaml:"clear_color"`
	Shader     string       `yaml:"shader"`
	Script     string       `yaml:"script"`
	HotReload  bool         `yaml:"hot_reload"`
	Presets    []PresetSpec `yaml:"presets"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// PresetSpec is a named transition request, optionally bound to a key.
type PresetSpec struct {
	Name     string      `yaml:"name"`
	Key      string      `yaml:"key,omitempty"`
	Angle    float32     `yaml:"angle"`
	Color    YAMLColor   `yaml:"color"`
	From     *YAMLColor  `yaml:"from,omitempty"`
	Duration float32     `yaml:"duration"`
	Easing   easing.Kind `yaml:"easing"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadTransitionSpec loads and validates the settings file, filling in
// defaults for anything left out.
func LoadTransitionSpec(filename string) (*TransitionSpec, error) {
	if filename == "" {
		filename = TransitionSpecFile
	}
	spec, err := LoadSpec[TransitionSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	for i, p := range spec.Presets {
		if _, err := p.Request(); err != nil {
			return nil, fmt.Errorf("prefabs: %s preset %d (%s): %w", filename, i, p.Name, err)
		}
	}
	return &spec, nil
}

func (s *TransitionSpec) applyDefaults() {
	if s.Window.Width <= 0 {
		s.Window.Width = 1280
	}
	if s.Window.Height <= 0 {
		s.Window.Height = 720
	}
	if s.Window.Title == "" {
		s.Window.Title = "shape transition"
	}
	if s.Shader == "" {
		s.Shader = "shaders/transition.kage"
	}
	if s.ClearColor == nil {
		s.ClearColor = &YAMLColor{Color: component.SRGBA(0, 0, 0, 1)}
	}
}

// Preset returns the preset with the given name.
func (s *TransitionSpec) Preset(name string) (PresetSpec, bool) {
	if s == nil {
		return PresetSpec{}, false
	}
	for _, p := range s.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return PresetSpec{}, false
}

// Request turns the preset into a transition request. A preset with a From
// colour resets both colours; one without continues from the current target.
func (p PresetSpec) Request() (component.TransitionRequest, error) {
	var req component.TransitionRequest
	if p.From != nil {
		req = component.ResetRequest(p.Angle, p.From.Color, p.Color.Color, p.Duration, p.Easing)
	} else {
		req = component.ContinueRequest(p.Angle, p.Color.Color, p.Duration, p.Easing)
	}
	if err := req.Validate(); err != nil {
		return component.TransitionRequest{}, err
	}
	return req, nil
}

// PresetFromState captures the running (or last) transition as a preset that
// would replay it from its baseline.
func PresetFromState(name string, state component.TransitionState, uniform component.TransitionUniform) PresetSpec {
	from := YAMLColor{Color: fromLinear(uniform.Color1)}
	return PresetSpec{
		Name:     name,
		Angle:    uniform.MovementAngle,
		Color:    YAMLColor{Color: fromLinear(uniform.Color2)},
		From:     &from,
		Duration: state.Duration,
		Easing:   state.Easing,
	}
}

// MarshalPreset renders p as a YAML list item ready to paste under presets:.
func MarshalPreset(p PresetSpec) ([]byte, error) {
	data, err := yaml.Marshal([]PresetSpec{p})
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal preset %s: %w", p.Name, err)
	}
	return data, nil
}

// ParseColor accepts any CSS colour: names, #rgb/#rrggbb(aa), rgb(), hsl().
func ParseColor(s string) (component.Color, error) {
	c, err := csscolorparser.Parse(strings.TrimSpace(s))
	if err != nil {
		return component.Color{}, fmt.Errorf("prefabs: parse color %q: %w", s, err)
	}
	return component.SRGBA(c.R, c.G, c.B, c.A), nil
}

func fromLinear(c component.LinearRGBA) component.Color {
	srgb := colorful.LinearRgb(float64(c[0]), float64(c[1]), float64(c[2])).Clamped()
	return component.SRGBA(srgb.R, srgb.G, srgb.B, float64(c[3]))
}

// YAMLColor is a display-space colour written as a CSS string.
type YAMLColor struct {
	component.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	return hexString(c.Color), nil
}

func hexString(c component.Color) string {
	cc := csscolorparser.Color{R: c.R, G: c.G, B: c.B, A: c.A}
	return cc.HexString()
}
