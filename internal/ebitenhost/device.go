// Package ebitenhost implements the render host contracts on top of
// Ebitengine: Kage shaders stand in for pipelines and *ebiten.Image for
// textures.
package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shapetransition/render"
)

// Texture wraps an offscreen image.
type Texture struct {
	img *ebiten.Image
}

var _ render.TextureView = (*Texture)(nil)

func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{img: img}
}

func (t *Texture) Image() *ebiten.Image {
	if t == nil {
		return nil
	}
	return t.img
}

func (*Texture) BindingType() render.BindingType { return render.BindingTexture2D }

func (t *Texture) Size() (int, int) {
	if t == nil || t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

type bindGroupLayout struct {
	desc render.BindGroupLayoutDescriptor
}

func (l *bindGroupLayout) Descriptor() render.BindGroupLayoutDescriptor { return l.desc }

// Sampler carries the filtering the fragment shader should emulate.
type Sampler struct {
	desc render.SamplerDescriptor
}

func (*Sampler) BindingType() render.BindingType { return render.BindingSampler }

func (s *Sampler) Descriptor() render.SamplerDescriptor { return s.desc }

// Linear reports whether the shader should filter bilinearly.
func (s *Sampler) Linear() bool {
	return s.desc.MagFilter == render.FilterLinear || s.desc.MinFilter == render.FilterLinear
}

type bindGroup struct {
	label     string
	layout    render.BindGroupLayout
	resources []render.BindingResource
}

func (g *bindGroup) Label() string                       { return g.label }
func (g *bindGroup) Layout() render.BindGroupLayout      { return g.layout }
func (g *bindGroup) Resources() []render.BindingResource { return g.resources }

// Device hands out bind group objects. Ebitengine owns the real GPU
// resources, so the device only checks that groups match their layouts.
type Device struct{}

var _ render.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{}
}

func (d *Device) CreateBindGroupLayout(desc render.BindGroupLayoutDescriptor) (render.BindGroupLayout, error) {
	seen := make(map[uint32]bool, len(desc.Entries))
	for _, e := range desc.Entries {
		if seen[e.Binding] {
			return nil, fmt.Errorf("ebitenhost: layout %q: duplicate binding %d", desc.Label, e.Binding)
		}
		seen[e.Binding] = true
		if e.Type == render.BindingUniformBuffer && e.Uniform == "" {
			return nil, fmt.Errorf("ebitenhost: layout %q: uniform binding %d has no name", desc.Label, e.Binding)
		}
	}
	return &bindGroupLayout{desc: desc}, nil
}

func (d *Device) CreateSampler(desc render.SamplerDescriptor) (render.Sampler, error) {
	return &Sampler{desc: desc}, nil
}

func (d *Device) CreateBindGroup(label string, layout render.BindGroupLayout, resources ...render.BindingResource) (render.BindGroup, error) {
	if layout == nil {
		return nil, fmt.Errorf("ebitenhost: bind group %q: nil layout", label)
	}
	entries := layout.Descriptor().Entries
	if len(resources) != len(entries) {
		return nil, fmt.Errorf("ebitenhost: bind group %q: layout has %d entries, got %d resources", label, len(entries), len(resources))
	}
	for i, e := range entries {
		res := resources[i]
		if res == nil {
			return nil, fmt.Errorf("ebitenhost: bind group %q: binding %d is nil", label, e.Binding)
		}
		if res.BindingType() != e.Type {
			return nil, fmt.Errorf("ebitenhost: bind group %q: binding %d is %s, want %s", label, e.Binding, res.BindingType(), e.Type)
		}
		switch r := res.(type) {
		case *Texture:
			if r.Image() == nil {
				return nil, fmt.Errorf("ebitenhost: bind group %q: binding %d has no image", label, e.Binding)
			}
		case render.UniformBinding:
			if r.Name() != e.Uniform {
				return nil, fmt.Errorf("ebitenhost: bind group %q: binding %d is uniform %q, want %q", label, e.Binding, r.Name(), e.Uniform)
			}
		}
	}
	return &bindGroup{label: label, layout: layout, resources: append([]render.BindingResource(nil), resources...)}, nil
}
