package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shapetransition/render"
)

var ErrPassState = errors.New("ebitenhost: render pass")

// Frame records the passes of one Draw call.
type Frame struct {
	device *Device
	passes int
}

var _ render.RenderContext = (*Frame)(nil)

func NewFrame(device *Device) *Frame {
	if device == nil {
		device = NewDevice()
	}
	return &Frame{device: device}
}

func (f *Frame) Device() render.Device { return f.device }

// Passes reports how many passes were begun this frame.
func (f *Frame) Passes() int { return f.passes }

func (f *Frame) BeginRenderPass(desc render.RenderPassDescriptor) (render.RenderPass, error) {
	if desc.DepthStencil != nil {
		return nil, fmt.Errorf("%w %q: depth/stencil attachments are not supported", ErrPassState, desc.Label)
	}
	if len(desc.ColorAttachments) != 1 {
		return nil, fmt.Errorf("%w %q: want one colour attachment, got %d", ErrPassState, desc.Label, len(desc.ColorAttachments))
	}
	att := desc.ColorAttachments[0]
	target, ok := att.View.(*Texture)
	if !ok || target.Image() == nil {
		return nil, fmt.Errorf("%w %q: attachment is not an ebiten texture", ErrPassState, desc.Label)
	}
	if att.Load == render.LoadOpClear {
		target.img.Fill(toColor(att.ClearColor))
	}
	f.passes++
	return &renderPass{label: desc.Label, target: target}, nil
}

type renderPass struct {
	label    string
	target   *Texture
	pipeline *Pipeline
	groups   map[int]render.BindGroup
	err      error
	ended    bool
}

func (p *renderPass) SetPipeline(pl render.RenderPipeline) {
	pipeline, ok := pl.(*Pipeline)
	if !ok || pipeline.shader == nil {
		p.fail(fmt.Errorf("%w %q: pipeline was not built by this host", ErrPassState, p.label))
		return
	}
	p.pipeline = pipeline
}

func (p *renderPass) SetBindGroup(index int, group render.BindGroup) {
	if p.groups == nil {
		p.groups = map[int]render.BindGroup{}
	}
	p.groups[index] = group
}

// Draw issues a fullscreen triangle. vertices must be the three vertices of
// the fullscreen vertex stage.
func (p *renderPass) Draw(vertices, instances render.Range) {
	if p.ended {
		p.fail(fmt.Errorf("%w %q: draw after End", ErrPassState, p.label))
		return
	}
	if p.pipeline == nil {
		p.fail(fmt.Errorf("%w %q: draw without a pipeline", ErrPassState, p.label))
		return
	}
	if vertices.Len() != 3 {
		p.fail(fmt.Errorf("%w %q: fullscreen draw needs 3 vertices, got %d", ErrPassState, p.label, vertices.Len()))
		return
	}

	op, err := shaderOptions(p.groups)
	if err != nil {
		p.fail(fmt.Errorf("%w %q: %v", ErrPassState, p.label, err))
		return
	}
	dw, dh := p.target.Size()
	sw, sh := dw, dh
	if op.Images[0] != nil {
		b := op.Images[0].Bounds()
		sw, sh = b.Dx(), b.Dy()
	}
	verts := fullscreenTriangle(dw, dh, sw, sh)
	indices := []uint16{0, 1, 2}
	for i := instances.Start; i < instances.End; i++ {
		p.target.img.DrawTrianglesShader(verts, indices, p.pipeline.shader, op)
	}
}

func (p *renderPass) End() error {
	p.ended = true
	return p.err
}

func (p *renderPass) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// fullscreenTriangle is the vertex stage: vertex i sits at
// ((i<<1)&2, i&2) in viewport units, so the triangle covers the target.
func fullscreenTriangle(dw, dh, sw, sh int) []ebiten.Vertex {
	verts := make([]ebiten.Vertex, 3)
	for i := range verts {
		u := float32((i << 1) & 2)
		v := float32(i & 2)
		verts[i] = ebiten.Vertex{
			DstX:   u * float32(dw),
			DstY:   v * float32(dh),
			SrcX:   u * float32(sw),
			SrcY:   v * float32(sh),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	return verts
}

// shaderOptions flattens bind group 0 into Kage inputs: textures fill the
// image slots in order and uniform fields become uniform variables.
func shaderOptions(groups map[int]render.BindGroup) (*ebiten.DrawTrianglesShaderOptions, error) {
	group := groups[0]
	if group == nil {
		return nil, fmt.Errorf("bind group 0 is not set")
	}
	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: map[string]any{},
		Blend:    ebiten.BlendCopy,
	}
	slot := 0
	for _, res := range group.Resources() {
		switch r := res.(type) {
		case *Texture:
			if slot >= len(op.Images) {
				return nil, fmt.Errorf("more than %d textures", len(op.Images))
			}
			op.Images[slot] = r.Image()
			slot++
		case *Sampler:
			filtering := float32(0)
			if r.Linear() {
				filtering = 1
			}
			op.Uniforms["Filtering"] = filtering
		case render.UniformBinding:
			for k, v := range r.Fields() {
				op.Uniforms[k] = v
			}
		}
	}
	return op, nil
}

func toColor(c [4]float32) color.Color {
	return color.NRGBA64{
		R: unorm16(c[0]),
		G: unorm16(c[1]),
		B: unorm16(c[2]),
		A: unorm16(c[3]),
	}
}

func unorm16(v float32) uint16 {
	switch {
	case v != v || v <= 0:
		return 0
	case v >= 1:
		return 0xffff
	default:
		return uint16(v*0xffff + 0.5)
	}
}
