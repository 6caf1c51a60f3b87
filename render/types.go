// Package render describes the GPU-side contract of the transition pass:
// the resources a host must provide, the pipeline the transition needs and
// the per-frame node that draws it. Hosts implement Device, PipelineCache,
// RenderContext and ViewTarget; see internal/ebitenhost for the Ebitengine
// backend.
package render

import (
	"errors"
	"fmt"
)

// ErrResourceNotReady marks a frame that was skipped because a GPU resource
// was not available yet. It is informational; the node never returns it.
var ErrResourceNotReady = errors.New("render: resource not ready")

// TextureFormat is the pixel format of a colour target.
type TextureFormat int

const (
	TextureFormatRGBA8Unorm TextureFormat = iota
	TextureFormatRGBA8UnormSrgb
	TextureFormatRGBA16Float
)

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBA8Unorm:
		return "rgba8unorm"
	case TextureFormatRGBA8UnormSrgb:
		return "rgba8unorm-srgb"
	case TextureFormatRGBA16Float:
		return "rgba16float"
	default:
		return fmt.Sprintf("TextureFormat(%d)", int(f))
	}
}

// ShaderStages is a bit set of pipeline stages.
type ShaderStages uint8

const (
	ShaderStageVertex ShaderStages = 1 << iota
	ShaderStageFragment
)

// BindingType is the kind of resource a bind group slot holds.
type BindingType int

const (
	BindingTexture2D BindingType = iota
	BindingSampler
	BindingUniformBuffer
)

func (t BindingType) String() string {
	switch t {
	case BindingTexture2D:
		return "texture_2d"
	case BindingSampler:
		return "sampler"
	case BindingUniformBuffer:
		return "uniform_buffer"
	default:
		return fmt.Sprintf("BindingType(%d)", int(t))
	}
}

type BindGroupLayoutEntry struct {
	Binding    uint32
	Visibility ShaderStages
	Type       BindingType
	// Filterable applies to textures and samplers.
	Filterable bool
	// Uniform names the block for uniform buffers.
	Uniform string
}

type BindGroupLayoutDescriptor struct {
	Label   string
	Entries []BindGroupLayoutEntry
}

// Sequential builds entries numbered 0..n-1 with the same visibility.
func Sequential(visibility ShaderStages, entries ...BindGroupLayoutEntry) []BindGroupLayoutEntry {
	out := make([]BindGroupLayoutEntry, len(entries))
	for i, e := range entries {
		e.Binding = uint32(i)
		e.Visibility = visibility
		out[i] = e
	}
	return out
}

func Texture2D(filterable bool) BindGroupLayoutEntry {
	return BindGroupLayoutEntry{Type: BindingTexture2D, Filterable: filterable}
}

func SamplerEntry(filtering bool) BindGroupLayoutEntry {
	return BindGroupLayoutEntry{Type: BindingSampler, Filterable: filtering}
}

func UniformBufferEntry(name string) BindGroupLayoutEntry {
	return BindGroupLayoutEntry{Type: BindingUniformBuffer, Uniform: name}
}

type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

type AddressMode int

const (
	AddressClampToEdge AddressMode = iota
	AddressRepeat
)

type SamplerDescriptor struct {
	Label       string
	MagFilter   FilterMode
	MinFilter   FilterMode
	AddressMode AddressMode
}

// ShaderRef names a shader module the host knows how to load.
type ShaderRef string

// FullscreenShader is the host's fullscreen-triangle vertex stage.
const FullscreenShader ShaderRef = "builtin:fullscreen"

type VertexState struct {
	Shader     ShaderRef
	EntryPoint string
}

// FullscreenVertexState draws one triangle that covers the viewport from
// three vertices and no vertex buffer.
func FullscreenVertexState() VertexState {
	return VertexState{Shader: FullscreenShader, EntryPoint: "fullscreen_vertex_shader"}
}

type ColorWrites uint8

const (
	ColorWriteRed ColorWrites = 1 << iota
	ColorWriteGreen
	ColorWriteBlue
	ColorWriteAlpha

	ColorWriteAll = ColorWriteRed | ColorWriteGreen | ColorWriteBlue | ColorWriteAlpha
)

type BlendState int

const (
	// BlendReplace writes the fragment output as-is.
	BlendReplace BlendState = iota
	BlendAlpha
)

type ColorTargetState struct {
	Format    TextureFormat
	Blend     BlendState
	WriteMask ColorWrites
}

type FragmentState struct {
	Shader     ShaderRef
	EntryPoint string
	Targets    []ColorTargetState
}

type RenderPipelineDescriptor struct {
	Label    string
	Layout   []BindGroupLayout
	Vertex   VertexState
	Fragment *FragmentState
	// DepthStencil is always false for post-process passes.
	DepthStencil bool
	SampleCount  int
}

// Key identifies pipelines that would compile to the same program. Hosts
// use it to share cache entries.
func (d RenderPipelineDescriptor) Key() string {
	key := fmt.Sprintf("%s|%s#%s", d.Label, d.Vertex.Shader, d.Vertex.EntryPoint)
	if d.Fragment != nil {
		key += fmt.Sprintf("|%s#%s", d.Fragment.Shader, d.Fragment.EntryPoint)
		for _, t := range d.Fragment.Targets {
			key += fmt.Sprintf("|%s:%d:%d", t.Format, t.Blend, t.WriteMask)
		}
	}
	for _, l := range d.Layout {
		if l != nil {
			key += "|" + l.Descriptor().Label
		}
	}
	return fmt.Sprintf("%s|ds=%t|ms=%d", key, d.DepthStencil, d.SampleCount)
}

type LoadOp int

const (
	// LoadOpLoad keeps the attachment's contents. It is the default.
	LoadOpLoad LoadOp = iota
	LoadOpClear
)

type ColorAttachment struct {
	View TextureView
	Load LoadOp
	// ClearColor is used when Load is LoadOpClear.
	ClearColor [4]float32
}

type RenderPassDescriptor struct {
	Label            string
	ColorAttachments []ColorAttachment
	// DepthStencil is not supported by any pass in this module; it exists so
	// the node can state it explicitly.
	DepthStencil TextureView
}

// Range is a half-open [Start, End) range of vertices or instances.
type Range struct {
	Start, End uint32
}

func (r Range) Len() uint32 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}
