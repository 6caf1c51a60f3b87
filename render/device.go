package render

// BindingResource is anything that can sit in a bind group slot: a
// TextureView, a Sampler or a UniformBinding.
type BindingResource interface {
	BindingType() BindingType
}

// TextureView is a host texture that can be sampled or rendered to.
type TextureView interface {
	BindingResource
	Size() (width, height int)
}

type BindGroupLayout interface {
	Descriptor() BindGroupLayoutDescriptor
}

type Sampler interface {
	BindingResource
	Descriptor() SamplerDescriptor
}

type BindGroup interface {
	Label() string
	Layout() BindGroupLayout
	Resources() []BindingResource
}

// RenderPipeline is a compiled pipeline handed out by a PipelineCache.
type RenderPipeline interface {
	Descriptor() RenderPipelineDescriptor
}

// Device creates GPU objects.
type Device interface {
	CreateBindGroupLayout(desc BindGroupLayoutDescriptor) (BindGroupLayout, error)
	CreateSampler(desc SamplerDescriptor) (Sampler, error)
	CreateBindGroup(label string, layout BindGroupLayout, resources ...BindingResource) (BindGroup, error)
}

// CachedPipelineID is a ticket for a queued pipeline.
type CachedPipelineID int

// PipelineCache compiles pipelines in the background. GetRenderPipeline
// reports false until the pipeline identified by id is ready to use.
type PipelineCache interface {
	QueueRenderPipeline(desc RenderPipelineDescriptor) CachedPipelineID
	GetRenderPipeline(id CachedPipelineID) (RenderPipeline, bool)
}

// RenderPass records draws into the pass's attachments.
type RenderPass interface {
	SetPipeline(p RenderPipeline)
	SetBindGroup(index int, group BindGroup)
	Draw(vertices, instances Range)
	End() error
}

// RenderContext is the per-frame command recorder.
type RenderContext interface {
	Device() Device
	BeginRenderPass(desc RenderPassDescriptor) (RenderPass, error)
}

// PostProcessWrite is one half of a ping-pong pair: read from Source, write
// to Destination. Source and Destination are never the same texture.
type PostProcessWrite struct {
	Source      TextureView
	Destination TextureView
}

// ViewTarget is the host's per-view colour target. Every call to
// PostProcessWrite flips the pair, so the destination becomes the next
// source.
type ViewTarget interface {
	PostProcessWrite() PostProcessWrite
}

// FrameRenderStep is a render graph node run once per view per frame.
// Returning nil covers both "drew" and "skipped, try next frame".
type FrameRenderStep interface {
	Run(ctx RenderContext, view ViewTarget) error
}
