package render

import "fmt"

const (
	// TransitionShader is the default fragment module.
	TransitionShader ShaderRef = "shaders/transition.kage"
	// TransitionFormat is the colour format the pass is compiled for.
	TransitionFormat = TextureFormatRGBA8Unorm
	// TransitionEntryPoint is the fragment entry point.
	TransitionEntryPoint = "Fragment"
)

// TransitionPipeline owns the GPU objects of the transition pass. It is
// built once; the node only borrows it.
type TransitionPipeline struct {
	layout     BindGroupLayout
	sampler    Sampler
	pipelineID CachedPipelineID
	desc       RenderPipelineDescriptor
}

// NewTransitionPipeline creates the bind group layout and sampler and queues
// the pipeline on cache. The pipeline compiles in the background; the node
// skips frames until it is ready.
func NewTransitionPipeline(device Device, cache PipelineCache, shader ShaderRef) (*TransitionPipeline, error) {
	if device == nil || cache == nil {
		return nil, fmt.Errorf("render: transition pipeline needs a device and a pipeline cache")
	}
	if shader == "" {
		shader = TransitionShader
	}

	layout, err := device.CreateBindGroupLayout(BindGroupLayoutDescriptor{
		Label: "transition_bind_group_layout",
		// only the fragment stage reads these
		Entries: Sequential(ShaderStageFragment,
			Texture2D(true),
			SamplerEntry(true),
			UniformBufferEntry(TransitionUniformName),
			UniformBufferEntry(GlobalsUniformName),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("render: transition bind group layout: %w", err)
	}

	sampler, err := device.CreateSampler(SamplerDescriptor{Label: "transition_sampler"})
	if err != nil {
		return nil, fmt.Errorf("render: transition sampler: %w", err)
	}

	desc := RenderPipelineDescriptor{
		Label:  "transition_pipeline",
		Layout: []BindGroupLayout{layout},
		Vertex: FullscreenVertexState(),
		Fragment: &FragmentState{
			Shader:     shader,
			EntryPoint: TransitionEntryPoint,
			Targets: []ColorTargetState{{
				Format:    TransitionFormat,
				Blend:     BlendReplace,
				WriteMask: ColorWriteAll,
			}},
		},
		SampleCount: 1,
	}

	return &TransitionPipeline{
		layout:     layout,
		sampler:    sampler,
		pipelineID: cache.QueueRenderPipeline(desc),
		desc:       desc,
	}, nil
}

func (p *TransitionPipeline) Layout() BindGroupLayout { return p.layout }

func (p *TransitionPipeline) Sampler() Sampler { return p.sampler }

func (p *TransitionPipeline) PipelineID() CachedPipelineID { return p.pipelineID }

func (p *TransitionPipeline) Descriptor() RenderPipelineDescriptor { return p.desc }
