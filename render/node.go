package render

import "fmt"

// TransitionNode draws the transition over the view's post-process target.
type TransitionNode struct {
	Pipeline *TransitionPipeline
	Cache    PipelineCache
	Uniforms *UniformBuffer
	Globals  *UniformBuffer

	// Skipped, if set, is told why a frame was not drawn. The reason wraps
	// ErrResourceNotReady.
	Skipped func(reason error)
}

var _ FrameRenderStep = (*TransitionNode)(nil)

// Run draws one fullscreen triangle from the ping-pong source into its
// destination. Missing resources skip the frame and return nil.
func (n *TransitionNode) Run(ctx RenderContext, view ViewTarget) error {
	if n == nil || ctx == nil || view == nil {
		return nil
	}
	if n.Pipeline == nil || n.Cache == nil {
		n.skip("transition pipeline")
		return nil
	}

	pipeline, ok := n.Cache.GetRenderPipeline(n.Pipeline.pipelineID)
	if !ok {
		n.skip("transition pipeline")
		return nil
	}
	settings, ok := n.Uniforms.Binding()
	if !ok {
		n.skip("transition uniform")
		return nil
	}
	globals, ok := n.Globals.Binding()
	if !ok {
		n.skip("globals uniform")
		return nil
	}

	post := view.PostProcessWrite()
	bindGroup, err := ctx.Device().CreateBindGroup(
		"transition_bind_group",
		n.Pipeline.layout,
		post.Source,
		n.Pipeline.sampler,
		settings,
		globals,
	)
	if err != nil {
		return fmt.Errorf("render: transition bind group: %w", err)
	}

	pass, err := ctx.BeginRenderPass(RenderPassDescriptor{
		Label: "transition_pass",
		ColorAttachments: []ColorAttachment{{
			View: post.Destination,
			Load: LoadOpLoad,
		}},
	})
	if err != nil {
		return fmt.Errorf("render: transition pass: %w", err)
	}
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup)
	pass.Draw(Range{Start: 0, End: 3}, Range{Start: 0, End: 1})
	return pass.End()
}

func (n *TransitionNode) skip(what string) {
	if n.Skipped != nil {
		n.Skipped(fmt.Errorf("%w: %s", ErrResourceNotReady, what))
	}
}
