package render

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/milk9111/shapetransition/ecs/component"
)

type nodeFixture struct {
	device *fakeDevice
	cache  *fakeCache
	ctx    *fakeContext
	view   *fakeView
	node   *TransitionNode
	skips  []error
}

func newNodeFixture(t *testing.T) *nodeFixture {
	t.Helper()
	f := &nodeFixture{
		device: &fakeDevice{},
		cache:  &fakeCache{ready: map[CachedPipelineID]bool{}},
		view: &fakeView{
			a: &fakeTexture{name: "a", w: 640, h: 360},
			b: &fakeTexture{name: "b", w: 640, h: 360},
		},
	}
	f.ctx = &fakeContext{device: f.device}
	pipeline, err := NewTransitionPipeline(f.device, f.cache, "")
	if err != nil {
		t.Fatalf("NewTransitionPipeline: %v", err)
	}
	f.node = &TransitionNode{
		Pipeline: pipeline,
		Cache:    f.cache,
		Uniforms: NewUniformBuffer(TransitionUniformName),
		Globals:  NewUniformBuffer(GlobalsUniformName),
		Skipped:  func(reason error) { f.skips = append(f.skips, reason) },
	}
	return f
}

func (f *nodeFixture) makeReady() {
	f.cache.ready[f.node.Pipeline.PipelineID()] = true
	f.node.Uniforms.Write(TransitionUniformFields(component.TransitionUniform{Driver: 0.5}))
	f.node.Globals.Write(NewGlobals(1, 1.0/60, 60).Fields())
}

func TestTransitionPipelineLayout(t *testing.T) {
	f := newNodeFixture(t)
	desc := f.node.Pipeline.Layout().Descriptor()

	want := []BindGroupLayoutEntry{
		{Binding: 0, Visibility: ShaderStageFragment, Type: BindingTexture2D, Filterable: true},
		{Binding: 1, Visibility: ShaderStageFragment, Type: BindingSampler, Filterable: true},
		{Binding: 2, Visibility: ShaderStageFragment, Type: BindingUniformBuffer, Uniform: TransitionUniformName},
		{Binding: 3, Visibility: ShaderStageFragment, Type: BindingUniformBuffer, Uniform: GlobalsUniformName},
	}
	if diff := cmp.Diff(want, desc.Entries); diff != "" {
		t.Fatalf("layout entries mismatch (-want +got):\n%s", diff)
	}

	pd := f.node.Pipeline.Descriptor()
	if pd.Vertex != FullscreenVertexState() {
		t.Fatalf("vertex stage = %+v, want fullscreen", pd.Vertex)
	}
	if pd.Fragment == nil || pd.Fragment.Shader != TransitionShader || pd.Fragment.EntryPoint != TransitionEntryPoint {
		t.Fatalf("fragment stage = %+v", pd.Fragment)
	}
	if len(pd.Fragment.Targets) != 1 || pd.Fragment.Targets[0].Format != TransitionFormat {
		t.Fatalf("targets = %+v", pd.Fragment.Targets)
	}
	if pd.DepthStencil {
		t.Fatal("post-process pipeline must not use depth/stencil")
	}
	if len(f.cache.queued) != 1 {
		t.Fatalf("queued %d pipelines, want 1", len(f.cache.queued))
	}
}

func TestTransitionPipelineErrors(t *testing.T) {
	for _, failOn := range []string{"layout", "sampler"} {
		t.Run(failOn, func(t *testing.T) {
			_, err := NewTransitionPipeline(&fakeDevice{failOn: failOn}, &fakeCache{}, "")
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := NewTransitionPipeline(nil, &fakeCache{}, ""); err == nil {
		t.Fatal("expected error without device")
	}
}

func TestTransitionNodeSkipsMissingResources(t *testing.T) {
	cases := []struct {
		name  string
		setup func(f *nodeFixture)
		what  string
	}{
		{
			name:  "pipeline_compiling",
			setup: func(f *nodeFixture) { f.makeReady(); f.cache.ready = map[CachedPipelineID]bool{} },
			what:  "transition pipeline",
		},
		{
			name:  "no_uniform",
			setup: func(f *nodeFixture) { f.makeReady(); f.node.Uniforms.Clear() },
			what:  "transition uniform",
		},
		{
			name:  "no_globals",
			setup: func(f *nodeFixture) { f.makeReady(); f.node.Globals.Clear() },
			what:  "globals uniform",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newNodeFixture(t)
			c.setup(f)
			if err := f.node.Run(f.ctx, f.view); err != nil {
				t.Fatalf("Run returned %v, want nil", err)
			}
			if len(f.ctx.passes) != 0 {
				t.Fatalf("expected no render pass, got %d", len(f.ctx.passes))
			}
			if f.view.flips != 0 {
				t.Fatal("skipped frame must not flip the ping-pong target")
			}
			if len(f.skips) != 1 || !errors.Is(f.skips[0], ErrResourceNotReady) {
				t.Fatalf("skips = %v", f.skips)
			}
			if got := f.skips[0].Error(); got != ErrResourceNotReady.Error()+": "+c.what {
				t.Fatalf("skip reason = %q", got)
			}
		})
	}
}

func TestTransitionNodeRetriesNextFrame(t *testing.T) {
	f := newNodeFixture(t)
	if err := f.node.Run(f.ctx, f.view); err != nil {
		t.Fatal(err)
	}
	if len(f.ctx.passes) != 0 {
		t.Fatal("drew before resources were ready")
	}
	f.makeReady()
	if err := f.node.Run(f.ctx, f.view); err != nil {
		t.Fatal(err)
	}
	if len(f.ctx.passes) != 1 {
		t.Fatalf("passes = %d, want 1", len(f.ctx.passes))
	}
}

func TestTransitionNodeDraw(t *testing.T) {
	f := newNodeFixture(t)
	f.makeReady()

	if err := f.node.Run(f.ctx, f.view); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.ctx.passes) != 1 {
		t.Fatalf("passes = %d, want 1", len(f.ctx.passes))
	}
	pass := f.ctx.passes[0]

	if len(pass.desc.ColorAttachments) != 1 || pass.desc.ColorAttachments[0].View != f.view.b {
		t.Fatalf("pass must write only to the ping-pong destination, got %+v", pass.desc.ColorAttachments)
	}
	if pass.desc.DepthStencil != nil {
		t.Fatal("pass must not have a depth/stencil attachment")
	}
	if pass.pipeline == nil {
		t.Fatal("pipeline not bound")
	}
	if diff := cmp.Diff([]drawCall{{Range{0, 3}, Range{0, 1}}}, pass.draws, cmp.AllowUnexported(drawCall{})); diff != "" {
		t.Fatalf("draws mismatch (-want +got):\n%s", diff)
	}
	if !pass.ended {
		t.Fatal("pass not ended")
	}

	group, ok := pass.groups[0].(*fakeBindGroup)
	if !ok {
		t.Fatal("bind group 0 not set")
	}
	if group.resources[0] != f.view.a {
		t.Fatal("binding 0 must be the ping-pong source")
	}
	if group.resources[1] != f.node.Pipeline.Sampler() {
		t.Fatal("binding 1 must be the pipeline sampler")
	}
	settings, ok := group.resources[2].(UniformBinding)
	if !ok || settings.Name() != TransitionUniformName {
		t.Fatalf("binding 2 = %v", group.resources[2])
	}
	if got := settings.Fields()["Driver"]; got != float32(0.5) {
		t.Fatalf("Driver = %v", got)
	}
	globals, ok := group.resources[3].(UniformBinding)
	if !ok || globals.Name() != GlobalsUniformName {
		t.Fatalf("binding 3 = %v", group.resources[3])
	}

	// the next frame reads from what this one wrote
	if err := f.node.Run(f.ctx, f.view); err != nil {
		t.Fatal(err)
	}
	if f.ctx.passes[1].desc.ColorAttachments[0].View != f.view.a {
		t.Fatal("ping-pong target did not flip")
	}
}

func TestTransitionNodeBindGroupError(t *testing.T) {
	f := newNodeFixture(t)
	f.makeReady()
	f.device.failOn = "bind_group"
	if err := f.node.Run(f.ctx, f.view); err == nil {
		t.Fatal("expected bind group error to be reported")
	}
	if len(f.ctx.passes) != 0 {
		t.Fatal("no pass should begin without a bind group")
	}
}

func TestTransitionNodeNilSafe(t *testing.T) {
	var n *TransitionNode
	if err := n.Run(&fakeContext{}, &fakeView{}); err != nil {
		t.Fatal(err)
	}
	if err := (&TransitionNode{}).Run(&fakeContext{device: &fakeDevice{}}, &fakeView{}); err != nil {
		t.Fatal(err)
	}
}
