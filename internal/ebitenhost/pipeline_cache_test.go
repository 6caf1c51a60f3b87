package ebitenhost

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shapetransition/render"
)

type stubShaders struct {
	sources  map[render.ShaderRef]string
	compiled []string
	failSrc  string
}

func (s *stubShaders) load(ref render.ShaderRef) ([]byte, error) {
	src, ok := s.sources[ref]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(src), nil
}

func (s *stubShaders) compile(src []byte) (*ebiten.Shader, error) {
	if string(src) == s.failSrc {
		return nil, errors.New("syntax error")
	}
	s.compiled = append(s.compiled, string(src))
	return new(ebiten.Shader), nil
}

func newStubCache(t *testing.T) (*PipelineCache, *stubShaders) {
	t.Helper()
	stub := &stubShaders{sources: map[render.ShaderRef]string{render.TransitionShader: "v1"}}
	return NewPipelineCache(WithLoader(stub.load), WithCompiler(stub.compile)), stub
}

func transitionPipeline(t *testing.T, cache *PipelineCache) *render.TransitionPipeline {
	t.Helper()
	p, err := render.NewTransitionPipeline(NewDevice(), cache, "")
	if err != nil {
		t.Fatalf("NewTransitionPipeline: %v", err)
	}
	return p
}

func TestPipelineCacheCompilesOnProcess(t *testing.T) {
	cache, stub := newStubCache(t)
	p := transitionPipeline(t, cache)

	if _, ok := cache.GetRenderPipeline(p.PipelineID()); ok {
		t.Fatal("pipeline ready before Process")
	}
	if got := cache.Pending(); got != 1 {
		t.Fatalf("Pending = %d, want 1", got)
	}
	if got := cache.Process(); got != 1 {
		t.Fatalf("Process = %d, want 1", got)
	}
	pl, ok := cache.GetRenderPipeline(p.PipelineID())
	if !ok {
		t.Fatal("pipeline not ready after Process")
	}
	if pl.Descriptor().Label != "transition_pipeline" {
		t.Fatalf("label = %q", pl.Descriptor().Label)
	}
	if len(stub.compiled) != 1 || stub.compiled[0] != "v1" {
		t.Fatalf("compiled = %v", stub.compiled)
	}
	if cache.Process() != 0 {
		t.Fatal("second Process recompiled")
	}
}

func TestPipelineCacheDedupesDescriptors(t *testing.T) {
	cache, _ := newStubCache(t)
	p := transitionPipeline(t, cache)
	if id := cache.QueueRenderPipeline(p.Descriptor()); id != p.PipelineID() {
		t.Fatalf("queued duplicate as %d, want %d", id, p.PipelineID())
	}
}

func TestPipelineCacheReloadKeepsLastGoodShader(t *testing.T) {
	cache, stub := newStubCache(t)
	p := transitionPipeline(t, cache)
	cache.Process()
	first, _ := cache.GetRenderPipeline(p.PipelineID())

	stub.sources[render.TransitionShader] = "broken"
	stub.failSrc = "broken"
	if n := cache.Reload(render.TransitionShader); n != 1 {
		t.Fatalf("Reload marked %d pipelines, want 1", n)
	}
	if n := cache.Process(); n != 0 {
		t.Fatalf("Process = %d, want 0", n)
	}
	if cache.Err(p.PipelineID()) == nil {
		t.Fatal("compile error not recorded")
	}
	got, ok := cache.GetRenderPipeline(p.PipelineID())
	if !ok || got.(*Pipeline).Shader() != first.(*Pipeline).Shader() {
		t.Fatal("failed reload dropped the previous shader")
	}

	stub.sources[render.TransitionShader] = "v2"
	cache.Reload(render.TransitionShader)
	if n := cache.Process(); n != 1 {
		t.Fatalf("Process = %d, want 1", n)
	}
	if cache.Err(p.PipelineID()) != nil {
		t.Fatal("error survived a good compile")
	}
	if n := cache.Reload("shaders/other.kage"); n != 0 {
		t.Fatalf("Reload of unrelated shader marked %d", n)
	}
}

func TestPipelineCacheRejectsUnsupported(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*render.RenderPipelineDescriptor)
	}{
		{"float_target", func(d *render.RenderPipelineDescriptor) {
			d.Fragment.Targets[0].Format = render.TextureFormatRGBA16Float
		}},
		{"depth", func(d *render.RenderPipelineDescriptor) { d.DepthStencil = true }},
		{"msaa", func(d *render.RenderPipelineDescriptor) { d.SampleCount = 4 }},
		{"vertex", func(d *render.RenderPipelineDescriptor) { d.Vertex.Shader = "custom" }},
		{"no_fragment", func(d *render.RenderPipelineDescriptor) { d.Fragment = nil }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cache, _ := newStubCache(t)
			desc := transitionPipeline(t, NewPipelineCache()).Descriptor()
			frag := *desc.Fragment
			frag.Targets = append([]render.ColorTargetState(nil), frag.Targets...)
			desc.Fragment = &frag
			c.mutate(&desc)

			id := cache.QueueRenderPipeline(desc)
			cache.Process()
			if _, ok := cache.GetRenderPipeline(id); ok {
				t.Fatal("unsupported pipeline became ready")
			}
			if err := cache.Err(id); !errors.Is(err, ErrUnsupportedPipeline) {
				t.Fatalf("Err = %v, want ErrUnsupportedPipeline", err)
			}
		})
	}
}

func TestPipelineCacheUnknownID(t *testing.T) {
	cache, _ := newStubCache(t)
	if _, ok := cache.GetRenderPipeline(7); ok {
		t.Fatal("unknown id reported ready")
	}
	if err := cache.Err(7); !errors.Is(err, ErrUnknownPipeline) {
		t.Fatalf("Err = %v", err)
	}
}
