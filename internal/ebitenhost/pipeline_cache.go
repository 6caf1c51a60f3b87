package ebitenhost

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shapetransition/prefabs"
	"github.com/milk9111/shapetransition/render"
)

var (
	ErrUnsupportedPipeline = errors.New("ebitenhost: unsupported pipeline")
	ErrUnknownPipeline     = errors.New("ebitenhost: unknown pipeline")
)

// LoadFunc reads shader source for a ShaderRef.
type LoadFunc func(ref render.ShaderRef) ([]byte, error)

// CompileFunc turns Kage source into a shader.
type CompileFunc func(src []byte) (*ebiten.Shader, error)

// LoadPrefabShader reads shaders from the prefabs directory.
func LoadPrefabShader(ref render.ShaderRef) ([]byte, error) {
	return prefabs.LoadShader(string(ref))
}

// Pipeline is a compiled fragment program plus the descriptor it came from.
type Pipeline struct {
	desc   render.RenderPipelineDescriptor
	shader *ebiten.Shader
}

var _ render.RenderPipeline = (*Pipeline)(nil)

func (p *Pipeline) Descriptor() render.RenderPipelineDescriptor { return p.desc }

func (p *Pipeline) Shader() *ebiten.Shader { return p.shader }

type cachedPipeline struct {
	desc    render.RenderPipelineDescriptor
	pending bool
	shader  *ebiten.Shader
	err     error
}

// PipelineCache compiles queued pipelines when Process runs. A pipeline that
// fails to recompile keeps serving its last good shader.
type PipelineCache struct {
	load    LoadFunc
	compile CompileFunc
	entries []*cachedPipeline
	byKey   map[string]render.CachedPipelineID
}

var _ render.PipelineCache = (*PipelineCache)(nil)

type CacheOption func(*PipelineCache)

func WithLoader(load LoadFunc) CacheOption {
	return func(c *PipelineCache) {
		if load != nil {
			c.load = load
		}
	}
}

func WithCompiler(compile CompileFunc) CacheOption {
	return func(c *PipelineCache) {
		if compile != nil {
			c.compile = compile
		}
	}
}

func NewPipelineCache(opts ...CacheOption) *PipelineCache {
	c := &PipelineCache{
		load:    LoadPrefabShader,
		compile: ebiten.NewShader,
		byKey:   map[string]render.CachedPipelineID{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueueRenderPipeline registers desc for compilation. Identical descriptors
// share one id.
func (c *PipelineCache) QueueRenderPipeline(desc render.RenderPipelineDescriptor) render.CachedPipelineID {
	key := desc.Key()
	if id, ok := c.byKey[key]; ok {
		return id
	}
	id := render.CachedPipelineID(len(c.entries))
	c.entries = append(c.entries, &cachedPipeline{desc: desc, pending: true})
	c.byKey[key] = id
	return id
}

func (c *PipelineCache) GetRenderPipeline(id render.CachedPipelineID) (render.RenderPipeline, bool) {
	entry := c.entry(id)
	if entry == nil || entry.shader == nil {
		return nil, false
	}
	return &Pipeline{desc: entry.desc, shader: entry.shader}, true
}

// Err reports the last compile error of id, if any.
func (c *PipelineCache) Err(id render.CachedPipelineID) error {
	entry := c.entry(id)
	if entry == nil {
		return fmt.Errorf("%w: %d", ErrUnknownPipeline, id)
	}
	return entry.err
}

// Pending reports how many pipelines are waiting for Process.
func (c *PipelineCache) Pending() int {
	n := 0
	for _, e := range c.entries {
		if e.pending {
			n++
		}
	}
	return n
}

// Process compiles every pending pipeline and returns how many became ready.
func (c *PipelineCache) Process() int {
	ready := 0
	for id, entry := range c.entries {
		if !entry.pending {
			continue
		}
		entry.pending = false
		shader, err := c.build(entry.desc)
		if err != nil {
			entry.err = err
			log.Printf("shader: pipeline %d (%s): %v", id, entry.desc.Label, err)
			continue
		}
		entry.shader = shader
		entry.err = nil
		ready++
	}
	return ready
}

// Reload marks every pipeline using ref for recompilation and returns how
// many were marked.
func (c *PipelineCache) Reload(ref render.ShaderRef) int {
	n := 0
	for _, entry := range c.entries {
		if entry.desc.Fragment != nil && entry.desc.Fragment.Shader == ref {
			entry.pending = true
			n++
		}
	}
	return n
}

func (c *PipelineCache) entry(id render.CachedPipelineID) *cachedPipeline {
	if id < 0 || int(id) >= len(c.entries) {
		return nil
	}
	return c.entries[id]
}

func (c *PipelineCache) build(desc render.RenderPipelineDescriptor) (*ebiten.Shader, error) {
	if err := supported(desc); err != nil {
		return nil, err
	}
	src, err := c.load(desc.Fragment.Shader)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", desc.Fragment.Shader, err)
	}
	shader, err := c.compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", desc.Fragment.Shader, err)
	}
	return shader, nil
}

// supported rejects descriptors Ebitengine cannot express: anything but a
// fullscreen triangle into one 8-bit target.
func supported(desc render.RenderPipelineDescriptor) error {
	switch {
	case desc.Vertex.Shader != render.FullscreenShader:
		return fmt.Errorf("%w: vertex shader %q", ErrUnsupportedPipeline, desc.Vertex.Shader)
	case desc.Fragment == nil:
		return fmt.Errorf("%w: no fragment stage", ErrUnsupportedPipeline)
	case desc.Fragment.EntryPoint != render.TransitionEntryPoint:
		return fmt.Errorf("%w: entry point %q", ErrUnsupportedPipeline, desc.Fragment.EntryPoint)
	case len(desc.Fragment.Targets) != 1:
		return fmt.Errorf("%w: %d colour targets", ErrUnsupportedPipeline, len(desc.Fragment.Targets))
	case desc.DepthStencil:
		return fmt.Errorf("%w: depth/stencil", ErrUnsupportedPipeline)
	case desc.SampleCount > 1:
		return fmt.Errorf("%w: %d samples", ErrUnsupportedPipeline, desc.SampleCount)
	}
	switch f := desc.Fragment.Targets[0].Format; f {
	case render.TextureFormatRGBA8Unorm, render.TextureFormatRGBA8UnormSrgb:
	default:
		return fmt.Errorf("%w: format %s", ErrUnsupportedPipeline, f)
	}
	return nil
}
