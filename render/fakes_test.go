package render

import "fmt"

type fakeTexture struct {
	name string
	w, h int
}

func (*fakeTexture) BindingType() BindingType { return BindingTexture2D }
func (t *fakeTexture) Size() (int, int)       { return t.w, t.h }

type fakeLayout struct{ desc BindGroupLayoutDescriptor }

func (l *fakeLayout) Descriptor() BindGroupLayoutDescriptor { return l.desc }

type fakeSampler struct{ desc SamplerDescriptor }

func (*fakeSampler) BindingType() BindingType        { return BindingSampler }
func (s *fakeSampler) Descriptor() SamplerDescriptor { return s.desc }

type fakeBindGroup struct {
	label     string
	layout    BindGroupLayout
	resources []BindingResource
}

func (g *fakeBindGroup) Label() string                { return g.label }
func (g *fakeBindGroup) Layout() BindGroupLayout      { return g.layout }
func (g *fakeBindGroup) Resources() []BindingResource { return g.resources }

type fakeDevice struct {
	groups []*fakeBindGroup
	failOn string
}

func (d *fakeDevice) CreateBindGroupLayout(desc BindGroupLayoutDescriptor) (BindGroupLayout, error) {
	if d.failOn == "layout" {
		return nil, fmt.Errorf("layout boom")
	}
	return &fakeLayout{desc: desc}, nil
}

func (d *fakeDevice) CreateSampler(desc SamplerDescriptor) (Sampler, error) {
	if d.failOn == "sampler" {
		return nil, fmt.Errorf("sampler boom")
	}
	return &fakeSampler{desc: desc}, nil
}

func (d *fakeDevice) CreateBindGroup(label string, layout BindGroupLayout, resources ...BindingResource) (BindGroup, error) {
	if d.failOn == "bind_group" {
		return nil, fmt.Errorf("bind group boom")
	}
	entries := layout.Descriptor().Entries
	if len(entries) != len(resources) {
		return nil, fmt.Errorf("want %d resources, got %d", len(entries), len(resources))
	}
	for i, e := range entries {
		if resources[i] == nil || resources[i].BindingType() != e.Type {
			return nil, fmt.Errorf("binding %d: want %s", i, e.Type)
		}
	}
	g := &fakeBindGroup{label: label, layout: layout, resources: resources}
	d.groups = append(d.groups, g)
	return g, nil
}

type fakePipeline struct{ desc RenderPipelineDescriptor }

func (p *fakePipeline) Descriptor() RenderPipelineDescriptor { return p.desc }

type fakeCache struct {
	queued []RenderPipelineDescriptor
	ready  map[CachedPipelineID]bool
}

func (c *fakeCache) QueueRenderPipeline(desc RenderPipelineDescriptor) CachedPipelineID {
	for i, q := range c.queued {
		if q.Key() == desc.Key() {
			return CachedPipelineID(i)
		}
	}
	c.queued = append(c.queued, desc)
	return CachedPipelineID(len(c.queued) - 1)
}

func (c *fakeCache) GetRenderPipeline(id CachedPipelineID) (RenderPipeline, bool) {
	if !c.ready[id] || int(id) >= len(c.queued) {
		return nil, false
	}
	return &fakePipeline{desc: c.queued[id]}, true
}

type drawCall struct {
	vertices, instances Range
}

type fakePass struct {
	desc     RenderPassDescriptor
	pipeline RenderPipeline
	groups   map[int]BindGroup
	draws    []drawCall
	ended    bool
}

func (p *fakePass) SetPipeline(pl RenderPipeline) { p.pipeline = pl }
func (p *fakePass) SetBindGroup(i int, g BindGroup) {
	if p.groups == nil {
		p.groups = map[int]BindGroup{}
	}
	p.groups[i] = g
}
func (p *fakePass) Draw(v, i Range) { p.draws = append(p.draws, drawCall{v, i}) }
func (p *fakePass) End() error {
	p.ended = true
	return nil
}

type fakeContext struct {
	device *fakeDevice
	passes []*fakePass
}

func (c *fakeContext) Device() Device { return c.device }

func (c *fakeContext) BeginRenderPass(desc RenderPassDescriptor) (RenderPass, error) {
	p := &fakePass{desc: desc}
	c.passes = append(c.passes, p)
	return p, nil
}

type fakeView struct {
	a, b  *fakeTexture
	flips int
}

func (v *fakeView) PostProcessWrite() PostProcessWrite {
	src, dst := v.a, v.b
	if v.flips%2 == 1 {
		src, dst = v.b, v.a
	}
	v.flips++
	return PostProcessWrite{Source: src, Destination: dst}
}
