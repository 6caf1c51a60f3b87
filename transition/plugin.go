// Package transition wires the transition systems, the extraction step and
// the render node into one object a game loop can drive.
package transition

import (
	"fmt"
	"log"

	"github.com/milk9111/shapetransition/easing"
	"github.com/milk9111/shapetransition/ecs"
	"github.com/milk9111/shapetransition/ecs/component"
	"github.com/milk9111/shapetransition/ecs/entity"
	"github.com/milk9111/shapetransition/ecs/system"
	"github.com/milk9111/shapetransition/render"
)

// ErrInvalidRequest is returned by Submit for requests that can never run.
var ErrInvalidRequest = component.ErrInvalidRequest

// Plugin owns the transition world. Update and Extract run on the game
// loop's update step, Render on its draw step; none of them may be called
// concurrently.
type Plugin struct {
	world     *ecs.World
	entity    ecs.Entity
	scheduler *ecs.Scheduler
	script    *system.TransitionScriptSystem
	inputs    []ecs.System

	uniforms *render.UniformBuffer
	globals  *render.UniformBuffer

	pipeline *render.TransitionPipeline
	node     *render.TransitionNode
	lastSkip string
	skipping bool
}

type Option func(*Plugin)

// WithScript runs s every tick ahead of request intake.
func WithScript(s *system.TransitionScriptSystem) Option {
	return func(p *Plugin) { p.script = s }
}

// WithSystems runs systems every tick after the script and ahead of request
// intake, so requests they push apply in the same tick.
func WithSystems(systems ...ecs.System) Option {
	return func(p *Plugin) { p.inputs = append(p.inputs, systems...) }
}

// WithResolution seeds the uniform resolution before the first resize event.
func WithResolution(width, height int) Option {
	return func(p *Plugin) {
		p.Resize(width, height)
	}
}

func New(opts ...Option) *Plugin {
	p := &Plugin{
		world:    ecs.NewWorld(),
		uniforms: render.NewUniformBuffer(render.TransitionUniformName),
		globals:  render.NewUniformBuffer(render.GlobalsUniformName),
	}

	ent, err := entity.NewTransition(p.world)
	if err != nil {
		panic(err)
	}
	p.entity = ent

	for _, opt := range opts {
		opt(p)
	}

	p.scheduler = ecs.NewScheduler()
	if p.script != nil {
		p.scheduler.Add(p.script)
	}
	for _, s := range p.inputs {
		p.scheduler.Add(s)
	}
	p.scheduler.Add(system.NewTransitionRequestSystem())
	p.scheduler.Add(system.NewTransitionProgressSystem())
	p.scheduler.Add(system.NewResizeSystem())
	return p
}

// Submit queues req for the next Update. Invalid requests are rejected here
// and never reach the world.
func (p *Plugin) Submit(req component.TransitionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	p.world.Events().Push(ecs.Event{Type: ecs.EventTransitionRequest, Data: req})
	return nil
}

// SubmitTransition queues a wipe to color. With color2 nil the wipe starts
// from the current target; otherwise it runs from color to *color2.
func (p *Plugin) SubmitTransition(angle float32, color component.Color, color2 *component.Color, duration float32, kind easing.Kind) error {
	if color2 == nil {
		return p.Submit(component.ContinueRequest(angle, color, duration, kind))
	}
	return p.Submit(component.ResetRequest(angle, color, *color2, duration, kind))
}

// Resize queues a window size change for the next Update.
func (p *Plugin) Resize(width, height int) {
	p.world.Events().Push(ecs.Event{
		Type: ecs.EventWindowResized,
		Data: component.WindowResized{Width: width, Height: height},
	})
}

// Update advances the clock by dt seconds and runs one tick.
func (p *Plugin) Update(dt float64) {
	p.world.Time().Advance(dt)
	p.scheduler.Update(p.world)
}

func (p *Plugin) State() component.TransitionState {
	if s, ok := ecs.Get(p.world, p.entity, component.TransitionStateComponent.Kind()); ok {
		return *s
	}
	return component.DefaultTransitionState()
}

func (p *Plugin) Uniform() component.TransitionUniform {
	if u, ok := ecs.Get(p.world, p.entity, component.TransitionUniformComponent.Kind()); ok {
		return *u
	}
	return component.TransitionUniform{}
}

// Extract snapshots the uniform and the frame clock for the render node.
func (p *Plugin) Extract() {
	p.uniforms.Write(render.TransitionUniformFields(p.Uniform()))
	t := p.world.Time()
	p.globals.Write(render.NewGlobals(t.Elapsed(), t.Delta(), t.Frames()).Fields())
}

// Finish builds the pipeline once the host's device exists.
func (p *Plugin) Finish(device render.Device, cache render.PipelineCache, shader render.ShaderRef) error {
	pipeline, err := render.NewTransitionPipeline(device, cache, shader)
	if err != nil {
		return fmt.Errorf("transition: %w", err)
	}
	p.pipeline = pipeline
	p.node = &render.TransitionNode{
		Pipeline: pipeline,
		Cache:    cache,
		Uniforms: p.uniforms,
		Globals:  p.globals,
		Skipped:  p.skipped,
	}
	return nil
}

// Render runs the node on view. Failures are logged; the frame goes on.
func (p *Plugin) Render(ctx render.RenderContext, view render.ViewTarget) {
	if p.node == nil {
		return
	}
	p.skipping = false
	if err := p.node.Run(ctx, view); err != nil {
		log.Printf("transition: render: %v", err)
		return
	}
	if !p.skipping {
		p.lastSkip = ""
	}
}

func (p *Plugin) Pipeline() *render.TransitionPipeline { return p.pipeline }

func (p *Plugin) Script() *system.TransitionScriptSystem { return p.script }

func (p *Plugin) World() *ecs.World { return p.world }

func (p *Plugin) skipped(reason error) {
	p.skipping = true
	msg := reason.Error()
	if msg == p.lastSkip {
		return
	}
	p.lastSkip = msg
	log.Printf("transition: skipping frame: %v", reason)
}
