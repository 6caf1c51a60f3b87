// Command wipepreview scrubs the transition shader by hand: no scheduler,
// just a driver, an angle and an easing curve.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/shapetransition/easing"
	"github.com/milk9111/shapetransition/ecs/component"
	"github.com/milk9111/shapetransition/internal/ebitenhost"
	"github.com/milk9111/shapetransition/prefabs"
	"github.com/milk9111/shapetransition/render"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 800
	screenHeight = 600
	curveSize    = 160
)

type Game struct {
	device   *ebitenhost.Device
	cache    *ebitenhost.PipelineCache
	target   *ebitenhost.PingPong
	settings *render.UniformBuffer
	globals  *render.UniformBuffer
	node     *render.TransitionNode

	uniform component.TransitionUniform
	kind    easing.Kind
	t       float32
	playing bool
	frames  uint64
}

func NewGame(shader string, from, to component.Color) (*Game, error) {
	g := &Game{
		device:   ebitenhost.NewDevice(),
		cache:    ebitenhost.NewPipelineCache(),
		target:   ebitenhost.NewPingPong(screenWidth, screenHeight),
		settings: render.NewUniformBuffer(render.TransitionUniformName),
		globals:  render.NewUniformBuffer(render.GlobalsUniformName),
		uniform: component.TransitionUniform{
			Color1:     from.Linear(),
			Color2:     to.Linear(),
			Resolution: [2]float32{screenWidth, screenHeight},
		},
	}
	pipeline, err := render.NewTransitionPipeline(g.device, g.cache, render.ShaderRef(shader))
	if err != nil {
		return nil, err
	}
	g.node = &render.TransitionNode{
		Pipeline: pipeline,
		Cache:    g.cache,
		Uniforms: g.settings,
		Globals:  g.globals,
		Skipped:  func(reason error) { log.Printf("wipepreview: %v", reason) },
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	const step = 1.0 / 120

	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		g.t = min(g.t+step, 1)
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		g.t = max(g.t-step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.uniform.MovementAngle = float32(int(g.uniform.MovementAngle+1) % 360)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.uniform.MovementAngle = float32(int(g.uniform.MovementAngle+359) % 360)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.kind = easing.Kind((int(g.kind) + 1) % easing.Count())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.playing = !g.playing
		if g.t >= 1 {
			g.t = 0
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.cache.Reload(g.node.Pipeline.Descriptor().Fragment.Shader)
	}

	if g.playing {
		g.t += 1.0 / float32(ebiten.TPS())
		if g.t >= 1 {
			g.t, g.playing = 1, false
		}
	}
	g.uniform.Driver = g.ease(g.t)

	g.settings.Write(render.TransitionUniformFields(g.uniform))
	g.globals.Write(render.NewGlobals(float64(g.frames)/float64(ebiten.TPS()), 1/float64(ebiten.TPS()), g.frames).Fields())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	checker(g.target.Main())

	g.cache.Process()
	if err := g.node.Run(ebitenhost.NewFrame(g.device), g.target); err != nil {
		log.Printf("wipepreview: %v", err)
	}
	screen.DrawImage(g.target.Main(), nil)

	g.drawCurve(screen, screenWidth-curveSize-16, 16)
	msg := fmt.Sprintf("%s  t=%.2f driver=%.3f angle=%.0f\n<-/-> scrub  up/down angle  E easing  space play  F5 reload",
		g.kind, g.t, g.uniform.Driver, g.uniform.MovementAngle)
	if err := g.cache.Err(g.node.Pipeline.PipelineID()); err != nil {
		msg += "\nerror: " + err.Error()
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) drawCurve(dst *ebiten.Image, x, y float32) {
	vector.FillRect(dst, x, y, curveSize, curveSize, color.RGBA{A: 160}, false)
	const steps = 64
	for i := 0; i < steps; i++ {
		t0 := float32(i) / steps
		t1 := float32(i+1) / steps
		y0 := y + curveSize*(1-g.ease(t0))
		y1 := y + curveSize*(1-g.ease(t1))
		vector.StrokeLine(dst, x+t0*curveSize, y0, x+t1*curveSize, y1, 2, colornames.Lightgrey, true)
	}
	cx := x + g.t*curveSize
	cy := y + curveSize*(1-g.uniform.Driver)
	vector.FillRect(dst, cx-3, cy-3, 6, 6, colornames.Orange, false)
}

func (g *Game) ease(t float32) float32 {
	return float32(easing.Eval(g.kind, float64(t)))
}

func checker(dst *ebiten.Image) {
	const cell = 40
	b := dst.Bounds()
	for y := 0; y < b.Dy(); y += cell {
		for x := 0; x < b.Dx(); x += cell {
			c := colornames.Dimgray
			if (x/cell+y/cell)%2 == 0 {
				c = colornames.Darkgray
			}
			vector.FillRect(dst, float32(x), float32(y), cell, cell, c, false)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	shader := flag.String("shader", string(render.TransitionShader), "shader in prefabs/")
	fromFlag := flag.String("from", "#000000", "baseline colour (CSS)")
	toFlag := flag.String("to", "#cc9999", "target colour (CSS)")
	flag.Parse()

	from, err := prefabs.ParseColor(*fromFlag)
	if err != nil {
		log.Fatal(err)
	}
	to, err := prefabs.ParseColor(*toFlag)
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(*shader, from, to)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("wipe preview")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
