package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/shapetransition/ecs/component"
	"github.com/milk9111/shapetransition/ecs/system"
	"github.com/milk9111/shapetransition/internal/ebitenhost"
	"github.com/milk9111/shapetransition/prefabs"
	"github.com/milk9111/shapetransition/render"
	"github.com/milk9111/shapetransition/transition"
)

type Game struct {
	frames int
	debug  bool

	spec     *prefabs.TransitionSpec
	specPath string
	input    *system.PresetInputSystem

	plugin  *transition.Plugin
	device  *ebitenhost.Device
	cache   *ebitenhost.PipelineCache
	target  *ebitenhost.PingPong
	watcher *prefabs.Watcher
	scene   *Scene
	hud     *HUD

	width, height int
}

func NewGame(spec *prefabs.TransitionSpec, specPath string, debug bool) (*Game, error) {
	g := &Game{
		debug:    debug,
		spec:     spec,
		specPath: specPath,
		device:   ebitenhost.NewDevice(),
		cache:    ebitenhost.NewPipelineCache(),
		target:   ebitenhost.NewPingPong(spec.Window.Width, spec.Window.Height),
		width:    spec.Window.Width,
		height:   spec.Window.Height,
	}

	g.input = system.NewPresetInputSystem(nil)
	opts := []transition.Option{
		transition.WithResolution(g.width, g.height),
		transition.WithSystems(g.input),
	}
	if spec.Script != "" {
		script, err := system.LoadTransitionScriptSystem(spec.Script)
		if err != nil {
			return nil, err
		}
		opts = append(opts, transition.WithScript(script))
	}
	g.plugin = transition.New(opts...)
	if err := g.plugin.Finish(g.device, g.cache, render.ShaderRef(spec.Shader)); err != nil {
		return nil, err
	}

	g.scene = NewScene(spec.ClearColor.Color)
	g.hud = NewHUD(g)
	g.applySpec(spec)

	if spec.HotReload {
		if dirs := prefabs.WatchDirs(); len(dirs) > 0 {
			w, err := prefabs.NewWatcher(dirs...)
			if err != nil {
				log.Printf("prefabs: hot reload disabled: %v", err)
			} else {
				g.watcher = w
			}
		}
	}

	InitClipboard()
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	dt := 1.0 / float64(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.cache.Reload(render.ShaderRef(g.spec.Shader))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyPreset()
	}

	g.pollWatcher()

	g.plugin.Update(dt)
	g.plugin.Extract()
	g.scene.Update(dt)
	if g.debug {
		g.hud.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(g.target.Main())

	g.cache.Process()
	g.plugin.Render(ebitenhost.NewFrame(g.device), g.target)

	screen.DrawImage(g.target.Main(), nil)

	if g.debug {
		g.hud.Draw(screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 4, g.height-16)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.target.Resize(outsideWidth, outsideHeight)
		g.plugin.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) submitPreset(name string) {
	preset, ok := g.spec.Preset(name)
	if !ok {
		log.Printf("transition: unknown preset %q", name)
		return
	}
	req, err := preset.Request()
	if err != nil {
		log.Printf("transition: preset %s: %v", name, err)
		return
	}
	if err := g.plugin.Submit(req); err != nil {
		log.Printf("transition: preset %s: %v", name, err)
	}
}

// copyPreset puts the current transition on the clipboard as a preset entry.
func (g *Game) copyPreset() {
	preset := prefabs.PresetFromState(fmt.Sprintf("captured_%d", g.frames), g.plugin.State(), g.plugin.Uniform())
	data, err := prefabs.MarshalPreset(preset)
	if err != nil {
		log.Printf("transition: %v", err)
		return
	}
	ClipboardWriteText(string(data))
	log.Printf("transition: copied preset %s", preset.Name)
}

func (g *Game) applySpec(spec *prefabs.TransitionSpec) {
	g.spec = spec
	bindings := map[ebiten.Key]component.TransitionRequest{}
	for _, p := range spec.Presets {
		if p.Key == "" {
			continue
		}
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(p.Key)); err != nil {
			log.Printf("prefabs: preset %s: unknown key %q", p.Name, p.Key)
			continue
		}
		req, err := p.Request()
		if err != nil {
			log.Printf("prefabs: preset %s: %v", p.Name, err)
			continue
		}
		bindings[key] = req
	}
	g.input.SetBindings(bindings)
	g.scene.SetClearColor(spec.ClearColor.Color)
	g.hud.SetPresets(spec.Presets)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("prefabs: watch: %v", err)
		}
	default:
	}

	for _, path := range g.watcher.Poll() {
		rel, err := filepath.Rel(prefabs.Dir, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		switch prefabs.Classify(path) {
		case prefabs.FileShader:
			if n := g.cache.Reload(render.ShaderRef(rel)); n > 0 {
				log.Printf("shader: reloading %s", rel)
			}
		case prefabs.FileScript:
			g.reloadScript(rel)
		case prefabs.FileSpec:
			if rel != filepath.ToSlash(g.specPath) {
				continue
			}
			spec, err := prefabs.LoadTransitionSpec(g.specPath)
			if err != nil {
				log.Printf("prefabs: keeping previous settings: %v", err)
				continue
			}
			spec.Script = g.spec.Script
			g.applySpec(spec)
			log.Printf("prefabs: reloaded %s", rel)
		}
	}
}

func (g *Game) reloadScript(rel string) {
	script := g.plugin.Script()
	if script == nil || "scripts/"+filepath.ToSlash(filepath.Base(g.spec.Script)) != rel {
		return
	}
	src, err := prefabs.LoadScript(rel)
	if err != nil {
		log.Printf("script: %v", err)
		return
	}
	if err := script.Reload(src); err != nil {
		log.Printf("script: keeping previous version: %v", err)
		return
	}
	log.Printf("script: reloaded %s", rel)
}
