package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/shapetransition/prefabs"
	"golang.org/x/image/font/basicfont"
)

// HUD is the debug overlay: a readout of the transition state and one button
// per preset.
type HUD struct {
	game    *Game
	ui      *ebitenui.UI
	face    ebtext.Face
	status  *widget.Text
	presets *widget.Container
}

func NewHUD(g *Game) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	h := &HUD{game: g, face: face}

	h.status = widget.NewText(
		widget.TextOpts.Text("", &h.face, white),
	)
	h.presets = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)
	hint := widget.NewText(
		widget.TextOpts.Text("F1 hud  F5 reload shader  C copy preset", &h.face, white),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(h.status)
	panel.AddChild(h.presets)
	panel.AddChild(hint)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

// SetPresets rebuilds the preset buttons.
func (h *HUD) SetPresets(presets []prefabs.PresetSpec) {
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	pressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	h.presets.RemoveChildren()
	for _, p := range presets {
		name := p.Name
		label := name
		if p.Key != "" {
			label = fmt.Sprintf("%s [%s]", name, p.Key)
		}
		h.presets.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: pressedImg}),
			widget.ButtonOpts.Text(label, &h.face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				h.game.submitPreset(name)
			}),
		))
	}
}

func (h *HUD) Update() {
	state, uniform := h.game.plugin.State(), h.game.plugin.Uniform()
	h.status.Label = fmt.Sprintf(
		"phase %-10s easing %s\nprogress %.3f  driver %.3f\nangle %.0f  %dx%d",
		state.Phase, state.Easing, state.Progress, uniform.Driver,
		uniform.MovementAngle, int(uniform.Resolution[0]), int(uniform.Resolution[1]),
	)
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
