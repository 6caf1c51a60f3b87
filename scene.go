package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/shapetransition/common"
	"github.com/milk9111/shapetransition/ecs/component"
	"golang.org/x/image/colornames"
)

// Scene is the backdrop the transition wipes over: a row of bouncing bars.
type Scene struct {
	clear color.Color
	time  float64
}

var barColors = []color.RGBA{
	colornames.Lightcoral,
	colornames.Khaki,
	colornames.Palegreen,
	colornames.Lightskyblue,
	colornames.Plum,
}

func NewScene(clear component.Color) *Scene {
	s := &Scene{}
	s.SetClearColor(clear)
	return s
}

func (s *Scene) SetClearColor(c component.Color) {
	s.clear = toNRGBA(c)
}

func (s *Scene) Update(dt float64) {
	s.time += dt
}

func (s *Scene) Draw(dst *ebiten.Image) {
	dst.Fill(s.clear)

	b := dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	const bars = 12
	slot := w / bars
	for i := 0; i < bars; i++ {
		phase := float32(math.Sin(s.time*1.5+float64(i)*0.6)*0.5 + 0.5)
		barH := common.Lerp(h*0.15, h*0.7, phase)
		x := float32(i)*slot + slot*0.15
		vector.FillRect(dst, x, h-barH, slot*0.7, barH, barColors[i%len(barColors)], false)
	}
}

func toNRGBA(c component.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp01(c.R)*255 + 0.5),
		G: uint8(common.Clamp01(c.G)*255 + 0.5),
		B: uint8(common.Clamp01(c.B)*255 + 0.5),
		A: uint8(common.Clamp01(c.A)*255 + 0.5),
	}
}
