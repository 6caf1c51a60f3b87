package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shapetransition/render"
)

// PingPong is a pair of same-sized offscreen images. The scene draws into
// Main; each post-process write reads Main and makes its destination the new
// Main.
type PingPong struct {
	images  [2]*Texture
	current int
	width   int
	height  int
	alloc   func(w, h int) *ebiten.Image
}

var _ render.ViewTarget = (*PingPong)(nil)

func NewPingPong(width, height int) *PingPong {
	p := &PingPong{alloc: ebiten.NewImage}
	p.Resize(width, height)
	return p
}

// Main is the image holding the latest frame contents.
func (p *PingPong) Main() *ebiten.Image {
	return p.images[p.current].Image()
}

func (p *PingPong) Size() (int, int) { return p.width, p.height }

func (p *PingPong) PostProcessWrite() render.PostProcessWrite {
	src := p.images[p.current]
	p.current ^= 1
	return render.PostProcessWrite{Source: src, Destination: p.images[p.current]}
}

// Resize reallocates both images when the size changes and reports whether
// it did.
func (p *PingPong) Resize(width, height int) bool {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if p.images[0] != nil && width == p.width && height == p.height {
		return false
	}
	for i, tex := range p.images {
		if tex != nil && tex.img != nil {
			tex.img.Deallocate()
		}
		p.images[i] = NewTexture(p.alloc(width, height))
	}
	p.width, p.height = width, height
	p.current = 0
	return true
}
