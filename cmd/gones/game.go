package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"gones/internal/emuconfig"
	"gones/internal/input"
	"gones/internal/machine"
	"gones/internal/ppu"
)

// game adapts a Machine to ebiten.Game: Update drives the keyboard and
// advances the emulator by one frame, Draw blits the resulting
// palette-index framebuffer translated through ppu.ColorAt.
type game struct {
	m     *machine.Machine
	scale int

	frame  ppu.FrameBuffer
	screen *ebiten.Image
}

var keymap = map[ebiten.Key]uint8{
	ebiten.KeyZ:         input.ButtonA,
	ebiten.KeyX:         input.ButtonB,
	ebiten.KeyBackspace: input.ButtonSelect,
	ebiten.KeyEnter:     input.ButtonStart,
	ebiten.KeyUp:        input.ButtonUp,
	ebiten.KeyDown:      input.ButtonDown,
	ebiten.KeyLeft:      input.ButtonLeft,
	ebiten.KeyRight:     input.ButtonRight,
}

func newGame(m *machine.Machine, cfg emuconfig.Config) *game {
	return &game{
		m:      m,
		scale:  cfg.Scale,
		screen: ebiten.NewImage(ppu.FrameWidth, ppu.FrameHeight),
	}
}

func (g *game) Update() error {
	var mask uint8
	for key, button := range keymap {
		if ebiten.IsKeyPressed(key) {
			mask |= button
		}
	}
	g.m.SetButtons(0, mask)

	fb, err := g.m.Frame()
	if err != nil {
		return fmt.Errorf("gones: %w", err)
	}
	g.frame = fb
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	pixels := make([]byte, ppu.FrameWidth*ppu.FrameHeight*4)
	for i, idx := range g.frame {
		c := ppu.ColorAt(idx, false)
		pixels[i*4+0] = c.R
		pixels[i*4+1] = c.G
		pixels[i*4+2] = c.B
		pixels[i*4+3] = 255
	}
	g.screen.WritePixels(pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.screen, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.FrameWidth * g.scale, ppu.FrameHeight * g.scale
}

func runWindowed(m *machine.Machine, cfg emuconfig.Config) error {
	ebiten.SetWindowSize(ppu.FrameWidth*cfg.Scale, ppu.FrameHeight*cfg.Scale)
	ebiten.SetWindowTitle("gones")

	g := newGame(m, cfg)
	return ebiten.RunGame(g)
}
