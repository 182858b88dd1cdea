// Package ppu implements the NES picture processing unit: VRAM, palette
// RAM, the CPU-visible $2000-$2007 register surface, and the scanline-
// accurate background rendering pipeline.
package ppu

import (
	"errors"

	"gones/internal/cartridge"
)

// ErrInvalidAccess is returned by the low-level register accessors when
// given an offset outside 0-7. The bus always masks with &7 before
// calling in, so a guest ROM can never trigger this; it exists to catch
// programmer error in tests.
var ErrInvalidAccess = errors.New("ppu: register offset out of range")

// CHRMemory is the PPU's view of the cartridge: pattern tables and
// nametable mirroring.
type CHRMemory interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	Mirror() cartridge.MirrorMode
}

const (
	FrameWidth  = 256
	FrameHeight = 240
)

// FrameBuffer holds one completed frame as 6-bit NES palette indices.
type FrameBuffer [FrameWidth * FrameHeight]uint8

// PPU is the NES picture processing unit.
type PPU struct {
	cart CHRMemory

	nametable  [2][1024]uint8
	paletteRAM [32]uint8
	oam        [256]uint8
	oamAddr    uint8

	ctrl   Control
	mask   Mask
	status Status

	v, t  loopy
	fineX uint8
	w     bool

	dataBuffer uint8

	patternLo, patternHi uint16
	attrLo, attrHi       uint16

	ntID, attr, tileLo, tileHi uint8

	cycle int
	line  int

	frameComplete bool
	oddFrame      bool
	nmiEdge       bool

	// SkipOddFrame enables the documented one-dot skip on the pre-render
	// line of odd frames while rendering is on. Off by default: the
	// donor sources disagreed on whether to implement it, so this
	// specification keeps it optional.
	SkipOddFrame bool

	frameBuffer FrameBuffer
}

// New creates a PPU backed by cart's CHR memory and nametable mirroring.
func New(cart CHRMemory) *PPU {
	p := &PPU{cart: cart}
	p.Reset()
	return p
}

// Reset clears all PPU register and pipeline state. VRAM and palette RAM
// are left as-is, matching real hardware (only latches and counters are
// defined at reset).
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.v, p.t, p.fineX = 0, 0, 0
	p.w = false
	p.dataBuffer = 0
	p.patternLo, p.patternHi = 0, 0
	p.attrLo, p.attrHi = 0, 0
	p.cycle, p.line = 0, -1
	p.frameComplete = false
	p.oddFrame = false
	p.nmiEdge = false
	p.oamAddr = 0
}

// ConsumeNMI reports and clears the NMI edge the PPU has raised since the
// last call.
func (p *PPU) ConsumeNMI() bool {
	v := p.nmiEdge
	p.nmiEdge = false
	return v
}

// ConsumeFrameComplete reports and clears the frame-complete edge.
func (p *PPU) ConsumeFrameComplete() bool {
	v := p.frameComplete
	p.frameComplete = false
	return v
}

// FrameBuffer returns the most recently rendered frame.
func (p *PPU) FrameBuffer() FrameBuffer { return p.frameBuffer }

// DMAWriteByte stores one byte into OAM at the current OAMADDR and
// advances it, wrapping at 256 bytes. The bus calls this 256 times while
// servicing a $4014 OAM DMA stall-copy.
func (p *PPU) DMAWriteByte(v uint8) {
	p.oam[p.oamAddr] = v
	p.oamAddr++
}

// ReadRegister services a CPU read of $2000+off (off already masked to
// 0-7 by the bus).
func (p *PPU) ReadRegister(off uint16) (uint8, error) {
	switch off {
	case 0, 1, 3, 4, 5, 6:
		return 0, nil
	case 2:
		data := uint8(p.status)&0xE0 | (p.dataBuffer & 0x1F)
		p.status = p.status.with(StatusVBlank, false)
		p.w = false
		return data, nil
	case 7:
		return p.readData(), nil
	}
	return 0, ErrInvalidAccess
}

// WriteRegister services a CPU write of $2000+off.
func (p *PPU) WriteRegister(off uint16, value uint8) error {
	switch off {
	case 0:
		wasNMIOff := !p.ctrl.has(CtrlNMIEnable)
		p.ctrl = Control(value)
		p.t.setNametable(uint16(value) & 0x3)
		if wasNMIOff && p.ctrl.has(CtrlNMIEnable) && p.status.has(StatusVBlank) {
			p.nmiEdge = true
		}
	case 1:
		p.mask = Mask(value)
	case 2:
		// read-only
	case 3:
		p.oamAddr = value
	case 4:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5:
		if !p.w {
			p.t.setCoarseX(uint16(value) >> 3)
			p.fineX = value & 0x7
		} else {
			p.t.setCoarseY(uint16(value) >> 3)
			p.t.setFineY(uint16(value) & 0x7)
		}
		p.w = !p.w
	case 6:
		if !p.w {
			p.t = loopy(uint16(p.t)&0x00FF | (uint16(value)&0x3F)<<8)
		} else {
			p.t = loopy(uint16(p.t)&0xFF00 | uint16(value))
			p.v = p.t
		}
		p.w = !p.w
	case 7:
		p.writeData(value)
	default:
		return ErrInvalidAccess
	}
	return nil
}

func (p *PPU) readData() uint8 {
	var data uint8
	if uint16(p.v) >= 0x3F00 {
		data = p.ppuRead(uint16(p.v))
		p.dataBuffer = p.ppuRead(uint16(p.v) - 0x1000)
	} else {
		data = p.dataBuffer
		p.dataBuffer = p.ppuRead(uint16(p.v))
	}
	p.v = loopy(uint16(p.v) + p.ctrl.vramIncrement())
	return data
}

func (p *PPU) writeData(value uint8) {
	p.ppuWrite(uint16(p.v), value)
	p.v = loopy(uint16(p.v) + p.ctrl.vramIncrement())
}

// ppuRead services the PPU's own 14-bit address space: pattern tables,
// nametables (mirrored per cartridge), and palette RAM.
func (p *PPU) ppuRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr <= 0x1FFF:
		return p.cart.ReadCHR(addr)
	case addr <= 0x3EFF:
		page, offset := p.nametableAddr(addr)
		return p.nametable[page][offset]
	default:
		return p.paletteRAM[paletteIndex(addr)]
	}
}

func (p *PPU) ppuWrite(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr <= 0x1FFF:
		p.cart.WriteCHR(addr, value)
	case addr <= 0x3EFF:
		page, offset := p.nametableAddr(addr)
		p.nametable[page][offset] = value
	default:
		p.paletteRAM[paletteIndex(addr)] = value
	}
}

func paletteIndex(addr uint16) uint16 {
	a := addr & 0x1F
	switch a {
	case 0x10, 0x14, 0x18, 0x1C:
		a &= 0x0F
	}
	return a
}

// nametableAddr maps a $2000-$3EFF address to one of the two physical
// 1KiB nametable pages per the cartridge's mirroring mode. Four-screen
// mirroring (which needs four independent pages) falls back to
// horizontal, since this core only models two physical pages.
func (p *PPU) nametableAddr(addr uint16) (page int, offset uint16) {
	idx := addr & 0x0FFF
	quadrant := (idx >> 10) & 0x3
	offset = idx & 0x03FF
	switch p.cart.Mirror() {
	case cartridge.MirrorVertical:
		page = int(quadrant & 0x1)
	default: // horizontal and four-screen fallback
		page = int((quadrant >> 1) & 0x1)
	}
	return page, offset
}
