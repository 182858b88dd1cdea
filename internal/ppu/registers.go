package ppu

// Control is PPUCTRL ($2000, write-only from the CPU's perspective).
type Control uint8

const (
	CtrlNametableX     Control = 1 << 0
	CtrlNametableY     Control = 1 << 1
	CtrlIncrementY32   Control = 1 << 2
	CtrlSpritePattern  Control = 1 << 3
	CtrlBGPattern      Control = 1 << 4
	CtrlSpriteSize8x16 Control = 1 << 5
	CtrlSlaveMode      Control = 1 << 6
	CtrlNMIEnable      Control = 1 << 7
)

func (c Control) has(f Control) bool { return c&f != 0 }

func (c Control) vramIncrement() uint16 {
	if c.has(CtrlIncrementY32) {
		return 32
	}
	return 1
}

func (c Control) bgPatternBase() uint16 {
	if c.has(CtrlBGPattern) {
		return 0x1000
	}
	return 0x0000
}

// Mask is PPUMASK ($2001).
type Mask uint8

const (
	MaskGrayscale       Mask = 1 << 0
	MaskShowBGLeft      Mask = 1 << 1
	MaskShowSpritesLeft Mask = 1 << 2
	MaskShowBG          Mask = 1 << 3
	MaskShowSprites     Mask = 1 << 4
	MaskEmphasizeRed    Mask = 1 << 5
	MaskEmphasizeGreen  Mask = 1 << 6
	MaskEmphasizeBlue   Mask = 1 << 7
)

func (m Mask) has(f Mask) bool { return m&f != 0 }

func (m Mask) renderingEnabled() bool { return m.has(MaskShowBG) || m.has(MaskShowSprites) }

// Status is PPUSTATUS ($2002). Only the top three bits are real; the
// bottom five come from open-bus / the data buffer on read.
type Status uint8

const (
	StatusSpriteOverflow Status = 1 << 5
	StatusSprite0Hit     Status = 1 << 6
	StatusVBlank         Status = 1 << 7
)

func (s Status) has(f Status) bool { return s&f != 0 }
func (s Status) with(f Status, set bool) Status {
	if set {
		return s | f
	}
	return s &^ f
}

// loopy is the PPU's 15-bit v/t scroll register, encoded as
// fineY(3) | nametableY(1) | nametableX(1) | coarseY(5) | coarseX(5).
type loopy uint16

const (
	loopyCoarseXMask = 0x001F
	loopyCoarseYMask = 0x03E0
	loopyNTXBit      = 0x0400
	loopyNTYBit      = 0x0800
	loopyFineYShift  = 12
)

func (l loopy) coarseX() uint16   { return uint16(l) & loopyCoarseXMask }
func (l loopy) coarseY() uint16   { return (uint16(l) & loopyCoarseYMask) >> 5 }
func (l loopy) fineY() uint16     { return uint16(l) >> loopyFineYShift }
func (l loopy) nametable() uint16 { return (uint16(l) >> 10) & 0x3 }

func (l *loopy) setCoarseX(v uint16) { *l = loopy(uint16(*l)&^loopyCoarseXMask | (v & 0x1F)) }
func (l *loopy) setCoarseY(v uint16) { *l = loopy(uint16(*l)&^loopyCoarseYMask | ((v & 0x1F) << 5)) }
func (l *loopy) setFineY(v uint16)   { *l = loopy(uint16(*l)&0x0FFF | ((v & 0x7) << loopyFineYShift)) }
func (l *loopy) setNametable(v uint16) {
	*l = loopy(uint16(*l)&^(loopyNTXBit|loopyNTYBit) | ((v & 0x3) << 10))
}

func (l *loopy) incCoarseX() {
	if l.coarseX() == 31 {
		*l = loopy(uint16(*l) &^ loopyCoarseXMask)
		*l ^= loopyNTXBit
	} else {
		l.setCoarseX(l.coarseX() + 1)
	}
}

func (l *loopy) incY() {
	if l.fineY() < 7 {
		l.setFineY(l.fineY() + 1)
		return
	}
	l.setFineY(0)
	y := l.coarseY()
	switch {
	case y == 29:
		y = 0
		*l ^= loopyNTYBit
	case y == 31:
		y = 0
	default:
		y++
	}
	l.setCoarseY(y)
}

// transferX copies the horizontal scroll bits of t into v (dot 257).
func (v *loopy) transferX(t loopy) {
	*v = loopy(uint16(*v)&^(loopyCoarseXMask|loopyNTXBit) | (uint16(t) & (loopyCoarseXMask | loopyNTXBit)))
}

// transferY copies the vertical scroll bits of t into v (dots 280-304 of
// the pre-render line).
func (v *loopy) transferY(t loopy) {
	const yMask = loopyCoarseYMask | loopyNTYBit | (0x7 << loopyFineYShift)
	*v = loopy(uint16(*v)&^yMask | (uint16(t) & yMask))
}
