package ppu

// Tick advances the PPU by exactly one dot (one PPU clock cycle), driving
// the scanline/dot state machine: pre-render line -1, visible lines
// 0-239, post-render line 240, and vblank lines 241-260. The caller is
// responsible for invoking this three times per CPU clock cycle.
func (p *PPU) Tick() {
	rendering := p.mask.renderingEnabled()

	if p.line >= -1 && p.line < 240 {
		if p.line == -1 && p.cycle == 1 {
			p.status = p.status.with(StatusVBlank, false)
			p.status = p.status.with(StatusSprite0Hit, false)
			p.status = p.status.with(StatusSpriteOverflow, false)
		}

		inFetchWindow := (p.cycle >= 1 && p.cycle <= 256) || (p.cycle >= 321 && p.cycle <= 336)
		if rendering && inFetchWindow {
			p.updateShifters()
			switch (p.cycle - 1) % 8 {
			case 0:
				p.loadShifters()
				p.ntID = p.ppuRead(0x2000 | (uint16(p.v) & 0x0FFF))
			case 2:
				addr := uint16(0x23C0) | (uint16(p.v) & 0x0C00) | ((uint16(p.v) >> 4) & 0x38) | ((uint16(p.v) >> 2) & 0x07)
				a := p.ppuRead(addr)
				if p.v.coarseY()&0x02 != 0 {
					a >>= 4
				}
				if p.v.coarseX()&0x02 != 0 {
					a >>= 2
				}
				p.attr = a & 0x03
			case 4:
				base := p.ctrl.bgPatternBase()
				p.tileLo = p.ppuRead(base | (uint16(p.ntID) << 4) | p.v.fineY())
			case 6:
				base := p.ctrl.bgPatternBase()
				p.tileHi = p.ppuRead(base | (uint16(p.ntID) << 4) | (p.v.fineY() + 8))
			case 7:
				p.v.incCoarseX()
			}
		}

		if rendering && p.cycle == 256 {
			p.v.incY()
		}
		if rendering && p.cycle == 257 {
			p.v.transferX(p.t)
		}
		if p.line == -1 && rendering && p.cycle >= 280 && p.cycle <= 304 {
			p.v.transferY(p.t)
		}
		if p.cycle == 338 || p.cycle == 340 {
			p.ntID = p.ppuRead(0x2000 | (uint16(p.v) & 0x0FFF))
		}
	}

	if p.line == 241 && p.cycle == 1 {
		p.status = p.status.with(StatusVBlank, true)
		if p.ctrl.has(CtrlNMIEnable) {
			p.nmiEdge = true
		}
	}

	if p.line >= 0 && p.line < 240 && p.cycle >= 1 && p.cycle <= 256 {
		p.emitPixel()
	}

	if p.line == -1 && p.cycle == 339 && p.SkipOddFrame && p.oddFrame && rendering {
		p.cycle = 340
	}

	p.cycle++
	if p.cycle > 340 {
		p.cycle = 0
		p.line++
		if p.line > 260 {
			p.line = -1
			p.frameComplete = true
			p.oddFrame = !p.oddFrame
		}
	}
}

func (p *PPU) updateShifters() {
	if !p.mask.renderingEnabled() {
		return
	}
	p.patternLo <<= 1
	p.patternHi <<= 1
	p.attrLo <<= 1
	p.attrHi <<= 1
}

func (p *PPU) loadShifters() {
	p.patternLo = p.patternLo&0xFF00 | uint16(p.tileLo)
	p.patternHi = p.patternHi&0xFF00 | uint16(p.tileHi)

	var loFill, hiFill uint16
	if p.attr&0x01 != 0 {
		loFill = 0xFF
	}
	if p.attr&0x02 != 0 {
		hiFill = 0xFF
	}
	p.attrLo = p.attrLo&0xFF00 | loFill
	p.attrHi = p.attrHi&0xFF00 | hiFill
}

func (p *PPU) emitPixel() {
	x := p.cycle - 1
	y := p.line
	if x < 0 || x >= FrameWidth || y < 0 || y >= FrameHeight {
		return
	}

	mux := uint16(0x8000) >> p.fineX
	var p0, p1 uint8
	if p.patternLo&mux != 0 {
		p0 = 1
	}
	if p.patternHi&mux != 0 {
		p1 = 1
	}
	pixel := p1<<1 | p0

	var a0, a1 uint8
	if p.attrLo&mux != 0 {
		a0 = 1
	}
	if p.attrHi&mux != 0 {
		a1 = 1
	}
	palette := a1<<1 | a0

	if !p.mask.has(MaskShowBG) || (x < 8 && !p.mask.has(MaskShowBGLeft)) {
		pixel = 0
	}

	addr := uint16(0x3F00)
	if pixel != 0 {
		addr = 0x3F00 + uint16(palette)<<2 + uint16(pixel)
	}
	colorIdx := p.ppuRead(addr)
	if p.mask.has(MaskGrayscale) {
		colorIdx &= 0x30
	}
	p.frameBuffer[y*FrameWidth+x] = colorIdx & 0x3F
}
