package cpu

// addrMode identifies one of the 6502's addressing modes.
type addrMode uint8

const (
	modeIMP addrMode = iota
	modeACC
	modeIMM
	modeZP0
	modeZPX
	modeZPY
	modeABS
	modeABX
	modeABY
	modeREL
	modeIND
	modeIDX
	modeIDY
)

// resolveAddress sets c.absAddr (or c.relAddr for branches, or
// c.accumulatorMode for ACC) for the given mode and reports whether the
// effective address crossed a page boundary from its base — the signal
// read instructions and taken branches use to add a cycle.
func (c *CPU) resolveAddress(mode addrMode) bool {
	switch mode {
	case modeIMP:
		return false

	case modeACC:
		c.accumulatorMode = true
		return false

	case modeIMM:
		c.absAddr = c.PC
		c.PC++
		return false

	case modeZP0:
		c.absAddr = uint16(c.bus.Read(c.PC))
		c.PC++
		return false

	case modeZPX:
		c.absAddr = uint16(c.bus.Read(c.PC)+c.X) & 0x00FF
		c.PC++
		return false

	case modeZPY:
		c.absAddr = uint16(c.bus.Read(c.PC)+c.Y) & 0x00FF
		c.PC++
		return false

	case modeABS:
		c.absAddr = c.read16(c.PC)
		c.PC += 2
		return false

	case modeABX:
		base := c.read16(c.PC)
		c.PC += 2
		c.absAddr = base + uint16(c.X)
		return (c.absAddr & 0xFF00) != (base & 0xFF00)

	case modeABY:
		base := c.read16(c.PC)
		c.PC += 2
		c.absAddr = base + uint16(c.Y)
		return (c.absAddr & 0xFF00) != (base & 0xFF00)

	case modeREL:
		offset := uint16(c.bus.Read(c.PC))
		c.PC++
		if offset&0x80 != 0 {
			offset |= 0xFF00 // sign-extend the 8-bit offset
		}
		c.relAddr = offset
		return false

	case modeIND:
		ptr := c.read16(c.PC)
		c.PC += 2
		var lo, hi uint16
		lo = uint16(c.bus.Read(ptr))
		if ptr&0x00FF == 0x00FF {
			// Documented page-wrap bug: the high byte is fetched from the
			// start of the same page, not the next page.
			hi = uint16(c.bus.Read(ptr & 0xFF00))
		} else {
			hi = uint16(c.bus.Read(ptr + 1))
		}
		c.absAddr = hi<<8 | lo
		return false

	case modeIDX:
		base := c.bus.Read(c.PC)
		c.PC++
		zp := uint16(base+c.X) & 0x00FF
		lo := uint16(c.bus.Read(zp))
		hi := uint16(c.bus.Read((zp + 1) & 0x00FF))
		c.absAddr = hi<<8 | lo
		return false

	case modeIDY:
		zp := uint16(c.bus.Read(c.PC))
		c.PC++
		lo := uint16(c.bus.Read(zp))
		hi := uint16(c.bus.Read((zp + 1) & 0x00FF))
		base := hi<<8 | lo
		c.absAddr = base + uint16(c.Y)
		return (c.absAddr & 0xFF00) != (base & 0xFF00)
	}
	return false
}

// branch applies a taken branch's PC update and records the extra cycles
// consumed (+1, or +2 on a page cross) in branchExtra, which step() folds
// into cyclesRemaining once the instruction's base cost has been set.
func (c *CPU) branch() {
	target := c.PC + c.relAddr
	if (target & 0xFF00) != (c.PC & 0xFF00) {
		c.branchExtra = 2
	} else {
		c.branchExtra = 1
	}
	c.PC = target
}
