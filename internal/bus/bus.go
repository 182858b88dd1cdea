// Package bus implements the CPU-side address decode that glues work RAM,
// the PPU register window, the controller latch, the APU stub, and
// cartridge space into the single 16-bit space the CPU sees.
package bus

import (
	"github.com/golang/glog"

	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/input"
	"gones/internal/ppu"
)

// stallable is implemented by the CPU; the bus uses it to suspend CPU
// progress for the duration of an OAM DMA copy.
type stallable interface {
	Stall(cycles int)
	ClockCount() uint64
}

// Bus is the CPU's view of the NES address space.
type Bus struct {
	wram [0x0800]uint8

	PPU         *ppu.PPU
	Cart        *cartridge.Cartridge
	APU         *apu.APU
	Controllers *input.Controllers

	cpu stallable
}

// New creates a bus with no CPU attached yet; a Machine attaches the CPU
// with AttachCPU after constructing it, since the CPU and bus each need a
// reference to the other.
func New(p *ppu.PPU, cart *cartridge.Cartridge, a *apu.APU, ctl *input.Controllers) *Bus {
	return &Bus{PPU: p, Cart: cart, APU: a, Controllers: ctl}
}

// AttachCPU lets the bus stall the CPU during OAM DMA. Called once during
// Machine construction.
func (b *Bus) AttachCPU(cpu stallable) { b.cpu = cpu }

// Read services a CPU-side read.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.wram[addr&0x07FF]
	case addr <= 0x3FFF:
		v, err := b.PPU.ReadRegister(addr & 0x7)
		if err != nil {
			glog.Errorf("bus: ppu register read: %v", err)
		}
		return v
	case addr == 0x4015:
		return b.APU.ReadStatus()
	case addr == 0x4016:
		return 0x40 | b.Controllers.Read(0)
	case addr == 0x4017:
		return 0x40 | b.Controllers.Read(1)
	case addr >= 0x4000 && addr <= 0x4013, addr == 0x4014, addr >= 0x4018 && addr <= 0x401F:
		return 0
	default:
		return b.Cart.ReadPRG(addr)
	}
}

// Write services a CPU-side write.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		b.wram[addr&0x07FF] = value
	case addr <= 0x3FFF:
		if err := b.PPU.WriteRegister(addr&0x7, value); err != nil {
			glog.Errorf("bus: ppu register write: %v", err)
		}
	case addr == 0x4014:
		b.oamDMA(value)
	case addr == 0x4016:
		b.Controllers.Write(value)
	case addr == 0x4017:
		b.APU.WriteRegister(addr, value)
	case addr >= 0x4000 && addr <= 0x4013, addr == 0x4015:
		b.APU.WriteRegister(addr, value)
	case addr >= 0x4018 && addr <= 0x401F:
		// APU/IO test registers: writes dropped.
	default:
		b.Cart.WritePRG(addr, value)
	}
}

// oamDMA copies 256 bytes starting at page<<8 into PPU OAM, stalling the
// CPU for 513 cycles (514 if the current cycle count is odd).
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.PPU.DMAWriteByte(b.Read(base + uint16(i)))
	}

	stall := 513
	if b.cpu != nil && b.cpu.ClockCount()%2 == 1 {
		stall = 514
	}
	if b.cpu != nil {
		b.cpu.Stall(stall)
	}
}
