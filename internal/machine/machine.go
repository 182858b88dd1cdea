// Package machine gathers a full NES into a single owned record: bus,
// CPU, PPU, APU and controllers, wired once at construction. The
// components still reference each other: the bus holds the PPU,
// cartridge, APU, controllers and (for OAM DMA stalls) the CPU, the CPU
// holds the bus, and the PPU holds the cartridge.
package machine

import (
	"github.com/golang/glog"

	"gones/internal/apu"
	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/ppu"
)

// FrameBuffer is one completed frame of 6-bit NES palette indices.
type FrameBuffer = ppu.FrameBuffer

// Machine owns every component of one NES and drives the 3:1 PPU:CPU
// clock divider between them.
type Machine struct {
	cart        *cartridge.Cartridge
	bus         *bus.Bus
	cpu         *cpu.CPU
	ppu         *ppu.PPU
	apu         *apu.APU
	controllers *input.Controllers

	divider int
}

// New parses romBytes as an iNES image and wires a complete machine
// around it, then resets it to its power-on state.
func New(romBytes []byte) (*Machine, error) {
	cart, err := cartridge.Load(romBytes)
	if err != nil {
		return nil, err
	}

	p := ppu.New(cart)
	a := apu.New()
	ctl := input.New()
	b := bus.New(p, cart, a, ctl)
	c := cpu.New(b)
	b.AttachCPU(c)

	m := &Machine{cart: cart, bus: b, cpu: c, ppu: p, apu: a, controllers: ctl}
	m.Reset()
	return m, nil
}

// Reset returns the CPU, PPU, APU and controllers to their power-on state
// and clears the clock divider.
func (m *Machine) Reset() {
	m.cpu.Reset()
	m.ppu.Reset()
	m.apu.Reset()
	*m.controllers = *input.New()
	m.divider = 0
}

// Tick advances the machine by one PPU dot. Every third call also steps
// the CPU by one cycle; if the PPU raised its NMI edge since the CPU's
// last step, it is delivered before the CPU's next instruction fetch.
// Tick returns cpu.ErrHalted once the CPU reaches a KIL/jam opcode; the
// caller must call Reset to continue.
func (m *Machine) Tick() error {
	m.ppu.Tick()
	if m.ppu.ConsumeNMI() {
		m.cpu.RaiseNMI()
	}

	m.divider++
	if m.divider < 3 {
		return nil
	}
	m.divider = 0

	if err := m.cpu.Clock(); err != nil {
		glog.Errorf("machine: cpu halted: %v", err)
		return err
	}
	return nil
}

// Frame runs Tick until the PPU completes a frame, then returns it.
func (m *Machine) Frame() (FrameBuffer, error) {
	for {
		if err := m.Tick(); err != nil {
			return FrameBuffer{}, err
		}
		if m.ppu.ConsumeFrameComplete() {
			return m.ppu.FrameBuffer(), nil
		}
	}
}

// SetButtons forwards a controller port's live button mask.
func (m *Machine) SetButtons(port int, mask uint8) {
	m.controllers.SetButtons(port, mask)
}
