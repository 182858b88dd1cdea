// Package apu is a silent placeholder for the NES audio processing unit.
// It accepts every register write a guest program makes so that pulse,
// triangle, noise, DMC, and frame-counter code paths never fault, but it
// synthesizes no samples: audio is an explicit Non-goal of this core.
package apu

// APU owns the $4000-$4013, $4015, and $4017 register bytes as plain
// storage, with no side effects beyond what ReadStatus reports.
type APU struct {
	regs [0x18]uint8
}

// New returns a freshly reset APU.
func New() *APU {
	a := &APU{}
	a.Reset()
	return a
}

// Reset zeroes every register.
func (a *APU) Reset() {
	for i := range a.regs {
		a.regs[i] = 0
	}
}

// WriteRegister stores a byte written to $4000-$4013, $4015, or $4017.
func (a *APU) WriteRegister(addr uint16, value uint8) {
	if idx, ok := a.index(addr); ok {
		a.regs[idx] = value
	}
}

// ReadStatus services a CPU read of $4015. It always returns 0: no
// channel ever reports length-counter activity because no channel ever
// runs, and frame-IRQ timing is out of scope.
func (a *APU) ReadStatus() uint8 { return 0 }

func (a *APU) index(addr uint16) (int, bool) {
	switch {
	case addr >= 0x4000 && addr <= 0x4013:
		return int(addr - 0x4000), true
	case addr == 0x4015:
		return 0x15, true
	case addr == 0x4017:
		return 0x17, true
	}
	return 0, false
}
