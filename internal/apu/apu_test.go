package apu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusAlwaysSilent(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0xFF)
	require.Equal(t, uint8(0), a.ReadStatus())
}

func TestWriteRegisterStoresInRange(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0x12)
	a.WriteRegister(0x4013, 0x34)
	a.WriteRegister(0x4017, 0x56)
	require.Equal(t, uint8(0x12), a.regs[0x00])
	require.Equal(t, uint8(0x34), a.regs[0x13])
	require.Equal(t, uint8(0x56), a.regs[0x17])
}

func TestWriteRegisterIgnoresOutOfRange(t *testing.T) {
	a := New()
	a.WriteRegister(0x4014, 0xFF) // OAM DMA lives on the bus, not here
	a.WriteRegister(0x4016, 0xFF) // controller strobe
	require.Equal(t, [0x18]uint8{}, a.regs)
}

func TestResetZeroesRegisters(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0xFF)
	a.Reset()
	require.Equal(t, [0x18]uint8{}, a.regs)
}
