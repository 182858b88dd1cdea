package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validROM(prgBanks, chrBanks uint8, flags6 uint8) []byte {
	rom := make([]byte, 16+int(prgBanks)*prgBankSize+int(chrBanks)*chrBankSize)
	copy(rom[:4], magic[:])
	rom[4] = prgBanks
	rom[5] = chrBanks
	rom[6] = flags6
	return rom
}

func TestLoadRejectsTruncatedHeader(t *testing.T) {
	_, err := Load([]byte{'N', 'E', 'S'})
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, ReasonTruncated, le.Reason)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	rom := validROM(1, 1, 0)
	rom[0] = 'X'
	_, err := Load(rom)
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, ReasonBadMagic, le.Reason)
}

func TestLoadRejectsNonZeroMapper(t *testing.T) {
	rom := validROM(1, 1, 0x10) // mapper nibble in flags6 high bits = 1
	_, err := Load(rom)
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, ReasonUnsupportedMapper, le.Reason)
}

func TestLoadHorizontalAndVerticalMirroring(t *testing.T) {
	cart, err := Load(validROM(1, 1, 0x00))
	require.NoError(t, err)
	require.Equal(t, MirrorHorizontal, cart.Mirror())

	cart, err = Load(validROM(1, 1, 0x01))
	require.NoError(t, err)
	require.Equal(t, MirrorVertical, cart.Mirror())
}

func TestCHRRAMWhenNoCHRBanks(t *testing.T) {
	cart, err := Load(validROM(1, 0, 0x00))
	require.NoError(t, err)
	require.True(t, cart.HasCHRRAM())

	cart.WriteCHR(0x0000, 0x42)
	require.Equal(t, uint8(0x42), cart.ReadCHR(0x0000))
}

func TestCHRROMWritesAreDropped(t *testing.T) {
	cart, err := Load(validROM(1, 1, 0x00))
	require.NoError(t, err)
	require.False(t, cart.HasCHRRAM())

	before := cart.ReadCHR(0x0000)
	cart.WriteCHR(0x0000, before+1)
	require.Equal(t, before, cart.ReadCHR(0x0000))
}

func TestSRAMReadWrite(t *testing.T) {
	cart, err := Load(validROM(1, 1, 0x00))
	require.NoError(t, err)

	cart.WritePRG(0x6000, 0xAB)
	require.Equal(t, uint8(0xAB), cart.ReadPRG(0x6000))
}

func TestSinglePRGBankMirroring(t *testing.T) {
	rom := validROM(1, 1, 0x00)
	rom[16] = 0x11 // first byte of the single 16KiB PRG bank
	cart, err := Load(rom)
	require.NoError(t, err)

	require.Equal(t, uint8(0x11), cart.ReadPRG(0x8000))
	require.Equal(t, uint8(0x11), cart.ReadPRG(0xC000), "a single 16KiB PRG bank must mirror into $C000-$FFFF")
}
