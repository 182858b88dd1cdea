package input

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetButtonsCombinesMask(t *testing.T) {
	c := New()
	c.SetButtons(0, ButtonA|ButtonStart|ButtonRight)
	require.Equal(t, ButtonA|ButtonStart|ButtonRight, c.buttons[0])
}

func TestStrobeHighLatchesLiveAButton(t *testing.T) {
	c := New()
	c.Write(0x01)
	require.Equal(t, uint8(0), c.Read(0))

	c.SetButtons(0, ButtonA)
	require.Equal(t, uint8(1), c.Read(0), "while strobed, reads track the live A-button bit")
}

func TestReadSequenceMatchesStandardButtonOrder(t *testing.T) {
	c := New()
	c.SetButtons(0, ButtonA|ButtonStart|ButtonRight)
	c.Write(0x01)
	c.Write(0x00)

	// A, B, Select, Start, Up, Down, Left, Right
	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1}
	for i, w := range want {
		require.Equal(t, w, c.Read(0), "bit %d of the read sequence", i)
	}
}

func TestReadExhaustedSequencePadsWithOnes(t *testing.T) {
	c := New()
	c.SetButtons(0, ButtonA)
	c.Write(0x01)
	c.Write(0x00)
	for i := 0; i < 8; i++ {
		c.Read(0)
	}
	require.Equal(t, uint8(1), c.Read(0), "real hardware shift registers pad with 1s past the 8th read")
}

func TestButtonChangeDuringStrobeIsVisibleImmediately(t *testing.T) {
	c := New()
	c.SetButtons(0, ButtonA)
	c.Write(0x01) // strobe high: reads track the live button state

	c.SetButtons(0, 0)
	require.Equal(t, uint8(0), c.Read(0))
}

func TestButtonChangeAfterLatchUsesSnapshot(t *testing.T) {
	c := New()
	c.SetButtons(0, ButtonA|ButtonB)
	c.Write(0x01)
	c.Write(0x00) // falling edge: snapshot taken

	c.SetButtons(0, 0) // live state changes, snapshot must not
	require.Equal(t, uint8(1), c.Read(0), "A from snapshot")
	require.Equal(t, uint8(1), c.Read(0), "B from snapshot")
}

func TestPortsAreIndependent(t *testing.T) {
	c := New()
	c.SetButtons(0, ButtonA)
	c.SetButtons(1, ButtonB)
	c.Write(0x01)
	c.Write(0x00)

	require.Equal(t, uint8(1), c.Read(0))
	require.Equal(t, uint8(0), c.Read(1))
}

func TestOutOfRangePortIsIgnored(t *testing.T) {
	c := New()
	c.SetButtons(5, ButtonA) // ignored, no panic
	require.Equal(t, uint8(0), c.Read(5))
}
