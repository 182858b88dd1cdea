// Package cpu implements the NES's 6502-derived CPU: documented and common
// illegal opcodes, all addressing modes, flag semantics, and interrupt
// entry/exit, driven one host cycle at a time.
package cpu

import (
	"errors"

	"github.com/golang/glog"
)

// Bus is the CPU's view of the outside world. Every read or write the CPU
// issues through Bus costs exactly one CPU cycle; the CPU never peeks at
// memory during normal execution.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// ErrHalted is returned from Clock once the CPU has executed a KIL/jam
// opcode. The CPU stops fetching further instructions until Reset is
// called; other components may keep running.
var ErrHalted = errors.New("cpu: halted on illegal/jam opcode")

const (
	stackBase   = 0x0100
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// CPU is the 6502 register file and execution state.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       Status

	bus Bus

	cyclesRemaining int
	clockCount      uint64

	// Scratch set by addressing-mode resolvers and consumed by operation
	// handlers.
	absAddr uint16
	relAddr uint16
	fetched uint8
	// branchExtra accumulates the taken-branch cycle penalty (+1, or +2 on
	// a page cross) set by branch() and folded into cyclesRemaining by
	// step() after the base cycle count is assigned.
	branchExtra int
	// accumulatorMode is true when the current instruction's operand is
	// the accumulator rather than a memory location, so the operation
	// writes back to A instead of issuing a store.
	accumulatorMode bool

	opcode uint8

	pendingNMI bool
	pendingIRQ bool
	halted     bool
}

// New creates a CPU wired to bus. Reset must be called before the first
// Clock (or call New then Reset explicitly to match a specific vector).
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	return c
}

// Reset performs the documented 6502 reset sequence: registers cleared
// (A=X=Y=0), SP=$FD, P=U|I, PC loaded from the reset vector, and the
// sequence consumes 7 cycles.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.PC = c.read16(resetVector)
	c.cyclesRemaining = 7
	c.clockCount = 0
	c.pendingNMI = false
	c.pendingIRQ = false
	c.halted = false
}

// RaiseNMI latches a non-maskable interrupt edge. It is delivered at the
// next instruction boundary.
func (c *CPU) RaiseNMI() { c.pendingNMI = true }

// RaiseIRQ latches a level-triggered interrupt request; it has no effect
// while FlagInterrupt is set.
func (c *CPU) RaiseIRQ() { c.pendingIRQ = true }

// Halted reports whether the CPU has reached a KIL/jam opcode.
func (c *CPU) Halted() bool { return c.halted }

// Stall holds the CPU idle for the given number of additional cycles,
// used by the bus to implement the $4014 OAM DMA copy.
func (c *CPU) Stall(cycles int) { c.cyclesRemaining += cycles }

// ClockCount returns the number of cycles executed since the last Reset,
// used to determine OAM DMA's odd/even alignment penalty.
func (c *CPU) ClockCount() uint64 { return c.clockCount }

// PeekPC returns the program counter without side effects, for debugging
// and trace logging.
func (c *CPU) PeekPC() uint16 { return c.PC }

// Clock advances the CPU by exactly one host cycle. When cyclesRemaining
// reaches zero it either services a pending interrupt (NMI first, then an
// unmasked IRQ), priming cyclesRemaining with the 7-cycle entry sequence,
// or fetches, decodes, and fully executes the next instruction, priming
// cyclesRemaining with that instruction's total cycle count (base +
// addressing/branch penalties); either way the one cycle this call itself
// represents is then subtracted.
func (c *CPU) Clock() error {
	if c.halted {
		return ErrHalted
	}

	if c.cyclesRemaining == 0 {
		if c.pendingNMI {
			c.pendingNMI = false
			c.interrupt(nmiVector, false)
		} else if c.pendingIRQ && !c.P.has(FlagInterrupt) {
			c.pendingIRQ = false
			c.interrupt(irqVector, false)
		} else {
			c.step()
			if c.halted {
				return ErrHalted
			}
		}
	}

	c.cyclesRemaining--
	c.clockCount++
	return nil
}

// step fetches, decodes, and executes one instruction, setting
// cyclesRemaining to its total cost.
func (c *CPU) step() {
	c.opcode = c.bus.Read(c.PC)
	glog.V(2).Infof("cpu: pc=%04X opcode=%02X a=%02X x=%02X y=%02X sp=%02X p=%02X", c.PC, c.opcode, c.A, c.X, c.Y, c.SP, c.P.bits())
	c.PC++

	c.P = c.P.with(FlagUnused, true)

	entry := &opcodeTable[c.opcode]

	c.accumulatorMode = false
	c.branchExtra = 0
	pageCrossed := c.resolveAddress(entry.mode)
	extra := entry.op(c)
	if c.halted {
		glog.Errorf("cpu: halted on illegal opcode %02X at %04X", c.opcode, c.PC-1)
		return
	}

	total := int(entry.cycles)
	if pageCrossed && extra {
		total++
	}
	total += c.branchExtra
	c.cyclesRemaining = total

	c.P = c.P.with(FlagUnused, true)
	c.P = c.P.with(FlagBreak, false)
}

// interrupt performs the shared IRQ/NMI/BRK entry sequence: two
// already-implied dummy reads at PC (modeled here as the cycles spent,
// not literal bus reads, since no device is sensitive to them), push PCH,
// PCL, push P (with the caller-selected break bit), set I, and load PC
// from vector.
func (c *CPU) interrupt(vector uint16, brk bool) {
	c.push16(c.PC)
	pushed := c.P.with(FlagUnused, true).with(FlagBreak, brk)
	c.push(pushed.bits())
	c.P = c.P.with(FlagInterrupt, true)
	c.PC = c.read16(vector)
	c.cyclesRemaining = 7
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return hi<<8 | lo
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.bus.Read(stackBase + uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

func (c *CPU) setZN(v uint8) {
	c.P = c.P.with(FlagZero, v == 0)
	c.P = c.P.with(FlagNegative, v&0x80 != 0)
}

// fetchOperand returns the byte the current instruction operates on,
// reading from the accumulator or from absAddr depending on addressing
// mode.
func (c *CPU) fetchOperand() uint8 {
	if c.accumulatorMode {
		c.fetched = c.A
	} else {
		c.fetched = c.bus.Read(c.absAddr)
	}
	return c.fetched
}

func (c *CPU) writeResult(v uint8) {
	if c.accumulatorMode {
		c.A = v
		return
	}
	c.bus.Write(c.absAddr, v)
}
