// Package cartridge implements iNES ROM loading and the NROM (mapper 0)
// memory mapping used to translate CPU and PPU addresses into cartridge
// storage.
package cartridge

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"
)

// MirrorMode is the nametable mirroring arrangement read from the iNES
// header.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorFourScreen
)

const (
	prgBankSize = 16 * 1024
	chrBankSize = 8 * 1024
	sramSize    = 0x2000
	headerSize  = 16
	trainerSize = 512
)

var magic = [4]byte{'N', 'E', 'S', 0x1A}

// Reason enumerates why a ROM image failed to load.
type Reason int

const (
	ReasonBadMagic Reason = iota
	ReasonTruncated
	ReasonUnsupportedMapper
)

// LoadError reports a fatal, construction-time failure to parse an iNES
// image. It is always returned, never panicked.
type LoadError struct {
	Reason Reason
	Detail string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cartridge: %s", e.Detail)
}

// Cartridge owns a cartridge's PRG-ROM, CHR-ROM-or-RAM, and PRG-RAM (SRAM)
// byte arrays, and routes CPU/PPU accesses through its mapper.
type Cartridge struct {
	prg  []uint8
	chr  []uint8
	sram [sramSize]uint8

	mapperID  uint8
	mapper    mapper
	mirror    MirrorMode
	hasCHRRAM bool
}

type header struct {
	Magic      [4]byte
	PRGBanks   uint8
	CHRBanks   uint8
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	Flags9     uint8
	Flags10    uint8
	_          [5]byte
}

// Load parses a complete iNES v1 image held in memory. File I/O is a
// Non-goal for this package: callers read the ROM bytes themselves.
func Load(rom []byte) (*Cartridge, error) {
	if len(rom) < headerSize {
		return nil, &LoadError{ReasonTruncated, "file shorter than the 16-byte iNES header"}
	}

	var h header
	if err := binary.Read(bytes.NewReader(rom[:headerSize]), binary.LittleEndian, &h); err != nil {
		return nil, &LoadError{ReasonTruncated, "malformed header"}
	}
	if h.Magic != magic {
		return nil, &LoadError{ReasonBadMagic, "missing \"NES\\x1A\" magic"}
	}
	if h.PRGBanks == 0 {
		return nil, &LoadError{ReasonTruncated, "PRG ROM size cannot be zero"}
	}

	mapperID := (h.Flags7 & 0xF0) | (h.Flags6 >> 4)
	if mapperID != 0 {
		return nil, &LoadError{ReasonUnsupportedMapper, fmt.Sprintf("mapper %d is not supported (only NROM/0)", mapperID)}
	}

	offset := headerSize
	if h.Flags6&0x04 != 0 {
		offset += trainerSize
	}

	prgSize := int(h.PRGBanks) * prgBankSize
	if offset+prgSize > len(rom) {
		return nil, &LoadError{ReasonTruncated, "file truncated in PRG ROM region"}
	}
	prg := make([]uint8, prgSize)
	copy(prg, rom[offset:offset+prgSize])
	offset += prgSize

	hasCHRRAM := h.CHRBanks == 0
	chrSize := int(h.CHRBanks) * chrBankSize
	if hasCHRRAM {
		chrSize = chrBankSize
	}
	chr := make([]uint8, chrSize)
	if !hasCHRRAM {
		avail := len(rom) - offset
		if avail < chrSize {
			glog.Warningf("cartridge: CHR region short by %d bytes, zero-padding", chrSize-avail)
			if avail > 0 {
				copy(chr, rom[offset:])
			}
		} else {
			copy(chr, rom[offset:offset+chrSize])
		}
	}

	mirror := MirrorHorizontal
	switch {
	case h.Flags6&0x08 != 0:
		mirror = MirrorFourScreen
	case h.Flags6&0x01 != 0:
		mirror = MirrorVertical
	}

	return &Cartridge{
		prg:       prg,
		chr:       chr,
		mapperID:  mapperID,
		mapper:    newNROMMapper(h.PRGBanks, h.CHRBanks),
		mirror:    mirror,
		hasCHRRAM: hasCHRRAM,
	}, nil
}

// Mirror reports the nametable mirroring mode the PPU applies.
func (c *Cartridge) Mirror() MirrorMode { return c.mirror }

// HasCHRRAM reports whether the cartridge's character memory is writable.
func (c *Cartridge) HasCHRRAM() bool { return c.hasCHRRAM }

// ReadPRG services a CPU-side read in $4020-$FFFF. Addresses in
// $6000-$7FFF hit PRG-RAM directly, bypassing the mapper (NROM boards wire
// SRAM independently of bank selection); addresses the mapper does not
// claim return 0, matching real open-bus behavior closely enough for a
// guest program that never reads unmapped cartridge space.
func (c *Cartridge) ReadPRG(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		return c.sram[addr-0x6000]
	}
	if claimed, off := c.mapper.cpuRead(addr); claimed && int(off) < len(c.prg) {
		return c.prg[off]
	}
	return 0
}

// WritePRG services a CPU-side write. PRG-RAM writes are stored; ROM
// writes are silently dropped.
func (c *Cartridge) WritePRG(addr uint16, value uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		c.sram[addr-0x6000] = value
		return
	}
	c.mapper.cpuWrite(addr) // claimed-or-not, NROM never stores a ROM write
}

// ReadCHR services a PPU-side pattern-table read.
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	if claimed, off := c.mapper.ppuRead(addr); claimed && int(off) < len(c.chr) {
		return c.chr[off]
	}
	return 0
}

// WriteCHR services a PPU-side pattern-table write; only reachable when
// CHR-RAM is present.
func (c *Cartridge) WriteCHR(addr uint16, value uint8) {
	if claimed, off := c.mapper.ppuWrite(addr); claimed && int(off) < len(c.chr) {
		c.chr[off] = value
	}
}
