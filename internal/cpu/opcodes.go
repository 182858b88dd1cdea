package cpu

// instructionEntry is one row of the static 256-entry decode table: an
// addressing mode, the operation handler (returning whether its
// addressing mode's detected page-cross may add a cycle), and the base
// cycle count.
type instructionEntry struct {
	mode   addrMode
	op     func(*CPU) bool
	cycles uint8
}

func e(mode addrMode, op func(*CPU) bool, cycles uint8) instructionEntry {
	return instructionEntry{mode, op, cycles}
}

// opcodeTable is indexed by opcode byte. Entries not explicitly set below
// default to the jam/illegal {IMP, opXXX, 2}, which halts the CPU.
var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]instructionEntry {
	var t [256]instructionEntry
	for i := range t {
		t[i] = e(modeIMP, opXXX, 2)
	}

	// --- Documented opcodes ---

	t[0x69] = e(modeIMM, opADC, 2)
	t[0x65] = e(modeZP0, opADC, 3)
	t[0x75] = e(modeZPX, opADC, 4)
	t[0x6D] = e(modeABS, opADC, 4)
	t[0x7D] = e(modeABX, opADC, 4)
	t[0x79] = e(modeABY, opADC, 4)
	t[0x61] = e(modeIDX, opADC, 6)
	t[0x71] = e(modeIDY, opADC, 5)

	t[0xE9] = e(modeIMM, opSBC, 2)
	t[0xE5] = e(modeZP0, opSBC, 3)
	t[0xF5] = e(modeZPX, opSBC, 4)
	t[0xED] = e(modeABS, opSBC, 4)
	t[0xFD] = e(modeABX, opSBC, 4)
	t[0xF9] = e(modeABY, opSBC, 4)
	t[0xE1] = e(modeIDX, opSBC, 6)
	t[0xF1] = e(modeIDY, opSBC, 5)
	t[0xEB] = e(modeIMM, opSBC, 2) // illegal SBC alias

	t[0x29] = e(modeIMM, opAND, 2)
	t[0x25] = e(modeZP0, opAND, 3)
	t[0x35] = e(modeZPX, opAND, 4)
	t[0x2D] = e(modeABS, opAND, 4)
	t[0x3D] = e(modeABX, opAND, 4)
	t[0x39] = e(modeABY, opAND, 4)
	t[0x21] = e(modeIDX, opAND, 6)
	t[0x31] = e(modeIDY, opAND, 5)

	t[0x09] = e(modeIMM, opORA, 2)
	t[0x05] = e(modeZP0, opORA, 3)
	t[0x15] = e(modeZPX, opORA, 4)
	t[0x0D] = e(modeABS, opORA, 4)
	t[0x1D] = e(modeABX, opORA, 4)
	t[0x19] = e(modeABY, opORA, 4)
	t[0x01] = e(modeIDX, opORA, 6)
	t[0x11] = e(modeIDY, opORA, 5)

	t[0x49] = e(modeIMM, opEOR, 2)
	t[0x45] = e(modeZP0, opEOR, 3)
	t[0x55] = e(modeZPX, opEOR, 4)
	t[0x4D] = e(modeABS, opEOR, 4)
	t[0x5D] = e(modeABX, opEOR, 4)
	t[0x59] = e(modeABY, opEOR, 4)
	t[0x41] = e(modeIDX, opEOR, 6)
	t[0x51] = e(modeIDY, opEOR, 5)

	t[0x24] = e(modeZP0, opBIT, 3)
	t[0x2C] = e(modeABS, opBIT, 4)

	t[0xC9] = e(modeIMM, opCMP, 2)
	t[0xC5] = e(modeZP0, opCMP, 3)
	t[0xD5] = e(modeZPX, opCMP, 4)
	t[0xCD] = e(modeABS, opCMP, 4)
	t[0xDD] = e(modeABX, opCMP, 4)
	t[0xD9] = e(modeABY, opCMP, 4)
	t[0xC1] = e(modeIDX, opCMP, 6)
	t[0xD1] = e(modeIDY, opCMP, 5)

	t[0xE0] = e(modeIMM, opCPX, 2)
	t[0xE4] = e(modeZP0, opCPX, 3)
	t[0xEC] = e(modeABS, opCPX, 4)

	t[0xC0] = e(modeIMM, opCPY, 2)
	t[0xC4] = e(modeZP0, opCPY, 3)
	t[0xCC] = e(modeABS, opCPY, 4)

	t[0xA9] = e(modeIMM, opLDA, 2)
	t[0xA5] = e(modeZP0, opLDA, 3)
	t[0xB5] = e(modeZPX, opLDA, 4)
	t[0xAD] = e(modeABS, opLDA, 4)
	t[0xBD] = e(modeABX, opLDA, 4)
	t[0xB9] = e(modeABY, opLDA, 4)
	t[0xA1] = e(modeIDX, opLDA, 6)
	t[0xB1] = e(modeIDY, opLDA, 5)

	t[0xA2] = e(modeIMM, opLDX, 2)
	t[0xA6] = e(modeZP0, opLDX, 3)
	t[0xB6] = e(modeZPY, opLDX, 4)
	t[0xAE] = e(modeABS, opLDX, 4)
	t[0xBE] = e(modeABY, opLDX, 4)

	t[0xA0] = e(modeIMM, opLDY, 2)
	t[0xA4] = e(modeZP0, opLDY, 3)
	t[0xB4] = e(modeZPX, opLDY, 4)
	t[0xAC] = e(modeABS, opLDY, 4)
	t[0xBC] = e(modeABX, opLDY, 4)

	t[0x85] = e(modeZP0, opSTA, 3)
	t[0x95] = e(modeZPX, opSTA, 4)
	t[0x8D] = e(modeABS, opSTA, 4)
	t[0x9D] = e(modeABX, opSTA, 5)
	t[0x99] = e(modeABY, opSTA, 5)
	t[0x81] = e(modeIDX, opSTA, 6)
	t[0x91] = e(modeIDY, opSTA, 6)

	t[0x86] = e(modeZP0, opSTX, 3)
	t[0x96] = e(modeZPY, opSTX, 4)
	t[0x8E] = e(modeABS, opSTX, 4)

	t[0x84] = e(modeZP0, opSTY, 3)
	t[0x94] = e(modeZPX, opSTY, 4)
	t[0x8C] = e(modeABS, opSTY, 4)

	t[0xAA] = e(modeIMP, opTAX, 2)
	t[0xA8] = e(modeIMP, opTAY, 2)
	t[0xBA] = e(modeIMP, opTSX, 2)
	t[0x8A] = e(modeIMP, opTXA, 2)
	t[0x98] = e(modeIMP, opTYA, 2)
	t[0x9A] = e(modeIMP, opTXS, 2)

	t[0x0A] = e(modeACC, opASL, 2)
	t[0x06] = e(modeZP0, opASL, 5)
	t[0x16] = e(modeZPX, opASL, 6)
	t[0x0E] = e(modeABS, opASL, 6)
	t[0x1E] = e(modeABX, opASL, 7)

	t[0x4A] = e(modeACC, opLSR, 2)
	t[0x46] = e(modeZP0, opLSR, 5)
	t[0x56] = e(modeZPX, opLSR, 6)
	t[0x4E] = e(modeABS, opLSR, 6)
	t[0x5E] = e(modeABX, opLSR, 7)

	t[0x2A] = e(modeACC, opROL, 2)
	t[0x26] = e(modeZP0, opROL, 5)
	t[0x36] = e(modeZPX, opROL, 6)
	t[0x2E] = e(modeABS, opROL, 6)
	t[0x3E] = e(modeABX, opROL, 7)

	t[0x6A] = e(modeACC, opROR, 2)
	t[0x66] = e(modeZP0, opROR, 5)
	t[0x76] = e(modeZPX, opROR, 6)
	t[0x6E] = e(modeABS, opROR, 6)
	t[0x7E] = e(modeABX, opROR, 7)

	t[0xE6] = e(modeZP0, opINC, 5)
	t[0xF6] = e(modeZPX, opINC, 6)
	t[0xEE] = e(modeABS, opINC, 6)
	t[0xFE] = e(modeABX, opINC, 7)
	t[0xE8] = e(modeIMP, opINX, 2)
	t[0xC8] = e(modeIMP, opINY, 2)

	t[0xC6] = e(modeZP0, opDEC, 5)
	t[0xD6] = e(modeZPX, opDEC, 6)
	t[0xCE] = e(modeABS, opDEC, 6)
	t[0xDE] = e(modeABX, opDEC, 7)
	t[0xCA] = e(modeIMP, opDEX, 2)
	t[0x88] = e(modeIMP, opDEY, 2)

	t[0x90] = e(modeREL, opBCC, 2)
	t[0xB0] = e(modeREL, opBCS, 2)
	t[0xF0] = e(modeREL, opBEQ, 2)
	t[0xD0] = e(modeREL, opBNE, 2)
	t[0x30] = e(modeREL, opBMI, 2)
	t[0x10] = e(modeREL, opBPL, 2)
	t[0x50] = e(modeREL, opBVC, 2)
	t[0x70] = e(modeREL, opBVS, 2)

	t[0x38] = e(modeIMP, opSEC, 2)
	t[0x18] = e(modeIMP, opCLC, 2)
	t[0x78] = e(modeIMP, opSEI, 2)
	t[0x58] = e(modeIMP, opCLI, 2)
	t[0xF8] = e(modeIMP, opSED, 2)
	t[0xD8] = e(modeIMP, opCLD, 2)
	t[0xB8] = e(modeIMP, opCLV, 2)

	t[0x48] = e(modeIMP, opPHA, 3)
	t[0x08] = e(modeIMP, opPHP, 3)
	t[0x68] = e(modeIMP, opPLA, 4)
	t[0x28] = e(modeIMP, opPLP, 4)

	t[0x4C] = e(modeABS, opJMP, 3)
	t[0x6C] = e(modeIND, opJMP, 5)
	t[0x20] = e(modeABS, opJSR, 6)
	t[0x60] = e(modeIMP, opRTS, 6)
	t[0x00] = e(modeIMP, opBRK, 7)
	t[0x40] = e(modeIMP, opRTI, 6)

	t[0xEA] = e(modeIMP, opNOP, 2)

	// --- Common illegal opcodes ---

	t[0x07] = e(modeZP0, opSLO, 5)
	t[0x17] = e(modeZPX, opSLO, 6)
	t[0x0F] = e(modeABS, opSLO, 6)
	t[0x1F] = e(modeABX, opSLO, 7)
	t[0x1B] = e(modeABY, opSLO, 7)
	t[0x03] = e(modeIDX, opSLO, 8)
	t[0x13] = e(modeIDY, opSLO, 8)

	t[0x27] = e(modeZP0, opRLA, 5)
	t[0x37] = e(modeZPX, opRLA, 6)
	t[0x2F] = e(modeABS, opRLA, 6)
	t[0x3F] = e(modeABX, opRLA, 7)
	t[0x3B] = e(modeABY, opRLA, 7)
	t[0x23] = e(modeIDX, opRLA, 8)
	t[0x33] = e(modeIDY, opRLA, 8)

	t[0x47] = e(modeZP0, opSRE, 5)
	t[0x57] = e(modeZPX, opSRE, 6)
	t[0x4F] = e(modeABS, opSRE, 6)
	t[0x5F] = e(modeABX, opSRE, 7)
	t[0x5B] = e(modeABY, opSRE, 7)
	t[0x43] = e(modeIDX, opSRE, 8)
	t[0x53] = e(modeIDY, opSRE, 8)

	t[0x67] = e(modeZP0, opRRA, 5)
	t[0x77] = e(modeZPX, opRRA, 6)
	t[0x6F] = e(modeABS, opRRA, 6)
	t[0x7F] = e(modeABX, opRRA, 7)
	t[0x7B] = e(modeABY, opRRA, 7)
	t[0x63] = e(modeIDX, opRRA, 8)
	t[0x73] = e(modeIDY, opRRA, 8)

	t[0x87] = e(modeZP0, opSAX, 3)
	t[0x97] = e(modeZPY, opSAX, 4)
	t[0x8F] = e(modeABS, opSAX, 4)
	t[0x83] = e(modeIDX, opSAX, 6)

	t[0xA7] = e(modeZP0, opLAX, 3)
	t[0xB7] = e(modeZPY, opLAX, 4)
	t[0xAF] = e(modeABS, opLAX, 4)
	t[0xBF] = e(modeABY, opLAX, 4)
	t[0xA3] = e(modeIDX, opLAX, 6)
	t[0xB3] = e(modeIDY, opLAX, 5)

	t[0xC7] = e(modeZP0, opDCP, 5)
	t[0xD7] = e(modeZPX, opDCP, 6)
	t[0xCF] = e(modeABS, opDCP, 6)
	t[0xDF] = e(modeABX, opDCP, 7)
	t[0xDB] = e(modeABY, opDCP, 7)
	t[0xC3] = e(modeIDX, opDCP, 8)
	t[0xD3] = e(modeIDY, opDCP, 8)

	t[0xE7] = e(modeZP0, opISB, 5)
	t[0xF7] = e(modeZPX, opISB, 6)
	t[0xEF] = e(modeABS, opISB, 6)
	t[0xFF] = e(modeABX, opISB, 7)
	t[0xFB] = e(modeABY, opISB, 7)
	t[0xE3] = e(modeIDX, opISB, 8)
	t[0xF3] = e(modeIDY, opISB, 8)

	// NOP/SKB/IGN aliases: single-byte NOPs, plus operand-reading variants
	// whose addressing-mode page-cross is honored (matching nestest).
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		t[op] = e(modeIMP, opNOP, 2)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		t[op] = e(modeIMM, opSKB, 2)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		t[op] = e(modeZP0, opSKB, 3)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		t[op] = e(modeZPX, opSKB, 4)
	}
	t[0x0C] = e(modeABS, opSKB, 4)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		t[op] = e(modeABX, opSKB, 4)
	}

	// Jam/KIL opcodes: genuinely unimplemented, the CPU halts on them.
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		t[op] = e(modeIMP, opXXX, 2)
	}

	return t
}

// opSKB discards its operand read without otherwise affecting state; used
// by illegal NOP aliases that still read through their addressing mode
// (and so are subject to the same page-cross penalty as a real load).
func opSKB(c *CPU) bool {
	c.fetchOperand()
	return true
}
