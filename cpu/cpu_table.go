package cpu

func getAC(c *Chip) uint8 { return c.AC }
func getX(c *Chip) uint8  { return c.X }
func getY(c *Chip) uint8  { return c.Y }
func getSP(c *Chip) uint8 { return c.SP }
func setAC(c *Chip, v uint8) { c.AC = v }
func setX(c *Chip, v uint8)  { c.X = v }
func setY(c *Chip, v uint8)  { c.Y = v }
func setSP(c *Chip, v uint8) { c.SP = v }

func incReg(get func(c *Chip) uint8, set func(c *Chip, v uint8)) impliedFunc {
	return impliedOp(func(c *Chip) {
		v := get(c) + 1
		set(c, v)
		c.setZN(v)
	})
}

func decReg(get func(c *Chip) uint8, set func(c *Chip, v uint8)) impliedFunc {
	return impliedOp(func(c *Chip) {
		v := get(c) - 1
		set(c, v)
		c.setZN(v)
	})
}

func setFlagOp(mask uint8, on bool) impliedFunc {
	return impliedOp(func(c *Chip) { c.setFlag(mask, on) })
}

func nop() impliedFunc {
	return impliedOp(func(c *Chip) {})
}

func readOp(mode addrMode, fn readFunc) opcodeEntry {
	return opcodeEntry{mode: mode, shape: shapeRead, read: fn}
}

func writeOp(mode addrMode, fn writeFunc) opcodeEntry {
	return opcodeEntry{mode: mode, shape: shapeWrite, write: fn}
}

func rmwOp(mode addrMode, fn rmwFunc) opcodeEntry {
	return opcodeEntry{mode: mode, shape: shapeReadWrite, rmw: fn}
}

func impOp(fn impliedFunc) opcodeEntry {
	return opcodeEntry{mode: modeImplied, shape: shapeImplied, implied: fn}
}

// opcodeTable maps each documented opcode to its addressing mode, shape,
// and operation. Opcodes absent from the table are illegal and Step will
// panic if one is ever fetched.
var opcodeTable = map[uint8]opcodeEntry{
	// ORA
	0x09: readOp(modeImmediate, opORA),
	0x05: readOp(modeZeroPage, opORA),
	0x15: readOp(modeZeroPageX, opORA),
	0x0D: readOp(modeAbsolute, opORA),
	0x1D: readOp(modeAbsoluteX, opORA),
	0x19: readOp(modeAbsoluteY, opORA),
	0x01: readOp(modeIndirectX, opORA),
	0x11: readOp(modeIndirectY, opORA),

	// AND
	0x29: readOp(modeImmediate, opAND),
	0x25: readOp(modeZeroPage, opAND),
	0x35: readOp(modeZeroPageX, opAND),
	0x2D: readOp(modeAbsolute, opAND),
	0x3D: readOp(modeAbsoluteX, opAND),
	0x39: readOp(modeAbsoluteY, opAND),
	0x21: readOp(modeIndirectX, opAND),
	0x31: readOp(modeIndirectY, opAND),

	// EOR
	0x49: readOp(modeImmediate, opEOR),
	0x45: readOp(modeZeroPage, opEOR),
	0x55: readOp(modeZeroPageX, opEOR),
	0x4D: readOp(modeAbsolute, opEOR),
	0x5D: readOp(modeAbsoluteX, opEOR),
	0x59: readOp(modeAbsoluteY, opEOR),
	0x41: readOp(modeIndirectX, opEOR),
	0x51: readOp(modeIndirectY, opEOR),

	// ADC
	0x69: readOp(modeImmediate, opADC),
	0x65: readOp(modeZeroPage, opADC),
	0x75: readOp(modeZeroPageX, opADC),
	0x6D: readOp(modeAbsolute, opADC),
	0x7D: readOp(modeAbsoluteX, opADC),
	0x79: readOp(modeAbsoluteY, opADC),
	0x61: readOp(modeIndirectX, opADC),
	0x71: readOp(modeIndirectY, opADC),

	// SBC
	0xE9: readOp(modeImmediate, opSBC),
	0xE5: readOp(modeZeroPage, opSBC),
	0xF5: readOp(modeZeroPageX, opSBC),
	0xED: readOp(modeAbsolute, opSBC),
	0xFD: readOp(modeAbsoluteX, opSBC),
	0xF9: readOp(modeAbsoluteY, opSBC),
	0xE1: readOp(modeIndirectX, opSBC),
	0xF1: readOp(modeIndirectY, opSBC),

	// CMP
	0xC9: readOp(modeImmediate, opCMP),
	0xC5: readOp(modeZeroPage, opCMP),
	0xD5: readOp(modeZeroPageX, opCMP),
	0xCD: readOp(modeAbsolute, opCMP),
	0xDD: readOp(modeAbsoluteX, opCMP),
	0xD9: readOp(modeAbsoluteY, opCMP),
	0xC1: readOp(modeIndirectX, opCMP),
	0xD1: readOp(modeIndirectY, opCMP),

	// CPX / CPY
	0xE0: readOp(modeImmediate, opCPX),
	0xE4: readOp(modeZeroPage, opCPX),
	0xEC: readOp(modeAbsolute, opCPX),
	0xC0: readOp(modeImmediate, opCPY),
	0xC4: readOp(modeZeroPage, opCPY),
	0xCC: readOp(modeAbsolute, opCPY),

	// LDA / LDX / LDY
	0xA9: readOp(modeImmediate, opLDA),
	0xA5: readOp(modeZeroPage, opLDA),
	0xB5: readOp(modeZeroPageX, opLDA),
	0xAD: readOp(modeAbsolute, opLDA),
	0xBD: readOp(modeAbsoluteX, opLDA),
	0xB9: readOp(modeAbsoluteY, opLDA),
	0xA1: readOp(modeIndirectX, opLDA),
	0xB1: readOp(modeIndirectY, opLDA),

	0xA2: readOp(modeImmediate, opLDX),
	0xA6: readOp(modeZeroPage, opLDX),
	0xB6: readOp(modeZeroPageY, opLDX),
	0xAE: readOp(modeAbsolute, opLDX),
	0xBE: readOp(modeAbsoluteY, opLDX),

	0xA0: readOp(modeImmediate, opLDY),
	0xA4: readOp(modeZeroPage, opLDY),
	0xB4: readOp(modeZeroPageX, opLDY),
	0xAC: readOp(modeAbsolute, opLDY),
	0xBC: readOp(modeAbsoluteX, opLDY),

	// BIT
	0x24: readOp(modeZeroPage, opBIT),
	0x2C: readOp(modeAbsolute, opBIT),

	// STA / STX / STY
	0x85: writeOp(modeZeroPage, opSTA),
	0x95: writeOp(modeZeroPageX, opSTA),
	0x8D: writeOp(modeAbsolute, opSTA),
	0x9D: writeOp(modeAbsoluteX, opSTA),
	0x99: writeOp(modeAbsoluteY, opSTA),
	0x81: writeOp(modeIndirectX, opSTA),
	0x91: writeOp(modeIndirectY, opSTA),

	0x86: writeOp(modeZeroPage, opSTX),
	0x96: writeOp(modeZeroPageY, opSTX),
	0x8E: writeOp(modeAbsolute, opSTX),

	0x84: writeOp(modeZeroPage, opSTY),
	0x94: writeOp(modeZeroPageX, opSTY),
	0x8C: writeOp(modeAbsolute, opSTY),

	// ASL / LSR / ROL / ROR (memory forms)
	0x06: rmwOp(modeZeroPage, opASL),
	0x16: rmwOp(modeZeroPageX, opASL),
	0x0E: rmwOp(modeAbsolute, opASL),
	0x1E: rmwOp(modeAbsoluteX, opASL),

	0x46: rmwOp(modeZeroPage, opLSR),
	0x56: rmwOp(modeZeroPageX, opLSR),
	0x4E: rmwOp(modeAbsolute, opLSR),
	0x5E: rmwOp(modeAbsoluteX, opLSR),

	0x26: rmwOp(modeZeroPage, opROL),
	0x36: rmwOp(modeZeroPageX, opROL),
	0x2E: rmwOp(modeAbsolute, opROL),
	0x3E: rmwOp(modeAbsoluteX, opROL),

	0x66: rmwOp(modeZeroPage, opROR),
	0x76: rmwOp(modeZeroPageX, opROR),
	0x6E: rmwOp(modeAbsolute, opROR),
	0x7E: rmwOp(modeAbsoluteX, opROR),

	// INC / DEC (memory forms)
	0xE6: rmwOp(modeZeroPage, opINC),
	0xF6: rmwOp(modeZeroPageX, opINC),
	0xEE: rmwOp(modeAbsolute, opINC),
	0xFE: rmwOp(modeAbsoluteX, opINC),

	0xC6: rmwOp(modeZeroPage, opDEC),
	0xD6: rmwOp(modeZeroPageX, opDEC),
	0xCE: rmwOp(modeAbsolute, opDEC),
	0xDE: rmwOp(modeAbsoluteX, opDEC),

	// Accumulator-mode shifts/rotates
	0x0A: impOp(accumulatorOp(opASL)),
	0x4A: impOp(accumulatorOp(opLSR)),
	0x2A: impOp(accumulatorOp(opROL)),
	0x6A: impOp(accumulatorOp(opROR)),

	// Register increment/decrement
	0xE8: impOp(incReg(getX, setX)),
	0xC8: impOp(incReg(getY, setY)),
	0xCA: impOp(decReg(getX, setX)),
	0x88: impOp(decReg(getY, setY)),

	// Transfers
	0xAA: impOp(transfer(getAC, setX, true)),
	0x8A: impOp(transfer(getX, setAC, true)),
	0xA8: impOp(transfer(getAC, setY, true)),
	0x98: impOp(transfer(getY, setAC, true)),
	0x9A: impOp(transfer(getX, setSP, false)),
	0xBA: impOp(transfer(getSP, setX, true)),

	// Flag operations
	0x18: impOp(setFlagOp(SRCarry, false)),
	0x38: impOp(setFlagOp(SRCarry, true)),
	0x58: impOp(setFlagOp(SRInterrupt, false)),
	0x78: impOp(setFlagOp(SRInterrupt, true)),
	0xB8: impOp(setFlagOp(SROverflow, false)),
	0xD8: impOp(setFlagOp(SRBCD, false)),
	0xF8: impOp(setFlagOp(SRBCD, true)),

	// Stack
	0x48: impOp(opPHA),
	0x08: impOp(opPHP),
	0x68: impOp(opPLA),
	0x28: impOp(opPLP),

	// Jumps and subroutine/interrupt control
	0x4C: impOp(opJMPAbsolute),
	0x6C: impOp(opJMPIndirect),
	0x20: impOp(opJSR),
	0x60: impOp(opRTS),
	0x40: impOp(opRTI),
	0x00: impOp(opBRK),

	// Branches
	0x10: impOp(branchIf(SRNegative, false)), // BPL
	0x30: impOp(branchIf(SRNegative, true)),  // BMI
	0x50: impOp(branchIf(SROverflow, false)), // BVC
	0x70: impOp(branchIf(SROverflow, true)),  // BVS
	0x90: impOp(branchIf(SRCarry, false)),    // BCC
	0xB0: impOp(branchIf(SRCarry, true)),     // BCS
	0xD0: impOp(branchIf(SRZero, false)),     // BNE
	0xF0: impOp(branchIf(SRZero, true)),      // BEQ

	// NOP
	0xEA: impOp(nop()),
}
