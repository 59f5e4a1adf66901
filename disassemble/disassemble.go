// Package disassemble renders the documented 6502 instruction set as
// human-readable text, driven off the same opcode/addressing-mode
// grouping the core interpreter dispatches on. Undocumented opcodes are
// out of scope; they render as a fixed placeholder rather than being
// decoded.
package disassemble

import (
	"fmt"

	"github.com/jmchacon/picocoat/memory"
)

type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectX
	modeIndirectY
	modeIndirect
	modeRelative
	modeIllegal
)

type entry struct {
	mnemonic string
	mode     addrMode
}

var table = map[uint8]entry{
	0x69: {"ADC", modeImmediate}, 0x65: {"ADC", modeZeroPage}, 0x75: {"ADC", modeZeroPageX},
	0x6D: {"ADC", modeAbsolute}, 0x7D: {"ADC", modeAbsoluteX}, 0x79: {"ADC", modeAbsoluteY},
	0x61: {"ADC", modeIndirectX}, 0x71: {"ADC", modeIndirectY},

	0x29: {"AND", modeImmediate}, 0x25: {"AND", modeZeroPage}, 0x35: {"AND", modeZeroPageX},
	0x2D: {"AND", modeAbsolute}, 0x3D: {"AND", modeAbsoluteX}, 0x39: {"AND", modeAbsoluteY},
	0x21: {"AND", modeIndirectX}, 0x31: {"AND", modeIndirectY},

	0x0A: {"ASL", modeAccumulator}, 0x06: {"ASL", modeZeroPage}, 0x16: {"ASL", modeZeroPageX},
	0x0E: {"ASL", modeAbsolute}, 0x1E: {"ASL", modeAbsoluteX},

	0x90: {"BCC", modeRelative}, 0xB0: {"BCS", modeRelative}, 0xF0: {"BEQ", modeRelative},
	0x30: {"BMI", modeRelative}, 0xD0: {"BNE", modeRelative}, 0x10: {"BPL", modeRelative},
	0x50: {"BVC", modeRelative}, 0x70: {"BVS", modeRelative},

	0x24: {"BIT", modeZeroPage}, 0x2C: {"BIT", modeAbsolute},

	0x00: {"BRK", modeImplied},

	0x18: {"CLC", modeImplied}, 0xD8: {"CLD", modeImplied}, 0x58: {"CLI", modeImplied}, 0xB8: {"CLV", modeImplied},

	0xC9: {"CMP", modeImmediate}, 0xC5: {"CMP", modeZeroPage}, 0xD5: {"CMP", modeZeroPageX},
	0xCD: {"CMP", modeAbsolute}, 0xDD: {"CMP", modeAbsoluteX}, 0xD9: {"CMP", modeAbsoluteY},
	0xC1: {"CMP", modeIndirectX}, 0xD1: {"CMP", modeIndirectY},

	0xE0: {"CPX", modeImmediate}, 0xE4: {"CPX", modeZeroPage}, 0xEC: {"CPX", modeAbsolute},
	0xC0: {"CPY", modeImmediate}, 0xC4: {"CPY", modeZeroPage}, 0xCC: {"CPY", modeAbsolute},

	0xC6: {"DEC", modeZeroPage}, 0xD6: {"DEC", modeZeroPageX}, 0xCE: {"DEC", modeAbsolute}, 0xDE: {"DEC", modeAbsoluteX},
	0xCA: {"DEX", modeImplied}, 0x88: {"DEY", modeImplied},

	0x49: {"EOR", modeImmediate}, 0x45: {"EOR", modeZeroPage}, 0x55: {"EOR", modeZeroPageX},
	0x4D: {"EOR", modeAbsolute}, 0x5D: {"EOR", modeAbsoluteX}, 0x59: {"EOR", modeAbsoluteY},
	0x41: {"EOR", modeIndirectX}, 0x51: {"EOR", modeIndirectY},

	0xE6: {"INC", modeZeroPage}, 0xF6: {"INC", modeZeroPageX}, 0xEE: {"INC", modeAbsolute}, 0xFE: {"INC", modeAbsoluteX},
	0xE8: {"INX", modeImplied}, 0xC8: {"INY", modeImplied},

	0x4C: {"JMP", modeAbsolute}, 0x6C: {"JMP", modeIndirect},
	0x20: {"JSR", modeAbsolute},

	0xA9: {"LDA", modeImmediate}, 0xA5: {"LDA", modeZeroPage}, 0xB5: {"LDA", modeZeroPageX},
	0xAD: {"LDA", modeAbsolute}, 0xBD: {"LDA", modeAbsoluteX}, 0xB9: {"LDA", modeAbsoluteY},
	0xA1: {"LDA", modeIndirectX}, 0xB1: {"LDA", modeIndirectY},

	0xA2: {"LDX", modeImmediate}, 0xA6: {"LDX", modeZeroPage}, 0xB6: {"LDX", modeZeroPageY},
	0xAE: {"LDX", modeAbsolute}, 0xBE: {"LDX", modeAbsoluteY},

	0xA0: {"LDY", modeImmediate}, 0xA4: {"LDY", modeZeroPage}, 0xB4: {"LDY", modeZeroPageX},
	0xAC: {"LDY", modeAbsolute}, 0xBC: {"LDY", modeAbsoluteX},

	0x4A: {"LSR", modeAccumulator}, 0x46: {"LSR", modeZeroPage}, 0x56: {"LSR", modeZeroPageX},
	0x4E: {"LSR", modeAbsolute}, 0x5E: {"LSR", modeAbsoluteX},

	0xEA: {"NOP", modeImplied},

	0x09: {"ORA", modeImmediate}, 0x05: {"ORA", modeZeroPage}, 0x15: {"ORA", modeZeroPageX},
	0x0D: {"ORA", modeAbsolute}, 0x1D: {"ORA", modeAbsoluteX}, 0x19: {"ORA", modeAbsoluteY},
	0x01: {"ORA", modeIndirectX}, 0x11: {"ORA", modeIndirectY},

	0x48: {"PHA", modeImplied}, 0x08: {"PHP", modeImplied}, 0x68: {"PLA", modeImplied}, 0x28: {"PLP", modeImplied},

	0x2A: {"ROL", modeAccumulator}, 0x26: {"ROL", modeZeroPage}, 0x36: {"ROL", modeZeroPageX},
	0x2E: {"ROL", modeAbsolute}, 0x3E: {"ROL", modeAbsoluteX},

	0x6A: {"ROR", modeAccumulator}, 0x66: {"ROR", modeZeroPage}, 0x76: {"ROR", modeZeroPageX},
	0x6E: {"ROR", modeAbsolute}, 0x7E: {"ROR", modeAbsoluteX},

	0x40: {"RTI", modeImplied}, 0x60: {"RTS", modeImplied},

	0xE9: {"SBC", modeImmediate}, 0xE5: {"SBC", modeZeroPage}, 0xF5: {"SBC", modeZeroPageX},
	0xED: {"SBC", modeAbsolute}, 0xFD: {"SBC", modeAbsoluteX}, 0xF9: {"SBC", modeAbsoluteY},
	0xE1: {"SBC", modeIndirectX}, 0xF1: {"SBC", modeIndirectY},

	0x38: {"SEC", modeImplied}, 0xF8: {"SED", modeImplied}, 0x78: {"SEI", modeImplied},

	0x85: {"STA", modeZeroPage}, 0x95: {"STA", modeZeroPageX}, 0x8D: {"STA", modeAbsolute},
	0x9D: {"STA", modeAbsoluteX}, 0x99: {"STA", modeAbsoluteY}, 0x81: {"STA", modeIndirectX}, 0x91: {"STA", modeIndirectY},

	0x86: {"STX", modeZeroPage}, 0x96: {"STX", modeZeroPageY}, 0x8E: {"STX", modeAbsolute},
	0x84: {"STY", modeZeroPage}, 0x94: {"STY", modeZeroPageX}, 0x8C: {"STY", modeAbsolute},

	0xAA: {"TAX", modeImplied}, 0xA8: {"TAY", modeImplied}, 0xBA: {"TSX", modeImplied},
	0x8A: {"TXA", modeImplied}, 0x9A: {"TXS", modeImplied}, 0x98: {"TYA", modeImplied},
}

// Step disassembles the instruction at pc and reports how many bytes the
// caller should advance to reach the next one. It always reads up to two
// bytes past pc, so the caller must ensure those addresses are valid reads
// (zero, if unmapped, is fine).
func Step(pc uint16, mem memory.Memory) (string, int) {
	opcode := mem.ReadByte(pc)
	operand1 := mem.ReadByte(pc + 1)
	operand2 := mem.ReadByte(pc + 2)

	e, ok := table[opcode]
	if !ok {
		return fmt.Sprintf("%04X %02X      ??? (undocumented)", pc, opcode), 1
	}

	switch e.mode {
	case modeImplied:
		return fmt.Sprintf("%04X %02X      %s", pc, opcode, e.mnemonic), 1
	case modeAccumulator:
		return fmt.Sprintf("%04X %02X      %s A", pc, opcode, e.mnemonic), 1
	case modeImmediate:
		return fmt.Sprintf("%04X %02X %02X   %s #$%02X", pc, opcode, operand1, e.mnemonic, operand1), 2
	case modeZeroPage:
		return fmt.Sprintf("%04X %02X %02X   %s $%02X", pc, opcode, operand1, e.mnemonic, operand1), 2
	case modeZeroPageX:
		return fmt.Sprintf("%04X %02X %02X   %s $%02X,X", pc, opcode, operand1, e.mnemonic, operand1), 2
	case modeZeroPageY:
		return fmt.Sprintf("%04X %02X %02X   %s $%02X,Y", pc, opcode, operand1, e.mnemonic, operand1), 2
	case modeIndirectX:
		return fmt.Sprintf("%04X %02X %02X   %s ($%02X,X)", pc, opcode, operand1, e.mnemonic, operand1), 2
	case modeIndirectY:
		return fmt.Sprintf("%04X %02X %02X   %s ($%02X),Y", pc, opcode, operand1, e.mnemonic, operand1), 2
	case modeRelative:
		target := pc + 2 + uint16(int16(int8(operand1)))
		return fmt.Sprintf("%04X %02X %02X   %s $%02X (%04X)", pc, opcode, operand1, e.mnemonic, operand1, target), 2
	case modeAbsolute:
		return fmt.Sprintf("%04X %02X %02X %02X %s $%02X%02X", pc, opcode, operand1, operand2, e.mnemonic, operand2, operand1), 3
	case modeAbsoluteX:
		return fmt.Sprintf("%04X %02X %02X %02X %s $%02X%02X,X", pc, opcode, operand1, operand2, e.mnemonic, operand2, operand1), 3
	case modeAbsoluteY:
		return fmt.Sprintf("%04X %02X %02X %02X %s $%02X%02X,Y", pc, opcode, operand1, operand2, e.mnemonic, operand2, operand1), 3
	case modeIndirect:
		return fmt.Sprintf("%04X %02X %02X %02X %s ($%02X%02X)", pc, opcode, operand1, operand2, e.mnemonic, operand2, operand1), 3
	default:
		panic(fmt.Sprintf("disassemble: opcode $%02X has unhandled mode %d", opcode, e.mode))
	}
}
