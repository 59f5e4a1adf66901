package cpu

import "fmt"

// addrMode identifies how an instruction's operand address is formed.
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
)

// opShape identifies an instruction's read/write/modify profile, which
// determines how many bus cycles the addressing mode resolution takes.
type opShape int

const (
	shapeRead     opShape = iota // operand is read, value consumed (ORA, LDA, CMP, ...)
	shapeWrite                   // operand address is written to (STA, STX, STY)
	shapeReadWrite                // read-modify-write (ASL, INC, ROR, ...)
	shapeImplied                 // no memory operand (register/stack ops, branches, JMP)
)

type readFunc func(c *Chip, v uint8)
type writeFunc func(c *Chip) uint8
type rmwFunc func(c *Chip, v uint8) uint8
type impliedFunc func(c *Chip) StepResult

type opcodeEntry struct {
	mnemonic string
	mode     addrMode
	shape    opShape
	read     readFunc
	write    writeFunc
	rmw      rmwFunc
	implied  impliedFunc
}

// dispatch executes one more T-state of the in-flight instruction. It is
// only called once cycle >= 2 (cycle 1 is always the opcode fetch, handled
// in Step). The step index used below is cycle-1, i.e. 1 on the first call
// after fetch.
func (c *Chip) dispatch() StepResult {
	entry, ok := opcodeTable[c.opcode]
	if !ok {
		panic(fmt.Sprintf("cpu: illegal opcode $%02X at PC=$%04X", c.opcode, c.PC-1))
	}

	if entry.shape == shapeImplied {
		return entry.implied(c)
	}

	step := c.cycle - 1
	switch entry.mode {
	case modeImmediate:
		return c.runImmediate(entry, step)
	case modeZeroPage:
		return c.runZeroPage(entry, step, 0)
	case modeZeroPageX:
		return c.runZeroPage(entry, step, c.X)
	case modeZeroPageY:
		return c.runZeroPage(entry, step, c.Y)
	case modeAbsolute:
		return c.runAbsolute(entry, step, 0, false)
	case modeAbsoluteX:
		return c.runAbsolute(entry, step, c.X, true)
	case modeAbsoluteY:
		return c.runAbsolute(entry, step, c.Y, true)
	case modeIndirectX:
		return c.runIndirectX(entry, step)
	case modeIndirectY:
		return c.runIndirectY(entry, step)
	default:
		panic(fmt.Sprintf("cpu: opcode $%02X has unsupported addressing mode", c.opcode))
	}
}

func (c *Chip) finishRead(entry opcodeEntry, v uint8) StepResult {
	entry.read(c, v)
	return Complete
}

func (c *Chip) finishWrite(entry opcodeEntry, addr uint16) StepResult {
	c.writeByte(addr, entry.write(c))
	return Complete
}

// runImmediate: cycle2 reads the operand byte directly from the
// instruction stream and executes. 2 cycles total (shapeRead only; no
// immediate-mode write or RMW opcode exists).
func (c *Chip) runImmediate(entry opcodeEntry, step int) StepResult {
	switch step {
	case 1:
		v := c.readPCByte()
		c.PC++
		return c.finishRead(entry, v)
	default:
		panic("cpu: immediate addressing overran its cycle budget")
	}
}

// runZeroPage handles zero page and zero page,X/Y modes. index is the
// register added to the fetched zero-page address (0 for plain zero page).
func (c *Chip) runZeroPage(entry opcodeEntry, step int, index uint8) StepResult {
	hasIndex := entry.mode == modeZeroPageX || entry.mode == modeZeroPageY

	if step == 1 {
		c.addr = uint16(c.readPCByte())
		c.PC++
		return Continue
	}
	if hasIndex {
		if step == 2 {
			c.readByte(c.addr) // dummy read of unindexed zero page byte
			c.addr = uint16(uint8(c.addr) + index)
			return Continue
		}
		step-- // steps 3.. line up with the unindexed step numbering from here
	}

	switch step {
	case 2:
		switch entry.shape {
		case shapeRead:
			return c.finishRead(entry, c.readByte(c.addr))
		case shapeWrite:
			return c.finishWrite(entry, c.addr)
		case shapeReadWrite:
			c.value = c.readByte(c.addr)
			return Continue
		}
	case 3:
		if entry.shape == shapeReadWrite {
			c.readByte(c.addr) // dummy cycle where the chip writes back the unmodified value; modeled as a read
			return Continue
		}
	case 4:
		if entry.shape == shapeReadWrite {
			nv := entry.rmw(c, c.value)
			c.writeByte(c.addr, nv)
			return Complete
		}
	}
	panic(fmt.Sprintf("cpu: zero page dispatch fell through at step %d", step))
}

// runAbsolute handles absolute and absolute,X/Y modes. index is the
// register added to the fetched address; pageIndexed selects whether an
// extra cycle is spent confirming/crossing a page boundary.
func (c *Chip) runAbsolute(entry opcodeEntry, step int, index uint8, pageIndexed bool) StepResult {
	switch step {
	case 1:
		setLo(&c.addr, c.readPCByte())
		c.PC++
		return Continue
	case 2:
		setHi(&c.addr, c.readPCByte())
		c.PC++
		if pageIndexed {
			base := c.addr
			sum := uint16(loByte(base)) + uint16(index)
			c.extraAddr = (base &^ 0xFF) | (sum & 0xFF) // same-page guess, wraps low byte
			if sum > 0xFF {
				c.extraAddr += 0x0100
			}
			return Continue
		}
		return Continue
	case 3:
		if pageIndexed {
			crossed := hiByte(c.extraAddr) != hiByte(c.addr)
			guess := (c.addr &^ 0xFF) | uint16(loByte(c.addr)+index)
			if entry.shape == shapeRead && !crossed {
				return c.finishRead(entry, c.readByte(c.extraAddr))
			}
			c.readByte(guess) // dummy read at the not-yet-carried address
			if entry.shape == shapeRead {
				return Continue // page crossed; one more cycle needed
			}
			c.addr = c.extraAddr
			return Continue // Write and ReadWrite both resolve addr here; the real access is deferred
		}
		switch entry.shape {
		case shapeRead:
			return c.finishRead(entry, c.readByte(c.addr))
		case shapeWrite:
			return c.finishWrite(entry, c.addr)
		case shapeReadWrite:
			c.value = c.readByte(c.addr)
			return Continue
		}
	case 4:
		if pageIndexed {
			switch entry.shape {
			case shapeRead:
				return c.finishRead(entry, c.readByte(c.extraAddr))
			case shapeWrite:
				return c.finishWrite(entry, c.addr)
			case shapeReadWrite:
				c.value = c.readByte(c.addr)
				return Continue
			}
		}
		if entry.shape == shapeReadWrite {
			c.readByte(c.addr) // dummy cycle where the chip writes back the unmodified value; modeled as a read
			return Continue
		}
	case 5:
		if pageIndexed && entry.shape == shapeReadWrite {
			c.readByte(c.addr) // dummy cycle where the chip writes back the unmodified value; modeled as a read
			return Continue
		}
		if entry.shape == shapeReadWrite {
			nv := entry.rmw(c, c.value)
			c.writeByte(c.addr, nv)
			return Complete
		}
	case 6:
		if pageIndexed && entry.shape == shapeReadWrite {
			nv := entry.rmw(c, c.value)
			c.writeByte(c.addr, nv)
			return Complete
		}
	}
	panic(fmt.Sprintf("cpu: absolute dispatch fell through at step %d", step))
}

// runIndirectX handles (zp,X) indexed-indirect addressing: 6 cycles for a
// read or write op; the base 6502 has no RMW opcode in this mode.
func (c *Chip) runIndirectX(entry opcodeEntry, step int) StepResult {
	switch step {
	case 1:
		c.extraAddr = uint16(c.readPCByte())
		c.PC++
		return Continue
	case 2:
		c.readByte(c.extraAddr) // dummy read before indexing
		c.extraAddr = uint16(uint8(c.extraAddr) + c.X)
		return Continue
	case 3:
		setLo(&c.addr, c.readByte(c.extraAddr))
		return Continue
	case 4:
		setHi(&c.addr, c.readByte(uint16(uint8(c.extraAddr)+1)))
		return Continue
	case 5:
		switch entry.shape {
		case shapeRead:
			return c.finishRead(entry, c.readByte(c.addr))
		case shapeWrite:
			return c.finishWrite(entry, c.addr)
		}
	}
	panic(fmt.Sprintf("cpu: (zp,X) dispatch fell through at step %d", step))
}

// runIndirectY handles (zp),Y indirect-indexed addressing: 5 cycles, 6 if
// a page boundary is crossed (always 6 for a write op).
func (c *Chip) runIndirectY(entry opcodeEntry, step int) StepResult {
	switch step {
	case 1:
		c.extraAddr = uint16(c.readPCByte())
		c.PC++
		return Continue
	case 2:
		setLo(&c.addr, c.readByte(c.extraAddr))
		return Continue
	case 3:
		setHi(&c.addr, c.readByte(uint16(uint8(c.extraAddr)+1)))
		sum := uint16(loByte(c.addr)) + uint16(c.Y)
		base := c.addr
		c.extraAddr = (base &^ 0xFF) | (sum & 0xFF)
		if sum > 0xFF {
			c.extraAddr += 0x0100
		}
		return Continue
	case 4:
		crossed := hiByte(c.extraAddr) != hiByte(c.addr)
		guess := (c.addr &^ 0xFF) | uint16(loByte(c.addr)+c.Y)
		if entry.shape == shapeRead && !crossed {
			return c.finishRead(entry, c.readByte(c.extraAddr))
		}
		c.readByte(guess)
		c.addr = c.extraAddr
		return Continue
	case 5:
		switch entry.shape {
		case shapeRead:
			return c.finishRead(entry, c.readByte(c.addr))
		case shapeWrite:
			return c.finishWrite(entry, c.addr)
		}
	}
	panic(fmt.Sprintf("cpu: (zp),Y dispatch fell through at step %d", step))
}
