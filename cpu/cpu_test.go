package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmchacon/picocoat/computer"
	"github.com/jmchacon/picocoat/memory"
	"github.com/jmchacon/picocoat/pin"
)

// regSnapshot captures the architecturally visible register state for
// whole-state diffing via deep.Equal, which gives a field-by-field diff
// on mismatch instead of a single opaque boolean.
type regSnapshot struct {
	PC     uint16
	AC, X, Y, SP, P uint8
}

func snapshot(c *Chip) regSnapshot {
	return regSnapshot{PC: c.PC, AC: c.AC, X: c.X, Y: c.Y, SP: c.SP, P: c.P}
}

// loadAndRunFresh installs rom at start, points the reset vector at it,
// runs the chip through its 8-cycle reset sequence, then steps n further
// T-states.
func loadAndRunFresh(t *testing.T, start uint16, rom []byte, n int) (*Chip, memory.Memory) {
	t.Helper()
	return loadAndRunFreshWithMem(t, start, rom, n, memory.New())
}

func loadAndRunFreshWithMem(t *testing.T, start uint16, rom []byte, n int, mem memory.Memory) (*Chip, memory.Memory) {
	t.Helper()
	for i, b := range rom {
		mem.WriteByte(start+uint16(i), b)
	}
	mem.WriteByte(ResetVector, loByte(start))
	mem.WriteByte(ResetVector+1, hiByte(start))

	c := New(mem)
	c.Reset()
	for i := 0; i < 8; i++ {
		c.Step()
	}
	require.Equal(t, start, c.PC)

	for i := 0; i < n; i++ {
		c.Step()
	}
	return c, mem
}

// stepToBoundary steps until an instruction completes (cycle resets to 1)
// and reports how many T-states that took.
func stepToBoundary(c *Chip) int {
	var cycles int
	for {
		c.Step()
		cycles++
		if c.cycle == 1 {
			return cycles
		}
	}
}

func TestResetSequence(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(ResetVector, 0x00)
	mem.WriteByte(ResetVector+1, 0xE0)

	c := New(mem)
	c.Reset()
	var last StepResult
	for i := 0; i < 8; i++ {
		last = c.Step()
	}
	assert.Equal(t, Complete, last)
	assert.Equal(t, StateRunning, c.state)
	assert.Equal(t, uint8(0xFD), c.SP)
	assert.Equal(t, uint16(0xE000), c.PC)
}

func TestLDAImmediate(t *testing.T) {
	c, _ := loadAndRunFresh(t, 0x0600, []byte{0xA9, 0x10, 0x00}, 2)
	assert.Equal(t, uint8(0x10), c.AC)
	assert.False(t, c.flag(SRZero))
	assert.False(t, c.flag(SRNegative))
	assert.Equal(t, uint16(0x0602), c.PC)
}

func TestSTAZeroPageAfterLDA(t *testing.T) {
	c, mem := loadAndRunFresh(t, 0x0600, []byte{0xA9, 0x48, 0x85, 0x20}, 5)
	assert.Equal(t, uint8(0x48), c.AC)
	assert.Equal(t, uint8(0x48), mem.ReadByte(0x0020))
	assert.Equal(t, uint16(0x0604), c.PC)
}

func TestBranchTakenCrossPage(t *testing.T) {
	c, _ := loadAndRunFresh(t, 0x04F0, []byte{0xF0, 0x10}, 0)
	c.P |= SRZero
	cycles := stepToBoundary(c)
	assert.Equal(t, uint16(0x0502), c.PC)
	assert.Equal(t, 4, cycles)
}

func TestBranchNotTakenCostsTwoCycles(t *testing.T) {
	c, _ := loadAndRunFresh(t, 0x04F0, []byte{0xF0, 0x10}, 0)
	c.P &^= SRZero
	cycles := stepToBoundary(c)
	assert.Equal(t, uint16(0x04F2), c.PC)
	assert.Equal(t, 2, cycles)
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x0600, 0x6C)
	mem.WriteByte(0x0601, 0xFF)
	mem.WriteByte(0x0602, 0x1F)
	mem.WriteByte(0x1FFF, 0x48)
	mem.WriteByte(0x1F00, 0x20)
	mem.WriteByte(ResetVector, loByte(0x0600))
	mem.WriteByte(ResetVector+1, hiByte(0x0600))

	c := New(mem)
	c.Reset()
	for i := 0; i < 8; i++ {
		c.Step()
	}

	cycles := stepToBoundary(c)
	assert.Equal(t, uint16(0x2048), c.PC)
	assert.Equal(t, 5, cycles)
}

func TestBRKPushesAndVectors(t *testing.T) {
	mem := memory.New()
	start := uint16(0x0600)
	mem.WriteByte(start, 0x00)
	mem.WriteByte(IRQVector, 0x48)
	mem.WriteByte(IRQVector+1, 0x84)
	mem.WriteByte(ResetVector, loByte(start))
	mem.WriteByte(ResetVector+1, hiByte(start))

	c := New(mem)
	c.Reset()
	for i := 0; i < 8; i++ {
		c.Step()
	}
	c.P |= SRZero

	cycles := stepToBoundary(c)

	assert.Equal(t, uint16(0x8448), c.PC)
	// Reset (the only public path into StateRunning) leaves SP == 0xFD, so
	// BRK's three pushes land at $01FD/$01FC/$01FB, not the power-on-default
	// addresses a BRK starting from SP == 0xFF would use.
	assert.Equal(t, uint8(0xFA), c.SP)
	assert.Equal(t, 7, cycles)

	pushedPCHi := mem.ReadByte(0x01FD)
	pushedPCLo := mem.ReadByte(0x01FC)
	pushedP := mem.ReadByte(0x01FB)
	assert.Equal(t, SRUnused|SRBreak|SRZero, pushedP)
	assert.Equal(t, loByte(start+2), pushedPCLo)
	assert.Equal(t, hiByte(start+2), pushedPCHi)
}

func TestADCBinaryCarryAndOverflow(t *testing.T) {
	c, _ := loadAndRunFresh(t, 0x0600, []byte{0xA9, 0x7F, 0x69, 0x01}, 4)
	assert.Equal(t, uint8(0x80), c.AC)
	assert.True(t, c.flag(SROverflow))
	assert.True(t, c.flag(SRNegative))
	assert.False(t, c.flag(SRCarry))
}

func TestADCDecimalMode(t *testing.T) {
	// SED; LDA #$58; ADC #$46 -> 58 + 46 BCD == 04 with carry.
	c, _ := loadAndRunFresh(t, 0x0600, []byte{0xF8, 0xA9, 0x58, 0x69, 0x46}, 6)
	assert.Equal(t, uint8(0x04), c.AC)
	assert.True(t, c.flag(SRCarry))
}

func TestCMPSetsCarryWhenRegGreaterOrEqual(t *testing.T) {
	c, _ := loadAndRunFresh(t, 0x0600, []byte{0xA9, 0x10, 0xC9, 0x05}, 4)
	assert.True(t, c.flag(SRCarry))
	assert.False(t, c.flag(SRZero))
}

func TestINCZeroPageReadModifyWrite(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x0005, 0x7F)
	c, mem2 := loadAndRunFreshWithMem(t, 0x0600, []byte{0xE6, 0x05}, 5, mem)
	assert.Equal(t, uint8(0x80), mem2.ReadByte(0x0005))
	assert.True(t, c.flag(SRNegative))
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x3100, 0x42)
	c, _ := loadAndRunFreshWithMem(t, 0x0600, []byte{0xA2, 0xFF, 0xBD, 0x01, 0x30}, 2, mem)
	cycles := stepToBoundary(c)
	assert.Equal(t, 5, cycles)
	assert.Equal(t, uint8(0x42), c.AC)
}

func TestINCZeroPageXReadModifyWriteCycleCount(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x0015, 0x7F)
	c, mem2 := loadAndRunFreshWithMem(t, 0x0600, []byte{0xA2, 0x05, 0xF6, 0x10}, 2, mem) // LDX #5; INC $10,X
	cycles := stepToBoundary(c)
	assert.Equal(t, 6, cycles)
	assert.Equal(t, uint8(0x80), mem2.ReadByte(0x0015))
}

func TestINCAbsoluteReadModifyWriteCycleCount(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x3000, 0x7F)
	c, mem2 := loadAndRunFreshWithMem(t, 0x0600, []byte{0xEE, 0x00, 0x30}, 0, mem) // INC $3000
	cycles := stepToBoundary(c)
	assert.Equal(t, 6, cycles)
	assert.Equal(t, uint8(0x80), mem2.ReadByte(0x3000))
}

func TestINCAbsoluteXReadModifyWriteCycleCount(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(0x3105, 0x7F)
	c, mem2 := loadAndRunFreshWithMem(t, 0x0600, []byte{0xA2, 0x05, 0xFE, 0x00, 0x31}, 2, mem) // LDX #5; INC $3100,X
	cycles := stepToBoundary(c)
	assert.Equal(t, 7, cycles)
	assert.Equal(t, uint8(0x80), mem2.ReadByte(0x3105))
}

func TestTransferFlagsOnlyWhereSpecified(t *testing.T) {
	c, _ := loadAndRunFresh(t, 0x0600, []byte{0xA2, 0x00, 0xA9, 0x01, 0x9A}, 6) // LDX #0; LDA #1 (clears Z); TXS
	assert.Equal(t, uint8(0x00), c.SP)
	// TXS must not touch Z/N even though X==0.
	assert.False(t, c.flag(SRZero))
}

func TestRegisterDeltaAcrossArithmeticSequence(t *testing.T) {
	// SEC; LDA #$05; ADC #$03; STA $10; TAX
	rom := []byte{0x38, 0xA9, 0x05, 0x69, 0x03, 0x85, 0x10, 0xAA}
	c, mem := loadAndRunFresh(t, 0x0600, rom, 0)
	for i := 0; i < 5; i++ {
		stepToBoundary(c)
	}

	want := regSnapshot{PC: 0x0600 + uint16(len(rom)), AC: 0x09, X: 0x09, Y: 0, SP: 0xFD, P: 0x00}
	got := snapshot(c)
	if diff := deep.Equal(want, got); diff != nil {
		t.Fatalf("register mismatch: %v\nfull state: %s", diff, spew.Sdump(c))
	}
	assert.Equal(t, uint8(0x09), mem.ReadByte(0x0010))
}

func TestIllegalOpcodePanics(t *testing.T) {
	// One step fetches the opcode; the next one dispatches it.
	c, _ := loadAndRunFresh(t, 0x0600, []byte{0x02}, 1)
	assert.Panics(t, func() { c.Step() })
}

func TestClockDrivenCPULoopIncrementsMemory(t *testing.T) {
	mem := memory.New()
	rom := []byte{0xE6, 0x05, 0x4C, 0x00, 0x06} // INC $05 ; JMP $0600
	for i, b := range rom {
		mem.WriteByte(0x0600+uint16(i), b)
	}
	mem.WriteByte(ResetVector, 0x00)
	mem.WriteByte(ResetVector+1, 0x06)

	c := New(mem)
	c.Reset()

	clockPin := pin.New(false)
	clockPin.ConnectTo(c.phi0In)
	phi1 := pin.New(false)
	c.phi1Out.ConnectTo(phi1)
	phi2 := pin.New(false)
	c.phi2Out.ConnectTo(phi2)

	comp := computer.New()
	comp.Add(c)
	comp.Start()

	for i := 0; i < 400; i++ {
		clockPin.Update(i%2 == 0)
	}
	// Wait until the CPU has relayed every tick, then close the clock
	// line so Run's Wait returns and it can observe the stop flag.
	for i := 0; i < 400; i++ {
		phi2.Wait()
	}
	clockPin.Close()
	comp.Stop()

	v := mem.ReadByte(0x0005)
	assert.NotEqual(t, uint8(0x00), v)
}
