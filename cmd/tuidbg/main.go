// Command tuidbg is an interactive single-step debugger for the 6502
// interpreter: load a ROM image, then step one T-state at a time with the
// spacebar while watching registers and a sliding window of memory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmchacon/picocoat/cpu"
	"github.com/jmchacon/picocoat/memory"
)

var (
	cartPath = flag.String("cart", "", "Path to a raw ROM image to load at -offset")
	offset   = flag.Int("offset", 0x0600, "Address to load the ROM image at; also used as the reset vector")
)

type model struct {
	chip *cpu.Chip
	mem  memory.Memory
	err  error
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "n":
		m.chip.Step()
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.mem.ReadByte(addr)
		if addr == m.chip.PC {
			s += fmt.Sprintf("[%02X] ", b)
		} else {
			s += fmt.Sprintf(" %02X  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	lines := []string{"page | " + strings.Repeat(" X  ", 16)}
	base := m.chip.PC &^ 0x0F
	for p := -2; p <= 2; p++ {
		lines = append(lines, m.renderPage(uint16(int32(base)+int32(p*16))))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	return fmt.Sprintf(`
PC: %04X  cycle: %d  state: %s
AC: %02X  X: %02X  Y: %02X  SP: %02X
P:  %08b
`, m.chip.PC, m.chip.Cycle(), m.chip.State(), m.chip.AC, m.chip.X, m.chip.Y, m.chip.SP, m.chip.P)
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.pageTable(),
		m.status(),
		"space/n: step one T-state   q: quit",
	)
}

func main() {
	flag.Parse()
	if *cartPath == "" {
		log.Fatalf("usage: %s -cart <rom-image> [-offset <addr>]", os.Args[0])
	}
	rom, err := os.ReadFile(*cartPath)
	if err != nil {
		log.Fatalf("can't read %s: %v", *cartPath, err)
	}

	mem := memory.New()
	start := uint16(*offset)
	for i, b := range rom {
		mem.WriteByte(start+uint16(i), b)
	}
	mem.WriteByte(cpu.ResetVector, uint8(start&0xFF))
	mem.WriteByte(cpu.ResetVector+1, uint8(start>>8))

	chip := cpu.New(mem)
	chip.Reset()
	for i := 0; i < 8; i++ {
		chip.Step()
	}

	if _, err := tea.NewProgram(model{chip: chip, mem: mem}).Run(); err != nil {
		log.Fatalf("debugger exited with error: %v", err)
	}
}
