// Package memory defines the banked 64 KiB address space the 6502 core
// reads and writes through. A Memory is a cheap-to-copy handle onto shared,
// mutex-guarded state: the flat RAM array plus a page-granular map that
// routes individual pages onto optional MemoryBank implementations (ROM
// images, bank-switched RAM, memory-mapped I/O, ...).
package memory

import (
	"fmt"
	"sync"
)

// MemoryBank is a page-range extension mapped into the address space by
// Memory.ConfigureBanks. Implementations never hold their own copy of RAM;
// the shared RAM array is passed in on every call so a bank can shadow or
// cooperate with it.
type MemoryBank interface {
	// Size reports the bank's own backing size in bytes.
	Size() int
	// IsWriteable reports whether addr (already adjusted to bank-local
	// terms by the caller) accepts writes. A false here causes Memory to
	// fall through to raw RAM on write.
	IsWriteable(addr uint16) bool
	// ReadByte returns the byte this bank maps at addr, given the page's
	// base offset and read-only access to the shared RAM array.
	ReadByte(addr, offset uint16, ram *[65536]byte) uint8
	// WriteByte stores val for addr into the bank, given the page's base
	// offset and mutable access to the shared RAM array. Only called when
	// IsWriteable reported true for this address.
	WriteByte(addr, offset uint16, val uint8, ram *[65536]byte)
}

// BankConfig describes one page-aligned range routed onto a bank.
// StartAddr and Length must both be multiples of 256; Length must be
// positive; BankID is 1-based (0 always means "unmapped", so it is never a
// valid value in a BankConfig); StartAddr must be >= TargetOffset; the
// range's last page must fit within the 256-page address space.
type BankConfig struct {
	StartAddr    uint16
	Length       uint16
	BankID       int
	TargetOffset uint16
}

type pageEntry struct {
	bankID int // 0 means unmapped (raw RAM); otherwise 1-based index into banks.
	base   uint16
}

type state struct {
	mu    sync.Mutex
	ram   [65536]byte
	banks []MemoryBank
	pages [256]pageEntry
}

// Memory is a reference-counted handle: copying a Memory value shares the
// same underlying RAM, banks, and page map. There is no cycle here since a
// bank never holds a reference back to the Memory that owns it.
type Memory struct {
	s *state
}

// New returns a fresh, entirely unbanked 64 KiB memory.
func New() Memory {
	return Memory{s: &state{}}
}

// ConfigureBanks installs bank objects and fills the page map from configs.
// Any misaligned or out-of-range configuration is a configuration bug and
// panics immediately rather than being reported as a recoverable error.
func (m Memory) ConfigureBanks(banks []MemoryBank, configs []BankConfig) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.banks = banks
	for i := range m.s.pages {
		m.s.pages[i] = pageEntry{}
	}
	for _, cfg := range configs {
		if cfg.StartAddr&0xFF != 0 {
			panic(fmt.Sprintf("memory: start address $%04X is not page-aligned", cfg.StartAddr))
		}
		if cfg.Length == 0 || cfg.Length&0xFF != 0 {
			panic(fmt.Sprintf("memory: length %d must be a positive multiple of 256", cfg.Length))
		}
		if cfg.StartAddr < cfg.TargetOffset {
			panic(fmt.Sprintf("memory: start address $%04X is below target offset $%04X", cfg.StartAddr, cfg.TargetOffset))
		}
		startPage := int(cfg.StartAddr >> 8)
		endPage := startPage + int(cfg.Length>>8) - 1
		if endPage > 0xFF {
			panic(fmt.Sprintf("memory: bank range ending at page %d overflows the 256-page address space", endPage))
		}
		for page := startPage; page <= endPage; page++ {
			m.s.pages[page] = pageEntry{bankID: cfg.BankID, base: cfg.StartAddr - cfg.TargetOffset}
		}
	}
}

// ReadByte returns the byte the page map routes addr to: either a bank's
// ReadByte (translated to bank-local terms) or the raw RAM cell.
func (m Memory) ReadByte(addr uint16) uint8 {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	entry := m.s.pages[addr>>8]
	if entry.bankID > 0 {
		return m.s.banks[entry.bankID-1].ReadByte(addr, entry.base, &m.s.ram)
	}
	return m.s.ram[addr]
}

// WriteByte routes addr through the page map. If the mapped bank reports
// the address writeable, the bank's WriteByte handles it; otherwise (no
// bank, or a read-only bank such as RomBank) the write falls through to
// raw RAM. That fallthrough is intentional: it lets a ROM-shadowed region
// be written while banked out and observed once the bank is switched away.
func (m Memory) WriteByte(addr uint16, value uint8) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	entry := m.s.pages[addr>>8]
	if entry.bankID > 0 && m.s.banks[entry.bankID-1].IsWriteable(addr-entry.base) {
		m.s.banks[entry.bankID-1].WriteByte(addr, entry.base, value, &m.s.ram)
		return
	}
	m.s.ram[addr] = value
}

// ReadBlock copies len(data) bytes starting at start into data, acquiring
// and releasing the memory lock once per byte so peripherals on other
// threads can interleave.
func (m Memory) ReadBlock(start uint16, data []byte) {
	for i := range data {
		data[i] = m.ReadByte(start + uint16(i))
	}
}

// WriteBlock is the write-side counterpart of ReadBlock.
func (m Memory) WriteBlock(start uint16, data []byte) {
	for i, b := range data {
		m.WriteByte(start+uint16(i), b)
	}
}

// RomBank is a read-only MemoryBank backed by an owned byte slice. Writes
// are never accepted (IsWriteable always reports false), so Memory routes
// them to the shadow RAM cell instead; reads past the end of bytes return
// zero.
type RomBank struct {
	bytes []byte
}

// WithBytes copies data into a new RomBank.
func WithBytes(data []byte) *RomBank {
	b := make([]byte, len(data))
	copy(b, data)
	return &RomBank{bytes: b}
}

func (r *RomBank) Size() int { return len(r.bytes) }

func (r *RomBank) IsWriteable(addr uint16) bool { return false }

func (r *RomBank) ReadByte(addr, offset uint16, _ *[65536]byte) uint8 {
	idx := addr - offset
	if int(idx) < len(r.bytes) {
		return r.bytes[idx]
	}
	return 0
}

func (r *RomBank) WriteByte(addr, offset uint16, val uint8, _ *[65536]byte) {
	panic("memory: attempted write to a ROM bank, bypassing the is-writeable gate")
}
