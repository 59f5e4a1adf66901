// Command disasm loads a raw ROM image into a flat address space and
// disassembles it to stdout starting at a configurable program counter.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmchacon/picocoat/disassemble"
	"github.com/jmchacon/picocoat/memory"
)

var (
	startPC = flag.Int("start_pc", 0x0000, "PC value to start disassembling")
	offset  = flag.Int("offset", 0x0000, "Offset into RAM to start loading data")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("usage: %s [-start_pc <PC>] [-offset <offset>] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	b, err := os.ReadFile(fn)
	if err != nil {
		log.Fatalf("can't open %s: %v", fn, err)
	}

	max := 1<<16 - *offset
	if l := len(b); l > max {
		log.Printf("length %d at offset %d too long, truncating to 64k", l, *offset)
		b = b[:max]
	}

	mem := memory.New()
	for i, by := range b {
		mem.WriteByte(uint16(*offset+i), by)
	}

	pc := uint16(*startPC)
	fmt.Printf("0x%X bytes at pc: %04X\n", len(b), pc)

	cnt := 0
	for cnt < len(b) {
		dis, advance := disassemble.Step(pc, mem)
		fmt.Println(dis)
		pc += uint16(advance)
		cnt += advance
	}
}
