// Command ledsink is the opaque UI sink the core framework assumes:
// a synchronous consumer that polls a boolean pin non-blockingly from the
// SDL event loop and paints a window red or green to match. It is wired to
// a Clock here, but stands in for any boolean signal a real machine's
// front panel would expose (power light, tape motor, disk activity).
package main

import (
	"flag"
	"log"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jmchacon/picocoat/clock"
	"github.com/jmchacon/picocoat/computer"
	"github.com/jmchacon/picocoat/pin"
)

var hz = flag.Uint64("hz", 2, "Clock frequency in Hz driving the LED")

func main() {
	flag.Parse()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatalf("can't init SDL: %v", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("ledsink", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, 120, 120, sdl.WINDOW_SHOWN)
	if err != nil {
		log.Fatalf("can't create window: %v", err)
	}
	defer window.Destroy()

	surface, err := window.GetSurface()
	if err != nil {
		log.Fatalf("can't get window surface: %v", err)
	}

	c := clock.New(*hz)
	in := pin.New(false)
	c.Output().ConnectTo(in)

	comp := computer.New()
	comp.Add(c)
	comp.Start()
	defer comp.Stop()

	on := sdl.Color{R: 0x20, G: 0xE0, B: 0x20, A: 0xFF}
	off := sdl.Color{R: 0x80, G: 0x10, B: 0x10, A: 0xFF}

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.(type) {
			case *sdl.QuitEvent:
				running = false
			}
		}

		state := in.Value()
		if v, ok := in.TryRecv(); ok {
			state = v
		}

		col := off
		if state {
			col = on
		}
		surface.FillRect(nil, sdl.MapRGBA(surface.Format, col.R, col.G, col.B, col.A))
		window.UpdateSurface()
		sdl.Delay(16)
	}
}
