// Package clock implements a periodic square-wave signal source used to
// drive the CPU's phi0 input.
package clock

import (
	"fmt"
	"time"

	"github.com/jmchacon/picocoat/computer"
	"github.com/jmchacon/picocoat/pin"
)

// Clock toggles a boolean output Pin at a configurable frequency. Each
// full period is two toggles (one half-period sleep each), so the output
// pin ends up producing a square wave at the requested frequency.
type Clock struct {
	interval time.Duration
	output   *pin.Pin[bool]
}

// New returns a Clock that will toggle its output every
// 1e9/hz/2 nanoseconds once run.
func New(hz uint64) *Clock {
	return &Clock{
		interval: time.Duration(1_000_000_000 / hz / 2),
		output:   pin.New(false),
	}
}

// Output returns the clock's output pin for wiring to a consumer.
func (c *Clock) Output() *pin.Pin[bool] {
	return c.output
}

// Run implements computer.Component. It sleeps to a monotonically
// advancing next-tick instant (so sleep overshoot never accumulates),
// toggles the output, and checks the stop flag after every toggle. The
// tick counter advances before the toggle, so an odd total tick count
// means the output ends high.
func (c *Clock) Run(stop *computer.Stopper) {
	start := time.Now()
	nextTick := start.Add(c.interval)
	var ticks uint64
	state := false

	for {
		if now := time.Now(); nextTick.After(now) {
			time.Sleep(nextTick.Sub(now))
		}
		ticks++
		state = !state
		c.output.Update(state)
		nextTick = nextTick.Add(c.interval)
		if stop.Stopped() {
			break
		}
	}

	c.output.Close()
	elapsed := time.Since(start)
	fmt.Printf("clock: %d ticks in %s\n", ticks, elapsed)
}
