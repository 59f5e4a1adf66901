package computer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingComponent struct {
	runs int32
}

func (c *countingComponent) Run(stop *Stopper) {
	for !stop.Stopped() {
		atomic.AddInt32(&c.runs, 1)
		time.Sleep(time.Millisecond)
	}
}

func TestStartStopRunsAndJoins(t *testing.T) {
	c := New()
	comp := &countingComponent{}
	c.Add(comp)
	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.Stop()

	assert.Greater(t, atomic.LoadInt32(&comp.runs), int32(0))
}

func TestStartTwiceOnSameComponentPanics(t *testing.T) {
	c := New()
	c.Add(&countingComponent{})
	c.Start()
	defer c.Stop()
	assert.Panics(t, func() { c.Start() })
}

type panickyComponent struct{}

func (panickyComponent) Run(stop *Stopper) {
	panic("boom")
}

func TestPanickingComponentIsIsolated(t *testing.T) {
	c := New()
	c.Add(panickyComponent{})
	other := &countingComponent{}
	c.Add(other)
	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.Stop()

	assert.Greater(t, atomic.LoadInt32(&other.runs), int32(0))
}
