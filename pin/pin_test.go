package pin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnconnectedHoldsInitialValue(t *testing.T) {
	p := New[uint8](0x42)
	assert.Equal(t, uint8(0x42), p.Value())
}

func TestConnectToMovesBothEndpoints(t *testing.T) {
	out := New(false)
	in := New(true)
	out.ConnectTo(in)

	assert.Equal(t, roleProducer, out.role)
	assert.Equal(t, roleConsumer, in.role)
	// Consumer retains the producer's latched value at connect time.
	assert.Equal(t, false, in.Value())
}

func TestReconnectingPanics(t *testing.T) {
	out := New(false)
	in1 := New(false)
	in2 := New(false)
	out.ConnectTo(in1)
	assert.Panics(t, func() { out.ConnectTo(in2) })
}

func TestConnectingBoundConsumerPanics(t *testing.T) {
	out1 := New(false)
	out2 := New(false)
	in := New(false)
	out1.ConnectTo(in)
	assert.Panics(t, func() { out2.ConnectTo(in) })
}

func TestUpdateOnConsumerPanics(t *testing.T) {
	out := New(false)
	in := New(false)
	out.ConnectTo(in)
	assert.Panics(t, func() { in.Update(true) })
}

func TestWaitOnProducerPanics(t *testing.T) {
	out := New(false)
	in := New(false)
	out.ConnectTo(in)
	assert.Panics(t, func() { out.Wait() })
}

func TestUpdateThenWaitDeliversValue(t *testing.T) {
	out := New[uint16](0)
	in := New[uint16](0)
	out.ConnectTo(in)

	done := make(chan uint16, 1)
	go func() { done <- in.Wait() }()

	time.Sleep(10 * time.Millisecond)
	out.Update(0xBEEF)

	select {
	case v := <-done:
		assert.Equal(t, uint16(0xBEEF), v)
	case <-time.After(time.Second):
		t.Fatal("wait never returned")
	}
	assert.Equal(t, uint16(0xBEEF), out.Value())
	assert.Equal(t, uint16(0xBEEF), in.Value())
}

func TestTryRecvDrainsToNewest(t *testing.T) {
	out := New(uint8(0))
	in := New(uint8(0))
	out.ConnectTo(in)

	out.Update(1)
	out.Update(2)
	out.Update(3)

	v, ok := in.TryRecv()
	require.True(t, ok)
	assert.Equal(t, uint8(3), v)

	_, ok = in.TryRecv()
	assert.False(t, ok)
}

func TestUpdateOnUnconnectedPinPanics(t *testing.T) {
	out := New(false)
	assert.Panics(t, func() { out.Update(true) }, "an unconnected pin is not a producer")
}

func TestCloseReleasesBlockedWait(t *testing.T) {
	out := New(false)
	in := New(false)
	out.ConnectTo(in)

	done := make(chan bool, 1)
	go func() { done <- in.Wait() }()

	time.Sleep(10 * time.Millisecond)
	out.Close()

	select {
	case v := <-done:
		assert.Equal(t, false, v)
	case <-time.After(time.Second):
		t.Fatal("wait never released after close")
	}
}

func TestUpdateAfterCloseIsSwallowedButLatches(t *testing.T) {
	out := New(uint8(0))
	in := New(uint8(0))
	out.ConnectTo(in)
	out.Close()

	out.Update(7)
	assert.Equal(t, uint8(7), out.Value())
	_, ok := in.TryRecv()
	assert.False(t, ok)
}

func TestWaitAnyReturnsFirstReady(t *testing.T) {
	outA := New(false)
	inA := New(false)
	outA.ConnectTo(inA)
	outB := New(false)
	inB := New(false)
	outB.ConnectTo(inB)

	resultCh := make(chan int, 1)
	go func() {
		idx, _ := WaitAny([]*Pin[bool]{inA, inB})
		resultCh <- idx
	}()

	time.Sleep(10 * time.Millisecond)
	outB.Update(true)

	select {
	case idx := <-resultCh:
		assert.Equal(t, 1, idx)
	case <-time.After(time.Second):
		t.Fatal("wait_any never returned")
	}
}
