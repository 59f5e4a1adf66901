// Package pin defines a typed, single-producer single-consumer signal
// port used to wire components together. A Pin starts out unconnected and
// holding only an initial value; connecting it to a target pin turns the
// receiver into a producer and the target into a consumer, binding the two
// with an unbounded, non-blocking-on-send queue.
package pin

import "sync"

// role describes which side of a connection a Pin is playing.
type role int

const (
	roleUnconnected role = iota
	roleProducer
	roleConsumer
)

// Pin is a unidirectional, typed signal port. The zero value is not usable;
// construct one with New.
type Pin[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	role   role
	value  T
	peer   *Pin[T]
	queue  []T
	closed bool
	notify chan struct{}
}

// New creates an unconnected Pin latching initial.
func New[T any](initial T) *Pin[T] {
	p := &Pin[T]{value: initial}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// ConnectTo binds p as the producer and target as the consumer of a new
// channel. Both must currently be Unconnected; both are mutated atomically.
// Reconnecting an already-connected pin is a programmer error and panics.
func (p *Pin[T]) ConnectTo(target *Pin[T]) {
	if p == target {
		panic("pin: cannot connect a pin to itself")
	}
	// Wiring happens during single-threaded setup before components are
	// started, so a fixed lock order is sufficient here.
	p.mu.Lock()
	defer p.mu.Unlock()
	target.mu.Lock()
	defer target.mu.Unlock()

	if p.role != roleUnconnected {
		panic("pin: producer side is already connected")
	}
	if target.role != roleUnconnected {
		panic("pin: consumer side is already connected")
	}

	p.role = roleProducer
	p.peer = target
	target.role = roleConsumer
	target.peer = p
	target.value = p.value
}

// Update pushes a new value from a Producer pin. Valid only on a Producer;
// any other role is a programmer error and panics. If the consumer side has
// been closed, the latched value still updates but delivery is swallowed.
func (p *Pin[T]) Update(newValue T) {
	p.mu.Lock()
	if p.role != roleProducer {
		p.mu.Unlock()
		panic("pin: update called on a non-producer pin")
	}
	p.value = newValue
	peer := p.peer
	p.mu.Unlock()

	if peer == nil {
		return
	}
	peer.mu.Lock()
	if peer.closed {
		peer.mu.Unlock()
		return
	}
	peer.queue = append(peer.queue, newValue)
	notify := peer.notify
	peer.cond.Signal()
	peer.mu.Unlock()

	if notify != nil {
		select {
		case notify <- struct{}{}:
		default:
		}
	}
}

// Wait blocks on a Consumer pin until the next value arrives, latches and
// returns it. If the producer has gone away (Close was called on it),
// Wait returns the last latched value instead of blocking forever. Wait
// on a pin that is not a Consumer panics.
func (p *Pin[T]) Wait() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.role != roleConsumer {
		panic("pin: wait called on a non-consumer pin")
	}
	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.queue) > 0 {
		v := p.queue[0]
		p.queue = p.queue[1:]
		p.value = v
		return v
	}
	return p.value
}

// TryRecv drains a Consumer pin's queue to the newest value without
// blocking. It reports false if no value was queued.
func (p *Pin[T]) TryRecv() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.role != roleConsumer {
		panic("pin: try_recv called on a non-consumer pin")
	}
	if len(p.queue) == 0 {
		var zero T
		return zero, false
	}
	v := p.queue[len(p.queue)-1]
	p.queue = nil
	p.value = v
	return v, true
}

// Value returns the latched value without blocking or mutating any queue.
func (p *Pin[T]) Value() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Close marks this pin's consumer peer as permanently closed, releasing any
// goroutine blocked in Wait on that peer (it will return its last latched
// value). Call this from a producer component as it exits. Closing a pin
// with no connected peer, or one that isn't a Producer, is a no-op.
func (p *Pin[T]) Close() {
	p.mu.Lock()
	peer := p.peer
	isProducer := p.role == roleProducer
	p.mu.Unlock()
	if !isProducer || peer == nil {
		return
	}
	peer.mu.Lock()
	peer.closed = true
	peer.cond.Broadcast()
	peer.mu.Unlock()
}

// WaitAny blocks on a set of Consumer pins until at least one has a queued
// value, then pops and returns the value of the lowest-index such pin
// along with its index. Every element of pins must be a Consumer pin.
func WaitAny[T any](pins []*Pin[T]) (int, T) {
	wake := make(chan struct{}, 1)
	for _, p := range pins {
		p.mu.Lock()
		if p.role != roleConsumer {
			p.mu.Unlock()
			panic("pin: wait_any called with a non-consumer pin")
		}
		p.notify = wake
		p.mu.Unlock()
	}
	defer func() {
		for _, p := range pins {
			p.mu.Lock()
			if p.notify == wake {
				p.notify = nil
			}
			p.mu.Unlock()
		}
	}()

	for {
		for i, p := range pins {
			p.mu.Lock()
			if len(p.queue) > 0 {
				v := p.queue[0]
				p.queue = p.queue[1:]
				p.value = v
				p.mu.Unlock()
				return i, v
			}
			p.mu.Unlock()
		}
		<-wake
	}
}
