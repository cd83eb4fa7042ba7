// Package lockstep gates the simulation on every peer's input for a tick.
package lockstep

import (
	"context"
	"errors"
	"fmt"

	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/input"

	"github.com/sasha-s/go-deadlock"
)

var (
	ErrUnknownPeer = errors.New("unknown peer")
	ErrDuplicate   = errors.New("input already submitted for tick")
	ErrStale       = errors.New("tick already consumed")
	ErrOutOfOrder  = errors.New("ticks must be consumed in order")
)

// Step is the complete input for one tick.
type Step struct {
	Tick    uint64
	Inputs  [game.MaxPlayers]input.TickInput
	Elapsed [game.MaxPlayers]int32
}

type slot struct {
	step      Step
	submitted [game.MaxPlayers]bool
	count     int
	ready     chan struct{}
}

// Barrier collects inputs per tick and releases a tick once every peer has
// submitted it. A stalled peer stalls every waiter.
type Barrier struct {
	mutex   deadlock.Mutex
	peers   int
	next    uint64
	pending map[uint64]*slot
}

func NewBarrier(peers int) *Barrier {
	if peers < 1 || peers > game.MaxPlayers {
		panic(fmt.Sprintf("lockstep: %d peers", peers))
	}

	return &Barrier{
		peers:   peers,
		pending: make(map[uint64]*slot),
	}
}

// get must be called with the mutex held.
func (b *Barrier) get(tick uint64) *slot {
	s, ok := b.pending[tick]
	if !ok {
		s = &slot{
			step:  Step{Tick: tick},
			ready: make(chan struct{}),
		}
		b.pending[tick] = s
	}
	return s
}

func (b *Barrier) Submit(peer int, tick uint64, in input.TickInput, elapsed int32) error {
	if peer < 0 || peer >= b.peers {
		return fmt.Errorf("%w: %d", ErrUnknownPeer, peer)
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	if tick < b.next {
		return fmt.Errorf("%w: %d", ErrStale, tick)
	}

	s := b.get(tick)
	if s.submitted[peer] {
		return fmt.Errorf("%w: peer %d tick %d", ErrDuplicate, peer, tick)
	}

	s.submitted[peer] = true
	s.step.Inputs[peer] = in
	s.step.Elapsed[peer] = elapsed
	s.count++

	if s.count == b.peers {
		close(s.ready)
	}

	return nil
}

// Wait blocks until tick is complete and consumes it.
func (b *Barrier) Wait(ctx context.Context, tick uint64) (Step, error) {
	b.mutex.Lock()
	if tick != b.next {
		next := b.next
		b.mutex.Unlock()
		return Step{}, fmt.Errorf("%w: want %d, got %d", ErrOutOfOrder, next, tick)
	}
	s := b.get(tick)
	b.mutex.Unlock()

	select {
	case <-s.ready:
	case <-ctx.Done():
		return Step{}, ctx.Err()
	}

	b.mutex.Lock()
	delete(b.pending, tick)
	if b.next == tick {
		b.next++
	}
	b.mutex.Unlock()

	return s.step, nil
}

// Next is the tick the simulation is waiting on.
func (b *Barrier) Next() uint64 {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.next
}
