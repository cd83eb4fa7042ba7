package netplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/input"

	"github.com/rs/zerolog/log"
)

const DefaultMaxPacketDelayMs = 15

var (
	ErrDesync = errors.New("peer simulation diverged")
	ErrClosed = errors.New("peer connection closed")
)

type received struct {
	packet TickPacket
	at     time.Time
}

// Local is this machine's contribution to a tick.
type Local struct {
	Input   input.TickInput
	Elapsed int32

	// Digest of the simulation state. Only compared while InGame.
	ErrorCheck uint32
	InGame     bool
}

// Exchange is the agreed input of every player for one tick.
type Exchange struct {
	Inputs  [game.MaxPlayers]input.TickInput
	Elapsed [game.MaxPlayers]int32
}

// Peer exchanges tick packets with the other player. Inputs are sent one
// tick ahead of when they are used, so the packet for a tick is usually
// waiting by the time it is needed.
type Peer struct {
	conn       io.ReadWriter
	index      int
	maxDelayMs int32

	packets  chan received
	failures chan error

	started        bool
	next           input.TickInput
	nextElapsed    int32
	prevErrorCheck uint32
	lastDelayMs    int32
	timeAdjustMs   int32
}

// NewPeer starts receiving tick packets from conn. Closing conn or
// cancelling ctx stops the receiver.
func NewPeer(ctx context.Context, conn io.ReadWriter, role Role, maxDelayMs int32) *Peer {
	if maxDelayMs <= 0 {
		maxDelayMs = DefaultMaxPacketDelayMs
	}

	peer := &Peer{
		conn:       conn,
		index:      role.PlayerIndex(),
		maxDelayMs: maxDelayMs,
		packets:    make(chan received, 16),
		failures:   make(chan error, 1),
	}

	go peer.receive(ctx)
	return peer
}

func (p *Peer) receive(ctx context.Context) {
	for {
		packet, err := readTick(p.conn)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				err = ErrClosed
			}
			p.failures <- err
			return
		}

		select {
		case p.packets <- received{packet: packet, at: time.Now()}:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Peer) send(local Local) error {
	return writeTick(p.conn, TickPacket{
		ErrorCheck:        local.ErrorCheck,
		ElapsedVBlanks:    p.nextElapsed,
		LastPacketDelayMs: p.lastDelayMs,
		Inputs:            p.next,
	})
}

// Update sends this tick's local input and returns the inputs to simulate
// now: the local input queued on the previous update and the remote input.
func (p *Peer) Update(ctx context.Context, local Local) (Exchange, error) {
	var exchange Exchange

	if !p.started {
		// A dummy packet gets the one tick lead going on both ends.
		p.next = input.TickInput{}
		p.nextElapsed = 0
		err := p.send(local)
		if err != nil {
			return exchange, err
		}

		p.prevErrorCheck = local.ErrorCheck
		p.started = true
	}

	current, currentElapsed := p.next, p.nextElapsed
	p.next, p.nextElapsed = local.Input, local.Elapsed

	err := p.send(local)
	if err != nil {
		return exchange, err
	}

	var in received
	select {
	case in = <-p.packets:
	case err := <-p.failures:
		return exchange, err
	case <-ctx.Done():
		return exchange, ctx.Err()
	}

	age := int32(time.Since(in.at).Milliseconds())
	p.lastDelayMs = max(p.maxDelayMs-age, 0)

	if local.InGame && in.packet.ErrorCheck != p.prevErrorCheck {
		log.Warn().
			Uint32("local", p.prevErrorCheck).
			Uint32("remote", in.packet.ErrorCheck).
			Msg("desync detected")
		return exchange, fmt.Errorf("%w: error check %08x, expected %08x", ErrDesync, in.packet.ErrorCheck, p.prevErrorCheck)
	}

	remote := 1 - p.index
	exchange.Inputs[p.index] = current
	exchange.Elapsed[p.index] = currentElapsed
	exchange.Inputs[remote] = in.packet.Inputs
	exchange.Elapsed[remote] = in.packet.ElapsedVBlanks

	p.timeAdjustMs += in.packet.LastPacketDelayMs / 4
	p.prevErrorCheck = local.ErrorCheck
	return exchange, nil
}

// LastDelayMs is the delay reported to the other peer with the next packet.
func (p *Peer) LastDelayMs() int32 {
	return p.lastDelayMs
}

// TimeAdjustMs accumulates a quarter of every delay the other peer reports,
// for the caller's frame pacing to absorb.
func (p *Peer) TimeAdjustMs() int32 {
	return p.timeAdjustMs
}
