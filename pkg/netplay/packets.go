package netplay

import (
	"fmt"
	"io"

	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game"
	gameio "github.com/psydoom/ticksync/pkg/game/io"
	"github.com/psydoom/ticksync/pkg/input"
)

// ProtocolVersion must match exactly between peers.
const ProtocolVersion int32 = 31

const (
	GameIDDoom      uint32 = 0xAA11AA22
	GameIDFinalDoom uint32 = 0xAB11AB22
)

func GameID(identity game.Identity) uint32 {
	if identity.FinalDoom {
		return GameIDFinalDoom
	}
	return GameIDDoom
}

const (
	ConnectPacketSize = 24
	TickPacketSize    = 28
)

// ConnectPacket opens a session. Only the server fills in the game fields.
type ConnectPacket struct {
	ProtocolVersion int32
	GameID          uint32
	GameType        game.Type
	Skill           game.Skill
	Map             int32
	RecordDemos     bool
	_               [3]byte
}

func (p *ConnectPacket) ByteSwap() {
	endian.SwapInPlace(&p.ProtocolVersion)
	endian.SwapInPlace(&p.GameID)
	endian.SwapInPlace(&p.GameType)
	endian.SwapInPlace(&p.Skill)
	endian.SwapInPlace(&p.Map)
}

func (p ConnectPacket) MarshalBinary() ([]byte, error) {
	return marshal(&p)
}

func (p *ConnectPacket) UnmarshalBinary(data []byte) error {
	return unmarshal(data, ConnectPacketSize, p)
}

// TickPacket carries one player's input for the next tick.
type TickPacket struct {
	// Simulation state digest, compared against the receiver's own digest
	// to detect desyncs.
	ErrorCheck        uint32
	ElapsedVBlanks    int32
	LastPacketDelayMs int32
	Inputs            input.TickInput
	_                 [2]byte
}

func (p *TickPacket) ByteSwap() {
	endian.SwapInPlace(&p.ErrorCheck)
	endian.SwapInPlace(&p.ElapsedVBlanks)
	endian.SwapInPlace(&p.LastPacketDelayMs)
	p.Inputs.ByteSwap()
}

func (p TickPacket) MarshalBinary() ([]byte, error) {
	return marshal(&p)
}

func (p *TickPacket) UnmarshalBinary(data []byte) error {
	return unmarshal(data, TickPacketSize, p)
}

// marshal takes a private copy, so correcting it in place is safe.
func marshal(packet endian.Swappable) ([]byte, error) {
	endian.Correct(packet)

	var buffer gameio.Buffer
	err := buffer.Put(packet)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}

func unmarshal(data []byte, size int, packet endian.Swappable) error {
	if len(data) < size {
		return fmt.Errorf("packet is %d bytes, need %d", len(data), size)
	}

	buffer := gameio.Buffer(data[:size])
	err := buffer.Get(packet)
	if err != nil {
		return err
	}

	endian.Correct(packet)
	return nil
}

func writeConnect(w io.Writer, packet ConnectPacket) error {
	data, err := packet.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func readConnect(r io.Reader) (ConnectPacket, error) {
	var packet ConnectPacket
	data := make([]byte, ConnectPacketSize)
	_, err := io.ReadFull(r, data)
	if err != nil {
		return packet, err
	}
	err = packet.UnmarshalBinary(data)
	return packet, err
}

func writeTick(w io.Writer, packet TickPacket) error {
	data, err := packet.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func readTick(r io.Reader) (TickPacket, error) {
	var packet TickPacket
	data := make([]byte, TickPacketSize)
	_, err := io.ReadFull(r, data)
	if err != nil {
		return packet, err
	}
	err = packet.UnmarshalBinary(data)
	return packet, err
}
