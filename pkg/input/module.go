// Package input holds the per-tick player input record and the compact form
// of it that is stored in demos.
package input

import (
	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/game/weapon"
)

const (
	analogSignBit = 0x80
	analogMagMask = 0x7F
	analogMax     = 127
)

// TickInput is everything one player did during one tick. Fields are stored in
// their wire representation; use the accessors for the analog values.
type TickInput struct {
	// Sign and magnitude analog movement: bit 7 is the sign, bits 0-6 are
	// the magnitude in 1/127 steps.
	ForwardMove uint8
	SideMove    uint8

	// High 16 bits of the analog turn angle.
	Turn uint16

	SwitchToWeapon weapon.ID
	Buttons        Buttons

	// Pointer device deltas. Not carried by CompactTickInput.
	MouseDx int16
	MouseDy int16
}

// Reset zeroes the input and clears any weapon switch request.
func (t *TickInput) Reset() {
	*t = TickInput{}
	t.SwitchToWeapon = weapon.NoChange
}

func encodeAnalog(value game.Fixed) uint8 {
	// Widen first: the most negative Fixed has no int32 absolute value.
	magnitude := int64(value)
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if magnitude > int64(game.FracUnit) {
		magnitude = int64(game.FracUnit)
	}

	encoded := uint8((magnitude*analogMax + int64(game.FracUnit)/2) >> game.FracBits)
	if value < 0 {
		encoded |= analogSignBit
	}
	return encoded
}

func decodeAnalog(encoded uint8) game.Fixed {
	value := game.Fixed(int32(encoded&analogMagMask) * int32(game.FracUnit) / analogMax)
	if encoded&analogSignBit != 0 {
		return -value
	}
	return value
}

func (t *TickInput) AnalogForwardMove() game.Fixed {
	return decodeAnalog(t.ForwardMove)
}

func (t *TickInput) SetAnalogForwardMove(value game.Fixed) {
	t.ForwardMove = encodeAnalog(value)
}

func (t *TickInput) AnalogSideMove() game.Fixed {
	return decodeAnalog(t.SideMove)
}

func (t *TickInput) SetAnalogSideMove(value game.Fixed) {
	t.SideMove = encodeAnalog(value)
}

// AnalogTurn returns the turn angle. The low 16 bits are always zero.
func (t *TickInput) AnalogTurn() game.Angle {
	return game.Angle(t.Turn) << 16
}

// SetAnalogTurn keeps only the high 16 bits of the angle. The precision loss
// is part of the recorded format and must not be changed.
func (t *TickInput) SetAnalogTurn(angle game.Angle) {
	t.Turn = uint16(angle >> 16)
}

func (t *TickInput) Pressed(button Button) bool {
	return t.Buttons.Pressed(button)
}

func (t *TickInput) Set(button Button, pressed bool) {
	t.Buttons.Set(button, pressed)
}

func (t *TickInput) ByteSwap() {
	endian.SwapInPlace(&t.ForwardMove)
	endian.SwapInPlace(&t.SideMove)
	endian.SwapInPlace(&t.Turn)
	endian.SwapInPlace(&t.SwitchToWeapon)
	for i := range t.Buttons {
		endian.SwapInPlace(&t.Buttons[i])
	}
	endian.SwapInPlace(&t.MouseDx)
	endian.SwapInPlace(&t.MouseDy)
}
