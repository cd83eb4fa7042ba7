package input

import (
	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game/weapon"
)

// CompactSize is the encoded size of a CompactTickInput.
const CompactSize = 8

// CompactTickInput is the subset of a TickInput that is recorded in demos.
// It has no padding: every byte is meaningful, which is what lets Equals
// compare whole records.
type CompactTickInput struct {
	ForwardMove    uint8
	SideMove       uint8
	Turn           uint16
	SwitchToWeapon weapon.ID
	Buttons        [NumCompactButtonBytes]uint8
}

// Reset matches TickInput.Reset: zero everything except the weapon switch.
func (c *CompactTickInput) Reset() {
	*c = CompactTickInput{}
	c.SwitchToWeapon = weapon.NoChange
}

func (c *CompactTickInput) SerializeFrom(t *TickInput) {
	c.ForwardMove = t.ForwardMove
	c.SideMove = t.SideMove
	c.Turn = t.Turn
	c.SwitchToWeapon = t.SwitchToWeapon
	copy(c.Buttons[:], t.Buttons[:NumCompactButtonBytes])
}

// DeserializeTo overwrites the whole of t. Fields the compact form does not
// carry come out as zero.
func (c *CompactTickInput) DeserializeTo(t *TickInput) {
	*t = TickInput{}
	t.ForwardMove = c.ForwardMove
	t.SideMove = c.SideMove
	t.Turn = c.Turn
	t.SwitchToWeapon = c.SwitchToWeapon
	copy(t.Buttons[:NumCompactButtonBytes], c.Buttons[:])
}

// Equals is an exact comparison of the encoded bytes.
func (c *CompactTickInput) Equals(other *CompactTickInput) bool {
	return *c == *other
}

func (c *CompactTickInput) ByteSwap() {
	endian.SwapInPlace(&c.ForwardMove)
	endian.SwapInPlace(&c.SideMove)
	endian.SwapInPlace(&c.Turn)
	endian.SwapInPlace(&c.SwitchToWeapon)
	for i := range c.Buttons {
		endian.SwapInPlace(&c.Buttons[i])
	}
}

// Compact is shorthand for serializing a tick input into its compact form.
func Compact(t *TickInput) CompactTickInput {
	var c CompactTickInput
	c.SerializeFrom(t)
	return c
}
