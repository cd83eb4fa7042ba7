package weapon

import "strconv"

// ID is stored as a single byte in tick inputs.
type ID uint8

const (
	Fist ID = iota
	Pistol
	Shotgun
	SuperShotgun
	Chaingun
	RocketLauncher
	PlasmaRifle
	BFG
	Chainsaw
	NumWeapons

	// NoChange means no weapon switch was requested. Zero is not a valid
	// "no request" value: it selects the fist.
	NoChange
)

func (id ID) String() string {
	switch id {
	case Fist:
		return "fist"
	case Pistol:
		return "pistol"
	case Shotgun:
		return "shotgun"
	case SuperShotgun:
		return "super shotgun"
	case Chaingun:
		return "chaingun"
	case RocketLauncher:
		return "rocket launcher"
	case PlasmaRifle:
		return "plasma rifle"
	case BFG:
		return "bfg"
	case Chainsaw:
		return "chainsaw"
	case NoChange:
		return "no change"
	default:
		return strconv.Itoa(int(id))
	}
}
