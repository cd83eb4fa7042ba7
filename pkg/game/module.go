package game

import "strconv"

type Skill int32

const (
	Baby Skill = iota
	Easy
	Medium
	Hard
	Nightmare
	NumSkills
)

func (s Skill) Valid() bool {
	return s >= Baby && s < NumSkills
}

func (s Skill) String() string {
	switch s {
	case Baby:
		return "baby"
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Nightmare:
		return "nightmare"
	default:
		return strconv.Itoa(int(s))
	}
}

type Type int32

const (
	Single Type = iota
	Cooperative
	Deathmatch
	NumTypes
)

func (t Type) Valid() bool {
	return t >= Single && t < NumTypes
}

// NumPlayers is how many players take part in a game of this type.
func (t Type) NumPlayers() int {
	if t == Single {
		return 1
	}
	return MaxPlayers
}

func (t Type) String() string {
	switch t {
	case Single:
		return "single"
	case Cooperative:
		return "coop"
	case Deathmatch:
		return "deathmatch"
	default:
		return strconv.Itoa(int(t))
	}
}

// MaxPlayers is the hard limit on simultaneous input streams.
const MaxPlayers = 2

// Identity is the base game being run. It decides which classic rules apply
// and which network game id is used.
type Identity struct {
	FinalDoom bool `yaml:"finalDoom" json:"finalDoom"`
	PAL       bool `yaml:"pal" json:"pal"`
}

func (i Identity) String() string {
	name := "doom"
	if i.FinalDoom {
		name = "final doom"
	}
	if i.PAL {
		return name + " (pal)"
	}
	return name + " (ntsc)"
}
