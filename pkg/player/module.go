// Package player holds the starting state of a player as it is stored in a
// demo header. The layout matches the save game player record.
package player

import (
	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game"
)

const (
	NumPowers   = 6
	NumCards    = 6
	NumWeapons  = 9
	NumAmmo     = 4
	NumPSprites = 2

	// Size is the encoded size of a Snapshot.
	Size = 208

	MaxHealth = 100
)

type State int32

const (
	Alive State = iota
	Dead
	Reborn
)

type PSprite struct {
	State int32
	Tics  int32
	SX    game.Fixed
	SY    game.Fixed
}

func (p *PSprite) ByteSwap() {
	endian.SwapInPlace(&p.State)
	endian.SwapInPlace(&p.Tics)
	endian.SwapInPlace(&p.SX)
	endian.SwapInPlace(&p.SY)
}

type Snapshot struct {
	MobjIndex       int32
	State           State
	ForwardMove     game.Fixed
	SideMove        game.Fixed
	AngleTurn       game.Angle
	ViewZ           game.Fixed
	ViewHeight      game.Fixed
	DeltaViewHeight game.Fixed
	Bob             game.Fixed
	Health          int32
	ArmorPoints     int32
	ArmorType       int32
	Powers          [NumPowers]int32
	Cards           [NumCards]bool
	Backpack        bool
	_               [1]byte
	ReadyWeapon     int32
	PendingWeapon   int32
	WeaponOwned     [NumWeapons]bool
	_               [3]byte
	Ammo            [NumAmmo]int32
	MaxAmmo         [NumAmmo]int32
	Cheats          uint32
	KillCount       uint32
	ItemCount       uint32
	SecretCount     uint32
	DamageCount     uint32
	BonusCount      uint32
	AttackerIndex   int32
	ExtraLight      uint32
	PSprites        [NumPSprites]PSprite
	AutomapX        int32
	AutomapY        int32
	AutomapScale    uint32
}

// Fresh is the state of a player entering a map from a pistol start.
func Fresh(mobjIndex int32) Snapshot {
	s := Snapshot{
		MobjIndex:     mobjIndex,
		State:         Alive,
		Health:        MaxHealth,
		ReadyWeapon:   1,
		PendingWeapon: 1,
		AttackerIndex: -1,
		Ammo:          [NumAmmo]int32{50, 0, 0, 0},
		MaxAmmo:       [NumAmmo]int32{200, 50, 300, 50},
		AutomapScale:  uint32(game.FracUnit),
	}
	s.WeaponOwned[0] = true
	s.WeaponOwned[1] = true
	return s
}

func (s *Snapshot) ByteSwap() {
	endian.SwapInPlace(&s.MobjIndex)
	endian.SwapInPlace(&s.State)
	endian.SwapInPlace(&s.ForwardMove)
	endian.SwapInPlace(&s.SideMove)
	endian.SwapInPlace(&s.AngleTurn)
	endian.SwapInPlace(&s.ViewZ)
	endian.SwapInPlace(&s.ViewHeight)
	endian.SwapInPlace(&s.DeltaViewHeight)
	endian.SwapInPlace(&s.Bob)
	endian.SwapInPlace(&s.Health)
	endian.SwapInPlace(&s.ArmorPoints)
	endian.SwapInPlace(&s.ArmorType)
	for i := range s.Powers {
		endian.SwapInPlace(&s.Powers[i])
	}
	endian.SwapInPlace(&s.ReadyWeapon)
	endian.SwapInPlace(&s.PendingWeapon)
	for i := range s.Ammo {
		endian.SwapInPlace(&s.Ammo[i])
		endian.SwapInPlace(&s.MaxAmmo[i])
	}
	endian.SwapInPlace(&s.Cheats)
	endian.SwapInPlace(&s.KillCount)
	endian.SwapInPlace(&s.ItemCount)
	endian.SwapInPlace(&s.SecretCount)
	endian.SwapInPlace(&s.DamageCount)
	endian.SwapInPlace(&s.BonusCount)
	endian.SwapInPlace(&s.AttackerIndex)
	endian.SwapInPlace(&s.ExtraLight)
	for i := range s.PSprites {
		s.PSprites[i].ByteSwap()
	}
	endian.SwapInPlace(&s.AutomapX)
	endian.SwapInPlace(&s.AutomapY)
	endian.SwapInPlace(&s.AutomapScale)
}
