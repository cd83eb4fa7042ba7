package ruleset

import (
	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game"
)

// Version identifies a ruleset wire layout. It is versioned independently
// from the demo format and the network protocol.
type Version int32

const (
	V1 Version = 1
	V2 Version = 2

	Current = V2
)

// Record is implemented by every historical ruleset layout.
type Record interface {
	Version() Version
	ByteSwap()

	sealed()
}

// RulesetV1 shipped with game 1.0.x (demo format 11, network protocol 28).
type RulesetV1 struct {
	UsePalTimings                bool `yaml:"usePalTimings" json:"usePalTimings"`
	UseDemoTimings               bool `yaml:"useDemoTimings" json:"useDemoTimings"`
	FixKillCount                 bool `yaml:"fixKillCount" json:"fixKillCount"`
	FixLineActivation            bool `yaml:"fixLineActivation" json:"fixLineActivation"`
	UseExtendedPlayerShootRange  bool `yaml:"useExtendedPlayerShootRange" json:"useExtendedPlayerShootRange"`
	FixMultiLineSpecialCrossing  bool `yaml:"fixMultiLineSpecialCrossing" json:"fixMultiLineSpecialCrossing"`
	UsePlayerRocketBlastFix      bool `yaml:"usePlayerRocketBlastFix" json:"usePlayerRocketBlastFix"`
	UseSuperShotgunDelayTweak    bool `yaml:"useSuperShotgunDelayTweak" json:"useSuperShotgunDelayTweak"`
	UseMoveInputLatencyTweak     bool `yaml:"useMoveInputLatencyTweak" json:"useMoveInputLatencyTweak"`
	UseItemPickupFix             bool `yaml:"useItemPickupFix" json:"useItemPickupFix"`
	UseFinalDoomPlayerMovement   bool `yaml:"useFinalDoomPlayerMovement" json:"useFinalDoomPlayerMovement"`
	AllowMovementCancellation    bool `yaml:"allowMovementCancellation" json:"allowMovementCancellation"`
	AllowTurningCancellation     bool `yaml:"allowTurningCancellation" json:"allowTurningCancellation"`
	FixViewBobStrength           bool `yaml:"fixViewBobStrength" json:"fixViewBobStrength"`
	FixGravityStrength           bool `yaml:"fixGravityStrength" json:"fixGravityStrength"`
	NoMonsters                   bool `yaml:"noMonsters" json:"noMonsters"`
	PistolStart                  bool `yaml:"pistolStart" json:"pistolStart"`
	TurboMode                    bool `yaml:"turboMode" json:"turboMode"`
	UseLostSoulSpawnFix          bool `yaml:"useLostSoulSpawnFix" json:"useLostSoulSpawnFix"`
	UseLineOfSightOverflowFix    bool `yaml:"useLineOfSightOverflowFix" json:"useLineOfSightOverflowFix"`
	RemoveMaxCrossLinesLimit     bool `yaml:"removeMaxCrossLinesLimit" json:"removeMaxCrossLinesLimit"`
	FixOutdoorBulletPuffs        bool `yaml:"fixOutdoorBulletPuffs" json:"fixOutdoorBulletPuffs"`
	FixBlockingGibsBug           bool `yaml:"fixBlockingGibsBug" json:"fixBlockingGibsBug"`
	FixSoundPropagation          bool `yaml:"fixSoundPropagation" json:"fixSoundPropagation"`
	FixSpriteVerticalWarp        bool `yaml:"fixSpriteVerticalWarp" json:"fixSpriteVerticalWarp"`
	AllowMultiMapPickup          bool `yaml:"allowMultiMapPickup" json:"allowMultiMapPickup"`
	EnableMapPatchesGamePlay     bool `yaml:"enableMapPatchesGamePlay" json:"enableMapPatchesGamePlay"`
	_                            [1]byte
	LostSoulSpawnLimit           int32      `yaml:"lostSoulSpawnLimit" json:"lostSoulSpawnLimit"`
	ViewBobbingStrength          game.Fixed `yaml:"viewBobbingStrength" json:"viewBobbingStrength"`
}

// RulesetV2 shipped with game 1.1.0 (demo format 14, network protocol 31).
// New versions must embed the previous one first and only append fields.
type RulesetV2 struct {
	RulesetV1 `yaml:",inline"`

	NoMonstersBossFixup            bool `yaml:"noMonstersBossFixup" json:"noMonstersBossFixup"`
	CoopNoFriendlyFire             bool `yaml:"coopNoFriendlyFire" json:"coopNoFriendlyFire"`
	CoopForceSpawnDeathmatchThings bool `yaml:"coopForceSpawnDeathmatchThings" json:"coopForceSpawnDeathmatchThings"`
	DmExitDisabled                 bool `yaml:"dmExitDisabled" json:"dmExitDisabled"`
	CoopPreserveKeys               bool `yaml:"coopPreserveKeys" json:"coopPreserveKeys"`
	DmActivateBossSpecialSectors   bool `yaml:"dmActivateBossSpecialSectors" json:"dmActivateBossSpecialSectors"`
	_                              [2]byte
	DmFragLimit                    int32 `yaml:"dmFragLimit" json:"dmFragLimit"`
	CoopPreserveAmmoFactor         int32 `yaml:"coopPreserveAmmoFactor" json:"coopPreserveAmmoFactor"`
	SinglePlayerForceSpawnDmThings bool  `yaml:"singlePlayerForceSpawnDmThings" json:"singlePlayerForceSpawnDmThings"`
	_                              [3]byte
}

// Ruleset is the current layout.
type Ruleset = RulesetV2

func (RulesetV1) Version() Version { return V1 }
func (RulesetV2) Version() Version { return V2 }

func (RulesetV1) sealed() {}
func (RulesetV2) sealed() {}

// ByteSwap only touches multi-byte fields; flags are single bytes.
func (r *RulesetV1) ByteSwap() {
	endian.SwapInPlace(&r.LostSoulSpawnLimit)
	endian.SwapInPlace(&r.ViewBobbingStrength)
}

func (r *RulesetV2) ByteSwap() {
	r.RulesetV1.ByteSwap()
	endian.SwapInPlace(&r.DmFragLimit)
	endian.SwapInPlace(&r.CoopPreserveAmmoFactor)
}

// Size is the encoded size of a ruleset version, or -1 if it is unknown.
func Size(version Version) int {
	switch version {
	case V1:
		return 36
	case V2:
		return 56
	}
	return -1
}

func newRecord(version Version) Record {
	switch version {
	case V1:
		return &RulesetV1{}
	case V2:
		return &RulesetV2{}
	}
	return nil
}

var demoFormats = map[uint32]Version{
	11: V1,
	14: V2,
}

var protocols = map[int32]Version{
	28: V1,
	31: V2,
}

// ForDemoFormat returns the ruleset layout stored by a demo format version.
func ForDemoFormat(format uint32) (Version, bool) {
	version, ok := demoFormats[format]
	return version, ok
}

// ForProtocol returns the ruleset layout exchanged by a network protocol
// version.
func ForProtocol(protocol int32) (Version, bool) {
	version, ok := protocols[protocol]
	return version, ok
}
