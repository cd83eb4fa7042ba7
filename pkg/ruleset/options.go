package ruleset

import "github.com/psydoom/ticksync/pkg/game"

// Auto lets a tri-state option follow the game disc.
const Auto = -1

// Options are the user tunable rules. Tri-state options use Auto (-1), 0 or 1.
// A lost soul spawn limit of 0 also means auto.
type Options struct {
	UsePalTimings               int     `yaml:"usePalTimings" json:"usePalTimings"`
	UseDemoTimings              bool    `yaml:"useDemoTimings" json:"useDemoTimings"`
	UseExtendedPlayerShootRange bool    `yaml:"useExtendedPlayerShootRange" json:"useExtendedPlayerShootRange"`
	UsePlayerRocketBlastFix     bool    `yaml:"usePlayerRocketBlastFix" json:"usePlayerRocketBlastFix"`
	UseSuperShotgunDelayTweak   bool    `yaml:"useSuperShotgunDelayTweak" json:"useSuperShotgunDelayTweak"`
	UseMoveInputLatencyTweak    bool    `yaml:"useMoveInputLatencyTweak" json:"useMoveInputLatencyTweak"`
	UseItemPickupFix            bool    `yaml:"useItemPickupFix" json:"useItemPickupFix"`
	UseFinalDoomPlayerMovement  int     `yaml:"useFinalDoomPlayerMovement" json:"useFinalDoomPlayerMovement"`
	AllowMovementCancellation   int     `yaml:"allowMovementCancellation" json:"allowMovementCancellation"`
	AllowTurningCancellation    bool    `yaml:"allowTurningCancellation" json:"allowTurningCancellation"`
	FixViewBobStrength          bool    `yaml:"fixViewBobStrength" json:"fixViewBobStrength"`
	FixGravityStrength          bool    `yaml:"fixGravityStrength" json:"fixGravityStrength"`
	NoMonsters                  bool    `yaml:"noMonsters" json:"noMonsters"`
	PistolStart                 bool    `yaml:"pistolStart" json:"pistolStart"`
	TurboMode                   bool    `yaml:"turboMode" json:"turboMode"`
	UseLostSoulSpawnFix         bool    `yaml:"useLostSoulSpawnFix" json:"useLostSoulSpawnFix"`
	UseLineOfSightOverflowFix   bool    `yaml:"useLineOfSightOverflowFix" json:"useLineOfSightOverflowFix"`
	RemoveMaxCrossLinesLimit    bool    `yaml:"removeMaxCrossLinesLimit" json:"removeMaxCrossLinesLimit"`
	FixOutdoorBulletPuffs       bool    `yaml:"fixOutdoorBulletPuffs" json:"fixOutdoorBulletPuffs"`
	FixBlockingGibsBug          bool    `yaml:"fixBlockingGibsBug" json:"fixBlockingGibsBug"`
	FixSoundPropagation         bool    `yaml:"fixSoundPropagation" json:"fixSoundPropagation"`
	LostSoulSpawnLimit          int32   `yaml:"lostSoulSpawnLimit" json:"lostSoulSpawnLimit"`
	ViewBobbingStrength         float64 `yaml:"viewBobbingStrength" json:"viewBobbingStrength"`

	CoopNoFriendlyFire     bool  `yaml:"coopNoFriendlyFire" json:"coopNoFriendlyFire"`
	CoopPreserveKeys       bool  `yaml:"coopPreserveKeys" json:"coopPreserveKeys"`
	CoopPreserveAmmoFactor int32 `yaml:"coopPreserveAmmoFactor" json:"coopPreserveAmmoFactor"`
	DmExitDisabled         bool  `yaml:"dmExitDisabled" json:"dmExitDisabled"`
	DmFragLimit            int32 `yaml:"dmFragLimit" json:"dmFragLimit"`
}

const maxViewBobbingStrength = 64

func resolve(option int, auto bool) bool {
	if option < 0 {
		return auto
	}
	return option != 0
}

// User builds the rules for a new game from the user's options.
func User(options Options, identity game.Identity) Ruleset {
	var r Ruleset
	r.UsePalTimings = resolve(options.UsePalTimings, identity.PAL)
	r.UseDemoTimings = options.UseDemoTimings
	r.UseExtendedPlayerShootRange = options.UseExtendedPlayerShootRange
	r.UsePlayerRocketBlastFix = options.UsePlayerRocketBlastFix
	r.UseSuperShotgunDelayTweak = options.UseSuperShotgunDelayTweak
	r.UseMoveInputLatencyTweak = options.UseMoveInputLatencyTweak
	r.UseItemPickupFix = options.UseItemPickupFix
	r.UseFinalDoomPlayerMovement = resolve(options.UseFinalDoomPlayerMovement, identity.FinalDoom)
	r.AllowMovementCancellation = resolve(options.AllowMovementCancellation, identity.FinalDoom)
	r.AllowTurningCancellation = options.AllowTurningCancellation
	r.FixViewBobStrength = options.FixViewBobStrength
	r.FixGravityStrength = options.FixGravityStrength
	r.NoMonsters = options.NoMonsters
	r.PistolStart = options.PistolStart
	r.TurboMode = options.TurboMode
	r.UseLostSoulSpawnFix = options.UseLostSoulSpawnFix
	r.UseLineOfSightOverflowFix = options.UseLineOfSightOverflowFix
	r.RemoveMaxCrossLinesLimit = options.RemoveMaxCrossLinesLimit
	r.FixOutdoorBulletPuffs = options.FixOutdoorBulletPuffs
	r.FixBlockingGibsBug = options.FixBlockingGibsBug
	r.FixSoundPropagation = options.FixSoundPropagation

	r.LostSoulSpawnLimit = options.LostSoulSpawnLimit
	if r.LostSoulSpawnLimit == 0 {
		r.LostSoulSpawnLimit = Classic(identity).LostSoulSpawnLimit
	}

	strength := options.ViewBobbingStrength
	if strength < 0 {
		strength = 0
	}
	if strength > maxViewBobbingStrength {
		strength = maxViewBobbingStrength
	}
	r.ViewBobbingStrength = game.FixedFromFloat(strength)

	r.CoopNoFriendlyFire = options.CoopNoFriendlyFire
	r.CoopPreserveKeys = options.CoopPreserveKeys
	r.CoopPreserveAmmoFactor = options.CoopPreserveAmmoFactor
	r.DmExitDisabled = options.DmExitDisabled
	r.DmFragLimit = options.DmFragLimit
	return r
}
