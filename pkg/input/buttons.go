package input

// Button is a bit index into the five action flag bytes of a tick input.
type Button uint8

// Gameplay actions.
const (
	TurnLeft Button = iota
	TurnRight
	MoveForward
	MoveBackward
	StrafeLeft
	StrafeRight
	Use
	Attack
)

// Gameplay modifiers.
const (
	Run Button = 8 + iota
	Strafe
	PrevWeapon
	NextWeapon
	TogglePause
	ToggleMap
	AutomapZoomIn
	AutomapZoomOut
)

// Automap movement and misc gameplay.
const (
	AutomapMoveLeft Button = 16 + iota
	AutomapMoveRight
	AutomapMoveUp
	AutomapMoveDown
	AutomapPan
	Respawn
	PsxMouseUse
)

// Menus.
const (
	MenuUp Button = 24 + iota
	MenuDown
	MenuLeft
	MenuRight
	MenuOk
	MenuStart
	MenuBack
	EnterPasswordChar
	DeletePasswordChar
)

const (
	NumButtonBytes = 5

	// Only the gameplay bytes are carried by the compact form.
	NumCompactButtonBytes = 3
)

type Buttons [NumButtonBytes]uint8

func (b *Buttons) Pressed(button Button) bool {
	return b[button/8]&(1<<(button%8)) != 0
}

func (b *Buttons) Set(button Button, pressed bool) {
	if pressed {
		b[button/8] |= 1 << (button % 8)
	} else {
		b[button/8] &^= 1 << (button % 8)
	}
}
