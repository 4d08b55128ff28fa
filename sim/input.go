package sim

import "github.com/go-gl/mathgl/mgl32"

// Key is a key the simulation asks the input collaborator about.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyL
	KeyB
)

func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	case KeyL:
		return "L"
	case KeyB:
		return "B"
	default:
		return "?"
	}
}

// Input answers discrete key-state queries. It is polled once per tick for
// movement and once per frame for toggles.
type Input interface {
	Pressed(key Key) bool
}

// NoInput is an Input with nothing pressed.
type NoInput struct{}

func (NoInput) Pressed(Key) bool { return false }

// KeySet is an Input backed by a set of held keys, for headless hosts and
// tests.
type KeySet map[Key]bool

func (k KeySet) Pressed(key Key) bool { return k[key] }

// Intent returns the unit movement direction in local space requested by
// the WASD keys: W and S move along +Z and -Z, A and D along -X and +X.
// Opposing keys cancel, and no keys give the zero vector.
func Intent(in Input) mgl32.Vec3 {
	var dir mgl32.Vec3
	if in.Pressed(KeyW) {
		dir[2]++
	}
	if in.Pressed(KeyS) {
		dir[2]--
	}
	if in.Pressed(KeyA) {
		dir[0]--
	}
	if in.Pressed(KeyD) {
		dir[0]++
	}
	if dir == (mgl32.Vec3{}) {
		return dir
	}
	return dir.Normalize()
}

// Toggle is a named flag flipped on the press edge of its key.
type Toggle struct {
	Name string
	Key  Key
	On   bool

	held bool
}

// Check samples the key and flips the flag if it went down since the last
// check. Returns whether the flag changed.
func (t *Toggle) Check(in Input) bool {
	pressed := in.Pressed(t.Key)
	changed := pressed && !t.held
	if changed {
		t.On = !t.On
	}
	t.held = pressed
	return changed
}

// DefaultToggles are the renderer flags bound to keys.
func DefaultToggles() []Toggle {
	return []Toggle{
		{Name: "fxaa", Key: KeyL},
		{Name: "bloom", Key: KeyB},
	}
}
