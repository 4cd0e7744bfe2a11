// Package input tracks command modifier state from key events.
package input

// Key identifies the keys the demo cares about; others map to KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyQ
	KeyS
	KeyA
	KeyLeftSuper
	KeyRightSuper
)

// Action is a key transition.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Event is a single keyboard transition.
type Event struct {
	Key    Key
	Action Action
}

// Pressed reports whether ev is a press of k.
func (ev Event) Pressed(k Key) bool { return ev.Key == k && ev.Action == Press }

// Tracker holds left and right command modifier state.
type Tracker struct {
	left, right bool
}

// Update applies ev; only press and release of the super keys change state.
func (t *Tracker) Update(ev Event) {
	var v *bool
	switch ev.Key {
	case KeyLeftSuper:
		v = &t.left
	case KeyRightSuper:
		v = &t.right
	default:
		return
	}
	switch ev.Action {
	case Press:
		*v = true
	case Release:
		*v = false
	}
}

// Held reports whether either command modifier is down.
func (t Tracker) Held() bool { return t.left || t.right }
