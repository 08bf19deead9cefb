// keytracker.go - edge detection for keys polled once per tick.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker remembers the previous state of a set of keys so presses
// and releases can be detected as edges.
type KeyStateTracker struct {
	keys    []ebiten.Key
	prev    map[ebiten.Key]bool
	current map[ebiten.Key]bool
	pressed func(ebiten.Key) bool
}

// New tracks keys using ebiten.IsKeyPressed.
func New(keys ...ebiten.Key) *KeyStateTracker {
	return NewWithSource(ebiten.IsKeyPressed, keys...)
}

// NewWithSource tracks keys using a custom key state source.
func NewWithSource(pressed func(ebiten.Key) bool, keys ...ebiten.Key) *KeyStateTracker {
	return &KeyStateTracker{
		keys:    keys,
		prev:    make(map[ebiten.Key]bool, len(keys)),
		current: make(map[ebiten.Key]bool, len(keys)),
		pressed: pressed,
	}
}

// Update samples every tracked key. Call once per tick before querying.
func (k *KeyStateTracker) Update() {
	for _, key := range k.keys {
		k.prev[key] = k.current[key]
		k.current[key] = k.pressed(key)
	}
}

// IsKeyJustPressed returns true if the key was not pressed last tick but is pressed this tick.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.current[key] && !k.prev[key]
}

// IsKeyJustReleased returns true if the key was pressed last tick but is not pressed this tick.
func (k *KeyStateTracker) IsKeyJustReleased(key ebiten.Key) bool {
	return !k.current[key] && k.prev[key]
}

// IsKeyPressed returns the state sampled by the last Update.
func (k *KeyStateTracker) IsKeyPressed(key ebiten.Key) bool {
	return k.current[key]
}
