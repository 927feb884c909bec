package game

import (
	"time"

	"platform2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func readKeyboard() engine.Input {
	return engine.Input{
		Left:  rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		Right: rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
		Jump:  rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeySpace),
		Down:  rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
	}
}

// Terminals report key presses and auto-repeats but no releases, so a key
// counts as held for a short while after its last event.
const keyHoldWindow = 150 * time.Millisecond

type heldKeys map[rune]time.Time

func (h heldKeys) press(r rune, now time.Time) {
	h[r] = now
}

func (h heldKeys) down(now time.Time, keys ...rune) bool {
	for _, r := range keys {
		if t, ok := h[r]; ok && now.Sub(t) < keyHoldWindow {
			return true
		}
	}
	return false
}

func (h heldKeys) input(now time.Time) engine.Input {
	return engine.Input{
		Left:  h.down(now, 'a', keyLeft),
		Right: h.down(now, 'd', keyRight),
		Jump:  h.down(now, 'w', ' ', keyUp),
		Down:  h.down(now, 's', keyDown),
	}
}

// Arrow keys have no rune; they are stored under private-use runes.
const (
	keyLeft  rune = 0xE000 + iota
	keyRight
	keyUp
	keyDown
)
