package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampToBox clamps v componentwise into [-half, half]
func clampToBox(v rl.Vector2, halfWidth, halfHeight float32) rl.Vector2 {
	return rl.Vector2{
		X: clamp(v.X, -halfWidth, halfWidth),
		Y: clamp(v.Y, -halfHeight, halfHeight),
	}
}

// ortho returns v rotated a quarter turn clockwise
func ortho(v rl.Vector2) rl.Vector2 {
	return rl.Vector2{X: v.Y, Y: -v.X}
}

// pushUnique appends b to s unless it is already present
func pushUnique(s []*Ball, b *Ball) []*Ball {
	for _, x := range s {
		if x == b {
			return s
		}
	}
	return append(s, b)
}

// pop removes the first occurrence of b from s, keeping order
func pop(s []*Ball, b *Ball) []*Ball {
	for i, x := range s {
		if x == b {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
