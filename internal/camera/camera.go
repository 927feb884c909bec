// Package camera holds the 2D side-scrolling camera shared by the front ends.
package camera

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Follow trails a target in world space. World y points up; screen y points
// down.
type Follow struct {
	Position  rl.Vector2
	Lerp      float32 // fraction of the remaining distance closed per Update
	ViewWidth float32 // world units visible across the screen
}

func New(pos rl.Vector2, viewWidth float32) *Follow {
	return &Follow{
		Position:  pos,
		Lerp:      0.05,
		ViewWidth: viewWidth,
	}
}

func (c *Follow) Update(target rl.Vector2) {
	c.Position = rl.Vector2Lerp(c.Position, target, c.Lerp)
}

// Snap jumps straight to target.
func (c *Follow) Snap(target rl.Vector2) {
	c.Position = target
}

// Scale returns screen pixels per world unit for a screen screenWidth wide.
func (c *Follow) Scale(screenWidth float32) float32 {
	return screenWidth / c.ViewWidth
}

func (c *Follow) WorldToScreen(p rl.Vector2, screenWidth, screenHeight float32) rl.Vector2 {
	s := c.Scale(screenWidth)
	return rl.Vector2{
		X: (p.X-c.Position.X)*s + screenWidth/2,
		Y: screenHeight/2 - (p.Y-c.Position.Y)*s,
	}
}

func (c *Follow) ScreenToWorld(p rl.Vector2, screenWidth, screenHeight float32) rl.Vector2 {
	s := c.Scale(screenWidth)
	return rl.Vector2{
		X: (p.X-screenWidth/2)/s + c.Position.X,
		Y: (screenHeight/2-p.Y)/s + c.Position.Y,
	}
}

// VisibleX returns the world x range on screen.
func (c *Follow) VisibleX() (minX, maxX float32) {
	return c.Position.X - c.ViewWidth/2, c.Position.X + c.ViewWidth/2
}
