package world

import (
	"platform2d/internal/camera"
	"platform2d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// View is the world-space rectangle visible on screen, used to skip drawing
// bodies that are off screen.
type View struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// ExtractView returns the rectangle cam shows on a screen of the given size.
func ExtractView(cam *camera.Follow, screenWidth, screenHeight float32) View {
	topLeft := cam.ScreenToWorld(rl.Vector2{}, screenWidth, screenHeight)
	bottomRight := cam.ScreenToWorld(rl.Vector2{X: screenWidth, Y: screenHeight}, screenWidth, screenHeight)
	return View{
		MinX: topLeft.X,
		MaxX: bottomRight.X,
		MinY: bottomRight.Y,
		MaxY: topLeft.Y,
	}
}

func (v View) ContainsPoint(p rl.Vector2) bool {
	return p.X >= v.MinX && p.X <= v.MaxX && p.Y >= v.MinY && p.Y <= v.MaxY
}

// ContainsBody reports whether any part of b's bounding box is in view.
func (v View) ContainsBody(b *physics.Body) bool {
	minY, maxY := VerticalBounds(b)
	ext := b.Extent()
	return ext.MaxX >= v.MinX && ext.MinX <= v.MaxX && maxY >= v.MinY && minY <= v.MaxY
}

// VerticalBounds returns the lowest and highest y any part of b reaches.
func VerticalBounds(b *physics.Body) (minY, maxY float32) {
	y := b.Position().Y
	switch s := b.Shape().(type) {
	case *physics.BoxShape:
		return y - s.HalfHeight, y + s.HalfHeight
	case *physics.CircleShape:
		return y - s.Radius, y + s.Radius
	case *physics.CapsuleShape:
		return y - s.Radius, y + s.Distance() + s.Radius
	case *physics.ChainShape:
		vs := s.Vertices()
		minY, maxY = vs[0].Y, vs[0].Y
		for _, p := range vs[1:] {
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
		return y + minY, y + maxY
	}
	return y, y
}
