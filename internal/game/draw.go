package game

import (
	"fmt"

	"platform2d/internal/camera"
	"platform2d/internal/engine"
	"platform2d/internal/physics"
	"platform2d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBackground = rl.NewColor(64, 64, 64, 255)
	colorLeafLine   = rl.NewColor(90, 90, 110, 255)
	colorSpan       = rl.NewColor(80, 140, 220, 40)
	colorCandidate  = rl.NewColor(255, 220, 80, 160)
)

// renderer draws bodies as outlines in screen space. World y is up, so all
// coordinates go through the camera rather than a raylib Camera2D.
type renderer struct {
	cam           *camera.Follow
	width, height float32
}

func (r *renderer) toScreen(p rl.Vector2) rl.Vector2 {
	return r.cam.WorldToScreen(p, r.width, r.height)
}

func (r *renderer) scale() float32 {
	return r.cam.Scale(r.width)
}

func (r *renderer) drawObjects(objects []*engine.GameObject) {
	view := world.ExtractView(r.cam, r.width, r.height)
	for _, g := range objects {
		if g.Body == nil || !view.ContainsBody(g.Body) {
			continue
		}
		r.drawBody(g.Body, g.Color)
	}
}

func (r *renderer) drawBody(b *physics.Body, color rl.Color) {
	pos := b.Position()
	s := r.scale()

	switch shape := b.Shape().(type) {
	case *physics.BoxShape:
		topLeft := r.toScreen(rl.Vector2{X: pos.X - shape.HalfWidth, Y: pos.Y + shape.HalfHeight})
		rect := rl.Rectangle{X: topLeft.X, Y: topLeft.Y, Width: 2 * shape.HalfWidth * s, Height: 2 * shape.HalfHeight * s}
		rl.DrawRectangleLinesEx(rect, 2, color)

	case *physics.CircleShape:
		rl.DrawCircleLinesV(r.toScreen(pos), shape.Radius*s, color)

	case *physics.CapsuleShape:
		top := rl.Vector2{X: pos.X, Y: pos.Y + shape.Distance()}
		rl.DrawCircleLinesV(r.toScreen(pos), shape.Radius*s, color)
		rl.DrawCircleLinesV(r.toScreen(top), shape.Radius*s, color)
		for _, dx := range []float32{-shape.Radius, shape.Radius} {
			rl.DrawLineV(
				r.toScreen(rl.Vector2{X: pos.X + dx, Y: pos.Y}),
				r.toScreen(rl.Vector2{X: top.X + dx, Y: top.Y}),
				color)
		}

	case *physics.ChainShape:
		vs := shape.Vertices()
		for i := 1; i < len(vs); i++ {
			a := r.toScreen(rl.Vector2Add(pos, vs[i-1]))
			c := r.toScreen(rl.Vector2Add(pos, vs[i]))
			rl.DrawLineEx(a, c, 2, color)
		}
	}
}

// drawPartition shows the leaf boundaries in view, the span of the focus
// body's leaves and lines to its broad-phase candidates.
func (r *renderer) drawPartition(tree *physics.BinaryTree, focus *physics.Body) {
	minX, maxX := r.cam.VisibleX()
	for _, leaf := range tree.Leaves() {
		if leaf.MinX < minX || leaf.MinX > maxX {
			continue
		}
		x := r.toScreen(rl.Vector2{X: leaf.MinX}).X
		rl.DrawLineV(rl.Vector2{X: x, Y: 0}, rl.Vector2{X: x, Y: r.height}, colorLeafLine)
		rl.DrawText(fmt.Sprintf("%g", leaf.MinX), int32(x)+4, int32(r.height)-20, 10, colorLeafLine)
	}

	if focus == nil || focus.Ball() == nil {
		return
	}
	span := tree.Span(focus.Ball())
	left := r.toScreen(rl.Vector2{X: span.MinX}).X
	right := r.toScreen(rl.Vector2{X: span.MaxX}).X
	rl.DrawRectangleRec(rl.Rectangle{X: left, Y: 0, Width: right - left, Height: r.height}, colorSpan)

	from := r.toScreen(focus.Position())
	for _, other := range focus.Ball().Candidates() {
		rl.DrawLineV(from, r.toScreen(other.Position()), colorCandidate)
	}
}
