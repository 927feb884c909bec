package components

import (
	"platform2d/internal/engine"
	"platform2d/internal/physics"
)

// Walker paces horizontally at a constant speed and turns around when it
// bumps into terrain or another walker.
type Walker struct {
	engine.BaseComponent
	Speed     float32
	Direction float32 // -1 or 1
}

func NewWalker() *Walker {
	return &Walker{Speed: 2, Direction: -1}
}

func (w *Walker) Update(deltaTime float32) {
	g := w.GetGameObject()
	if g == nil || g.Body == nil {
		return
	}
	g.Body.Velocity.X = w.Direction * w.Speed
}

func (w *Walker) OnCollision(other *engine.GameObject, c physics.Collision) {
	if c.Normal.X == 0 {
		return
	}
	if !other.HasTag(TagTerrain) && engine.GetComponent[*Walker](other) == nil {
		return
	}
	if c.Normal.X > 0 {
		w.Direction = 1
	} else {
		w.Direction = -1
	}
}
