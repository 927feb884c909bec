package physics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type BodyType uint8

const (
	// Dynamic bodies are integrated every step and collide with everything.
	Dynamic BodyType = iota
	// Static bodies never move on their own and push dynamic bodies out.
	Static
	// Sensor bodies report contacts but never push anything.
	Sensor
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	case Sensor:
		return "sensor"
	}
	return fmt.Sprintf("BodyType(%d)", uint8(t))
}

// Tag is an opaque game-side label carried by a body. The engine never
// interprets it.
type Tag uint32

// Collision describes one contact seen from the dynamic body. Distance is
// negative (penetration depth) and Normal points from Other towards the
// dynamic body.
type Collision struct {
	Normal   rl.Vector2
	Distance float32
	Other    *Body
}

// CollisionHandler is implemented by game objects that want to react to
// contacts. It is called synchronously during Engine.Update.
type CollisionHandler interface {
	OnCollision(self *Body, c Collision)
}

// CollisionHandlerFunc adapts a plain function to CollisionHandler.
type CollisionHandlerFunc func(self *Body, c Collision)

func (f CollisionHandlerFunc) OnCollision(self *Body, c Collision) {
	f(self, c)
}

type Body struct {
	Velocity    rl.Vector2
	Friction    float32 // multiplied with the other body's friction on contact
	Restitution float32 // 0 = no bounce, 1 = full bounce
	Tag         Tag
	Handler     CollisionHandler

	bodyType BodyType
	shape    Shape
	position rl.Vector2
	impulse  rl.Vector2

	// cached position.X + shape offsets
	minX float32
	maxX float32

	ball *Ball
}

func NewBody(bodyType BodyType, position rl.Vector2, shape Shape) *Body {
	b := &Body{
		Friction: 1.0,
		bodyType: bodyType,
		shape:    shape,
		position: position,
	}
	b.refreshExtents()
	return b
}

func (b *Body) Type() BodyType {
	return b.bodyType
}

func (b *Body) Shape() Shape {
	return b.shape
}

func (b *Body) Position() rl.Vector2 {
	return b.position
}

// ApplyImpulse queues a velocity change that is applied, and cleared, on the
// next integration step.
func (b *Body) ApplyImpulse(impulse rl.Vector2) {
	b.impulse = rl.Vector2Add(b.impulse, impulse)
}

// Extent returns the cached horizontal extent of the body.
func (b *Body) Extent() Interval {
	return Interval{MinX: b.minX, MaxX: b.maxX}
}

// Registered reports whether the body currently belongs to an engine.
func (b *Body) Registered() bool {
	return b.ball != nil
}

// Ball returns the body's binding to the partition, or nil when the body is
// not registered.
func (b *Body) Ball() *Ball {
	return b.ball
}

func (b *Body) refreshExtents() {
	b.minX = b.position.X + b.shape.MinX()
	b.maxX = b.position.X + b.shape.MaxX()
}
