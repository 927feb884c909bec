package physics

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrInvalidShape is returned by the shape constructors when the geometry
// breaks one of the shape's invariants.
var ErrInvalidShape = errors.New("physics: invalid shape")

type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
	ShapeCapsule
	ShapeChain
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	case ShapeCapsule:
		return "capsule"
	case ShapeChain:
		return "chain"
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// Shape is the collision geometry of a body. MinX and MaxX are offsets from
// the body position and are all the partition ever looks at.
type Shape interface {
	Kind() ShapeKind
	MinX() float32
	MaxX() float32
}

type BoxShape struct {
	HalfWidth  float32
	HalfHeight float32
}

func NewBoxShape(halfWidth, halfHeight float32) (*BoxShape, error) {
	if halfWidth <= 0 || halfHeight <= 0 {
		return nil, fmt.Errorf("%w: box half extents must be positive, got (%g, %g)", ErrInvalidShape, halfWidth, halfHeight)
	}
	return &BoxShape{HalfWidth: halfWidth, HalfHeight: halfHeight}, nil
}

func (s *BoxShape) Kind() ShapeKind { return ShapeBox }
func (s *BoxShape) MinX() float32   { return -s.HalfWidth }
func (s *BoxShape) MaxX() float32   { return s.HalfWidth }

type CircleShape struct {
	Radius float32
}

func NewCircleShape(radius float32) (*CircleShape, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: circle radius must be positive, got %g", ErrInvalidShape, radius)
	}
	return &CircleShape{Radius: radius}, nil
}

func (s *CircleShape) Kind() ShapeKind { return ShapeCircle }
func (s *CircleShape) MinX() float32   { return -s.Radius }
func (s *CircleShape) MaxX() float32   { return s.Radius }

// CapsuleShape is a vertical pill: a circle at the body position and a
// second one Distance above it, joined by straight sides.
type CapsuleShape struct {
	Radius   float32
	distance float32
}

func NewCapsuleShape(radius, distance float32) (*CapsuleShape, error) {
	if radius <= 0 || distance < 0 {
		return nil, fmt.Errorf("%w: capsule needs radius > 0 and distance >= 0, got (%g, %g)", ErrInvalidShape, radius, distance)
	}
	return &CapsuleShape{Radius: radius, distance: distance}, nil
}

func (s *CapsuleShape) Kind() ShapeKind { return ShapeCapsule }
func (s *CapsuleShape) MinX() float32   { return -s.Radius }
func (s *CapsuleShape) MaxX() float32   { return s.Radius }

func (s *CapsuleShape) Distance() float32 {
	return s.distance
}

// SetDistance changes the gap between the two circles. Negative values are
// ignored. The x extent does not depend on it, so the partition is unaffected.
func (s *CapsuleShape) SetDistance(distance float32) {
	if distance < 0 {
		return
	}
	s.distance = distance
}

// ChainShape is a polyline read by the narrow phase as a row of step
// rectangles. Vertices never go right-to-left, and the first and last share
// a y coordinate (the baseline the rectangles stand on).
type ChainShape struct {
	vertices []rl.Vector2
}

func NewChainShape(vertices []rl.Vector2) (*ChainShape, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: chain needs at least 3 vertices, got %d", ErrInvalidShape, len(vertices))
	}
	if vertices[0].Y != vertices[len(vertices)-1].Y {
		return nil, fmt.Errorf("%w: chain endpoints have different y (%g, %g)", ErrInvalidShape, vertices[0].Y, vertices[len(vertices)-1].Y)
	}
	for i := 1; i < len(vertices); i++ {
		if vertices[i].X < vertices[i-1].X {
			return nil, fmt.Errorf("%w: chain vertex %d is left of its predecessor", ErrInvalidShape, i)
		}
	}

	v := make([]rl.Vector2, len(vertices))
	copy(v, vertices)
	return &ChainShape{vertices: v}, nil
}

func (s *ChainShape) Kind() ShapeKind { return ShapeChain }
func (s *ChainShape) MinX() float32   { return s.vertices[0].X }
func (s *ChainShape) MaxX() float32   { return s.vertices[len(s.vertices)-1].X }

// Vertices returns the chain's vertices. The slice must not be modified.
func (s *ChainShape) Vertices() []rl.Vector2 {
	return s.vertices
}
