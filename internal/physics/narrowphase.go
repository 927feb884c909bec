package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// tangentDamping scales the friction term of a contact response.
const tangentDamping = 0.03

// collideFunc tests a dynamic body against another body. It reports a
// penetrating contact seen from the dynamic body.
type collideFunc func(dyn, other *Body, exhaustive bool) (Collision, bool)

// narrowPhase is indexed by [dynamic shape][other shape]. Missing pairs are
// never tested.
var narrowPhase = [4][4]collideFunc{
	ShapeCircle: {
		ShapeBox:    collideCircleBox,
		ShapeCircle: collideCircleCircle,
		ShapeChain:  collideCircleChain,
	},
	ShapeCapsule: {
		ShapeBox:    collideCapsuleBox,
		ShapeCircle: collideCapsuleCircle,
		ShapeChain:  collideCapsuleChain,
	},
}

// circleVsBox measures a circle against an axis aligned box. The normal is
// the unit vector from the closest point on the box to the circle centre, or
// zero when the centre is inside the box.
func circleVsBox(center rl.Vector2, radius float32, boxCenter rl.Vector2, halfWidth, halfHeight float32) (rl.Vector2, float32) {
	delta := rl.Vector2Subtract(center, boxCenter)
	n := rl.Vector2Subtract(delta, clampToBox(delta, halfWidth, halfHeight))
	return n, rl.Vector2Length(n) - radius
}

func circleVsCircle(center rl.Vector2, radius float32, other rl.Vector2, otherRadius float32) (Collision, bool) {
	delta := rl.Vector2Subtract(center, other)
	distance := rl.Vector2Length(delta) - (radius + otherRadius)
	if distance >= 0 {
		return Collision{}, false
	}
	return Collision{Normal: rl.Vector2Normalize(delta), Distance: distance}, true
}

func boxContact(center rl.Vector2, radius float32, boxCenter rl.Vector2, halfWidth, halfHeight float32) (Collision, bool) {
	n, distance := circleVsBox(center, radius, boxCenter, halfWidth, halfHeight)
	if distance >= 0 {
		return Collision{}, false
	}
	return Collision{Normal: rl.Vector2Normalize(n), Distance: distance}, true
}

// bandContact handles a capsule whose straight sides face the other body:
// only the horizontal gap matters.
func bandContact(x, radius, otherX, halfWidth float32) (Collision, bool) {
	dx := x - otherX
	nx := dx - clamp(dx, -halfWidth, halfWidth)
	distance := float32(math.Abs(float64(nx))) - radius
	if distance >= 0 {
		return Collision{}, false
	}
	var normal rl.Vector2
	switch {
	case nx > 0:
		normal.X = 1
	case nx < 0:
		normal.X = -1
	}
	return Collision{Normal: normal, Distance: distance}, true
}

func collideCircleBox(dyn, other *Body, _ bool) (Collision, bool) {
	circle := dyn.shape.(*CircleShape)
	box := other.shape.(*BoxShape)
	c, ok := boxContact(dyn.position, circle.Radius, other.position, box.HalfWidth, box.HalfHeight)
	c.Other = other
	return c, ok
}

func collideCircleCircle(dyn, other *Body, _ bool) (Collision, bool) {
	circle := dyn.shape.(*CircleShape)
	oc := other.shape.(*CircleShape)
	c, ok := circleVsCircle(dyn.position, circle.Radius, other.position, oc.Radius)
	c.Other = other
	return c, ok
}

func collideCircleChain(dyn, other *Body, exhaustive bool) (Collision, bool) {
	circle := dyn.shape.(*CircleShape)
	c, ok := chainContact(dyn.position, circle.Radius, other, exhaustive)
	c.Other = other
	return c, ok
}

// collideCapsuleBox uses the lower circle when the capsule stands on the
// box, the upper one when it is fully below, and the straight sides
// otherwise.
func collideCapsuleBox(dyn, other *Body, _ bool) (Collision, bool) {
	capsule := dyn.shape.(*CapsuleShape)
	box := other.shape.(*BoxShape)

	var c Collision
	var ok bool
	switch {
	case dyn.position.Y >= other.position.Y+box.HalfHeight:
		c, ok = boxContact(dyn.position, capsule.Radius, other.position, box.HalfWidth, box.HalfHeight)
	case dyn.position.Y+capsule.distance <= other.position.Y-box.HalfHeight:
		top := rl.Vector2{X: dyn.position.X, Y: dyn.position.Y + capsule.distance}
		c, ok = boxContact(top, capsule.Radius, other.position, box.HalfWidth, box.HalfHeight)
	default:
		c, ok = bandContact(dyn.position.X, capsule.Radius, other.position.X, box.HalfWidth)
	}
	c.Other = other
	return c, ok
}

// collideCapsuleCircle splits the same way as collideCapsuleBox, using the
// other circle's centre height as both the top and the bottom.
func collideCapsuleCircle(dyn, other *Body, _ bool) (Collision, bool) {
	capsule := dyn.shape.(*CapsuleShape)
	oc := other.shape.(*CircleShape)

	var c Collision
	var ok bool
	switch {
	case dyn.position.Y >= other.position.Y:
		c, ok = circleVsCircle(dyn.position, capsule.Radius, other.position, oc.Radius)
	case dyn.position.Y+capsule.distance <= other.position.Y:
		top := rl.Vector2{X: dyn.position.X, Y: dyn.position.Y + capsule.distance}
		c, ok = circleVsCircle(top, capsule.Radius, other.position, oc.Radius)
	default:
		c, ok = bandContact(dyn.position.X, capsule.Radius, other.position.X, oc.Radius)
	}
	c.Other = other
	return c, ok
}

// collideCapsuleChain only tests the lower circle. Chains are terrain the
// capsule walks on.
func collideCapsuleChain(dyn, other *Body, exhaustive bool) (Collision, bool) {
	capsule := dyn.shape.(*CapsuleShape)
	c, ok := chainContact(dyn.position, capsule.Radius, other, exhaustive)
	c.Other = other
	return c, ok
}

// chainContact reads the chain as a row of step rectangles standing on the
// first vertex's y, one per vertex triple (i, i+1, i+2) with i even. The
// push-outs of all penetrated steps are summed into a single contact.
//
// Steps are ordered left to right, so once a step is missed on its left
// side no later step can be hit and the scan stops, unless exhaustive is
// set.
func chainContact(center rl.Vector2, radius float32, chain *Body, exhaustive bool) (Collision, bool) {
	vertices := chain.shape.(*ChainShape).vertices
	baseY := vertices[0].Y

	var push rl.Vector2
	hit := false
	for i := 0; i+2 < len(vertices); i += 2 {
		v0 := rl.Vector2{X: vertices[i].X, Y: baseY}
		v1 := vertices[i+1]
		v2 := vertices[i+2]

		c := rl.Vector2Scale(rl.Vector2Add(v0, v2), 0.5)
		halfWidth := v2.X - c.X
		halfHeight := v1.Y - c.Y
		c = rl.Vector2Add(c, chain.position)

		n, distance := circleVsBox(center, radius, c, halfWidth, halfHeight)
		if distance >= 0 {
			if n.X < 0 && !exhaustive {
				break
			}
			continue
		}
		push = rl.Vector2Subtract(push, rl.Vector2Scale(rl.Vector2Normalize(n), distance))
		hit = true
	}
	if !hit {
		return Collision{}, false
	}
	return Collision{
		Normal:   rl.Vector2Normalize(push),
		Distance: -rl.Vector2Length(push),
	}, true
}
