package engine

import (
	"slices"
	"sync/atomic"

	"platform2d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var uidCounter atomic.Uint32

// GameObject ties a physics body to the components that drive it. Its UID
// doubles as the body's tag so contacts can be mapped back to objects.
type GameObject struct {
	UID        uint32
	Name       string
	Tags       []string
	Color      rl.Color
	Active     bool
	Scene      *Scene
	Body       *physics.Body
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:        uidCounter.Add(1),
		Name:       name,
		Color:      rl.White,
		Active:     true,
		components: make([]Component, 0),
	}
}

// SetBody attaches body and routes its contacts to this object.
func (g *GameObject) SetBody(body *physics.Body) {
	g.Body = body
	if body == nil {
		return
	}
	body.Tag = physics.Tag(g.UID)
	body.Handler = g
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	return slices.Contains(g.Tags, tag)
}

func (g *GameObject) Position() rl.Vector2 {
	if g.Body == nil {
		return rl.Vector2{}
	}
	return g.Body.Position()
}

// OnCollision implements physics.CollisionHandler. Contacts with bodies that
// belong to no object in the scene are dropped.
func (g *GameObject) OnCollision(self *physics.Body, c physics.Collision) {
	if g.Scene == nil || !g.Active {
		return
	}
	other := g.Scene.FindByBody(c.Other)
	if other == nil {
		return
	}
	for _, comp := range g.components {
		if l, ok := comp.(CollisionListener); ok {
			l.OnCollision(other, c)
		}
	}
}
