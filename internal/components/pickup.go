package components

import (
	"platform2d/internal/engine"

	"github.com/charmbracelet/log"
)

// Pickup is a collectible worth Value points. It is collected at most once.
type Pickup struct {
	engine.BaseComponent
	Value     int
	collected bool
}

func NewPickup() *Pickup {
	return &Pickup{Value: 1}
}

func (p *Pickup) Collected() bool {
	return p.collected
}

// Collect scores the pickup and queues its object for removal. It reports
// false if the pickup was already taken.
func (p *Pickup) Collect(world engine.WorldAccess) bool {
	if p.collected {
		return false
	}
	p.collected = true
	if world != nil {
		world.AddScore(p.Value)
		world.Destroy(p.GetGameObject())
	}
	log.Info("pickup collected", "name", p.GetGameObject().Name, "value", p.Value)
	return true
}

// PowerUp toggles the player's size when touched. It starts moving
// horizontally at Speed and relies on its body's restitution to bounce.
type PowerUp struct {
	engine.BaseComponent
	Speed     float32
	collected bool
}

func NewPowerUp() *PowerUp {
	return &PowerUp{Speed: 3}
}

func (p *PowerUp) Start() {
	if g := p.GetGameObject(); g != nil && g.Body != nil {
		g.Body.Velocity.X = p.Speed
	}
}

func (p *PowerUp) Collect(world engine.WorldAccess) bool {
	if p.collected {
		return false
	}
	p.collected = true
	if world != nil {
		world.Destroy(p.GetGameObject())
	}
	log.Info("power-up collected", "name", p.GetGameObject().Name)
	return true
}
