package components

import (
	"platform2d/internal/engine"
	"platform2d/internal/physics"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TagTerrain marks objects the player can stand on and walkers turn around at.
const (
	TagTerrain = "terrain"
	TagPlayer  = "player"
)

// A contact counts as ground when its normal points (almost) straight up.
const groundNormalY = 0.999

// PlayerController drives the player's capsule from the frame's input and
// reacts to what the capsule touches: terrain grounds it, pickups and
// power-ups are collected, walkers are stomped or hurt the player.
type PlayerController struct {
	engine.BaseComponent

	MoveImpulse  float32
	JumpImpulse  float32
	DropImpulse  float32
	AirControl   float32 // fraction of horizontal input kept while airborne
	BigDistance  float32 // capsule distance while big
	StompImpulse float32

	Spawn rl.Vector2
	Died  engine.Event

	big         bool
	airborne    bool
	becomeBig   bool
	becomeSmall bool
	dead        bool
}

func NewPlayerController() *PlayerController {
	return &PlayerController{
		MoveImpulse:  0.1,
		JumpImpulse:  8,
		DropImpulse:  0.5,
		AirControl:   0.125,
		BigDistance:  0.5,
		StompImpulse: 10,
		airborne:     true,
	}
}

func (p *PlayerController) Big() bool {
	return p.big
}

func (p *PlayerController) Grounded() bool {
	return !p.airborne
}

func (p *PlayerController) Start() {
	if g := p.GetGameObject(); g != nil && p.Spawn == (rl.Vector2{}) {
		p.Spawn = g.Position()
	}
}

func (p *PlayerController) Update(deltaTime float32) {
	g := p.GetGameObject()
	if g == nil || g.Body == nil {
		return
	}
	world := p.World()

	if p.dead {
		p.respawn(world)
		return
	}

	if p.big && p.becomeSmall {
		p.setBig(false)
	}
	if !p.big && p.becomeBig {
		p.setBig(true)
	}

	var in engine.Input
	if world != nil {
		in = world.Input()
	}
	impulse := p.intent(in)
	if p.airborne {
		impulse.X *= p.AirControl
		impulse.Y = 0
	}
	g.Body.ApplyImpulse(impulse)

	// cleared again by the next ground contact
	p.airborne = true
}

func (p *PlayerController) intent(in engine.Input) rl.Vector2 {
	var impulse rl.Vector2
	if in.Right {
		impulse.X += p.MoveImpulse
	}
	if in.Left {
		impulse.X -= p.MoveImpulse
	}
	switch {
	case in.Jump:
		impulse.Y = p.JumpImpulse
	case in.Down:
		impulse.Y = -p.DropImpulse
	}
	return impulse
}

func (p *PlayerController) setBig(big bool) {
	p.big = big
	p.becomeBig = false
	p.becomeSmall = false

	capsule, ok := p.GetGameObject().Body.Shape().(*physics.CapsuleShape)
	if !ok {
		return
	}
	if big {
		capsule.SetDistance(p.BigDistance)
	} else {
		capsule.SetDistance(0)
	}
	log.Info("player size changed", "big", big)
}

func (p *PlayerController) respawn(world engine.WorldAccess) {
	g := p.GetGameObject()
	p.dead = false
	p.setBig(false)
	g.Body.Velocity = rl.Vector2{}
	if world != nil {
		world.Teleport(g, p.Spawn)
	}
	p.airborne = true
	p.Died.Invoke()
}

func (p *PlayerController) OnCollision(other *engine.GameObject, c physics.Collision) {
	world := p.World()

	if other.HasTag(TagTerrain) {
		if c.Normal.Y >= groundNormalY {
			p.airborne = false
		}
		return
	}

	if pickup := engine.GetComponent[*Pickup](other); pickup != nil {
		pickup.Collect(world)
		return
	}

	if powerUp := engine.GetComponent[*PowerUp](other); powerUp != nil {
		if powerUp.Collect(world) {
			p.becomeBig = !p.big
		}
		return
	}

	if engine.GetComponent[*Walker](other) != nil {
		p.hitWalker(world, other, c)
	}
}

func (p *PlayerController) hitWalker(world engine.WorldAccess, walker *engine.GameObject, c physics.Collision) {
	n := c.Normal
	if abs(n.Y) > abs(n.X) {
		p.GetGameObject().Body.ApplyImpulse(rl.Vector2Scale(n, p.StompImpulse))
		if world != nil {
			world.Destroy(walker)
		}
		log.Info("walker stomped", "name", walker.Name)
		return
	}

	if p.big {
		p.becomeSmall = true
		return
	}
	if !p.dead {
		log.Info("player died", "position", p.GetGameObject().Position())
	}
	p.dead = true
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
