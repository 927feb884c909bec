package physics

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Config holds the tunables of an Engine.
type Config struct {
	Gravity        rl.Vector2 `json:"gravity"`
	PartitionWidth float32    `json:"partitionWidth"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:        rl.Vector2{X: 0, Y: -9.81},
		PartitionWidth: 20,
	}
}

type Option func(*Engine)

// WithLogger routes the engine's diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Contact is a reported collision together with the dynamic body it was
// reported for.
type Contact struct {
	Body *Body
	Collision
}

// Engine steps dynamic bodies under gravity and resolves their contacts
// against static bodies. It is not safe for concurrent use; handlers run on
// the goroutine calling Update.
type Engine struct {
	gravity rl.Vector2
	tree    *BinaryTree

	// insertion order is iteration order
	dynamic []*Ball
	static  []*Ball

	contacts        []Contact
	stepping        bool
	pendingRemovals []*Body

	// scan every chain segment instead of stopping at the first one that
	// lies entirely to the right of the body
	exhaustiveChains bool

	logger *log.Logger
}

func NewEngine(cfg Config, opts ...Option) *Engine {
	if cfg.PartitionWidth <= 0 {
		cfg.PartitionWidth = DefaultConfig().PartitionWidth
	}
	e := &Engine{
		gravity: cfg.Gravity,
		tree:    NewBinaryTree(cfg.PartitionWidth),
		logger:  log.Default().WithPrefix("physics"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.tree.logger = e.logger
	return e
}

func (e *Engine) Gravity() rl.Vector2 {
	return e.gravity
}

func (e *Engine) SetGravity(gravity rl.Vector2) {
	e.gravity = gravity
}

// Partition exposes the broad phase for inspection and debug drawing.
func (e *Engine) Partition() *BinaryTree {
	return e.tree
}

// AddBody registers body with the engine. Dynamic bodies are stepped;
// static and sensor bodies only take part as the other side of a contact.
func (e *Engine) AddBody(body *Body) {
	if body.ball != nil {
		panic("physics: body added to an engine twice")
	}
	body.refreshExtents()
	ball := newBall(body)
	body.ball = ball
	if body.bodyType == Dynamic {
		e.dynamic = append(e.dynamic, ball)
	} else {
		e.static = append(e.static, ball)
	}
	e.tree.Add(ball)
	e.logger.Debug("body added", "type", body.bodyType, "shape", body.shape.Kind(), "dynamic", len(e.dynamic), "static", len(e.static))
}

// RemoveBody unregisters body. Called during Update, for example from a
// collision handler, the removal happens once the step has finished.
func (e *Engine) RemoveBody(body *Body) {
	if body.ball == nil {
		panic("physics: removing a body that is not in the engine")
	}
	if e.stepping {
		if !slices.Contains(e.pendingRemovals, body) {
			e.pendingRemovals = append(e.pendingRemovals, body)
		}
		return
	}
	e.remove(body)
}

func (e *Engine) remove(body *Body) {
	ball := body.ball
	if body.bodyType == Dynamic {
		e.dynamic = deleteBall(e.dynamic, ball)
	} else {
		e.static = deleteBall(e.static, ball)
	}
	e.tree.Remove(ball)
	body.ball = nil
	e.logger.Debug("body removed", "type", body.bodyType, "dynamic", len(e.dynamic), "static", len(e.static))
}

// MoveBody teleports body by delta. Only a horizontal move touches the
// partition.
func (e *Engine) MoveBody(body *Body, delta rl.Vector2) {
	if e.stepping {
		panic("physics: MoveBody called during Update")
	}
	body.position.Y += delta.Y
	if delta.X == 0 {
		return
	}
	if body.ball == nil {
		body.position.X += delta.X
		body.refreshExtents()
		return
	}
	e.tree.Remove(body.ball)
	body.position.X += delta.X
	body.refreshExtents()
	e.tree.Add(body.ball)
}

// Bodies returns every registered body, dynamic ones first.
func (e *Engine) Bodies() []*Body {
	bodies := make([]*Body, 0, len(e.dynamic)+len(e.static))
	for _, ball := range e.dynamic {
		bodies = append(bodies, ball.body)
	}
	for _, ball := range e.static {
		bodies = append(bodies, ball.body)
	}
	return bodies
}

func (e *Engine) BodyCount() int {
	return len(e.dynamic) + len(e.static)
}

// Clear unregisters every body and resets the partition.
func (e *Engine) Clear() {
	for _, ball := range e.dynamic {
		ball.body.ball = nil
	}
	for _, ball := range e.static {
		ball.body.ball = nil
	}
	e.dynamic = nil
	e.static = nil
	e.pendingRemovals = nil
	e.contacts = nil
	e.tree.Reset()
}

// DrainContacts returns every contact reported since the last call and
// empties the queue.
func (e *Engine) DrainContacts() []Contact {
	contacts := e.contacts
	e.contacts = nil
	return contacts
}

// Update advances the simulation by dt seconds.
func (e *Engine) Update(dt float32) {
	if e.stepping {
		panic("physics: Update called re-entrantly")
	}
	e.stepping = true

	for _, ball := range e.dynamic {
		body := ball.body
		body.impulse = rl.Vector2Add(body.impulse, rl.Vector2Scale(e.gravity, dt))
		body.Velocity = rl.Vector2Add(body.Velocity, body.impulse)
		body.position = rl.Vector2Add(body.position, rl.Vector2Scale(body.Velocity, dt))
		body.impulse = rl.Vector2Zero()
		body.refreshExtents()
		e.tree.Update(ball)
	}

	n := len(e.dynamic)
	for i := 0; i < n; i++ {
		e.solve(e.dynamic[i])
	}

	e.stepping = false
	for _, body := range e.pendingRemovals {
		if body.ball != nil {
			e.remove(body)
		}
	}
	e.pendingRemovals = e.pendingRemovals[:0]
}

// solve runs the narrow phase for one dynamic ball against its candidates.
// Corrections from every contact are summed and applied once.
func (e *Engine) solve(ball *Ball) {
	body := ball.body
	var posCorrection, velCorrection rl.Vector2
	extent := body.Extent()

	for _, other := range ball.candidates {
		ob := other.body
		if !extent.Overlaps(ob.Extent()) {
			continue
		}
		collide := narrowPhase[body.shape.Kind()][ob.shape.Kind()]
		if collide == nil {
			continue
		}
		c, ok := collide(body, ob, e.exhaustiveChains)
		if !ok {
			continue
		}

		if ob.bodyType == Static {
			posCorrection = rl.Vector2Subtract(posCorrection, rl.Vector2Scale(c.Normal, c.Distance))

			dv := rl.Vector2Subtract(body.Velocity, ob.Velocity)
			velCorrection = rl.Vector2Subtract(velCorrection,
				rl.Vector2Scale(c.Normal, rl.Vector2DotProduct(c.Normal, dv)*(1+body.Restitution)))

			p := ortho(c.Normal)
			velCorrection = rl.Vector2Subtract(velCorrection,
				rl.Vector2Scale(p, rl.Vector2DotProduct(p, dv)*body.Friction*ob.Friction*tangentDamping))
		}
		e.report(body, c)
	}

	if posCorrection == (rl.Vector2{}) && velCorrection == (rl.Vector2{}) {
		return
	}
	body.position = rl.Vector2Add(body.position, posCorrection)
	body.Velocity = rl.Vector2Add(body.Velocity, velCorrection)
	body.refreshExtents()
	e.tree.Update(ball)
}

func (e *Engine) report(body *Body, c Collision) {
	e.contacts = append(e.contacts, Contact{Body: body, Collision: c})
	if body.Handler != nil {
		body.Handler.OnCollision(body, c)
	}
}

func deleteBall(balls []*Ball, ball *Ball) []*Ball {
	i := slices.Index(balls, ball)
	if i < 0 {
		panic(fmt.Sprintf("physics: %s body missing from the engine", ball.body.bodyType))
	}
	return slices.Delete(balls, i, i+1)
}
