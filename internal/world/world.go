// Package world runs a level: it owns the scene, the physics engine and the
// camera, and advances them together one fixed step at a time.
package world

import (
	"slices"

	"platform2d/internal/camera"
	"platform2d/internal/components"
	"platform2d/internal/config"
	"platform2d/internal/engine"
	"platform2d/internal/physics"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type World struct {
	Scene   *engine.Scene
	Physics *physics.Engine
	Camera  *camera.Follow
	Player  *engine.GameObject

	Score        int
	OnScore      engine.EventWithArg[int]
	OnPlayerDied engine.Event
	OnDestroyed  engine.EventWithArg[*engine.GameObject]

	input        engine.Input
	destroyQueue []*engine.GameObject
	timeStep     float32
	steps        int
	lastContacts int
	levelName    string
	logger       *log.Logger
}

// Stats is a snapshot for the HUD and the terminal status line.
type Stats struct {
	Steps    int
	Objects  int
	Bodies   int
	Contacts int
	Leaves   int
	Depth    int
	Score    int
}

func New(cfg config.Config, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	w := &World{
		Physics:  physics.NewEngine(cfg.Physics, physics.WithLogger(logger.WithPrefix("physics"))),
		Camera:   camera.New(rl.Vector2{}, cfg.Window.ViewWidth),
		timeStep: cfg.TimeStep,
		logger:   logger.WithPrefix("world"),
	}
	w.resetScene("Main")
	return w
}

func (w *World) resetScene(name string) {
	w.Scene = engine.NewScene(name)
	w.Scene.World = w
}

func (w *World) TimeStep() float32 {
	return w.timeStep
}

// --- engine.WorldAccess ---

func (w *World) Input() engine.Input {
	return w.input
}

func (w *World) SetInput(in engine.Input) {
	w.input = in
}

// Destroy queues g for removal after the current physics step. Queuing the
// same object twice is harmless.
func (w *World) Destroy(g *engine.GameObject) {
	if g == nil || slices.Contains(w.destroyQueue, g) {
		return
	}
	w.destroyQueue = append(w.destroyQueue, g)
}

func (w *World) Teleport(g *engine.GameObject, pos rl.Vector2) {
	if g.Body == nil {
		return
	}
	w.Physics.MoveBody(g.Body, rl.Vector2Subtract(pos, g.Body.Position()))
	if g == w.Player {
		w.Camera.Snap(pos)
	}
}

func (w *World) AddScore(points int) {
	w.Score += points
	w.OnScore.Invoke(w.Score)
}

// --- Lifecycle ---

// Spawn adds g to the scene and its body to the engine, then starts it.
func (w *World) Spawn(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	if g.Body != nil && !g.Body.Registered() {
		w.Physics.AddBody(g.Body)
	}

	if pc := engine.GetComponent[*components.PlayerController](g); pc != nil {
		w.Player = g
		pc.Died.AddListener(w.OnPlayerDied.Invoke)
		w.Camera.Snap(g.Position())
	}

	g.Start()
}

// Step advances the world by one fixed time step: physics first, then the
// removals queued by collision handlers, then the components, then the
// camera.
func (w *World) Step() {
	w.Physics.Update(w.timeStep)
	w.flushDestroyed()

	w.Scene.Update(w.timeStep)
	w.flushDestroyed()

	if w.Player != nil {
		w.Camera.Update(w.Player.Position())
	}

	w.lastContacts = len(w.Physics.DrainContacts())
	w.steps++
}

func (w *World) flushDestroyed() {
	for _, g := range w.destroyQueue {
		if g.Body != nil && g.Body.Registered() {
			w.Physics.RemoveBody(g.Body)
		}
		w.Scene.RemoveGameObject(g)
		if g == w.Player {
			w.Player = nil
		}
		w.logger.Debug("object destroyed", "name", g.Name)
		w.OnDestroyed.Invoke(g)
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// Clear drops every object and resets the score.
func (w *World) Clear() {
	w.Physics.Clear()
	w.resetScene(w.Scene.Name)
	w.Player = nil
	w.Score = 0
	w.steps = 0
	w.lastContacts = 0
	w.destroyQueue = nil
}

// Load replaces the current content with the level at path. On error the
// world is left empty.
func (w *World) Load(path string) error {
	w.Clear()

	objects, err := LoadLevel(path)
	if err != nil {
		return err
	}

	w.levelName = path
	for _, g := range objects {
		w.Spawn(g)
	}
	w.logger.Info("level loaded", "path", path, "objects", len(objects), "bodies", w.Physics.BodyCount())
	return nil
}

func (w *World) Save(path string) error {
	if err := SaveLevel(path, w.Scene.Name, w.Scene.GameObjects); err != nil {
		return err
	}
	w.logger.Info("level saved", "path", path)
	return nil
}

// Reload loads the last level again.
func (w *World) Reload() error {
	return w.Load(w.levelName)
}

func (w *World) Stats() Stats {
	tree := w.Physics.Partition()
	return Stats{
		Steps:    w.steps,
		Objects:  len(w.Scene.GameObjects),
		Bodies:   w.Physics.BodyCount(),
		Contacts: w.lastContacts,
		Leaves:   tree.LeafCount(),
		Depth:    tree.Depth(),
		Score:    w.Score,
	}
}
