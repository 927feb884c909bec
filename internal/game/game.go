// Package game holds the front ends that drive a world: a raylib window and
// a terminal renderer.
package game

import (
	"platform2d/internal/audio"
	"platform2d/internal/components"
	"platform2d/internal/config"
	"platform2d/internal/engine"
	"platform2d/internal/physics"
	"platform2d/internal/world"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	World  *world.World
	Config config.Config

	Paused        bool
	ShowPartition bool
	SavePath      string

	sound   *audio.Manager
	stepper *stepper
	logger  *log.Logger
}

func New(cfg config.Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		World:    world.New(cfg, logger),
		Config:   cfg,
		SavePath: "level_saved.json",
		stepper:  newStepper(cfg.TimeStep),
		logger:   logger.WithPrefix("game"),
	}
}

// Load loads the configured level and hooks up sound effects.
func (g *Game) Load() error {
	if err := g.World.Load(g.Config.Level); err != nil {
		return err
	}
	g.initSound()
	return nil
}

func (g *Game) initSound() {
	if g.sound != nil || !g.Config.Audio.Enabled {
		return
	}
	g.sound = audio.NewManager(g.Config.Audio.Volume, g.logger)
	if err := g.sound.Init(); err != nil {
		// non-fatal, the game runs without sound
		g.logger.Warn("audio disabled", "err", err)
		return
	}
	connectSounds(g.World, g.sound)
}

// connectSounds plays an effect for each world event that has one.
func connectSounds(w *world.World, sound *audio.Manager) {
	w.OnScore.AddListener(func(int) { sound.Play(audio.EffectCoin) })
	w.OnPlayerDied.AddListener(func() { sound.Play(audio.EffectDeath) })
	w.OnDestroyed.AddListener(func(obj *engine.GameObject) {
		switch {
		case engine.GetComponent[*components.Walker](obj) != nil:
			sound.Play(audio.EffectStomp)
		case engine.GetComponent[*components.PowerUp](obj) != nil:
			sound.Play(audio.EffectPowerUp)
		}
	})
}

func (g *Game) Close() {
	if g.sound != nil {
		g.sound.Close()
	}
}

func (g *Game) restart() {
	if err := g.World.Reload(); err != nil {
		g.logger.Error("restart failed", "err", err)
	}
	g.stepper.Reset()
}

// advance runs the physics steps due for frameTime with input held for all
// of them.
func (g *Game) advance(frameTime float32, in engine.Input) {
	if g.Paused {
		return
	}
	g.World.SetInput(in)
	for range g.stepper.Advance(frameTime) {
		g.World.Step()
	}
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(g.Config.Window.Width, g.Config.Window.Height, g.Config.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(g.Config.Window.TargetFPS)
	applyHudStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	if rl.IsKeyPressed(rl.KeyP) {
		g.Paused = !g.Paused
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.ShowPartition = !g.ShowPartition
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.restart()
	}

	g.advance(rl.GetFrameTime(), readKeyboard())
}

func (g *Game) Draw() {
	width := float32(rl.GetScreenWidth())
	height := float32(rl.GetScreenHeight())
	r := renderer{cam: g.World.Camera, width: width, height: height}

	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	if g.ShowPartition {
		var focus *physics.Body
		if g.World.Player != nil {
			focus = g.World.Player.Body
		}
		r.drawPartition(g.World.Physics.Partition(), focus)
	}
	r.drawObjects(g.World.Scene.GameObjects)

	actions := g.drawHUD(width)
	rl.EndDrawing()

	if actions.restart {
		g.restart()
	}
	if actions.save {
		if err := g.World.Save(g.SavePath); err != nil {
			g.logger.Error("save failed", "err", err)
		}
	}
}
