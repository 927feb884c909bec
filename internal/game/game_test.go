package game

import (
	"io"
	"testing"
	"time"

	"platform2d/internal/camera"
	"platform2d/internal/config"
	"platform2d/internal/engine"
	"platform2d/internal/physics"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestStepperFixedSteps(t *testing.T) {
	s := newStepper(0.25)

	tests := []struct {
		frame float32
		want  int
	}{
		{0.1, 0},
		{0.1, 0},
		{0.1, 1}, // 0.3 accumulated
		{0.5, 2}, // 0.55
		{0.3, 1}, // 0.35
	}
	for i, tt := range tests {
		if got := s.Advance(tt.frame); got != tt.want {
			t.Errorf("frame %d: expected %d steps, got %d", i, tt.want, got)
		}
	}

	// a long stall is capped and then forgotten
	if got := s.Advance(100); got != s.maxSteps {
		t.Errorf("Expected %d steps after a stall, got %d", s.maxSteps, got)
	}
	if got := s.Advance(0.1); got != 0 {
		t.Errorf("Expected no backlog after a stall, got %d", got)
	}
}

func TestHeldKeys(t *testing.T) {
	held := heldKeys{}
	now := time.Now()

	held.press('a', now)
	held.press(keyUp, now.Add(-time.Second))

	in := held.input(now.Add(100 * time.Millisecond))
	if !in.Left || in.Right || in.Jump || in.Down {
		t.Errorf("Expected only left held, got %+v", in)
	}

	if in := held.input(now.Add(keyHoldWindow)); in.Left {
		t.Error("Key should be released once the hold window has passed")
	}
}

func testBody(t *testing.T, bodyType physics.BodyType, shape physics.Shape, err error, pos rl.Vector2) *physics.Body {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return physics.NewBody(bodyType, pos, shape)
}

func TestCovers(t *testing.T) {
	box, err := physics.NewBoxShape(2, 1)
	boxBody := testBody(t, physics.Static, box, err, rl.Vector2{X: 10, Y: 0})
	circle, err := physics.NewCircleShape(1)
	circleBody := testBody(t, physics.Dynamic, circle, err, rl.Vector2{})
	capsule, err := physics.NewCapsuleShape(0.5, 1)
	capsuleBody := testBody(t, physics.Dynamic, capsule, err, rl.Vector2{})

	tests := []struct {
		name string
		body *physics.Body
		p    rl.Vector2
		want bool
	}{
		{"box inside", boxBody, rl.Vector2{X: 11.5, Y: 0.5}, true},
		{"box outside", boxBody, rl.Vector2{X: 12.5, Y: 0}, false},
		{"circle inside", circleBody, rl.Vector2{X: 0.6, Y: 0.6}, true},
		{"circle corner", circleBody, rl.Vector2{X: 0.8, Y: 0.8}, false},
		{"capsule between circles", capsuleBody, rl.Vector2{X: 0.4, Y: 0.5}, true},
		{"capsule top cap", capsuleBody, rl.Vector2{X: 0, Y: 1.45}, true},
		{"capsule above", capsuleBody, rl.Vector2{X: 0, Y: 1.6}, false},
		{"capsule below", capsuleBody, rl.Vector2{X: 0, Y: -0.6}, false},
	}
	for _, tt := range tests {
		if got := covers(tt.body, tt.p); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func newRasterObject(name string, body *physics.Body) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.SetBody(body)
	g.Color = rl.Green
	return g
}

func TestRasterizeBox(t *testing.T) {
	r := raster{cols: 64, rows: 20, cam: camera.New(rl.Vector2{}, 32)}
	box, err := physics.NewBoxShape(2, 1)
	g := newRasterObject("Box", testBody(t, physics.Static, box, err, rl.Vector2{}))

	grid := r.rasterize([]*engine.GameObject{g})

	count := 0
	for row := range grid {
		for col, c := range grid[row] {
			if c.ch == 0 {
				continue
			}
			count++
			if c.ch != '#' || col < 28 || col > 35 || row < 9 || row > 10 {
				t.Errorf("Unexpected cell %q at (%d, %d)", c.ch, col, row)
			}
		}
	}
	if count != 16 {
		t.Errorf("Expected 16 cells, got %d", count)
	}
}

func TestRasterizeChain(t *testing.T) {
	r := raster{cols: 64, rows: 20, cam: camera.New(rl.Vector2{}, 32)}
	chain, err := physics.NewChainShape([]rl.Vector2{{X: -4, Y: 0}, {X: -4, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 0}})
	g := newRasterObject("Ground", testBody(t, physics.Static, chain, err, rl.Vector2{}))

	grid := r.rasterize([]*engine.GameObject{g})

	for _, col := range []int{26, 32, 38} {
		if grid[9][col].ch != '#' {
			t.Errorf("Expected chain top at (%d, 9), got %q", col, grid[9][col].ch)
		}
	}
	// the baseline is open
	if grid[10][32].ch != 0 {
		t.Errorf("Expected empty cell under the chain, got %q", grid[10][32].ch)
	}
	if grid[10][24].ch != '#' {
		t.Errorf("Expected left wall at (24, 10), got %q", grid[10][24].ch)
	}
}

func TestGlyphs(t *testing.T) {
	circle, err := physics.NewCircleShape(1)
	player := newRasterObject("Player", testBody(t, physics.Dynamic, circle, err, rl.Vector2{}))
	player.Tags = []string{"player"}
	coin := newRasterObject("Coin", testBody(t, physics.Sensor, circle, err, rl.Vector2{}))
	walker := newRasterObject("Walker", testBody(t, physics.Dynamic, circle, err, rl.Vector2{}))

	if glyph(player) != '@' || glyph(coin) != '*' || glyph(walker) != 'o' {
		t.Errorf("Unexpected glyphs %q %q %q", glyph(player), glyph(coin), glyph(walker))
	}
}

func TestAdvanceRespectsPause(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.Enabled = false
	cfg.Level = "../../assets/levels/demo.json"
	g := New(cfg, log.New(io.Discard))
	if err := g.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	g.Paused = true
	g.advance(1, engine.Input{})
	if g.World.Stats().Steps != 0 {
		t.Errorf("Expected no steps while paused, got %d", g.World.Stats().Steps)
	}

	g.Paused = false
	g.advance(cfg.TimeStep*3.5, engine.Input{Right: true})
	if steps := g.World.Stats().Steps; steps != 3 {
		t.Errorf("Expected 3 steps, got %d", steps)
	}
	if !g.World.Input().Right {
		t.Error("Expected input to be handed to the world")
	}
}
