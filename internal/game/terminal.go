package game

import (
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const terminalFrame = 16 * time.Millisecond // ~60 FPS

// RunTerminal plays the game in the terminal until Esc, Ctrl-C or q.
func (g *Game) RunTerminal() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ticker := time.NewTicker(terminalFrame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			eventChan <- ev
		}
	}()

	held := heldKeys{}
	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleTerminalEvent(ev, held, screen) {
				return nil
			}

		case now := <-ticker.C:
			g.advance(float32(now.Sub(last).Seconds()), held.input(now))
			last = now
			g.drawTerminal(screen)
		}
	}
}

func (g *Game) handleTerminalEvent(ev tcell.Event, held heldKeys, screen tcell.Screen) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		now := time.Now()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			held.press(keyLeft, now)
		case tcell.KeyRight:
			held.press(keyRight, now)
		case tcell.KeyUp:
			held.press(keyUp, now)
		case tcell.KeyDown:
			held.press(keyDown, now)
		case tcell.KeyRune:
			switch r := unicode.ToLower(ev.Rune()); r {
			case 'q':
				return false
			case 'p':
				g.Paused = !g.Paused
			case 'o':
				g.ShowPartition = !g.ShowPartition
			case 'r':
				g.restart()
			default:
				held.press(r, now)
			}
		}

	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}

func toTcell(c rl.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (g *Game) drawTerminal(screen tcell.Screen) {
	screen.Clear()
	cols, rows := screen.Size()
	if rows < 2 {
		screen.Show()
		return
	}

	r := raster{cols: cols, rows: rows - 1, cam: g.World.Camera}

	if g.ShowPartition {
		style := tcell.StyleDefault.Foreground(toTcell(colorLeafLine))
		for _, leaf := range g.World.Physics.Partition().Leaves() {
			col, _, ok := r.cellOf(rl.Vector2{X: leaf.MinX, Y: g.World.Camera.Position.Y})
			if !ok {
				continue
			}
			for row := 0; row < r.rows; row++ {
				screen.SetContent(col, row, '|', nil, style)
			}
		}
	}

	grid := r.rasterize(g.World.Scene.GameObjects)
	for row, line := range grid {
		for col, c := range line {
			if c.ch == 0 {
				continue
			}
			screen.SetContent(col, row, c.ch, nil, tcell.StyleDefault.Foreground(toTcell(c.color)))
		}
	}

	stats := g.World.Stats()
	status := fmt.Sprintf(" score %d  bodies %d  contacts %d  leaves %d  depth %d ", stats.Score, stats.Bodies, stats.Contacts, stats.Leaves, stats.Depth)
	if g.Paused {
		status += " [paused]"
	}
	status += "  wasd/arrows move  p pause  o partition  r restart  q quit"
	style := tcell.StyleDefault.Reverse(true)
	for i, ch := range []rune(status) {
		if i >= cols {
			break
		}
		screen.SetContent(i, rows-1, ch, nil, style)
	}

	screen.Show()
}
