package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudWidth   = 220
	hudPadding = 10
	hudRow     = 24
)

var (
	colorHudBg      = rl.NewColor(30, 30, 38, 230)
	colorHudElement = rl.NewColor(45, 45, 56, 255)
	colorHudHover   = rl.NewColor(60, 60, 75, 255)
	colorHudAccent  = rl.NewColor(80, 140, 220, 255)
	colorHudText    = rl.NewColor(220, 220, 230, 255)
)

func applyHudStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorHudBg))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorHudElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorHudHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorHudAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorHudText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorHudText))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorHudAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

// hudActions are the requests made through the HUD during one frame.
type hudActions struct {
	restart bool
	save    bool
}

// drawHUD draws the control panel in the top right corner and applies
// toggles and the gravity slider directly.
func (g *Game) drawHUD(screenWidth float32) hudActions {
	var actions hudActions
	stats := g.World.Stats()

	x := screenWidth - hudWidth - hudPadding
	y := float32(hudPadding)
	panel := rl.Rectangle{X: x, Y: y, Width: hudWidth, Height: 11*hudRow + 2*hudPadding}
	gui.Panel(panel, "")

	row := func() rl.Rectangle {
		r := rl.Rectangle{X: x + hudPadding, Y: y + hudPadding, Width: hudWidth - 2*hudPadding, Height: hudRow - 4}
		y += hudRow
		return r
	}

	gui.Label(row(), fmt.Sprintf("Score %d", stats.Score))
	gui.Label(row(), fmt.Sprintf("Bodies %d  Contacts %d", stats.Bodies, stats.Contacts))
	gui.Label(row(), fmt.Sprintf("Leaves %d  Depth %d", stats.Leaves, stats.Depth))
	gui.Label(row(), fmt.Sprintf("Step %d  %d FPS", stats.Steps, rl.GetFPS()))

	box := row()
	box.Width = box.Height
	g.Paused = gui.CheckBox(box, "Paused (P)", g.Paused)

	box = row()
	box.Width = box.Height
	g.ShowPartition = gui.CheckBox(box, "Partition (F1)", g.ShowPartition)

	gui.Label(row(), "Gravity")
	slider := row()
	slider.Width -= 40
	gravity := g.World.Physics.Gravity()
	gravity.Y = -gui.Slider(slider, "", fmt.Sprintf("%.1f", -gravity.Y), -gravity.Y, 0, 30)
	g.World.Physics.SetGravity(gravity)

	actions.restart = gui.Button(row(), "Restart (R)")
	actions.save = gui.Button(row(), "Save level")
	return actions
}
