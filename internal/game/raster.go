package game

import (
	"math"

	"platform2d/internal/camera"
	"platform2d/internal/components"
	"platform2d/internal/engine"
	"platform2d/internal/physics"
	"platform2d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2

type cell struct {
	ch    rune
	color rl.Color
}

// raster maps world space onto a grid of terminal cells, treating the grid
// as a screen of cols x rows*cellAspect square pixels.
type raster struct {
	cols, rows int
	cam        *camera.Follow
}

func (r raster) pixels() (w, h float32) {
	return float32(r.cols), float32(r.rows * cellAspect)
}

func (r raster) cellCenter(col, row int) rl.Vector2 {
	w, h := r.pixels()
	p := rl.Vector2{X: float32(col) + 0.5, Y: (float32(row) + 0.5) * cellAspect}
	return r.cam.ScreenToWorld(p, w, h)
}

func (r raster) cellOf(p rl.Vector2) (col, row int, ok bool) {
	w, h := r.pixels()
	s := r.cam.WorldToScreen(p, w, h)
	col = int(math.Floor(float64(s.X)))
	row = int(math.Floor(float64(s.Y / cellAspect)))
	return col, row, col >= 0 && col < r.cols && row >= 0 && row < r.rows
}

// rasterize fills a rows x cols grid with the objects in view. Later
// objects overwrite earlier ones.
func (r raster) rasterize(objects []*engine.GameObject) [][]cell {
	grid := make([][]cell, r.rows)
	for i := range grid {
		grid[i] = make([]cell, r.cols)
	}

	w, h := r.pixels()
	view := world.ExtractView(r.cam, w, h)
	for _, g := range objects {
		b := g.Body
		if b == nil || !view.ContainsBody(b) {
			continue
		}
		c := cell{ch: glyph(g), color: g.Color}

		if chain, ok := b.Shape().(*physics.ChainShape); ok {
			r.traceChain(grid, b.Position(), chain, c)
			continue
		}

		minY, maxY := world.VerticalBounds(b)
		ext := b.Extent()
		c0, r0, _ := r.cellOf(rl.Vector2{X: ext.MinX, Y: maxY})
		c1, r1, _ := r.cellOf(rl.Vector2{X: ext.MaxX, Y: minY})
		for row := max(r0, 0); row <= min(r1, r.rows-1); row++ {
			for col := max(c0, 0); col <= min(c1, r.cols-1); col++ {
				if covers(b, r.cellCenter(col, row)) {
					grid[row][col] = c
				}
			}
		}
	}
	return grid
}

// traceChain marks every cell the chain's polyline passes through.
func (r raster) traceChain(grid [][]cell, pos rl.Vector2, chain *physics.ChainShape, c cell) {
	w, _ := r.pixels()
	// two samples per cell width
	step := 1 / (2 * r.cam.Scale(w))

	vs := chain.Vertices()
	for i := 1; i < len(vs); i++ {
		a := rl.Vector2Add(pos, vs[i-1])
		b := rl.Vector2Add(pos, vs[i])
		n := int(rl.Vector2Length(rl.Vector2Subtract(b, a))/step) + 1
		for k := 0; k <= n; k++ {
			p := rl.Vector2Lerp(a, b, float32(k)/float32(n))
			if col, row, ok := r.cellOf(p); ok {
				grid[row][col] = c
			}
		}
	}
}

func glyph(g *engine.GameObject) rune {
	if g.HasTag(components.TagPlayer) {
		return '@'
	}
	switch g.Body.Type() {
	case physics.Dynamic:
		return 'o'
	case physics.Sensor:
		return '*'
	default:
		return '#'
	}
}

// covers reports whether p lies inside b's shape. Chains have no interior
// here; they are drawn as lines.
func covers(b *physics.Body, p rl.Vector2) bool {
	d := rl.Vector2Subtract(p, b.Position())
	switch s := b.Shape().(type) {
	case *physics.BoxShape:
		return abs(d.X) <= s.HalfWidth && abs(d.Y) <= s.HalfHeight
	case *physics.CircleShape:
		return d.X*d.X+d.Y*d.Y <= s.Radius*s.Radius
	case *physics.CapsuleShape:
		d.Y -= min(max(d.Y, 0), s.Distance())
		return d.X*d.X+d.Y*d.Y <= s.Radius*s.Radius
	}
	return false
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
