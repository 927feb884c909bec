package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"platform2d/internal/engine"
	"platform2d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrUnknownShape    = errors.New("level: unknown shape type")
	ErrUnknownBodyType = errors.New("level: unknown body type")
	ErrUnknownScript   = errors.New("level: unknown script")
)

// --- JSON types ---

type LevelFile struct {
	Name    string      `json:"name,omitempty"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name        string          `json:"name"`
	Tags        []string        `json:"tags,omitempty"`
	Position    [2]float32      `json:"position"`
	Velocity    [2]float32      `json:"velocity"`
	Body        string          `json:"body"`
	Shape       json.RawMessage `json:"shape"`
	Friction    *float32        `json:"friction,omitempty"`
	Restitution float32         `json:"restitution,omitempty"`
	Color       string          `json:"color,omitempty"`
	Scripts     []scriptDef     `json:"scripts,omitempty"`
	Grid        *gridDef        `json:"grid,omitempty"`
}

// gridDef repeats an object columns x rows times, offset by spacing.
type gridDef struct {
	Columns int        `json:"columns"`
	Rows    int        `json:"rows"`
	Spacing [2]float32 `json:"spacing"`
}

type shapeHeader struct {
	Type string `json:"type"`
}

type boxDef struct {
	Type     string     `json:"type"`
	HalfSize [2]float32 `json:"halfSize"`
}

type circleDef struct {
	Type   string  `json:"type"`
	Radius float32 `json:"radius"`
}

type capsuleDef struct {
	Type     string  `json:"type"`
	Radius   float32 `json:"radius"`
	Distance float32 `json:"distance"`
}

type chainDef struct {
	Type     string       `json:"type"`
	Vertices [][2]float32 `json:"vertices"`
}

type scriptDef struct {
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

// defaultColor is used when an object names no color.
func defaultColor(t physics.BodyType) rl.Color {
	switch t {
	case physics.Dynamic:
		return rl.Red
	case physics.Sensor:
		return rl.Blue
	default:
		return rl.Green
	}
}

func lookupColor(name string, t physics.BodyType) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return defaultColor(t)
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

var bodyTypeByName = map[string]physics.BodyType{
	"dynamic": physics.Dynamic,
	"static":  physics.Static,
	"sensor":  physics.Sensor,
}

// --- Loading ---

// LoadLevel reads a level file and builds its objects in file order. Objects
// come back unregistered: nothing is added to a scene or engine yet.
func LoadLevel(path string) ([]*engine.GameObject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}

	var lf LevelFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}

	return BuildObjects(lf)
}

func BuildObjects(lf LevelFile) ([]*engine.GameObject, error) {
	var objects []*engine.GameObject
	for _, def := range lf.Objects {
		if def.Grid == nil {
			g, err := buildObject(def, def.Name, def.Position)
			if err != nil {
				return nil, err
			}
			objects = append(objects, g)
			continue
		}

		for i := range def.Grid.Columns {
			for j := range def.Grid.Rows {
				pos := [2]float32{
					def.Position[0] + float32(i)*def.Grid.Spacing[0],
					def.Position[1] + float32(j)*def.Grid.Spacing[1],
				}
				g, err := buildObject(def, fmt.Sprintf("%s_%d_%d", def.Name, i, j), pos)
				if err != nil {
					return nil, err
				}
				objects = append(objects, g)
			}
		}
	}
	return objects, nil
}

func buildObject(def ObjectDef, name string, pos [2]float32) (*engine.GameObject, error) {
	bodyType, ok := bodyTypeByName[def.Body]
	if !ok {
		return nil, fmt.Errorf("object %q: %w %q", name, ErrUnknownBodyType, def.Body)
	}

	shape, err := parseShape(def.Shape)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", name, err)
	}

	body := physics.NewBody(bodyType, rl.Vector2{X: pos[0], Y: pos[1]}, shape)
	body.Velocity = rl.Vector2{X: def.Velocity[0], Y: def.Velocity[1]}
	if def.Friction != nil {
		body.Friction = *def.Friction
	}
	body.Restitution = def.Restitution

	g := engine.NewGameObject(name)
	if len(def.Tags) > 0 {
		g.Tags = append([]string(nil), def.Tags...)
	}
	g.Color = lookupColor(def.Color, bodyType)
	g.SetBody(body)

	for _, s := range def.Scripts {
		comp := engine.CreateScript(s.Name, s.Props)
		if comp == nil {
			return nil, fmt.Errorf("object %q: %w %q", name, ErrUnknownScript, s.Name)
		}
		g.AddComponent(comp)
	}
	return g, nil
}

func parseShape(raw json.RawMessage) (physics.Shape, error) {
	var header shapeHeader
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("parse shape: %w", err)
	}

	switch header.Type {
	case "box":
		var def boxDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("parse box: %w", err)
		}
		return physics.NewBoxShape(def.HalfSize[0], def.HalfSize[1])

	case "circle":
		var def circleDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("parse circle: %w", err)
		}
		return physics.NewCircleShape(def.Radius)

	case "capsule":
		var def capsuleDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("parse capsule: %w", err)
		}
		return physics.NewCapsuleShape(def.Radius, def.Distance)

	case "chain":
		var def chainDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("parse chain: %w", err)
		}
		vertices := make([]rl.Vector2, len(def.Vertices))
		for i, v := range def.Vertices {
			vertices[i] = rl.Vector2{X: v[0], Y: v[1]}
		}
		return physics.NewChainShape(vertices)
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownShape, header.Type)
}

// --- Saving ---

// SaveLevel writes every object that owns a body. Grids are written out as
// individual objects.
func SaveLevel(path, name string, objects []*engine.GameObject) error {
	lf := LevelFile{Name: name}

	for _, g := range objects {
		if g.Body == nil {
			continue
		}
		def, err := objectDef(g)
		if err != nil {
			return err
		}
		lf.Objects = append(lf.Objects, def)
	}

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal level: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write level: %w", err)
	}

	return nil
}

func objectDef(g *engine.GameObject) (ObjectDef, error) {
	body := g.Body
	pos := body.Position()
	friction := body.Friction

	def := ObjectDef{
		Name:        g.Name,
		Tags:        g.Tags,
		Position:    [2]float32{pos.X, pos.Y},
		Velocity:    [2]float32{body.Velocity.X, body.Velocity.Y},
		Body:        body.Type().String(),
		Friction:    &friction,
		Restitution: body.Restitution,
		Color:       lookupColorName(g.Color),
	}

	shape, err := serializeShape(body.Shape())
	if err != nil {
		return ObjectDef{}, fmt.Errorf("object %q: %w", g.Name, err)
	}
	def.Shape = shape

	for _, c := range g.Components() {
		if name, props, ok := engine.SerializeScript(c); ok {
			def.Scripts = append(def.Scripts, scriptDef{Name: name, Props: props})
		}
	}
	return def, nil
}

func serializeShape(shape physics.Shape) (json.RawMessage, error) {
	var def any

	switch s := shape.(type) {
	case *physics.BoxShape:
		def = boxDef{Type: "box", HalfSize: [2]float32{s.HalfWidth, s.HalfHeight}}
	case *physics.CircleShape:
		def = circleDef{Type: "circle", Radius: s.Radius}
	case *physics.CapsuleShape:
		def = capsuleDef{Type: "capsule", Radius: s.Radius, Distance: s.Distance()}
	case *physics.ChainShape:
		d := chainDef{Type: "chain"}
		for _, v := range s.Vertices() {
			d.Vertices = append(d.Vertices, [2]float32{v.X, v.Y})
		}
		def = d
	default:
		return nil, fmt.Errorf("%w %T", ErrUnknownShape, shape)
	}

	data, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal shape: %w", err)
	}
	return data, nil
}
