package engine

import (
	"testing"

	"platform2d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type recordingListener struct {
	BaseComponent
	others []*GameObject
}

func (r *recordingListener) OnCollision(other *GameObject, c physics.Collision) {
	r.others = append(r.others, other)
}

func newCircleBody(t *testing.T, bodyType physics.BodyType, pos rl.Vector2) *physics.Body {
	t.Helper()
	shape, err := physics.NewCircleShape(0.5)
	if err != nil {
		t.Fatalf("NewCircleShape failed: %v", err)
	}
	return physics.NewBody(bodyType, pos, shape)
}

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if obj.components == nil {
		t.Error("components slice should be initialized")
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")
	obj3 := NewGameObject("Third")

	if obj1.UID == obj2.UID || obj2.UID == obj3.UID || obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"terrain", "solid"}

	if !obj.HasTag("terrain") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("player") {
		t.Error("HasTag should return false for non-existent tag")
	}

	obj2 := NewGameObject("Test2")
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectSetBody(t *testing.T) {
	obj := NewGameObject("Ball")
	body := newCircleBody(t, physics.Dynamic, rl.Vector2{X: 3, Y: 4})

	obj.SetBody(body)

	if body.Tag != physics.Tag(obj.UID) {
		t.Errorf("Expected body tag %d, got %d", obj.UID, body.Tag)
	}
	if body.Handler != obj {
		t.Error("Body handler should be the GameObject")
	}
	if obj.Position() != (rl.Vector2{X: 3, Y: 4}) {
		t.Errorf("Expected position (3, 4), got %v", obj.Position())
	}
}

func TestGameObjectAddComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if len(obj.components) != 1 {
		t.Errorf("Expected 1 component, got %d", len(obj.components))
	}

	if comp.gameObject != obj {
		t.Error("Component.gameObject should be set")
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	found := GetComponent[*BaseComponent](obj)
	if found != comp {
		t.Error("GetComponent failed to find component")
	}

	if GetComponent[*recordingListener](obj) != nil {
		t.Error("GetComponent should return nil for a missing type")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")

	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}

	obj.Start()
}

func TestGameObjectCollisionDispatch(t *testing.T) {
	scene := NewScene("Test")
	phys := physics.NewEngine(physics.Config{PartitionWidth: 20})

	a := NewGameObject("A")
	a.SetBody(newCircleBody(t, physics.Dynamic, rl.Vector2{}))
	listener := &recordingListener{}
	a.AddComponent(listener)

	b := NewGameObject("B")
	b.SetBody(newCircleBody(t, physics.Sensor, rl.Vector2{X: 0.5}))

	// a body nobody owns still collides but is not reported
	stray := newCircleBody(t, physics.Sensor, rl.Vector2{X: -0.5})

	scene.AddGameObject(a)
	scene.AddGameObject(b)
	phys.AddBody(b.Body)
	phys.AddBody(stray)
	phys.AddBody(a.Body)

	phys.Update(1.0 / 144)

	if len(listener.others) != 1 || listener.others[0] != b {
		t.Errorf("Expected one collision with B, got %v", listener.others)
	}
}
