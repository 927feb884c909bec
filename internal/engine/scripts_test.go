package engine

import "testing"

// Mock script for testing
type MockScript struct {
	BaseComponent
	Speed float32
	Value int
}

func mockFactory(props map[string]any) Component {
	return &MockScript{
		Speed: PropFloat(props, "speed", 1),
		Value: PropInt(props, "value", 0),
	}
}

func mockSerializer(c Component) map[string]any {
	s, ok := c.(*MockScript)
	if !ok {
		return nil
	}
	return map[string]any{
		"speed": s.Speed,
		"value": s.Value,
	}
}

func TestRegisterScript(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	if _, exists := scriptRegistry["MockScript"]; !exists {
		t.Error("Script not registered")
	}
}

func TestRegisterScriptDuplicate(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("Duplicate", mockFactory, mockSerializer)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()

	RegisterScript("Duplicate", mockFactory, mockSerializer)
}

func TestCreateScript(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	props := map[string]any{
		"speed": float64(10.5),
		"value": float64(100),
	}

	component := CreateScript("MockScript", props)
	if component == nil {
		t.Fatal("CreateScript returned nil")
	}

	script, ok := component.(*MockScript)
	if !ok {
		t.Fatal("CreateScript didn't return MockScript")
	}

	if script.Speed != 10.5 {
		t.Errorf("Expected Speed 10.5, got %f", script.Speed)
	}

	if script.Value != 100 {
		t.Errorf("Expected Value 100, got %d", script.Value)
	}
}

func TestCreateScriptDefaults(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	script := CreateScript("MockScript", nil).(*MockScript)
	if script.Speed != 1 || script.Value != 0 {
		t.Errorf("Expected defaults (1, 0), got (%g, %d)", script.Speed, script.Value)
	}
}

func TestCreateScriptNotFound(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	if CreateScript("DoesNotExist", nil) != nil {
		t.Error("CreateScript should return nil for non-existent script")
	}
}

func TestSerializeScript(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	script := &MockScript{Speed: 15.0, Value: 200}

	name, props, ok := SerializeScript(script)
	if !ok {
		t.Fatal("SerializeScript failed")
	}

	if name != "MockScript" {
		t.Errorf("Expected name 'MockScript', got '%s'", name)
	}

	if props["speed"] != float32(15.0) {
		t.Errorf("Expected speed 15.0, got %v", props["speed"])
	}

	if _, _, ok := SerializeScript(&BaseComponent{}); ok {
		t.Error("SerializeScript should fail for unregistered component types")
	}
}

func TestGetRegisteredScripts(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("ScriptC", mockFactory, mockSerializer)
	RegisterScript("ScriptA", mockFactory, mockSerializer)
	RegisterScript("ScriptB", mockFactory, mockSerializer)

	scripts := GetRegisteredScripts()

	if len(scripts) != 3 {
		t.Errorf("Expected 3 scripts, got %d", len(scripts))
	}

	if scripts[0] != "ScriptA" || scripts[1] != "ScriptB" || scripts[2] != "ScriptC" {
		t.Errorf("Scripts not in sorted order: %v", scripts)
	}
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[int]
	total := 0
	e.AddListener(func(n int) { total += n })
	e.AddListener(func(n int) { total += n * 10 })
	e.AddListener(nil)

	e.Invoke(2)

	if total != 22 {
		t.Errorf("Expected 22, got %d", total)
	}
	if e.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", e.GetListenerCount())
	}

	e.RemoveAllListeners()
	e.Invoke(5)
	if total != 22 {
		t.Error("Listeners should not run after RemoveAllListeners")
	}
}
