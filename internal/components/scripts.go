package components

import "platform2d/internal/engine"

func init() {
	engine.RegisterScript("PlayerController", playerFactory, playerSerializer)
	engine.RegisterScript("Walker", walkerFactory, walkerSerializer)
	engine.RegisterScript("Pickup", pickupFactory, pickupSerializer)
	engine.RegisterScript("PowerUp", powerUpFactory, powerUpSerializer)
}

func playerFactory(props map[string]any) engine.Component {
	p := NewPlayerController()
	p.MoveImpulse = engine.PropFloat(props, "moveImpulse", p.MoveImpulse)
	p.JumpImpulse = engine.PropFloat(props, "jumpImpulse", p.JumpImpulse)
	p.DropImpulse = engine.PropFloat(props, "dropImpulse", p.DropImpulse)
	p.AirControl = engine.PropFloat(props, "airControl", p.AirControl)
	p.BigDistance = engine.PropFloat(props, "bigDistance", p.BigDistance)
	p.StompImpulse = engine.PropFloat(props, "stompImpulse", p.StompImpulse)
	return p
}

func playerSerializer(c engine.Component) map[string]any {
	p, ok := c.(*PlayerController)
	if !ok {
		return nil
	}
	return map[string]any{
		"moveImpulse":  p.MoveImpulse,
		"jumpImpulse":  p.JumpImpulse,
		"dropImpulse":  p.DropImpulse,
		"airControl":   p.AirControl,
		"bigDistance":  p.BigDistance,
		"stompImpulse": p.StompImpulse,
	}
}

func walkerFactory(props map[string]any) engine.Component {
	w := NewWalker()
	w.Speed = engine.PropFloat(props, "speed", w.Speed)
	if engine.PropFloat(props, "direction", w.Direction) > 0 {
		w.Direction = 1
	}
	return w
}

func walkerSerializer(c engine.Component) map[string]any {
	w, ok := c.(*Walker)
	if !ok {
		return nil
	}
	return map[string]any{
		"speed":     w.Speed,
		"direction": w.Direction,
	}
}

func pickupFactory(props map[string]any) engine.Component {
	p := NewPickup()
	p.Value = engine.PropInt(props, "value", p.Value)
	return p
}

func pickupSerializer(c engine.Component) map[string]any {
	p, ok := c.(*Pickup)
	if !ok {
		return nil
	}
	return map[string]any{"value": p.Value}
}

func powerUpFactory(props map[string]any) engine.Component {
	p := NewPowerUp()
	p.Speed = engine.PropFloat(props, "speed", p.Speed)
	return p
}

func powerUpSerializer(c engine.Component) map[string]any {
	p, ok := c.(*PowerUp)
	if !ok {
		return nil
	}
	return map[string]any{"speed": p.Speed}
}
