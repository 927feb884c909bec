// Package config loads and saves the platformer's settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"platform2d/internal/physics"
)

// ErrInvalid is wrapped by Validate for every out-of-range setting.
var ErrInvalid = errors.New("config: invalid value")

type WindowConfig struct {
	Width     int32  `json:"width"`
	Height    int32  `json:"height"`
	Title     string `json:"title"`
	TargetFPS int32  `json:"targetFps"`
	// Horizontal span of the view in world units.
	ViewWidth float32 `json:"viewWidth"`
}

type AudioConfig struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"` // 0..1
}

type Config struct {
	Physics  physics.Config `json:"physics"`
	Window   WindowConfig   `json:"window"`
	Audio    AudioConfig    `json:"audio"`
	Level    string         `json:"level"`
	TimeStep float32        `json:"timeStep"`
}

func Default() Config {
	return Config{
		Physics: physics.DefaultConfig(),
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "platform2d",
			TargetFPS: 144,
			ViewWidth: 32,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Level:    "assets/levels/demo.json",
		TimeStep: 1.0 / 144.0,
	}
}

// Load reads path on top of the defaults. A missing file is not an error;
// the defaults are returned as they are.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.TimeStep <= 0:
		return fmt.Errorf("%w: timeStep must be positive, got %g", ErrInvalid, c.TimeStep)
	case c.Physics.PartitionWidth <= 0:
		return fmt.Errorf("%w: physics.partitionWidth must be positive, got %g", ErrInvalid, c.Physics.PartitionWidth)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.ViewWidth <= 0:
		return fmt.Errorf("%w: window.viewWidth must be positive, got %g", ErrInvalid, c.Window.ViewWidth)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be within [0, 1], got %g", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
