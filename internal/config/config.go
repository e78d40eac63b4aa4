// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/scenegl/internal/engine/mesh"
	"github.com/Faultbox/scenegl/internal/logger"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Camera  CameraConfig  `yaml:"camera"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// RenderConfig holds rasterization and projection settings.
type RenderConfig struct {
	DrawStyle         string     `yaml:"draw_style"` // fill, line or point
	PointSize         float32    `yaml:"point_size"`
	FOVDegrees        float32    `yaml:"fov_degrees"`
	Near              float32    `yaml:"near"`
	Far               float32    `yaml:"far"`
	ClearColor        [3]float32 `yaml:"clear_color"`
	LightPosition     [3]float32 `yaml:"light_position"`
	SpinDegreesPerSec float32    `yaml:"spin_degrees_per_sec"`
}

// MeshConfig selects the mesh to show and how to prepare it.
type MeshConfig struct {
	Path     string        `yaml:"path"`
	Texture  string        `yaml:"texture"`
	Material string        `yaml:"material"` // optional YAML material file
	Centered bool          `yaml:"centered"`
	Reindex  bool          `yaml:"reindex"`
	Scale    float32       `yaml:"scale"`
	Default  mesh.Material `yaml:"default_material"`
}

// CameraConfig holds the initial camera placement. A zero position means
// "fit the camera to the mesh bounds".
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"` // Euler degrees
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "scenegl",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: RenderConfig{
			DrawStyle:         "fill",
			PointSize:         mesh.DefaultPointSize,
			FOVDegrees:        60,
			Near:              0.1,
			Far:               1000,
			ClearColor:        [3]float32{0.1, 0.1, 0.12},
			LightPosition:     [3]float32{5, 10, 10},
			SpinDegreesPerSec: 30,
		},
		Mesh: MeshConfig{
			Centered: true,
			Reindex:  true,
			Scale:    1,
			Default:  mesh.DefaultMaterial(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := mesh.ParseDrawStyle(c.Render.DrawStyle); err != nil {
		return err
	}
	if c.Render.PointSize <= 0 {
		return fmt.Errorf("point_size %v must be positive", c.Render.PointSize)
	}
	if c.Render.FOVDegrees <= 0 || c.Render.FOVDegrees >= 180 {
		return fmt.Errorf("fov_degrees %v must be in (0, 180)", c.Render.FOVDegrees)
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		return fmt.Errorf("clip range near=%v far=%v is invalid", c.Render.Near, c.Render.Far)
	}
	if c.Mesh.Scale == 0 {
		return fmt.Errorf("mesh scale must be nonzero")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// DrawStyle returns the parsed render draw style. Call Validate first.
func (c *Config) DrawStyle() mesh.DrawStyle {
	s, _ := mesh.ParseDrawStyle(c.Render.DrawStyle)
	return s
}
