package main

import (
	"fmt"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/config"
	"github.com/Faultbox/scenegl/internal/engine/camera"
	"github.com/Faultbox/scenegl/internal/engine/debug"
	"github.com/Faultbox/scenegl/internal/engine/gpu"
	"github.com/Faultbox/scenegl/internal/engine/input"
	"github.com/Faultbox/scenegl/internal/engine/mesh"
	"github.com/Faultbox/scenegl/internal/engine/scene"
	"github.com/Faultbox/scenegl/internal/engine/texture"
	"github.com/Faultbox/scenegl/internal/engine/transform"
	"github.com/Faultbox/scenegl/internal/engine/window"
	"github.com/Faultbox/scenegl/internal/logger"
	"github.com/Faultbox/scenegl/pkg/formats"
	"github.com/Faultbox/scenegl/pkg/math"
)

// viewer shows one mesh, spinning about its Y axis.
type viewer struct {
	cfg      *config.Config
	win      *window.Window
	input    *input.Input
	renderer *scene.Renderer
	camera   *camera.Camera
	mesh     *mesh.Mesh
	shots    *debug.Screenshots
	log      *zap.Logger

	spinning bool
	capture  bool
	distance float32
}

func newViewer(cfg *config.Config) (*viewer, error) {
	v := &viewer{
		cfg:      cfg,
		input:    input.New(),
		shots:    debug.NewScreenshots("screenshots", "meshview"),
		log:      logger.Named("viewer"),
		spinning: cfg.Render.SpinDegreesPerSec != 0,
	}

	m, err := loadMesh(cfg)
	if err != nil {
		return nil, err
	}
	v.mesh = m

	v.win, err = window.New(window.Config{
		Title:      fmt.Sprintf("%s - %s", cfg.Window.Title, filepath.Base(cfg.Mesh.Path)),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, err
	}

	v.renderer, err = scene.NewRenderer(logger.Named("scene"))
	if err != nil {
		v.win.Close()
		return nil, err
	}
	v.renderer.ClearColor = cfg.Render.ClearColor
	v.renderer.LightPosition = math.Vec3FromArray(cfg.Render.LightPosition)

	v.camera = camera.New()
	v.camera.FOVDegrees = cfg.Render.FOVDegrees
	v.camera.Near = cfg.Render.Near
	v.camera.Far = cfg.Render.Far
	v.resetCamera()
	v.resize(v.win.DrawableSize())

	return v, nil
}

// loadMesh reads the OBJ file and builds the mesh with its material and texture.
func loadMesh(cfg *config.Config) (*mesh.Mesh, error) {
	obj, err := formats.LoadOBJ(cfg.Mesh.Path)
	if err != nil {
		return nil, err
	}
	data, err := mesh.NewMeshData(obj.Vertices, obj.Normals, obj.TexCoords, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Mesh.Path, err)
	}

	corners := data.Len()
	if cfg.Mesh.Reindex {
		if err := data.Reindex(); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Mesh.Path, err)
		}
	}

	material := cfg.Mesh.Default
	if cfg.Mesh.Material != "" {
		if material, err = mesh.LoadMaterial(cfg.Mesh.Material); err != nil {
			return nil, err
		}
	}

	opts := []mesh.Option{
		mesh.WithScale(cfg.Mesh.Scale),
		mesh.WithDrawStyle(cfg.DrawStyle()),
		mesh.WithPointSize(cfg.Render.PointSize),
	}
	if cfg.Mesh.Centered {
		opts = append(opts, mesh.WithPosition(math.Vec3{}))
	}
	if cfg.Mesh.Texture != "" {
		tex, err := texture.Load(cfg.Mesh.Texture)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mesh.WithTexture(tex))
	}

	loader := mesh.Loader{
		Name:     filepath.Base(cfg.Mesh.Path),
		Data:     data,
		Material: &material,
	}
	m := loader.LoadMesh(opts...)

	logger.Info("mesh loaded",
		zap.String("path", cfg.Mesh.Path),
		zap.Int("corners", corners),
		zap.Int("vertices", len(data.Vertices)),
		zap.Bool("reindexed", cfg.Mesh.Reindex),
	)
	return m, nil
}

// resetCamera applies the configured placement, or frames the mesh when none is set.
func (v *viewer) resetCamera() {
	lo, hi := v.mesh.Data.Bounds()
	world := v.mesh.ModelMatrix()
	a, b := world.TransformPoint(lo), world.TransformPoint(hi)
	for i := range lo {
		lo[i], hi[i] = min(a[i], b[i]), max(a[i], b[i])
	}
	v.camera.FitToBounds(lo, hi)
	v.distance = v.camera.Position.Distance(math.Vec3FromArray(lo).Add(math.Vec3FromArray(hi)).Scale(0.5))

	if v.cfg.Camera.Position != [3]float32{} {
		v.camera.Position = math.Vec3FromArray(v.cfg.Camera.Position)
		r := v.cfg.Camera.Rotation
		v.camera.Rotation = transform.Euler{X: r[0], Y: r[1], Z: r[2]}
	}
}

func (v *viewer) resize(width, height int) {
	v.renderer.Viewport(width, height)
	v.camera.SetViewport(width, height)
}

// Run drives the frame loop until the window is closed.
func (v *viewer) Run() error {
	last := v.win.Ticks()
	for {
		frame := v.input.Poll()
		if frame.Quit {
			return nil
		}
		v.handleInput(frame)

		now := v.win.Ticks()
		dt := float32(now-last) / 1000
		last = now
		v.update(dt)

		v.renderer.Clear()
		if err := v.renderer.Draw(v.camera, v.mesh); err != nil {
			return err
		}
		if v.capture {
			v.screenshot()
			v.capture = false
		}
		v.win.SwapBuffers()
	}
}

func (v *viewer) handleInput(frame *input.Frame) {
	if frame.Resized {
		v.resize(v.win.DrawableSize())
	}
	if frame.DragX != 0 || frame.DragY != 0 {
		v.camera.HandleDrag(frame.DragX, frame.DragY)
	}
	if frame.Wheel != 0 {
		v.camera.HandleZoom(frame.Wheel, v.distance)
	}

	for _, key := range frame.Pressed {
		switch key {
		case sdl.SCANCODE_1:
			v.setStyle(mesh.Fill)
		case sdl.SCANCODE_2:
			v.setStyle(mesh.Line)
		case sdl.SCANCODE_3:
			v.setStyle(mesh.Point)
		case sdl.SCANCODE_SPACE:
			v.spinning = !v.spinning
		case sdl.SCANCODE_H:
			v.mesh.Visible = !v.mesh.Visible
		case sdl.SCANCODE_P:
			v.capture = true
		case sdl.SCANCODE_C:
			v.resetCamera()
		case sdl.SCANCODE_R:
			before := len(v.mesh.Data.Vertices)
			if err := v.mesh.Data.Reindex(); err != nil {
				v.log.Warn("reindex failed", zap.Error(err))
				break
			}
			v.renderer.Invalidate(v.mesh)
			v.log.Info("mesh reindexed", zap.Int("before", before), zap.Int("after", len(v.mesh.Data.Vertices)))
		}
	}
}

func (v *viewer) screenshot() {
	w, h := v.win.DrawableSize()
	path, err := v.shots.SavePixels(gpu.ReadPixels(w, h), w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *viewer) setStyle(style mesh.DrawStyle) {
	v.mesh.DrawStyle = style
	v.log.Debug("draw style", zap.Stringer("style", style))
}

func (v *viewer) update(dt float32) {
	if !v.spinning {
		return
	}
	e, ok := v.mesh.Rotation.(transform.Euler)
	if !ok {
		return
	}
	e.Y += v.cfg.Render.SpinDegreesPerSec * dt
	if e.Y >= 360 {
		e.Y -= 360
	}
	v.mesh.Rotation = e
}

// Close releases GL resources and the window.
func (v *viewer) Close() {
	v.renderer.Destroy()
	v.win.Close()
}
