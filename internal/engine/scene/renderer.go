// Package scene draws meshes through a single lit, optionally textured shader.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/camera"
	"github.com/Faultbox/scenegl/internal/engine/gpu"
	"github.com/Faultbox/scenegl/internal/engine/mesh"
	"github.com/Faultbox/scenegl/internal/engine/scene/shaders"
	"github.com/Faultbox/scenegl/internal/engine/shader"
	"github.com/Faultbox/scenegl/internal/engine/texture"
	"github.com/Faultbox/scenegl/internal/engine/uniform"
	"github.com/Faultbox/scenegl/pkg/math"
)

// Uniform names the renderer fills in for every draw.
const (
	UniformModel      = "model_matrix"
	UniformNormal     = "normal_matrix"
	UniformView       = "view_matrix"
	UniformProjection = "projection_matrix"
	UniformCamera     = "camera_position"
	UniformLight      = "light_position"
	UniformPointSize  = "point_size"
	UniformUseTexture = "use_texture"
)

// Renderer owns the mesh shader and the GPU copies of every mesh it has drawn.
// Mesh data is uploaded on first draw; call Invalidate after changing it.
type Renderer struct {
	program *shader.Program

	buffers  map[*mesh.Mesh]*gpu.Buffer
	textures map[*texture.Texture]*gpu.Texture

	LightPosition math.Vec3
	ClearColor    [3]float32

	log *zap.Logger
}

// NewRenderer compiles the mesh shader. A GL context must be current.
func NewRenderer(log *zap.Logger) (*Renderer, error) {
	program, err := shader.NewProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return &Renderer{
		program:       program,
		buffers:       make(map[*mesh.Mesh]*gpu.Buffer),
		textures:      make(map[*texture.Texture]*gpu.Texture),
		LightPosition: math.Vec3{X: 0, Y: 10, Z: 10},
		log:           log,
	}, nil
}

// Viewport sets the GL viewport to the framebuffer size.
func (r *Renderer) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear clears color and depth.
func (r *Renderer) Clear() {
	gl.ClearColor(r.ClearColor[0], r.ClearColor[1], r.ClearColor[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the visible meshes from the camera's viewpoint.
func (r *Renderer) Draw(cam *camera.Camera, meshes ...*mesh.Mesh) error {
	r.program.Use()
	r.program.SendMatrix(UniformView, cam.ViewMatrix())
	r.program.SendMatrix(UniformProjection, cam.ProjectionMatrix())
	if err := r.program.Send(uniform.Vec3(UniformCamera, cam.Position.Array())); err != nil {
		return err
	}
	if err := r.program.Send(uniform.Vec3(UniformLight, r.LightPosition.Array())); err != nil {
		return err
	}

	for _, m := range meshes {
		if !m.Visible {
			continue
		}
		if err := r.drawMesh(m); err != nil {
			return fmt.Errorf("draw %s: %w", m.Name, err)
		}
	}
	return nil
}

func (r *Renderer) drawMesh(m *mesh.Mesh) error {
	buf, err := r.buffer(m)
	if err != nil {
		return err
	}

	r.program.SendMatrix(UniformModel, m.ModelMatrix())
	r.program.SendMatrix(UniformNormal, m.NormalMatrix())
	for _, u := range m.AllUniforms() {
		if err := r.program.Send(u); err != nil {
			return err
		}
	}
	if err := r.program.Send(uniform.Float(UniformPointSize, m.PointSize)); err != nil {
		return err
	}

	var tex *gpu.Texture
	if m.Texture != nil {
		tex, err = r.texture(m.Texture)
		if err != nil {
			return err
		}
		tex.Bind()
	}
	if err := r.program.Send(uniform.Bool(UniformUseTexture, tex != nil)); err != nil {
		return err
	}

	buf.Draw(gpu.ModeFor(m.DrawStyle))

	if tex != nil {
		tex.Unbind()
	}
	return nil
}

func (r *Renderer) buffer(m *mesh.Mesh) (*gpu.Buffer, error) {
	if buf, ok := r.buffers[m]; ok {
		return buf, nil
	}
	buf, err := gpu.Upload(m.Data)
	if err != nil {
		return nil, err
	}
	r.buffers[m] = buf
	r.log.Debug("mesh loaded", zap.String("mesh", m.Name), zap.Int32("indices", buf.IndexCount()))
	return buf, nil
}

func (r *Renderer) texture(t *texture.Texture) (*gpu.Texture, error) {
	if tex, ok := r.textures[t]; ok {
		return tex, nil
	}
	tex, err := gpu.UploadTexture(t)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", t.Name, err)
	}
	r.textures[t] = tex
	return tex, nil
}

// Invalidate drops the GPU copy of a mesh so the next draw uploads it again.
func (r *Renderer) Invalidate(m *mesh.Mesh) {
	if buf, ok := r.buffers[m]; ok {
		buf.Delete()
		delete(r.buffers, m)
	}
}

// Destroy releases every GL resource the renderer created.
func (r *Renderer) Destroy() {
	for m, buf := range r.buffers {
		buf.Delete()
		delete(r.buffers, m)
	}
	for t, tex := range r.textures {
		tex.Delete()
		delete(r.textures, t)
	}
	r.program.Delete()
}
