package mesh

import (
	"fmt"
	"strings"

	"github.com/Faultbox/scenegl/internal/engine/texture"
	"github.com/Faultbox/scenegl/internal/engine/transform"
	"github.com/Faultbox/scenegl/internal/engine/uniform"
	"github.com/Faultbox/scenegl/pkg/math"
)

// DrawStyle selects how a mesh is rasterized.
type DrawStyle int

// Draw styles.
const (
	Fill DrawStyle = iota
	Line
	Point
)

// String returns the config name of the style.
func (s DrawStyle) String() string {
	switch s {
	case Fill:
		return "fill"
	case Line:
		return "line"
	case Point:
		return "point"
	default:
		return fmt.Sprintf("DrawStyle(%d)", int(s))
	}
}

// ParseDrawStyle parses "fill", "line" or "point".
func ParseDrawStyle(s string) (DrawStyle, error) {
	switch strings.ToLower(s) {
	case "fill":
		return Fill, nil
	case "line":
		return Line, nil
	case "point":
		return Point, nil
	}
	return Fill, fmt.Errorf("%w: unknown draw style %q", ErrInvalidArgument, s)
}

// DefaultPointSize is the point size used for the Point draw style.
const DefaultPointSize = 4

// Mesh is drawable geometry placed in the world by its Transform.
type Mesh struct {
	transform.Transform

	Name      string
	Data      *MeshData
	Uniforms  []uniform.Uniform
	Texture   *texture.Texture
	DrawStyle DrawStyle
	PointSize float32
	Visible   bool
}

// Option configures a Mesh in NewMesh.
type Option func(*Mesh)

// WithPosition places the mesh at p instead of at its vertex mean.
func WithPosition(p math.Vec3) Option {
	return func(m *Mesh) { m.Position = p }
}

// WithRotation sets the initial rotation.
func WithRotation(r transform.Rotation) Option {
	return func(m *Mesh) { m.Rotation = r }
}

// WithScale sets the initial uniform scale.
func WithScale(s float32) Option {
	return func(m *Mesh) { m.Scale = s }
}

// WithUniforms appends extra uniforms sent on every draw.
func WithUniforms(u ...uniform.Uniform) Option {
	return func(m *Mesh) { m.Uniforms = append(m.Uniforms, u...) }
}

// WithTexture attaches a texture.
func WithTexture(t *texture.Texture) Option {
	return func(m *Mesh) { m.Texture = t }
}

// WithDrawStyle sets the draw style.
func WithDrawStyle(s DrawStyle) Option {
	return func(m *Mesh) { m.DrawStyle = s }
}

// WithPointSize sets the point size used by the Point style.
func WithPointSize(size float32) Option {
	return func(m *Mesh) { m.PointSize = size }
}

// Hidden creates the mesh invisible.
func Hidden() Option {
	return func(m *Mesh) { m.Visible = false }
}

// NewMesh creates a visible mesh. The vertices are re-centered on their mean
// and the mean becomes the mesh position, so the model matrix puts the
// geometry back where the file had it. WithPosition overrides that position.
func NewMesh(name string, data *MeshData, opts ...Option) *Mesh {
	m := &Mesh{
		Transform: transform.New(),
		Name:      name,
		Data:      data,
		PointSize: DefaultPointSize,
		Visible:   true,
	}
	m.Position = math.Vec3FromArray(data.Center())

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AllUniforms returns the mesh uniforms followed by the texture's, in send order.
func (m *Mesh) AllUniforms() []uniform.Uniform {
	if m.Texture == nil {
		return m.Uniforms
	}
	all := make([]uniform.Uniform, 0, len(m.Uniforms)+len(m.Texture.Uniforms))
	all = append(all, m.Uniforms...)
	return append(all, m.Texture.Uniforms...)
}

// Loader pairs mesh data with a material, the way file readers hand them out.
type Loader struct {
	Name     string
	Data     *MeshData
	Material *Material
}

// LoadMesh builds a Mesh whose uniforms start with the material's.
func (l Loader) LoadMesh(opts ...Option) *Mesh {
	if l.Material != nil {
		opts = append([]Option{WithUniforms(l.Material.Uniforms()...)}, opts...)
	}
	return NewMesh(l.Name, l.Data, opts...)
}
