package mesh

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenegl/internal/engine/uniform"
)

// Material holds the surface properties a mesh sends to its shader.
type Material struct {
	Diffuse     [3]float32 `yaml:"diffuse"`
	SpecWeight  float32    `yaml:"spec_weight"`
	Specular    [3]float32 `yaml:"specular"`
	Ambient     [3]float32 `yaml:"ambient"`
	Opacity     float32    `yaml:"opacity"`
	FlatShading bool       `yaml:"flat_shading"`
}

// DefaultMaterial returns an opaque light-gray material with no specular highlight.
func DefaultMaterial() Material {
	return Material{
		Diffuse: [3]float32{0.8, 0.8, 0.8},
		Opacity: 1,
	}
}

// Uniforms returns the material as shader uniforms named after its fields.
func (m Material) Uniforms() []uniform.Uniform {
	return []uniform.Uniform{
		uniform.Vec3("diffuse", m.Diffuse),
		uniform.Float("spec_weight", m.SpecWeight),
		uniform.Vec3("specular", m.Specular),
		uniform.Vec3("ambient", m.Ambient),
		uniform.Float("opacity", m.Opacity),
		uniform.Bool("flat_shading", m.FlatShading),
	}
}

// LoadMaterial reads a YAML material sidecar. Keys missing from the file keep
// their DefaultMaterial values; unknown keys are an error.
func LoadMaterial(path string) (Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return Material{}, fmt.Errorf("open material: %w", err)
	}
	defer f.Close()

	m := DefaultMaterial()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Material{}, fmt.Errorf("parse material %s: %w", path, err)
	}
	return m, nil
}
