// Package shader compiles GLSL programs and sends uniforms to them.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/scenegl/internal/engine/uniform"
	"github.com/Faultbox/scenegl/pkg/math"
)

// Program is a linked shader program with a cache of uniform locations.
type Program struct {
	ID        uint32
	locations map[string]int32
}

// NewProgram compiles and links a vertex/fragment shader pair.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{ID: id, locations: make(map[string]int32)}, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Location returns the cached uniform location, -1 if the uniform is inactive.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.locations[name] = loc
	return loc
}

// Send uploads a uniform to the current program. Inactive names are ignored,
// matching GL's own handling of location -1.
func (p *Program) Send(u uniform.Uniform) error {
	if !u.Valid() {
		return fmt.Errorf("uniform %q: %d components", u.Name, len(u.Values))
	}
	loc := p.Location(u.Name)
	if loc < 0 {
		return nil
	}

	v := u.Values
	if u.Int {
		switch len(v) {
		case 1:
			gl.Uniform1i(loc, int32(v[0]))
		case 2:
			gl.Uniform2i(loc, int32(v[0]), int32(v[1]))
		case 3:
			gl.Uniform3i(loc, int32(v[0]), int32(v[1]), int32(v[2]))
		case 4:
			gl.Uniform4i(loc, int32(v[0]), int32(v[1]), int32(v[2]), int32(v[3]))
		}
		return nil
	}

	switch len(v) {
	case 1:
		gl.Uniform1f(loc, v[0])
	case 2:
		gl.Uniform2f(loc, v[0], v[1])
	case 3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
	return nil
}

// SendMatrix uploads a column-major 4x4 matrix uniform.
func (p *Program) SendMatrix(name string, m math.Mat4) {
	loc := p.Location(name)
	if loc < 0 {
		return
	}
	gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", log)
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, log)
	}

	return shader, nil
}

func infoLog(obj uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var logLen int32
	getiv(obj, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := make([]byte, logLen)
	getLog(obj, logLen, nil, &log[0])
	return string(log)
}

// GetUniform returns the uniform location for the given name, -1 if inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
