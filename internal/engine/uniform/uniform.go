// Package uniform describes named shader uniform values independently of any GL context.
package uniform

// Uniform is a named shader input holding one to four components.
// Int uniforms are sent with the glUniform*i family, the rest as floats.
type Uniform struct {
	Name   string
	Values []float32
	Int    bool
}

// Float returns a float uniform.
func Float(name string, values ...float32) Uniform {
	return Uniform{Name: name, Values: values}
}

// Vec3 returns a three-component float uniform.
func Vec3(name string, v [3]float32) Uniform {
	return Uniform{Name: name, Values: []float32{v[0], v[1], v[2]}}
}

// Int returns an integer uniform, used for samplers and flags.
func Int(name string, v int32) Uniform {
	return Uniform{Name: name, Values: []float32{float32(v)}, Int: true}
}

// Bool returns an integer uniform holding 1 or 0.
func Bool(name string, b bool) Uniform {
	if b {
		return Int(name, 1)
	}
	return Int(name, 0)
}

// Valid reports whether the uniform can be sent: a name and 1-4 components.
func (u Uniform) Valid() bool {
	return u.Name != "" && len(u.Values) >= 1 && len(u.Values) <= 4
}
