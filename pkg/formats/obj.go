package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/scenegl/pkg/math"
)

// ErrInvalidOBJ is returned for malformed Wavefront OBJ input.
var ErrInvalidOBJ = errors.New("invalid OBJ data")

// OBJ holds a Wavefront OBJ mesh expanded to one entry per triangle corner.
// The three slices always have the same length, a multiple of three.
type OBJ struct {
	Vertices  [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
}

// Triangles returns the number of triangles.
func (o *OBJ) Triangles() int {
	return len(o.Vertices) / 3
}

// objRef is one "v/vt/vn" face element, resolved to 0-based indices (-1 if absent).
type objRef struct {
	v, vt, vn int
}

type objParser struct {
	positions [][3]float32
	texcoords [][2]float32
	normals   [][3]float32
	out       *OBJ
	line      int
}

// LoadOBJ reads an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open OBJ file: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f)
}

// ParseOBJ reads positions, normals, texture coordinates and faces.
// Polygons are fan-triangulated and negative (relative) indices are resolved.
// Faces without normals get the flat face normal. Other statements (o, g, s,
// usemtl, mtllib, l) are ignored.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	p := &objParser{out: &OBJ{}}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := p.statement(fields[0], fields[1:]); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	return p.out, nil
}

func (p *objParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrInvalidOBJ, p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) statement(keyword string, args []string) error {
	switch keyword {
	case "v":
		v, err := p.floats(args, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
	case "vn":
		v, err := p.floats(args, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := p.floats(args, 2)
		if err != nil {
			return err
		}
		p.texcoords = append(p.texcoords, [2]float32{v[0], v[1]})
	case "f":
		return p.face(args)
	}
	return nil
}

// floats parses at least n numbers; extra components (w, homogeneous weight) are dropped.
func (p *objParser) floats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, p.errorf("expected %d components, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, p.errorf("bad number %q", args[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (p *objParser) face(args []string) error {
	if len(args) < 3 {
		return p.errorf("face needs at least 3 vertices, got %d", len(args))
	}
	refs := make([]objRef, len(args))
	for i, arg := range args {
		ref, err := p.ref(arg)
		if err != nil {
			return err
		}
		refs[i] = ref
	}

	// Fan triangulation: (0, i, i+1)
	for i := 1; i+1 < len(refs); i++ {
		p.triangle(refs[0], refs[i], refs[i+1])
	}
	return nil
}

func (p *objParser) ref(arg string) (objRef, error) {
	parts := strings.Split(arg, "/")
	if len(parts) > 3 {
		return objRef{}, p.errorf("bad face element %q", arg)
	}
	ref := objRef{v: -1, vt: -1, vn: -1}

	var err error
	if ref.v, err = p.index(parts[0], len(p.positions)); err != nil {
		return objRef{}, err
	}
	if ref.v < 0 {
		return objRef{}, p.errorf("face element %q has no position", arg)
	}
	if len(parts) > 1 {
		if ref.vt, err = p.index(parts[1], len(p.texcoords)); err != nil {
			return objRef{}, err
		}
	}
	if len(parts) > 2 {
		if ref.vn, err = p.index(parts[2], len(p.normals)); err != nil {
			return objRef{}, err
		}
	}
	return ref, nil
}

// index resolves a 1-based or negative OBJ index against count entries.
// An empty string means absent and yields -1.
func (p *objParser) index(s string, count int) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.errorf("bad index %q", s)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	}
	return 0, p.errorf("index %d out of range (%d defined)", n, count)
}

func (p *objParser) triangle(a, b, c objRef) {
	refs := [3]objRef{a, b, c}

	var flat [3]float32
	if a.vn < 0 || b.vn < 0 || c.vn < 0 {
		pa := math.Vec3FromArray(p.positions[a.v])
		pb := math.Vec3FromArray(p.positions[b.v])
		pc := math.Vec3FromArray(p.positions[c.v])
		flat = pb.Sub(pa).Cross(pc.Sub(pa)).Normalize().Array()
	}

	for _, r := range refs {
		p.out.Vertices = append(p.out.Vertices, p.positions[r.v])

		normal := flat
		if r.vn >= 0 {
			normal = p.normals[r.vn]
		}
		p.out.Normals = append(p.out.Normals, normal)

		var uv [2]float32
		if r.vt >= 0 {
			uv = p.texcoords[r.vt]
		}
		p.out.TexCoords = append(p.out.TexCoords, uv)
	}
}
