package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJ_QuadFan(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if obj.Triangles() != 2 {
		t.Fatalf("expected 2 triangles, got %d", obj.Triangles())
	}
	if len(obj.Normals) != 6 || len(obj.TexCoords) != 6 {
		t.Fatalf("expected 6 normals and texcoords, got %d and %d", len(obj.Normals), len(obj.TexCoords))
	}

	// Fan around the first vertex: (1,2,3) then (1,3,4).
	want := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for i, v := range want {
		if obj.Vertices[i] != v {
			t.Errorf("corner %d: expected %v, got %v", i, v, obj.Vertices[i])
		}
	}
	if obj.TexCoords[5] != [2]float32{0, 1} {
		t.Errorf("expected texcoord (0,1) on last corner, got %v", obj.TexCoords[5])
	}
	for i, n := range obj.Normals {
		if n != [3]float32{0, 0, 1} {
			t.Errorf("corner %d: expected +Z normal, got %v", i, n)
		}
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	obj, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if obj.Vertices[0] != [3]float32{0, 0, 0} || obj.Vertices[2] != [3]float32{0, 1, 0} {
		t.Errorf("relative indices resolved wrong: %v", obj.Vertices)
	}
}

func TestParseOBJ_FlatNormals(t *testing.T) {
	src := `
v 0 0 0
v 0 0 1
v 1 0 0
f 1 2 3
`
	obj, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	// (0,0,1) x (1,0,0) = (0,1,0)
	for i, n := range obj.Normals {
		if n != [3]float32{0, 1, 0} {
			t.Errorf("corner %d: expected +Y face normal, got %v", i, n)
		}
	}
	if obj.TexCoords[0] != [2]float32{} {
		t.Errorf("missing texcoords should be zero, got %v", obj.TexCoords[0])
	}
}

func TestParseOBJ_PositionAndNormalOnly(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 -1
f 1//1 2//1 3//1
`
	obj, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if obj.Normals[1] != [3]float32{0, 0, -1} {
		t.Errorf("expected explicit normal, got %v", obj.Normals[1])
	}
}

func TestParseOBJ_IgnoresUnknownStatements(t *testing.T) {
	src := `
mtllib scene.mtl
g group
s off
usemtl red
v 0 0 0 1
v 1 0 0 1
v 0 1 0 1
f 1 2 3 # trailing comment
`
	obj, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if obj.Triangles() != 1 {
		t.Errorf("expected 1 triangle, got %d", obj.Triangles())
	}
}

func TestParseOBJ_Empty(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if obj.Triangles() != 0 || len(obj.Vertices) != 0 {
		t.Errorf("expected empty mesh, got %d corners", len(obj.Vertices))
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad number", "v 1 two 3\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"two vertex face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"missing position", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf /1 2 3\n"},
		{"bad normal index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n"},
		{"too many slashes", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1/1 2 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			if !errors.Is(err, ErrInvalidOBJ) {
				t.Errorf("expected ErrInvalidOBJ, got %v", err)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0644); err != nil {
		t.Fatal(err)
	}

	obj, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if obj.Triangles() != 2 {
		t.Errorf("expected 2 triangles, got %d", obj.Triangles())
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}
