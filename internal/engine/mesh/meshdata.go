// Package mesh holds CPU-side mesh data, materials and drawable meshes.
package mesh

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/chewxy/math32"
)

// ErrInvalidArgument is returned when mesh arrays have inconsistent shapes.
var ErrInvalidArgument = errors.New("invalid argument")

// MeshData holds vertex attributes in parallel arrays plus an index buffer.
// Corner i of the mesh is (Vertices[Indices[i]], Normals[Indices[i]], TexCoords[Indices[i]]).
type MeshData struct {
	Vertices  [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Indices   []uint32
}

// NewMeshData validates and wraps per-corner attribute arrays.
// texcoords may be nil, in which case every corner gets (0, 0).
// indices may be nil, in which case corner i uses attribute i.
func NewMeshData(vertices, normals [][3]float32, texcoords [][2]float32, indices []uint32) (*MeshData, error) {
	if len(normals) != len(vertices) {
		return nil, fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidArgument, len(normals), len(vertices))
	}
	if texcoords == nil {
		texcoords = make([][2]float32, len(vertices))
	}
	if len(texcoords) != len(vertices) {
		return nil, fmt.Errorf("%w: %d texcoords for %d vertices", ErrInvalidArgument, len(texcoords), len(vertices))
	}

	if indices == nil {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	d := &MeshData{
		Vertices:  vertices,
		Normals:   normals,
		TexCoords: texcoords,
		Indices:   indices,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Len returns the number of corners (index count).
func (d *MeshData) Len() int {
	return len(d.Indices)
}

// Clone returns a deep copy.
func (d *MeshData) Clone() *MeshData {
	return &MeshData{
		Vertices:  slices.Clone(d.Vertices),
		Normals:   slices.Clone(d.Normals),
		TexCoords: slices.Clone(d.TexCoords),
		Indices:   slices.Clone(d.Indices),
	}
}

// cornerKey is the composite (vertex, normal, texcoord) key of one corner.
type cornerKey [8]float32

func (d *MeshData) corner(i int) cornerKey {
	idx := d.Indices[i]
	v, n, t := d.Vertices[idx], d.Normals[idx], d.TexCoords[idx]
	return cornerKey{v[0], v[1], v[2], n[0], n[1], n[2], t[0], t[1]}
}

// orderBits maps a float32 onto a uint32 whose unsigned order is the
// IEEE-754 totalOrder: -NaN < -Inf < ... < -0 < +0 < ... < +Inf < +NaN.
// Distinct bit patterns stay distinct, so equality is bitwise.
func orderBits(f float32) uint32 {
	b := math32.Float32bits(f)
	if b&(1<<31) != 0 {
		return ^b
	}
	return b | 1<<31
}

func compareKeys(a, b cornerKey) int {
	for i := range a {
		if c := cmp.Compare(orderBits(a[i]), orderBits(b[i])); c != 0 {
			return c
		}
	}
	return 0
}

// Validate checks that the attribute arrays line up and every index is in range.
func (d *MeshData) Validate() error {
	if len(d.Normals) != len(d.Vertices) || len(d.TexCoords) != len(d.Vertices) {
		return fmt.Errorf("%w: %d vertices, %d normals, %d texcoords",
			ErrInvalidArgument, len(d.Vertices), len(d.Normals), len(d.TexCoords))
	}
	for i, idx := range d.Indices {
		if int(idx) >= len(d.Vertices) {
			return fmt.Errorf("%w: index %d at corner %d out of range (%d vertices)", ErrInvalidArgument, idx, i, len(d.Vertices))
		}
	}
	return nil
}

// Reindex collapses corners with bit-identical (vertex, normal, texcoord)
// data into one shared vertex. The unique vertices are stored sorted by
// their composite key and Indices keeps one entry per corner.
// The data is left untouched if it fails Validate.
func (d *MeshData) Reindex() error {
	if err := d.Validate(); err != nil {
		return err
	}

	corners := make([]cornerKey, d.Len())
	for i := range corners {
		corners[i] = d.corner(i)
	}

	unique := slices.Clone(corners)
	slices.SortStableFunc(unique, compareKeys)
	unique = slices.CompactFunc(unique, func(a, b cornerKey) bool {
		return compareKeys(a, b) == 0
	})

	indices := make([]uint32, len(corners))
	for i, key := range corners {
		pos, _ := slices.BinarySearchFunc(unique, key, compareKeys)
		indices[i] = uint32(pos)
	}

	vertices := make([][3]float32, len(unique))
	normals := make([][3]float32, len(unique))
	texcoords := make([][2]float32, len(unique))
	for i, key := range unique {
		vertices[i] = [3]float32{key[0], key[1], key[2]}
		normals[i] = [3]float32{key[3], key[4], key[5]}
		texcoords[i] = [2]float32{key[6], key[7]}
	}

	d.Vertices = vertices
	d.Normals = normals
	d.TexCoords = texcoords
	d.Indices = indices
	return nil
}

// Bounds returns the axis-aligned bounding box of the vertex array.
// An empty mesh returns zero bounds.
func (d *MeshData) Bounds() (lo, hi [3]float32) {
	if len(d.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = d.Vertices[0], d.Vertices[0]
	for _, v := range d.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	return lo, hi
}

// Centroid returns the mean position over all corners, read through Indices,
// so it is the same before and after Reindex.
func (d *MeshData) Centroid() [3]float32 {
	var sum [3]float32
	if len(d.Indices) == 0 {
		return sum
	}
	for _, idx := range d.Indices {
		v := d.Vertices[idx]
		sum[0] += v[0]
		sum[1] += v[1]
		sum[2] += v[2]
	}
	n := float32(len(d.Indices))
	return [3]float32{sum[0] / n, sum[1] / n, sum[2] / n}
}

// Center moves the vertices so the corner mean sits at the origin and returns
// the offset that was removed.
func (d *MeshData) Center() [3]float32 {
	c := d.Centroid()
	for i := range d.Vertices {
		d.Vertices[i][0] -= c[0]
		d.Vertices[i][1] -= c[1]
		d.Vertices[i][2] -= c[2]
	}
	return c
}
