package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type corner struct {
	v [3]float32
	n [3]float32
	t [2]float32
}

func buildData(t *testing.T, corners []corner) *MeshData {
	t.Helper()
	var vs, ns [][3]float32
	var ts [][2]float32
	for _, c := range corners {
		vs = append(vs, c.v)
		ns = append(ns, c.n)
		ts = append(ts, c.t)
	}
	d, err := NewMeshData(vs, ns, ts, nil)
	require.NoError(t, err)
	return d
}

func readBack(d *MeshData, i int) corner {
	idx := d.Indices[i]
	return corner{d.Vertices[idx], d.Normals[idx], d.TexCoords[idx]}
}

// quad is two triangles sharing the edge a-c.
func quad() []corner {
	up := [3]float32{0, 0, 1}
	a := corner{[3]float32{0, 0, 0}, up, [2]float32{0, 0}}
	b := corner{[3]float32{1, 0, 0}, up, [2]float32{1, 0}}
	c := corner{[3]float32{1, 1, 0}, up, [2]float32{1, 1}}
	d := corner{[3]float32{0, 1, 0}, up, [2]float32{0, 1}}
	return []corner{a, b, c, a, c, d}
}

func TestNewMeshDataValidation(t *testing.T) {
	v := [][3]float32{{0, 0, 0}, {1, 0, 0}}

	_, err := NewMeshData(v, v[:1], nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewMeshData(v, v, [][2]float32{{0, 0}}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewMeshData(v, v, nil, []uint32{0, 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	d, err := NewMeshData(v, v, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, d.Indices)
	assert.Equal(t, [][2]float32{{0, 0}, {0, 0}}, d.TexCoords)
	assert.Equal(t, 2, d.Len())
}

func TestReindexReadBack(t *testing.T) {
	corners := quad()
	d := buildData(t, corners)
	require.NoError(t, d.Reindex())

	require.Len(t, d.Indices, len(corners))
	assert.Len(t, d.Vertices, 4)
	assert.Len(t, d.Normals, 4)
	assert.Len(t, d.TexCoords, 4)
	for i, want := range corners {
		assert.Equal(t, want, readBack(d, i), "corner %d", i)
	}
}

func TestReindexSharedEdgeScenario(t *testing.T) {
	n := [3]float32{0, 1, 0}
	a := corner{[3]float32{0, 0, 0}, n, [2]float32{0, 0}}
	b := corner{[3]float32{1, 0, 0}, n, [2]float32{1, 0}}

	d := buildData(t, []corner{a, b, a, b})
	require.NoError(t, d.Reindex())

	assert.Len(t, d.Vertices, 2)
	assert.Equal(t, []uint32{0, 1, 0, 1}, d.Indices)
}

func TestReindexIdempotent(t *testing.T) {
	d := buildData(t, quad())
	require.NoError(t, d.Reindex())
	once := d.Clone()

	require.NoError(t, d.Reindex())
	assert.Equal(t, once, d)
}

func TestReindexSortedUnique(t *testing.T) {
	d := buildData(t, quad())
	require.NoError(t, d.Reindex())

	key := func(i int) cornerKey {
		v, n, tc := d.Vertices[i], d.Normals[i], d.TexCoords[i]
		return cornerKey{v[0], v[1], v[2], n[0], n[1], n[2], tc[0], tc[1]}
	}
	for i := 1; i < len(d.Vertices); i++ {
		assert.Negative(t, compareKeys(key(i-1), key(i)), "vertex %d out of order", i)
	}
}

func TestReindexNoDuplicatesKeepsCount(t *testing.T) {
	up := [3]float32{0, 0, 1}
	corners := []corner{
		{[3]float32{2, 0, 0}, up, [2]float32{}},
		{[3]float32{0, 0, 0}, up, [2]float32{}},
		{[3]float32{1, 0, 0}, up, [2]float32{}},
	}
	d := buildData(t, corners)
	require.NoError(t, d.Reindex())

	assert.Len(t, d.Vertices, len(corners))
	assert.Equal(t, []uint32{2, 0, 1}, d.Indices)
}

func TestReindexEmpty(t *testing.T) {
	d, err := NewMeshData(nil, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, d.Reindex())
	assert.Empty(t, d.Vertices)
	assert.Empty(t, d.Normals)
	assert.Empty(t, d.TexCoords)
	assert.Empty(t, d.Indices)
}

func TestReindexAllIdentical(t *testing.T) {
	c := corner{[3]float32{1, 2, 3}, [3]float32{0, 1, 0}, [2]float32{0.5, 0.5}}
	d := buildData(t, []corner{c, c, c, c, c})
	require.NoError(t, d.Reindex())

	assert.Len(t, d.Vertices, 1)
	assert.Equal(t, []uint32{0, 0, 0, 0, 0}, d.Indices)
}

func TestReindexDistinguishesNormalsAndTexCoords(t *testing.T) {
	p := [3]float32{1, 1, 1}
	corners := []corner{
		{p, [3]float32{1, 0, 0}, [2]float32{0, 0}},
		{p, [3]float32{0, 1, 0}, [2]float32{0, 0}},
		{p, [3]float32{1, 0, 0}, [2]float32{0, 1}},
		{p, [3]float32{1, 0, 0}, [2]float32{0, 0}},
	}
	d := buildData(t, corners)
	require.NoError(t, d.Reindex())

	assert.Len(t, d.Vertices, 3)
	assert.Equal(t, d.Indices[0], d.Indices[3])
	for i, want := range corners {
		assert.Equal(t, want, readBack(d, i))
	}
}

func TestReindexExactEquality(t *testing.T) {
	n := [3]float32{0, 0, 1}
	near := math.Nextafter32(1, 2)
	corners := []corner{
		{[3]float32{1, 0, 0}, n, [2]float32{}},
		{[3]float32{near, 0, 0}, n, [2]float32{}},
	}
	d := buildData(t, corners)
	require.NoError(t, d.Reindex())

	assert.Len(t, d.Vertices, 2, "epsilon-close vertices must not merge")
}

func TestReindexSignedZeroAndNaN(t *testing.T) {
	n := [3]float32{0, 0, 1}
	negZero := float32(math.Copysign(0, -1))
	nan := float32(math.NaN())
	corners := []corner{
		{[3]float32{0, 0, 0}, n, [2]float32{}},
		{[3]float32{negZero, 0, 0}, n, [2]float32{}},
		{[3]float32{nan, 0, 0}, n, [2]float32{}},
		{[3]float32{nan, 0, 0}, n, [2]float32{}},
		{[3]float32{float32(math.Inf(1)), 0, 0}, n, [2]float32{}},
	}
	d := buildData(t, corners)
	require.NoError(t, d.Reindex())

	// -0 and +0 stay apart, identical NaNs merge.
	require.Len(t, d.Vertices, 4)
	assert.Equal(t, d.Indices[2], d.Indices[3])

	// Order: -0 < +0 < +Inf < NaN.
	assert.Equal(t, []uint32{1, 0, 3, 3, 2}, d.Indices)
	assert.True(t, math.Signbit(float64(d.Vertices[0][0])))
	assert.True(t, math.IsNaN(float64(d.Vertices[3][0])))
}

func TestOrderBitsTotalOrder(t *testing.T) {
	ordered := []float32{
		float32(math.Inf(-1)), -2, -1, float32(math.Copysign(0, -1)), 0, 1e-30, 1, 2, float32(math.Inf(1)), float32(math.NaN()),
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, orderBits(ordered[i-1]), orderBits(ordered[i]), "%v should sort before %v", ordered[i-1], ordered[i])
	}
}

func TestReindexFollowsExistingIndices(t *testing.T) {
	v := [][3]float32{{5, 0, 0}, {1, 0, 0}, {5, 0, 0}}
	n := [][3]float32{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}}
	d, err := NewMeshData(v, n, nil, []uint32{2, 1, 0, 1})
	require.NoError(t, err)

	require.NoError(t, d.Reindex())
	assert.Len(t, d.Vertices, 2)
	assert.Equal(t, []uint32{1, 0, 1, 0}, d.Indices)
}

func TestBoundsAndCenter(t *testing.T) {
	v := [][3]float32{{0, 0, 0}, {2, 4, -2}, {1, 2, 2}}
	d, err := NewMeshData(v, make([][3]float32, 3), nil, nil)
	require.NoError(t, err)

	lo, hi := d.Bounds()
	assert.Equal(t, [3]float32{0, 0, -2}, lo)
	assert.Equal(t, [3]float32{2, 4, 2}, hi)

	offset := d.Center()
	assert.Equal(t, [3]float32{1, 2, 0}, offset)
	assert.Equal(t, [3]float32{}, d.Centroid())
	assert.Equal(t, [3]float32{-1, -2, 0}, d.Vertices[0])
}

func TestCloneIsDeep(t *testing.T) {
	d := buildData(t, quad())
	c := d.Clone()
	c.Vertices[0][0] = 99
	c.Indices[0] = 3

	assert.NotEqual(t, d.Vertices[0][0], c.Vertices[0][0])
	assert.NotEqual(t, d.Indices[0], c.Indices[0])
}

func TestReindexRejectsStaleIndices(t *testing.T) {
	d := buildData(t, quad())
	d.Indices[2] = uint32(len(d.Vertices))
	before := d.Clone()

	assert.ErrorIs(t, d.Reindex(), ErrInvalidArgument)
	assert.Equal(t, before, d)

	d = buildData(t, quad())
	d.Normals = d.Normals[:2]
	assert.ErrorIs(t, d.Reindex(), ErrInvalidArgument)
}

func TestCentroidUnchangedByReindex(t *testing.T) {
	up := [3]float32{0, 0, 1}
	corners := []corner{
		{v: [3]float32{0, 0, 0}, n: up},
		{v: [3]float32{4, 0, 0}, n: up},
		{v: [3]float32{4, 1, 0}, n: up},
		{v: [3]float32{0, 0, 0}, n: up},
		{v: [3]float32{4, 1, 0}, n: up},
		{v: [3]float32{0, 4, 0}, n: up},
	}
	d := buildData(t, corners)
	want := d.Centroid()
	assert.Equal(t, [3]float32{2, 1, 0}, want)

	require.NoError(t, d.Reindex())
	require.Len(t, d.Vertices, 4)
	assert.Equal(t, want, d.Centroid())
}
