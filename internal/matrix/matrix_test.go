package matrix_test

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/matrix"
)

func mustSlice(t *testing.T, rows, cols int, data ...float32) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromSlice(rows, cols, data)
	require.NoError(t, err)
	return m
}

func TestAlloc_InvalidDimension(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 3}, {0, 0}} {
		_, err := matrix.New(dims[0], dims[1])
		assert.ErrorIs(t, err, matrix.ErrInvalidDimension, "dims %v", dims)
	}
}

func TestAlloc_SeedRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	unit, err := matrix.Alloc(20, 20, matrix.SeedUnit, rng)
	require.NoError(t, err)
	for _, v := range unit.Data() {
		assert.True(t, v >= 0 && v < 1, "unit seed out of range: %f", v)
	}

	sym, err := matrix.Alloc(20, 20, matrix.SeedSymmetric, rng)
	require.NoError(t, err)
	negatives := 0
	for _, v := range sym.Data() {
		assert.True(t, v >= -1 && v < 1, "symmetric seed out of range: %f", v)
		if v < 0 {
			negatives++
		}
	}
	assert.Greater(t, negatives, 0)

	zero, err := matrix.New(3, 3)
	require.NoError(t, err)
	for _, v := range zero.Data() {
		assert.Zero(t, v)
	}

	_, err = matrix.Alloc(2, 2, matrix.SeedUnit, nil)
	assert.Error(t, err)
}

func TestAtPut(t *testing.T) {
	m, err := matrix.New(2, 3)
	require.NoError(t, err)

	m.Put(1, 2, 5)
	assert.Equal(t, float32(5), m.At(1, 2))
	assert.Equal(t, float32(5), m.Data()[1*3+2])

	for _, idx := range [][2]int{{2, 0}, {0, 3}, {-1, 0}, {0, -1}} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic for %v", idx)
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, matrix.ErrIndexOutOfBounds))
			}()
			m.At(idx[0], idx[1])
		}()
	}
	assert.Panics(t, func() { m.Put(2, 0, 1) })
}

func TestDot_KnownProducts(t *testing.T) {
	tests := []struct {
		name string
		a, b *matrix.Matrix
		want *matrix.Matrix
	}{
		{
			name: "2x3 by 3x2",
			a:    mustSlice(t, 2, 3, 1, 2, 3, 4, 5, 6),
			b:    mustSlice(t, 3, 2, 7, 8, 9, 10, 11, 12),
			want: mustSlice(t, 2, 2, 58, 64, 139, 154),
		},
		{
			name: "row by column",
			a:    mustSlice(t, 1, 3, 1, 2, 3),
			b:    mustSlice(t, 3, 1, 4, 5, 6),
			want: mustSlice(t, 1, 1, 32),
		},
		{
			name: "identity",
			a:    mustSlice(t, 2, 2, 3, -1, 0.5, 2),
			b:    mustSlice(t, 2, 2, 1, 0, 0, 1),
			want: mustSlice(t, 2, 2, 3, -1, 0.5, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := matrix.New(tt.a.Rows(), tt.b.Cols())
			require.NoError(t, err)
			require.NoError(t, matrix.Dot(dst, tt.a, tt.b))
			assert.True(t, dst.Equal(tt.want), "got\n%s", dst)
		})
	}
}

func TestDot_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a, err := matrix.Alloc(4, 5, matrix.SeedSymmetric, rng)
	require.NoError(t, err)
	b, err := matrix.Alloc(5, 3, matrix.SeedSymmetric, rng)
	require.NoError(t, err)
	dst, err := matrix.New(4, 3)
	require.NoError(t, err)
	require.NoError(t, matrix.Dot(dst, a, b))

	var want mat.Dense
	want.Mul(a.Dense(), b.Dense())
	assert.True(t, mat.EqualApprox(dst.Dense(), &want, 1e-5))
}

func TestDot_DimensionMismatch(t *testing.T) {
	for ac := 1; ac <= 3; ac++ {
		for br := 1; br <= 3; br++ {
			if ac == br {
				continue
			}
			a, _ := matrix.New(2, ac)
			b, _ := matrix.New(br, 2)
			dst, _ := matrix.New(2, 2)
			err := matrix.Dot(dst, a, b)
			assert.ErrorIs(t, err, matrix.ErrDimensionMismatch, "a.cols=%d b.rows=%d", ac, br)
		}
	}

	a, _ := matrix.New(2, 3)
	b, _ := matrix.New(3, 4)
	wrong, _ := matrix.New(2, 3)
	assert.ErrorIs(t, matrix.Dot(wrong, a, b), matrix.ErrDimensionMismatch)
}

func TestAddAndCopy_DimensionMismatch(t *testing.T) {
	shapes := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	for _, sa := range shapes {
		for _, sb := range shapes {
			a, _ := matrix.New(sa[0], sa[1])
			b, _ := matrix.New(sb[0], sb[1])
			name := fmt.Sprintf("%v_%v", sa, sb)
			if sa == sb {
				assert.NoError(t, a.Add(b), name)
				assert.NoError(t, matrix.Copy(a, b), name)
				continue
			}
			assert.ErrorIs(t, a.Add(b), matrix.ErrDimensionMismatch, name)
			assert.ErrorIs(t, matrix.Copy(a, b), matrix.ErrDimensionMismatch, name)
		}
	}
}

func TestAddApplyCopy(t *testing.T) {
	a := mustSlice(t, 1, 3, 1, 2, 3)
	b := mustSlice(t, 1, 3, 10, 20, 30)

	require.NoError(t, a.Add(b))
	assert.Equal(t, []float32{11, 22, 33}, a.Data())

	a.Apply(func(x float32) float32 { return x * 2 })
	assert.Equal(t, []float32{22, 44, 66}, a.Data())

	require.NoError(t, matrix.Copy(a, b))
	assert.Equal(t, b.Data(), a.Data())
	a.Put(0, 0, -1)
	assert.Equal(t, float32(10), b.At(0, 0), "copy must not alias")
}

func TestRowAndSub(t *testing.T) {
	m := mustSlice(t, 3, 3,
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	)

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 5, 6}, row.Data())
	row.Put(0, 0, 100)
	assert.Equal(t, float32(4), m.At(1, 0), "row must be a copy")

	_, err = m.Row(3)
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	sub, err := m.Sub(1, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 6, 8, 9}, sub.Data())

	_, err = m.Sub(2, 2, 2, 2)
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

func TestShuffleRows_IsPermutation(t *testing.T) {
	const rows, cols = 50, 3
	m, err := matrix.New(rows, cols)
	require.NoError(t, err)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Put(r, c, float32(r*10+c))
		}
	}

	key := func(m *matrix.Matrix) []string {
		keys := make([]string, m.Rows())
		for r := 0; r < m.Rows(); r++ {
			row, _ := m.Row(r)
			keys[r] = fmt.Sprint(row.Data())
		}
		return keys
	}
	before := key(m)

	m.ShuffleRows(rand.New(rand.NewSource(11)))
	after := key(m)
	assert.NotEqual(t, before, after, "50 rows should not stay in order")

	// Every row still has its columns together.
	for r := 0; r < rows; r++ {
		base := m.At(r, 0)
		assert.Equal(t, base+1, m.At(r, 1))
		assert.Equal(t, base+2, m.At(r, 2))
	}

	sort.Strings(before)
	sort.Strings(after)
	assert.Equal(t, before, after)
}

func TestSplitColumns_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m, err := matrix.Alloc(6, 7, matrix.SeedUnit, rng)
	require.NoError(t, err)

	parts, err := m.SplitColumns(2, 4, 1)
	require.NoError(t, err)
	require.Len(t, parts, 3)
	assert.Equal(t, 2, parts[0].Cols())
	assert.Equal(t, 4, parts[1].Cols())
	assert.Equal(t, 1, parts[2].Cols())
	assert.Equal(t, m.At(3, 2), parts[1].At(3, 0))

	joined, err := matrix.JoinColumns(parts...)
	require.NoError(t, err)
	assert.True(t, joined.Equal(m))

	_, err = m.SplitColumns(2, 2)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = m.SplitColumns(7, 0)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestView_AliasesBuffer(t *testing.T) {
	buf := make([]byte, 10*4)

	a, err := matrix.View(buf, 0, 2, 2)
	require.NoError(t, err)
	b, err := matrix.View(buf, 4*4, 2, 3)
	require.NoError(t, err)
	assert.True(t, a.IsView())

	a.Put(1, 1, 3)
	b.Put(0, 0, 7)

	whole, err := matrix.View(buf, 0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, float32(3), whole.At(0, 3))
	assert.Equal(t, float32(7), whole.At(0, 4))

	_, err = matrix.View(buf, 2, 1, 1)
	assert.ErrorIs(t, err, matrix.ErrMisaligned)
	_, err = matrix.View(buf, 8*4, 1, 3)
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	_, err = matrix.View(buf, 0, 0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimension)
}

func TestDenseRoundTrip(t *testing.T) {
	m := mustSlice(t, 2, 2, 1.5, -2, 0.25, 4)
	back, err := matrix.FromDense(m.Dense())
	require.NoError(t, err)
	assert.True(t, back.Equal(m))
}

func TestFromSlice_LengthMismatch(t *testing.T) {
	_, err := matrix.FromSlice(2, 2, []float32{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
