package ntt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanmweiss/go-ntt/field"
)

func TestNewSession(t *testing.T) {
	a := assert.New(t)

	s, err := NewSession(4)
	a.NoError(err)
	a.Equal(4, s.N())
	a.Equal(uint64(5), s.Modulus())
	a.True(field.HasOrder(s.Field(), s.Omega(), 4))

	_, err = NewSession(0)
	a.ErrorIs(err, field.ErrInvalidLength)

	_, err = NewSession(-3)
	a.ErrorIs(err, field.ErrInvalidLength)
}

func TestSessionOptions(t *testing.T) {
	a := assert.New(t)

	s, err := NewSession(8, WithModulus(65537))
	a.NoError(err)
	a.Equal(uint64(65537), s.Modulus())
	a.True(field.HasOrder(s.Field(), s.Omega(), 8))

	s, err = NewSession(8, WithModulus(65537), WithFactoredRoot())
	a.NoError(err)
	a.Equal(uint64(4096), s.Omega())

	_, err = NewSession(8, WithModulus(13))
	a.ErrorIs(err, field.ErrNotDivisible)

	_, err = NewSession(8, WithModulus(15))
	a.ErrorIs(err, field.ErrNotPrime)

	_, err = NewSession(7, WithMaxModulusSearch(3))
	a.ErrorIs(err, field.ErrModulusNotFound)

	_, err = NewSession(16, WithMaxRootCandidates(1))
	a.ErrorIs(err, field.ErrNoPrimitiveRoot)
}

func TestSessionTransforms(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 64, 512} {
		for _, opts := range [][]Option{nil, {WithFactoredRoot()}} {
			t.Run(fmt.Sprintf("n=%d/factored=%v", n, opts != nil), func(t *testing.T) {
				a := assert.New(t)

				s, err := NewSession(n, opts...)
				require.NoError(t, err)

				v := randomVector(t, fmt.Sprintf("session-%d", n), n, s.Modulus())

				naive, err := s.Naive(v)
				a.NoError(err)

				fwd, err := s.Forward(v)
				a.NoError(err)
				a.Equal(naive, fwd)

				// same result as the free function with the session's parameters.
				free, err := CooleyTukeyNTT(v, s.Omega(), s.Modulus())
				a.NoError(err)
				a.Equal(fwd, free)

				back, err := s.Inverse(fwd)
				a.NoError(err)
				a.Equal(v, back)

				inPlace := append([]uint64(nil), v...)
				a.NoError(s.ForwardIterative(inPlace))
				a.Equal(fwd, inPlace)

				a.NoError(s.InverseIterative(inPlace))
				a.Equal(v, inPlace)
			})
		}
	}
}

func TestSessionEvaluationPoints(t *testing.T) {
	a := assert.New(t)

	s, err := NewSession(16)
	a.NoError(err)

	points := s.EvaluationPoints()
	a.Len(points, 16)
	a.Equal(uint64(1), points[0])
	a.Equal(s.Omega(), points[1])

	v := randomVector(t, "points", 16, s.Modulus())
	fwd, err := s.Forward(v)
	a.NoError(err)

	for i, x := range points {
		a.Equal(field.Evaluate(s.Field(), v, x), fwd[i])
	}

	// distinct, since omega has order exactly n.
	seen := make(map[uint64]struct{}, len(points))
	for _, x := range points {
		seen[x] = struct{}{}
	}
	a.Len(seen, 16)
}

func TestSessionNonPowerOfTwo(t *testing.T) {
	a := assert.New(t)

	s, err := NewSession(6)
	a.NoError(err)
	a.Equal(uint64(7), s.Modulus())

	v := []uint64{1, 2, 3, 4, 5, 6}
	_, err = s.Naive(v)
	a.NoError(err)

	_, err = s.Forward(v)
	a.ErrorIs(err, ErrInvalidLength)

	_, err = s.Inverse(v)
	a.ErrorIs(err, ErrInvalidLength)

	a.ErrorIs(s.ForwardIterative(v), ErrInvalidLength)
	a.ErrorIs(s.InverseIterative(v), ErrInvalidLength)
}

func TestSessionRejectsBadVectors(t *testing.T) {
	a := assert.New(t)

	s, err := NewSession(4)
	a.NoError(err)

	_, err = s.Forward([]uint64{1, 2})
	a.ErrorIs(err, ErrLengthMismatch)

	_, err = s.Naive([]uint64{1, 2, 3, 4, 5})
	a.ErrorIs(err, ErrLengthMismatch)

	_, err = s.Inverse([]uint64{1, 2, 3, 5})
	a.ErrorIs(err, ErrElementOutOfRange)

	v := []uint64{1, 2, 3, 9}
	a.ErrorIs(s.ForwardIterative(v), ErrElementOutOfRange)
	a.Equal([]uint64{1, 2, 3, 9}, v)
}

func TestStageRoots(t *testing.T) {
	a := assert.New(t)

	s, err := NewSession(16)
	a.NoError(err)

	f := s.Field()
	stages := stageRoots(f, 16, s.Omega())
	a.Len(stages, 4)

	// the stage merging blocks of size m uses omega^(n/m).
	for i, ws := range stages {
		m := 2 << i
		a.Len(ws, m/2)
		for j, w := range ws {
			a.Equal(f.Pow(s.Omega(), uint64(16/m*j)), w, "m=%d j=%d", m, j)
		}
	}

	a.Empty(stageRoots(f, 1, s.Omega()))
}

func TestBitReverse(t *testing.T) {
	a := assert.New(t)

	xs := []uint64{0, 1, 2, 3, 4, 5, 6, 7}
	bitReverseInPlace(xs)
	a.Equal([]uint64{0, 4, 2, 6, 1, 5, 3, 7}, xs)

	one := []uint64{9}
	bitReverseInPlace(one)
	a.Equal([]uint64{9}, one)
}

func BenchmarkSession(b *testing.B) {
	s, err := NewSession(1024)
	if err != nil {
		b.FailNow()
	}

	v := randomVector(b, "bench", 1024, s.Modulus())

	b.Run("Forward", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = s.Forward(v)
		}
	})

	b.Run("ForwardIterative", func(b *testing.B) {
		buf := make([]uint64, len(v))
		for i := 0; i < b.N; i++ {
			copy(buf, v)
			_ = s.ForwardIterative(buf)
		}
	})
}
