package ntt

import (
	"errors"
	"fmt"

	"github.com/jonathanmweiss/go-ntt/field"
)

var (
	ErrInvalidLength      = errors.New("invalid transform length")
	ErrElementOutOfRange  = errors.New("vector element is not reduced modulo p")
	ErrLengthMismatch     = errors.New("vector length does not match the session length")
	errEmptyVector        = fmt.Errorf("%w: %w: empty vector", ErrInvalidLength, field.ErrInvalidLength)
	errOmegaNotInvertible = errors.New("omega must be nonzero modulo p")
)

// NaiveNTT computes out[i] = sum_j a[j] * omega^(i*j) mod p in O(n^2). Any length works.
func NaiveNTT(a []uint64, omega, p uint64) ([]uint64, error) {
	f, err := prepare(a, omega, p)
	if err != nil {
		return nil, err
	}

	return naive(f, a, omega), nil
}

// CooleyTukeyNTT computes the same transform as NaiveNTT in O(n log n).
// len(a) must be a power of two and omega a primitive len(a)-th root of unity mod p.
func CooleyTukeyNTT(a []uint64, omega, p uint64) ([]uint64, error) {
	if !field.IsPowerOfTwo(uint64(len(a))) {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidLength, len(a))
	}

	f, err := prepare(a, omega, p)
	if err != nil {
		return nil, err
	}

	out := make([]uint64, len(a))
	cooleyTukey(f, out, a, 0, 1, omega)

	return out, nil
}

// InverseNTT undoes CooleyTukeyNTT: InverseNTT(CooleyTukeyNTT(v, w, p), w, p) == v.
func InverseNTT(a []uint64, omega, p uint64) ([]uint64, error) {
	if !field.IsPowerOfTwo(uint64(len(a))) {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidLength, len(a))
	}

	f, err := prepare(a, omega, p)
	if err != nil {
		return nil, err
	}

	omegaInv, err := f.InverseOf(omega)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errOmegaNotInvertible, err)
	}

	nInv, err := f.InverseOf(uint64(len(a)))
	if err != nil {
		return nil, err
	}

	return inverse(f, a, omegaInv, nInv), nil
}

func prepare(a []uint64, omega, p uint64) (*field.PrimeField, error) {
	if len(a) == 0 {
		return nil, errEmptyVector
	}

	f, err := field.NewPrimeField(p)
	if err != nil {
		return nil, err
	}

	if omega >= p {
		return nil, fmt.Errorf("%w: omega=%d, p=%d", ErrElementOutOfRange, omega, p)
	}

	if err := checkReduced(a, p); err != nil {
		return nil, err
	}

	return f, nil
}

func checkReduced(a []uint64, p uint64) error {
	for i, v := range a {
		if v >= p {
			return fmt.Errorf("%w: a[%d]=%d, p=%d", ErrElementOutOfRange, i, v, p)
		}
	}

	return nil
}

func naive(f field.Field, a []uint64, omega uint64) []uint64 {
	n := len(a)
	out := make([]uint64, n)

	for i := 0; i < n; i++ {
		acc := uint64(0)
		for j := 0; j < n; j++ {
			power := f.Pow(omega, uint64(i)*uint64(j))
			acc = f.Add(acc, f.Mul(a[j], power))
		}

		out[i] = acc
	}

	return out
}

// cooleyTukey writes the transform of a[offset], a[offset+stride], ... (len(out) elements)
// into out. The even half lands in out[:n/2] and the odd half in out[n/2:], so the butterfly
// runs in place without slicing a.
func cooleyTukey(f field.Field, out, a []uint64, offset, stride int, omega uint64) {
	n := len(out)
	if n == 1 {
		out[0] = a[offset]
		return
	}

	half := n / 2
	omegaSquared := f.Mul(omega, omega)

	cooleyTukey(f, out[:half], a, offset, stride*2, omegaSquared)
	cooleyTukey(f, out[half:], a, offset+stride, stride*2, omegaSquared)

	factor := uint64(1)
	for i := 0; i < half; i++ {
		even := out[i]
		t := f.Mul(factor, out[i+half])

		out[i] = f.Add(even, t)
		out[i+half] = f.Sub(even, t)

		factor = f.Mul(factor, omega)
	}
}

func inverse(f field.Field, a []uint64, omegaInv, nInv uint64) []uint64 {
	out := make([]uint64, len(a))
	cooleyTukey(f, out, a, 0, 1, omegaInv)

	for i := range out {
		out[i] = f.Mul(out[i], nInv)
	}

	return out
}
