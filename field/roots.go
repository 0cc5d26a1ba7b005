package field

import (
	"errors"
	"fmt"
)

// DefaultMaxRootCandidates caps the number of generators g tried by FindOmega on top of the
// natural bound g <= p-1.
const DefaultMaxRootCandidates = 1 << 20

var ErrNoPrimitiveRoot = errors.New("no primitive root of unity found")

// FindOmega returns an element of multiplicative order exactly n modulo the prime p.
// p must be prime and n must divide p-1.
func FindOmega(n, p uint64) (uint64, error) {
	return FindOmegaBounded(n, p, DefaultMaxRootCandidates)
}

// FindOmegaBounded is FindOmega trying at most maxCandidates generators.
//
// For g = 2, 3, ... the candidate g^((p-1)/n) always satisfies w^n = 1; it is accepted once
// no smaller positive power equals 1.
func FindOmegaBounded(n, p uint64, maxCandidates uint64) (uint64, error) {
	if n == 0 {
		return 0, ErrInvalidLength
	}

	f, err := NewPrimeField(p)
	if err != nil {
		return 0, err
	}

	if (p-1)%n != 0 {
		return 0, fmt.Errorf("%w: %w: n=%d, p=%d", ErrNoPrimitiveRoot, ErrNotDivisible, n, p)
	}

	// 1 is the only element of order 1, and the loop below would never reach it for p=2.
	if n == 1 {
		return 1, nil
	}

	requiredOrder := (p - 1) / n
	tried := uint64(0)
	for g := uint64(2); g <= p-1 && tried < maxCandidates; g++ {
		tried++

		omega := f.Pow(g, requiredOrder)
		if HasOrder(f, omega, n) {
			return omega, nil
		}
	}

	return 0, fmt.Errorf("%w: n=%d, p=%d after %d candidates", ErrNoPrimitiveRoot, n, p, tried)
}

// HasOrder reports whether omega^n = 1 and omega^k != 1 for 0 < k < n.
// The walk over k is O(n); no factorization of n is used.
func HasOrder(f Field, omega, n uint64) bool {
	if n == 0 {
		return false
	}

	omega = f.Reduce(omega)

	acc := uint64(1)
	for k := uint64(1); k < n; k++ {
		acc = f.Mul(acc, omega)
		if acc == 1 {
			return false
		}
	}

	return f.Mul(acc, omega) == 1
}
