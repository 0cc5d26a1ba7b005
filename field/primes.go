package field

import (
	"errors"
	"fmt"
)

// DefaultMaxModulusSearch caps the number of multipliers k tried by ChooseModulus.
const DefaultMaxModulusSearch = 1 << 24

var (
	ErrModulusNotFound = errors.New("no prime of the form n*k+1 found")
	ErrInvalidLength   = errors.New("transform length must be positive")
)

// IsPrime reports whether x is prime by trial division with candidates 6m±1.
func IsPrime(x uint64) bool {
	if x <= 1 {
		return false
	}

	if x <= 3 {
		return true
	}

	if x%2 == 0 || x%3 == 0 {
		return false
	}

	// i <= x/i instead of i*i <= x to stay clear of overflow near 2^64.
	for i := uint64(5); i <= x/i; i += 6 {
		if x%i == 0 || x%(i+2) == 0 {
			return false
		}
	}

	return true
}

// ChooseModulus returns the smallest prime p = n*k + 1, k >= 1.
func ChooseModulus(n uint64) (uint64, error) {
	return ChooseModulusBounded(n, DefaultMaxModulusSearch)
}

// ChooseModulusBounded is ChooseModulus trying at most maxK multipliers.
func ChooseModulusBounded(n uint64, maxK uint64) (uint64, error) {
	if n == 0 {
		return 0, ErrInvalidLength
	}

	limit := (uint64(1)<<maxBitUsage - 2) / n // keeps n*k+1 below 2^63.
	for k := uint64(1); k <= maxK; k++ {
		if k > limit {
			return 0, fmt.Errorf("%w: n=%d exceeds 63-bit moduli at k=%d", ErrModulusNotFound, n, k)
		}

		if p := n*k + 1; IsPrime(p) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: n=%d, tried k=1..%d", ErrModulusNotFound, n, maxK)
}
