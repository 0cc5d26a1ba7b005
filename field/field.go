package field

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tuneinsight/lattigo/v6/ring"
	"lukechampine.com/uint128"
)

type Field interface {
	Equals(a, b uint64) bool
	Add(a, b uint64) uint64
	Sub(a, b uint64) uint64
	Mul(a, b uint64) uint64
	Pow(base, exp uint64) uint64

	Neg(a uint64) uint64
	Inverse(a uint64) uint64
	Reduce(a uint64) uint64

	Modulus() uint64
	GetRootOfUnity(n uint64) (uint64, error)
	Generator() uint64
}

type PrimeField struct {
	prime uint64

	// generator and factors of p-1 are only needed by GetRootOfUnity, and factoring
	// p-1 is the expensive part of field setup.
	genOnce   sync.Once
	generator uint64
	factors   []uint64
	genErr    error
}

var (
	ErrPrimeTooLarge = errors.New("supporting up to 63-bit prime")
	ErrNotPrime      = errors.New("this package only support prime fields. please use a prime order")
	ErrNotInvertible = errors.New("element has no inverse")
)

const maxBitUsage = 63

// NewPrimeField validates that prime is a prime below 2^63. The test is lattigo's
// Baillie-PSW, which has no known counterexample below 2^64.
func NewPrimeField(prime uint64) (*PrimeField, error) {
	if prime >= (1 << maxBitUsage) {
		return nil, ErrPrimeTooLarge
	}

	if prime < 2 || !ring.IsPrime(prime) {
		return nil, fmt.Errorf("%w: %d", ErrNotPrime, prime)
	}

	return &PrimeField{prime: prime}, nil
}

var (
	ErrNotDivisible = errors.New("n must divide p-1")
	errNSTooSmall   = errors.New("n must be >= 1")
)

// Modulus implements Field.
func (f *PrimeField) Modulus() uint64 {
	return f.prime
}

func (f *PrimeField) loadGenerator() error {
	f.genOnce.Do(func() {
		// ring.PrimitiveRoot starts its search at 3, which is 0 mod 3.
		switch f.prime {
		case 2:
			f.generator, f.factors = 1, nil
			return
		case 3:
			f.generator, f.factors = 2, []uint64{2}
			return
		}

		f.generator, f.factors, f.genErr = ring.PrimitiveRoot(f.prime, nil)
	})

	return f.genErr
}

// GetRootOfUnity returns an element of order exactly n, derived from the generator of the
// multiplicative group.
func (f *PrimeField) GetRootOfUnity(n uint64) (uint64, error) {
	if n == 0 {
		return 0, errNSTooSmall
	}

	if (f.prime-1)%n != 0 {
		return 0, fmt.Errorf("%w: n=%d, p=%d", ErrNotDivisible, n, f.prime)
	}

	if err := f.loadGenerator(); err != nil {
		return 0, err
	}

	// The nth root of unity is the generator raised to the power of (prime-1)/n
	// since g^(x) == 1 (mod p) iff x=p-1, then w=g^((p-1)/n) is not 1, and the following n powers of w != 1 too.
	// proof is by contradiction to g being the generator of the field.
	return f.Pow(f.generator, (f.prime-1)/n), nil
}

// Generator returns a generator of the multiplicative group, or 0 if p-1 could not be factored.
func (f *PrimeField) Generator() uint64 {
	if err := f.loadGenerator(); err != nil {
		return 0
	}

	return f.generator
}

// Factors returns the distinct prime factors of p-1.
func (f *PrimeField) Factors() []uint64 {
	if err := f.loadGenerator(); err != nil {
		return nil
	}

	return f.factors
}

func IsPowerOfTwo(n uint64) bool {
	// https://graphics.stanford.edu/~seander/bithacks.html#DetermineIfPowerOf2
	return n != 0 && (n&(n-1)) == 0
}

func (f *PrimeField) Reduce(val uint64) uint64 {
	return val % f.prime
}

func (f *PrimeField) Add(a, b uint64) uint64 {
	tmp := a + b // can't overflow since adding two integers smaller than 2^63.
	if tmp >= f.prime {
		tmp -= f.prime
	}

	return tmp
}

// Mul returns a * b (mod field prime).
func (f *PrimeField) Mul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}

	return fieldMul(a, b, f.prime)
}

func fieldMul(a, b uint64, mod uint64) uint64 {
	return uint128.From64(a).Mul64(b).Mod64(mod)
}

// https://en.wikipedia.org/wiki/Exponentiation_by_squaring
func (f *PrimeField) Pow(base, exp uint64) uint64 {
	mod := f.prime

	x := uint64(1)
	base %= mod
	for exp > 0 {
		if exp%2 == 1 { // If exponent is odd, multiply base with x
			x = fieldMul(x, base, mod)
		}

		base = fieldMul(base, base, mod) // Square the base
		exp /= 2                         // Halve the exponent
	}

	return x % mod
}

func (f *PrimeField) Inverse(e uint64) uint64 {
	// Fermat's little theorem: a^(p) = a (mod p)
	// thus:
	// a^(p-2)*a^p = a^(2p-2) = a^(p-1)^2 = 1*1=1 (mod p)
	// a^(p-2) is the inverse of a
	if e%f.prime == 0 {
		panic("zero has no inverse")
	}

	return f.Pow(e, f.prime-2)
}

// InverseOf is Inverse for values that are not known to be nonzero.
func (f *PrimeField) InverseOf(e uint64) (uint64, error) {
	if e%f.prime == 0 {
		return 0, fmt.Errorf("%w: %d mod %d", ErrNotInvertible, e, f.prime)
	}

	return f.Pow(e, f.prime-2), nil
}

func (f *PrimeField) Neg(e uint64) uint64 {
	if e == 0 {
		return 0
	}

	return (f.prime - e)
}

func (f *PrimeField) Sub(a, b uint64) uint64 {
	if a < b {
		return f.prime - (b - a)
	}

	return a - b
}

func (f *PrimeField) Equals(a, b uint64) bool {
	mod := f.prime
	return (a % mod) == (b % mod)
}

// Evaluate computes sum coeffs[i]*x^i with Horner's rule.
func Evaluate(f Field, coeffs []uint64, x uint64) uint64 {
	result := uint64(0)

	for i := len(coeffs) - 1; i >= 0; i-- {
		result = f.Add(f.Reduce(coeffs[i]), f.Mul(x, result))
	}

	return result
}
