package ntt

import (
	"fmt"

	"github.com/jonathanmweiss/go-ntt/field"
)

// Session is the field setup for one transform length: the modulus p = n*k+1, a primitive
// n-th root of unity and everything derived from them. It is immutable once built.
type Session struct {
	f        *field.PrimeField
	n        int
	omega    uint64
	omegaInv uint64
	nInv     uint64

	// stage twiddles for the iterative transform, nil unless n is a power of two.
	tw *twiddleSet
}

type config struct {
	modulus          uint64
	maxModulusSearch uint64
	maxRootCandidate uint64
	factoredRoot     bool
}

type Option func(*config)

// WithModulus skips the modulus search and uses p, which must be prime with n | p-1.
func WithModulus(p uint64) Option {
	return func(c *config) { c.modulus = p }
}

func WithMaxModulusSearch(maxK uint64) Option {
	return func(c *config) { c.maxModulusSearch = maxK }
}

func WithMaxRootCandidates(limit uint64) Option {
	return func(c *config) { c.maxRootCandidate = limit }
}

// WithFactoredRoot derives omega from a generator of the multiplicative group (found by
// factoring p-1) instead of the linear order search. Useful for large n.
func WithFactoredRoot() Option {
	return func(c *config) { c.factoredRoot = true }
}

func newConfig(opts []Option) config {
	c := config{
		maxModulusSearch: field.DefaultMaxModulusSearch,
		maxRootCandidate: field.DefaultMaxRootCandidates,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// NewSession chooses the modulus, finds omega and precomputes what the transforms reuse.
func NewSession(n int, opts ...Option) (*Session, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", field.ErrInvalidLength, n)
	}

	cfg := newConfig(opts)

	p := cfg.modulus
	if p == 0 {
		var err error
		if p, err = field.ChooseModulusBounded(uint64(n), cfg.maxModulusSearch); err != nil {
			return nil, err
		}
	}

	f, err := field.NewPrimeField(p)
	if err != nil {
		return nil, err
	}

	var omega uint64
	if cfg.factoredRoot {
		omega, err = f.GetRootOfUnity(uint64(n))
	} else {
		omega, err = field.FindOmegaBounded(uint64(n), p, cfg.maxRootCandidate)
	}

	if err != nil {
		return nil, err
	}

	// n < p and omega != 0 because n | p-1 and omega has order n.
	s := &Session{
		f:        f,
		n:        n,
		omega:    omega,
		omegaInv: f.Inverse(omega),
		nInv:     f.Inverse(uint64(n)),
	}

	if field.IsPowerOfTwo(uint64(n)) {
		s.tw = newTwiddleSet(f, n, s.omega, s.omegaInv)
	}

	return s, nil
}

func (s *Session) N() int { return s.n }

func (s *Session) Modulus() uint64 { return s.f.Modulus() }

func (s *Session) Omega() uint64 { return s.omega }

func (s *Session) Field() field.Field { return s.f }

// EvaluationPoints returns omega^0, ..., omega^(n-1): Forward(a)[i] is the polynomial with
// coefficients a evaluated at the i-th point.
func (s *Session) EvaluationPoints() []uint64 {
	points := make([]uint64, s.n)

	w := uint64(1)
	for i := range points {
		points[i] = w
		w = s.f.Mul(w, s.omega)
	}

	return points
}

func (s *Session) check(a []uint64) error {
	if len(a) != s.n {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(a), s.n)
	}

	return checkReduced(a, s.f.Modulus())
}

func (s *Session) checkFast(a []uint64) error {
	if s.tw == nil {
		return fmt.Errorf("%w: session length %d is not a power of two", ErrInvalidLength, s.n)
	}

	return s.check(a)
}

// Naive is the O(n^2) reference transform.
func (s *Session) Naive(a []uint64) ([]uint64, error) {
	if err := s.check(a); err != nil {
		return nil, err
	}

	return naive(s.f, a, s.omega), nil
}

// Forward is the recursive Cooley-Tukey transform.
func (s *Session) Forward(a []uint64) ([]uint64, error) {
	if err := s.checkFast(a); err != nil {
		return nil, err
	}

	out := make([]uint64, s.n)
	cooleyTukey(s.f, out, a, 0, 1, s.omega)

	return out, nil
}

func (s *Session) Inverse(a []uint64) ([]uint64, error) {
	if err := s.checkFast(a); err != nil {
		return nil, err
	}

	return inverse(s.f, a, s.omegaInv, s.nInv), nil
}

// ForwardIterative transforms a in place with the bit-reversed iterative radix-2 NTT.
// The result equals Forward(a).
func (s *Session) ForwardIterative(a []uint64) error {
	if err := s.checkFast(a); err != nil {
		return err
	}

	s.tw.butterflies(s.f, a, s.tw.fwd)

	return nil
}

// InverseIterative undoes ForwardIterative in place.
func (s *Session) InverseIterative(a []uint64) error {
	if err := s.checkFast(a); err != nil {
		return err
	}

	s.tw.butterflies(s.f, a, s.tw.inv)

	for i := range a {
		a[i] = s.f.Mul(a[i], s.nInv)
	}

	return nil
}
