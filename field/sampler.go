package field

import (
	"math/bits"

	"github.com/tuneinsight/lattigo/v6/ring"
	"github.com/tuneinsight/lattigo/v6/utils/sampling"
)

// UniformSampler draws field elements uniformly from [0, p), typically from a seeded
// sampling.KeyedPRNG.
type UniformSampler struct {
	f    Field
	prng sampling.PRNG
	mask uint64
}

func NewUniformSampler(f Field, prng sampling.PRNG) *UniformSampler {
	return &UniformSampler{
		f:    f,
		prng: prng,
		mask: (uint64(1) << bits.Len64(f.Modulus()-1)) - 1,
	}
}

// Element returns one element by masked rejection sampling. It panics if the PRNG fails
// to produce bytes, as ring.RandUniform does.
func (s *UniformSampler) Element() uint64 {
	return ring.RandUniform(s.prng, s.f.Modulus(), s.mask)
}

// Vector returns n independent elements.
func (s *UniformSampler) Vector(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = s.Element()
	}

	return out
}
