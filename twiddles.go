package ntt

import "github.com/jonathanmweiss/go-ntt/field"

// twiddleSet holds, per stage, the powers 1, w, ..., w^(half-1) of that stage's root, where a
// stage merges blocks of size half into blocks of size 2*half and w = root^(n/(2*half)).
type twiddleSet struct {
	fwd [][]uint64
	inv [][]uint64
}

func newTwiddleSet(f field.Field, n int, omega, omegaInv uint64) *twiddleSet {
	return &twiddleSet{
		fwd: stageRoots(f, n, omega),
		inv: stageRoots(f, n, omegaInv),
	}
}

// stageRoots walks the stages from the widest down: the last stage uses root itself and each
// earlier stage squares it, the same relation the recursive transform relies on.
func stageRoots(f field.Field, n int, root uint64) [][]uint64 {
	var stages [][]uint64
	for half := n / 2; half >= 1; half /= 2 {
		powers := make([]uint64, half)
		powers[0] = 1
		for j := 1; j < half; j++ {
			powers[j] = f.Mul(powers[j-1], root)
		}

		stages = append(stages, powers)
		root = f.Mul(root, root)
	}

	// reverse to run the narrow stages first.
	for i, j := 0, len(stages)-1; i < j; i, j = i+1, j-1 {
		stages[i], stages[j] = stages[j], stages[i]
	}

	return stages
}

// butterflies reorders a into bit-reversed order and then merges blocks stage by stage.
func (ts *twiddleSet) butterflies(f field.Field, a []uint64, stages [][]uint64) {
	bitReverseInPlace(a)

	for _, ws := range stages {
		half := len(ws)
		for block := 0; block < len(a); block += 2 * half {
			lo, hi := a[block:block+half], a[block+half:block+2*half]
			for j, w := range ws {
				t := f.Mul(w, hi[j])
				lo[j], hi[j] = f.Add(lo[j], t), f.Sub(lo[j], t)
			}
		}
	}
}

func bitReverseInPlace(xs []uint64) {
	n := len(xs)
	if n <= 1 {
		return
	}

	j := 0
	for i := 1; i < n; i++ {
		bit := n >> 1
		for j&bit != 0 {
			j &^= bit
			bit >>= 1
		}
		j |= bit

		if i < j {
			xs[i], xs[j] = xs[j], xs[i]
		}
	}
}
