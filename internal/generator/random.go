package generator

import (
	"math"
	"math/rand/v2"
)

// Source supplies uniformly distributed floats in [0, 1). *rand.Rand from
// math/rand/v2 satisfies it; a fixed seed makes generation reproducible.
type Source interface {
	Float64() float64
}

// newSource returns a freshly seeded PCG source.
func newSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// intn returns a uniform integer in [0, n).
func intn(src Source, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// chance reports true with probability p.
func chance(src Source, p float64) bool {
	return src.Float64() < p
}

// shuffled returns a Fisher-Yates shuffled copy of in.
func shuffled[T any](src Source, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := intn(src, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// randInt returns a uniform integer in [lo, hi].
func randInt(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + intn(src, hi-lo+1)
}

// roundTo rounds v to the nearest multiple of step, never below zero.
func roundTo(v, step int) int {
	if step <= 1 {
		return max(v, 0)
	}
	r := int(math.Round(float64(v)/float64(step))) * step
	return max(r, 0)
}
