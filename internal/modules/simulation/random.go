package simulation

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
// Implementations need not be safe for concurrent use.
type Source interface {
	Float64() float64
}

// NewSeededSource returns a deterministic PCG source. Distinct streams with the
// same seed are independent, which gives every path its own generator.
func NewSeededSource(seed, stream uint64) Source {
	//nolint:gosec // G404: Monte Carlo simulation doesn't require crypto-grade randomness
	return rand.New(rand.NewPCG(seed, stream))
}

// randomSeed draws a run seed from the operating system's secure generator,
// falling back to the runtime generator if that fails.
func randomSeed() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		//nolint:gosec // G404: seed only, not key material
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// normalSampler turns uniform draws into standard normal variates with the
// Box-Muller transform. Each transform yields two independent variates; the
// sine one is kept for the next call.
type normalSampler struct {
	src      Source
	spare    float64
	hasSpare bool
}

func newNormalSampler(src Source) *normalSampler {
	return &normalSampler{src: src}
}

func (n *normalSampler) next() float64 {
	if n.hasSpare {
		n.hasSpare = false
		return n.spare
	}

	u := n.nonZeroUniform()
	v := n.nonZeroUniform()

	radius := math.Sqrt(-2.0 * math.Log(u))
	theta := 2.0 * math.Pi * v

	n.spare = radius * math.Sin(theta)
	n.hasSpare = true
	return radius * math.Cos(theta)
}

// nonZeroUniform rejects 0 so that log(u) stays finite
func (n *normalSampler) nonZeroUniform() float64 {
	for {
		if u := n.src.Float64(); u > 0 {
			return u
		}
	}
}
