package detector

import "math/rand/v2"

// AlgorithmVersion names the generator algorithm and draw order. Any change
// to either must bump it, since every downstream value shifts.
const AlgorithmVersion = "pcg-dxsm/v1"

// Source produces the next uniform value in [0,1). Draws are consumed in a
// fixed order:
//
//  1. label discriminator
//  2. confidence offset
//  3. indicator count
//  4. indicator sample, one draw per selected indicator
//  5. spectral_analysis offset
//  6. prosodic_features offset
//  7. artifact_detection offset
type Source interface {
	Float64() float64
}

// Generator is a [Source] backed by a PCG-DXSM stream. It is not safe for
// concurrent use; build one per request with [NewGenerator].
type Generator struct {
	pcg *rand.PCG
}

// NewGenerator seeds a generator from a fingerprint seed. Identical seeds give
// identical sequences on every platform.
func NewGenerator(seed uint64) *Generator {
	return &Generator{pcg: rand.NewPCG(seed, seed)}
}

// Float64 returns the top 53 bits of the next output scaled into [0,1).
func (g *Generator) Float64() float64 {
	return float64(g.pcg.Uint64()>>11) / (1 << 53)
}
