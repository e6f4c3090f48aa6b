// Package bag generates 7-bag piece sequences.
package bag

import "math/rand/v2"

// Pieces are the seven tetromino identifiers.
var Pieces = []string{"I", "L", "O", "Z", "T", "J", "S"}

// New returns a random permutation of Pieces drawn from r. A nil r uses the
// global source.
func New(r *rand.Rand) []string {
	out := make([]string, len(Pieces))
	copy(out, Pieces)
	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Seeded returns a deterministic generator for seed.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
