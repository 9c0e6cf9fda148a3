package scenario

import "math/rand"

// Latent draws the expectation and observation series for the extended
// signal form. The stream derives from the run seed with a fixed
// offset, so parameter generation and latent draws never share a
// position. Draw order is (E, O) per strate, ascending.
type Latent struct {
	rng *rand.Rand
	std float64
}

func NewLatent(seed int64, std float64) *Latent {
	return &Latent{rng: rand.New(rand.NewSource(seed + 1)), std: std}
}

// Draw produces one step of E and O across n strates.
func (l *Latent) Draw(n int) (e, o []float64) {
	e = make([]float64, n)
	o = make([]float64, n)
	for i := 0; i < n; i++ {
		e[i] = l.rng.NormFloat64() * l.std
		o[i] = l.rng.NormFloat64() * l.std
	}
	return e, o
}
