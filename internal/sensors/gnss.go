package sensors

import "math/rand"

// GNSS models receiver jitter as independent zero-mean Gaussian noise per
// axis. There is no systematic bias term.
type GNSS struct {
	stdDev float64
	rng    *rand.Rand
}

// NewGNSS creates a receiver with the given noise standard deviation in
// meters. A nil rng falls back to a time-seeded source.
func NewGNSS(stdDev float64, rng *rand.Rand) *GNSS {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &GNSS{stdDev: stdDev, rng: rng}
}

// Read returns the true position perturbed by receiver noise.
func (g *GNSS) Read(trueX, trueY float64) (x, y float64) {
	x = trueX + g.rng.NormFloat64()*g.stdDev
	y = trueY + g.rng.NormFloat64()*g.stdDev
	return x, y
}
