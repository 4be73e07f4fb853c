package combat

// SimpleRNG is a deterministic pseudo-random number generator (64-bit LCG).
// It is a plain value so an actor's RNG can be copied with the actor and
// discarded together with an aborted tick.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Symmetric returns a random float64 in [-amplitude, amplitude).
func (r *SimpleRNG) Symmetric(amplitude float64) float64 {
	return (r.Float64()*2 - 1) * amplitude
}

// State returns the raw generator state for snapshots.
func (r SimpleRNG) State() uint64 {
	return r.state
}
