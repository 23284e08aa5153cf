package generation

// ---- Seeded RNG ----

// RNG is a simple seeded random number generator (LCG)
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed
func NewRNG(seed uint64) *RNG {
	return &RNG{state: seed}
}

// NewCellRNG creates an RNG whose stream depends only on the world seed and
// a world coordinate, so regenerating a cell reproduces the same choices.
func NewCellRNG(seed int64, x, y int) *RNG {
	return NewRNG(hash2(seed, x, y))
}

// Uint64 returns a pseudo-random uint64
func (r *RNG) Uint64() uint64 {
	// LCG parameters from Numerical Recipes
	r.state = r.state*6364136223846793005 + 1442695040888963407
	// The low bits of a power-of-two LCG are weak; return the state mixed.
	return mix64(r.state)
}

// Float64 returns a pseudo-random float64 in [0, 1)
func (r *RNG) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a pseudo-random int in [0, n)
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint64() % uint64(n))
}

// IntRange returns a pseudo-random int in [min, max]
func (r *RNG) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Choice returns a random element from a slice
func (r *RNG) Choice(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[r.Intn(len(items))]
}

// ---- Hashing ----

// mix64 is the splitmix64 finalizer
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func hash2(seed int64, x, y int) uint64 {
	v := uint64(seed) ^ (uint64(x) * 0x9e3779b97f4a7c15) ^ (uint64(y) * 0xbf58476d1ce4e5b9)
	return mix64(v)
}
