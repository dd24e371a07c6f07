package rng

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Source provides a random fraction
type Source interface {
	// Float64 returns a number in [0.0, 1.0)
	Float64() float64
}
