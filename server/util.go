package main

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
)

// GenerateUUID returns a random v4 UUID string
func GenerateUUID() string {
	return uuid.NewString()
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSq returns the squared distance between two points
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// NormalizeAngle wraps angle to [-PI, PI]
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle interpolates between two angles taking the short path
func LerpAngle(from, to, t float64) float64 {
	diff := NormalizeAngle(to - from)
	return from + diff*t
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Rand is a PCG stream. Each Game owns one so a fixed seed replays the same
// run.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a generator for seed; seed 0 picks one from the runtime
// source.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Rand{r: rand.New(rand.NewPCG(seed, 0))}
}

// Float returns a value in [0, 1)
func (r *Rand) Float() float64 {
	return r.r.Float64()
}

// Intn returns a value in [0, n), 0 when n <= 0
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Range returns a value in [lo, hi)
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}
