package main

const (
	ParticleLife    = 30 // ticks
	ParticleDamping = 0.95
	ParticleSpeed   = 4.0
	maxParticles    = 2000
)

// Particle is a cosmetic spark with no gameplay effect
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Color  string
	Life   int
}

// Update moves the particle and reports whether it survives
func (p *Particle) Update(w *World) bool {
	p.X += p.VX
	p.Y += p.VY
	p.VX *= ParticleDamping
	p.VY *= ParticleDamping
	p.Life--
	return p.Life > 0 && w.Inside(p.X, p.Y)
}

// burst appends count particles around (x,y), capped at maxParticles
func burst(ps []Particle, rng *Rand, x, y float64, count int, color string, size float64) []Particle {
	for i := 0; i < count && len(ps) < maxParticles; i++ {
		ps = append(ps, Particle{
			X:     x,
			Y:     y,
			VX:    (rng.Float() - 0.5) * ParticleSpeed,
			VY:    (rng.Float() - 0.5) * ParticleSpeed,
			Size:  size,
			Color: color,
			Life:  ParticleLife,
		})
	}
	return ps
}

// DrawCmd converts to a draw request
func (p *Particle) DrawCmd(cam Camera) DrawCmd {
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	return DrawCmd{
		Sprite: SpriteParticle,
		X:      round1(sx),
		Y:      round1(sy),
		Size:   p.Size,
		Color:  p.Color,
		Alpha:  float64(p.Life) / ParticleLife,
	}
}
