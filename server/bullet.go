package main

import "math"

const (
	BulletLifetime    = 120 // ticks
	LaserLifetime     = 60
	BulletRadius      = 3.0
	LaserRadius       = 2.0
	MissileRadius     = 5.0
	EnemyBulletRadius = 4.0
	EnemyBulletDamage = 5
	HomingRadius      = 300.0
	HomingStrength    = 0.05 // fraction of the bearing error corrected per tick
	BulletHitDamage   = 1    // every player bullet deals 1, whatever the weapon
)

// Bullet is a projectile fired by the player or a boss
type Bullet struct {
	X, Y      float64
	VX, VY    float64
	Angle     float64
	Speed     float64
	Radius    float64
	Life      int // ticks left
	Weapon    WeaponType
	FromEnemy bool
}

// NewBullet creates a player bullet for the given weapon
func NewBullet(x, y, angle float64, w WeaponType) *Bullet {
	def := GetWeaponDef(w)
	b := &Bullet{
		X:      x,
		Y:      y,
		Angle:  angle,
		Speed:  def.Speed,
		Radius: BulletRadius,
		Life:   BulletLifetime,
		Weapon: w,
	}
	switch w {
	case WeaponLaser:
		b.Radius = LaserRadius
		b.Life = LaserLifetime
	case WeaponMissile:
		b.Radius = MissileRadius
	}
	b.VX = math.Cos(angle) * b.Speed
	b.VY = math.Sin(angle) * b.Speed
	return b
}

// NewEnemyBullet creates a boss bullet
func NewEnemyBullet(x, y, angle, speed float64) *Bullet {
	return &Bullet{
		X:         x,
		Y:         y,
		VX:        math.Cos(angle) * speed,
		VY:        math.Sin(angle) * speed,
		Angle:     angle,
		Speed:     speed,
		Radius:    EnemyBulletRadius,
		Life:      BulletLifetime,
		FromEnemy: true,
	}
}

// Update moves the bullet one tick and reports whether it survives
func (b *Bullet) Update(w *World, enemies []*Enemy) bool {
	def := GetWeaponDef(b.Weapon)
	if def.Homing && !b.FromEnemy {
		b.steer(enemies)
	}

	b.X += b.VX
	b.Y += b.VY
	b.Life--

	if !def.Penetrates || b.FromEnemy {
		if w.Blocked(b.X, b.Y, b.Radius) {
			return false
		}
	}
	return b.Life > 0 && w.Inside(b.X, b.Y)
}

// steer turns the bullet toward the nearest enemy within HomingRadius
func (b *Bullet) steer(enemies []*Enemy) {
	var target *Enemy
	best := HomingRadius * HomingRadius
	for _, e := range enemies {
		d2 := DistanceSq(b.X, b.Y, e.X, e.Y)
		if d2 < best {
			best = d2
			target = e
		}
	}
	if target == nil {
		return
	}
	bearing := math.Atan2(target.Y-b.Y, target.X-b.X)
	b.Angle = LerpAngle(b.Angle, bearing, HomingStrength)
	b.VX = math.Cos(b.Angle) * b.Speed
	b.VY = math.Sin(b.Angle) * b.Speed
}

// DrawCmd converts to a draw request
func (b *Bullet) DrawCmd(cam Camera) DrawCmd {
	sx, sy := cam.WorldToScreen(b.X, b.Y)
	color := GetWeaponDef(b.Weapon).Color
	if b.FromEnemy {
		color = "#ff6600"
	}
	return DrawCmd{
		Sprite:  SpriteBullet,
		Variant: b.Weapon.String(),
		X:       round1(sx),
		Y:       round1(sy),
		Size:    b.Radius,
		Angle:   b.Angle,
		Color:   color,
		Enemy:   b.FromEnemy,
	}
}
