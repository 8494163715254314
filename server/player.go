package main

import "math"

const (
	PlayerRadius       = 15.0
	PlayerMaxHP        = 100
	PlayerAccel        = 4.0 * 0.3 // units/tick² while a direction is held
	PlayerMaxSpeed     = 6.0       // units/tick
	Friction           = 0.92      // velocity multiplier per tick
	BounceFactor       = -0.5      // velocity multiplier on obstacle contact
	InvincibilityTicks = 60
	PlayerHeal         = 30
)

// Player is the ship controlled by the InputSource
type Player struct {
	X, Y       float64
	VX, VY     float64
	Angle      float64
	HP         int
	MaxHP      int
	Weapon     WeaponType
	FireRate   float64 // ms between shots
	LastFire   float64 // clock ms of the last shot
	Invincible bool
	InvincT    int // ticks of invincibility left
	Thrust     bool
}

// NewPlayer creates a player at full health with the normal weapon
func NewPlayer(x, y float64) *Player {
	p := &Player{}
	p.Reset(x, y)
	return p
}

// Reset restores spawn state at (x,y)
func (p *Player) Reset(x, y float64) {
	*p = Player{
		X:        x,
		Y:        y,
		HP:       PlayerMaxHP,
		MaxHP:    PlayerMaxHP,
		Weapon:   WeaponNormal,
		FireRate: Weapons[WeaponNormal].FireRate,
		LastFire: math.Inf(-1),
	}
}

// Update moves the player one tick
func (p *Player) Update(in InputSource, w *World) {
	var ax, ay float64
	if in.KeyHeld(KeyUp) {
		ay--
	}
	if in.KeyHeld(KeyDown) {
		ay++
	}
	if in.KeyHeld(KeyLeft) {
		ax--
	}
	if in.KeyHeld(KeyRight) {
		ax++
	}
	p.Thrust = ax != 0 || ay != 0
	if p.Thrust {
		l := math.Sqrt(ax*ax + ay*ay)
		p.VX += ax / l * PlayerAccel
		p.VY += ay / l * PlayerAccel
	}

	p.VX *= Friction
	p.VY *= Friction

	// Clamp speed
	speed := math.Sqrt(p.VX*p.VX + p.VY*p.VY)
	if speed > PlayerMaxSpeed {
		scale := PlayerMaxSpeed / speed
		p.VX *= scale
		p.VY *= scale
	}

	p.X, p.Y, p.VX, p.VY = w.Move(p.X, p.Y, p.VX, p.VY, PlayerRadius)

	px, py := in.Pointer()
	p.Angle = math.Atan2(py-p.Y, px-p.X)

	if p.Invincible {
		p.InvincT--
		if p.InvincT <= 0 {
			p.Invincible = false
			p.InvincT = 0
		}
	}
}

// CanFire reports whether the weapon cooldown has elapsed at clock now (ms)
func (p *Player) CanFire(now float64) bool {
	return p.HP > 0 && now-p.LastFire >= p.FireRate
}

// Fire spawns the active weapon's bullet pattern, or nothing during cooldown
func (p *Player) Fire(now float64) []*Bullet {
	if !p.CanFire(now) {
		return nil
	}
	p.LastFire = now
	def := GetWeaponDef(p.Weapon)
	bullets := make([]*Bullet, 0, len(def.Angles))
	for _, off := range def.Angles {
		bullets = append(bullets, NewBullet(p.X, p.Y, p.Angle+off, p.Weapon))
	}
	return bullets
}

// TakeDamage reduces HP unless invincible. Returns true if the hit landed.
func (p *Player) TakeDamage(dmg int) bool {
	if p.Invincible || p.HP <= 0 {
		return false
	}
	p.HP -= dmg
	if p.HP < 0 {
		p.HP = 0
	}
	p.Invincible = true
	p.InvincT = InvincibilityTicks
	return true
}

// Heal restores HP up to MaxHP
func (p *Player) Heal(amount int) {
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// ChangeWeapon switches weapon and its fire rate
func (p *Player) ChangeWeapon(w WeaponType) {
	def := GetWeaponDef(w)
	p.Weapon = ParseWeapon(def.Name)
	p.FireRate = def.FireRate
}

// Dead reports whether health reached zero
func (p *Player) Dead() bool {
	return p.HP <= 0
}

// DrawCmd converts to a draw request
func (p *Player) DrawCmd(cam Camera) DrawCmd {
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	alpha := 1.0
	if p.Invincible && (p.InvincT/5)%2 == 0 {
		alpha = 0.5
	}
	return DrawCmd{
		Sprite:  SpritePlayer,
		Variant: p.Weapon.String(),
		X:       round1(sx),
		Y:       round1(sy),
		Size:    PlayerRadius,
		Angle:   p.Angle,
		Color:   "#00ffff",
		HP:      float64(p.HP) / float64(p.MaxHP),
		Alpha:   alpha,
		Thrust:  p.Thrust,
	}
}
