package main

const (
	PowerUpRadius    = 12.0
	PowerUpLifetime  = 600 // ticks
	PowerUpDropRate  = 0.15
	PowerUpSpin      = 0.05
	powerUpHealthTag = "health"
)

// PowerUpType is either a heal or a weapon swap
type PowerUpType struct {
	Health bool
	Weapon WeaponType
}

func (t PowerUpType) String() string {
	if t.Health {
		return powerUpHealthTag
	}
	return t.Weapon.String()
}

// ParsePowerUp maps a tag to a power-up type; unknown tags become the
// normal weapon
func ParsePowerUp(tag string) PowerUpType {
	if tag == powerUpHealthTag {
		return PowerUpType{Health: true}
	}
	return PowerUpType{Weapon: ParseWeapon(tag)}
}

type powerUpWeight struct {
	Type   PowerUpType
	Weight float64
	Color  string
}

var powerUpTable = []powerUpWeight{
	{PowerUpType{Health: true}, 0.30, "#00ff00"},
	{PowerUpType{Weapon: WeaponLaser}, 0.15, "#00ffff"},
	{PowerUpType{Weapon: WeaponShotgun}, 0.15, "#ff6600"},
	{PowerUpType{Weapon: WeaponMissile}, 0.15, "#ff0066"},
	{PowerUpType{Weapon: WeaponSpread}, 0.15, "#9900ff"},
	{PowerUpType{Weapon: WeaponNormal}, 0.10, "#ffff00"},
}

// RandomPowerUpType draws a type by drop weight
func RandomPowerUpType(rng *Rand) PowerUpType {
	r := rng.Float()
	acc := 0.0
	for _, w := range powerUpTable {
		acc += w.Weight
		if r < acc {
			return w.Type
		}
	}
	return PowerUpType{Weapon: WeaponNormal}
}

// PowerUp is a pickup that heals or swaps the player's weapon
type PowerUp struct {
	X, Y  float64
	Type  PowerUpType
	Life  int
	Angle float64
}

// NewPowerUp creates a power-up at (x,y)
func NewPowerUp(x, y float64, t PowerUpType) *PowerUp {
	return &PowerUp{X: x, Y: y, Type: t, Life: PowerUpLifetime}
}

// Update ticks down the lifetime and reports whether the power-up survives
func (p *PowerUp) Update() bool {
	p.Life--
	p.Angle += PowerUpSpin
	return p.Life > 0
}

// Apply gives the power-up's effect to the player
func (p *PowerUp) Apply(pl *Player) {
	if p.Type.Health {
		pl.Heal(PlayerHeal)
		return
	}
	pl.ChangeWeapon(p.Type.Weapon)
}

func (p *PowerUp) color() string {
	for _, w := range powerUpTable {
		if w.Type == p.Type {
			return w.Color
		}
	}
	return "#ffff00"
}

// DrawCmd converts to a draw request
func (p *PowerUp) DrawCmd(cam Camera) DrawCmd {
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	return DrawCmd{
		Sprite:  SpritePowerUp,
		Variant: p.Type.String(),
		X:       round1(sx),
		Y:       round1(sy),
		Size:    PowerUpRadius,
		Angle:   p.Angle,
		Color:   p.color(),
		Alpha:   1,
	}
}
