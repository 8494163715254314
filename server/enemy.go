package main

import "math"

// EnemyType selects an enemy's stat row
type EnemyType int

const (
	EnemyNormal EnemyType = iota
	EnemyFast
	EnemyTank
)

// EnemyAccelFactor scales an enemy's speed into its per-tick acceleration
const EnemyAccelFactor = 0.3

// EnemyDef holds base stats; Speed grows by SpeedPerLevel each level
type EnemyDef struct {
	Name          string
	Radius        float64
	Speed         float64
	SpeedPerLevel float64
	HP            int
	Damage        int
	Score         int
	Color         string
	SpawnWeight   float64
}

var Enemies = [...]EnemyDef{
	EnemyNormal: {Name: "normal", Radius: 12, Speed: 1.5, SpeedPerLevel: 0.1, HP: 2, Damage: 10, Score: 10, Color: "#ff99cc", SpawnWeight: 0.60},
	EnemyFast:   {Name: "fast", Radius: 8, Speed: 3, SpeedPerLevel: 0.15, HP: 1, Damage: 5, Score: 15, Color: "#ffcc99", SpawnWeight: 0.25},
	EnemyTank:   {Name: "tank", Radius: 18, Speed: 0.8, SpeedPerLevel: 0.05, HP: 5, Damage: 20, Score: 30, Color: "#cc99ff", SpawnWeight: 0.15},
}

// GetEnemyDef returns the stats for an enemy type, normal for unknown values
func GetEnemyDef(t EnemyType) EnemyDef {
	if t < 0 || int(t) >= len(Enemies) {
		return Enemies[EnemyNormal]
	}
	return Enemies[t]
}

func (t EnemyType) String() string {
	return GetEnemyDef(t).Name
}

// RandomEnemyType draws a type by spawn weight
func RandomEnemyType(rng *Rand) EnemyType {
	r := rng.Float()
	acc := 0.0
	for i, def := range Enemies {
		acc += def.SpawnWeight
		if r < acc {
			return EnemyType(i)
		}
	}
	return EnemyNormal
}

// Enemy chases the player and damages it on contact
type Enemy struct {
	X, Y   float64
	VX, VY float64
	Angle  float64
	Type   EnemyType
	Radius float64
	Speed  float64
	HP     int
	MaxHP  int
	Damage int
	Score  int
	Color  string
}

// NewEnemy creates an enemy of type t with speed scaled by level
func NewEnemy(x, y float64, t EnemyType, level int) *Enemy {
	def := GetEnemyDef(t)
	if int(t) < 0 || int(t) >= len(Enemies) {
		t = EnemyNormal
	}
	return &Enemy{
		X:      x,
		Y:      y,
		Type:   t,
		Radius: def.Radius,
		Speed:  def.Speed + float64(level)*def.SpeedPerLevel,
		HP:     def.HP,
		MaxHP:  def.HP,
		Damage: def.Damage,
		Score:  def.Score,
		Color:  def.Color,
	}
}

// Update accelerates the enemy toward (tx,ty) and moves it one tick
func (e *Enemy) Update(tx, ty float64, w *World) {
	dx := tx - e.X
	dy := ty - e.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist > 0 {
		accel := e.Speed * EnemyAccelFactor
		e.VX += dx / dist * accel
		e.VY += dy / dist * accel
	}

	e.VX *= Friction
	e.VY *= Friction

	speed := math.Sqrt(e.VX*e.VX + e.VY*e.VY)
	if speed > e.Speed {
		scale := e.Speed / speed
		e.VX *= scale
		e.VY *= scale
	}

	e.X, e.Y, e.VX, e.VY = w.Move(e.X, e.Y, e.VX, e.VY, e.Radius)
	e.Angle = math.Atan2(dy, dx)
}

// TakeDamage reduces HP and returns true if the enemy died
func (e *Enemy) TakeDamage(dmg int) bool {
	e.HP -= dmg
	return e.HP <= 0
}

// DrawCmd converts to a draw request
func (e *Enemy) DrawCmd(cam Camera) DrawCmd {
	sx, sy := cam.WorldToScreen(e.X, e.Y)
	return DrawCmd{
		Sprite:  SpriteEnemy,
		Variant: e.Type.String(),
		X:       round1(sx),
		Y:       round1(sy),
		Size:    e.Radius,
		Angle:   e.Angle,
		Color:   e.Color,
		HP:      float64(e.HP) / float64(e.MaxHP),
	}
}
