package main

import "math"

// BossType selects a boss's stats and scripted behavior
type BossType int

const (
	BossBarrage BossType = iota
	BossCharger
	BossSummoner
	BossLaser
	BossSpinner
	BossFortress
)

const (
	BossContactDamage = 30
	BossStandOff      = 200.0 // bosses stop approaching inside this distance
	BossSpawnSpread   = 600.0

	ChargeWindupStart = 180 // attack-timer ticks
	ChargeStart       = 210
	ChargeEnd         = 240
	ChargeCycle       = 300
	ChargeSpeedMul    = 3.0
	ChargeDecay       = 0.95

	BarrageInterval = 90
	BarrageCount    = 16
	BarrageSpeed    = 5.0
	BarrageTwist    = 0.05 // ring rotation per attack-timer tick

	SummonInterval = 180
	SummonCount    = 3
	SummonRadius   = 80.0

	LaserCycle     = 120
	LaserOnAfter   = 60 // beam active while cycle position in (LaserOnAfter, LaserOffAt)
	LaserOffAt     = 90
	LaserRange     = 600.0
	LaserTolerance = 0.05
	LaserDamage    = 1

	SpinnerInterval = 60
	SpinnerCount    = 8
	SpinnerSpeed    = 6.0
	SpinnerTwist    = 0.1

	FortressInterval = 45
	FortressSpeed    = 7.0
	FortressSpread   = 0.2
)

// BossDef holds the fixed stats for a boss type
type BossDef struct {
	Key    string
	Name   string
	Radius float64
	HP     int
	Speed  float64
	Color  string
	Score  int
}

var Bosses = [...]BossDef{
	BossBarrage:  {Key: "barrage", Name: "Barrage King", Radius: 40, HP: 150, Speed: 2, Color: "#ff0066", Score: 500},
	BossCharger:  {Key: "charger", Name: "Charge Captain", Radius: 35, HP: 120, Speed: 4, Color: "#ff6600", Score: 450},
	BossSummoner: {Key: "summoner", Name: "Summoner", Radius: 38, HP: 100, Speed: 1.5, Color: "#9900ff", Score: 550},
	BossLaser:    {Key: "laser", Name: "Laser Cannon", Radius: 42, HP: 140, Speed: 1, Color: "#00ffff", Score: 600},
	BossSpinner:  {Key: "spinner", Name: "Spin Slasher", Radius: 36, HP: 130, Speed: 2.5, Color: "#ffcc00", Score: 500},
	BossFortress: {Key: "fortress", Name: "Fortress", Radius: 50, HP: 200, Speed: 0.5, Color: "#666699", Score: 700},
}

// GetBossDef returns the stats for a boss type, barrage for unknown values
func GetBossDef(t BossType) BossDef {
	if t < 0 || int(t) >= len(Bosses) {
		return Bosses[BossBarrage]
	}
	return Bosses[t]
}

// ParseBossType maps a boss key to its type, barrage for unknown keys
func ParseBossType(key string) BossType {
	for i, def := range Bosses {
		if def.Key == key {
			return BossType(i)
		}
	}
	return BossBarrage
}

func (t BossType) String() string {
	return GetBossDef(t).Key
}

// Boss is a large scripted enemy
type Boss struct {
	X, Y    float64
	Angle   float64
	Type    BossType
	Name    string
	Radius  float64
	HP      int
	MaxHP   int
	Speed   float64
	Color   string
	Score   int
	Damage  int
	AttackT int // ticks since spawn, wrapped by patterns that cycle
	MoveT   int

	ChargeAngle float64
	ChargeSpeed float64
	LaserAngle  float64
	LaserActive bool
}

// NewBoss creates a boss of type t at (x,y)
func NewBoss(x, y float64, t BossType) *Boss {
	if t < 0 || int(t) >= len(Bosses) {
		t = BossBarrage
	}
	def := Bosses[t]
	return &Boss{
		X:      x,
		Y:      y,
		Type:   t,
		Name:   def.Name,
		Radius: def.Radius,
		HP:     def.HP,
		MaxHP:  def.HP,
		Speed:  def.Speed,
		Color:  def.Color,
		Score:  def.Score,
		Damage: BossContactDamage,
	}
}

// bossSpawns collects what a boss produced this tick
type bossSpawns struct {
	Bullets []*Bullet
	Minions []*Enemy
}

// bossEnv is what a behavior may read while scripting
type bossEnv struct {
	player *Player
	world  *World
	rng    *Rand
	level  int
}

// bossBehavior is one boss type's script. A nil move approaches the player.
type bossBehavior struct {
	move   func(b *Boss, env bossEnv)
	attack func(b *Boss, env bossEnv, out *bossSpawns)
}

var bossBehaviors = [...]bossBehavior{
	BossBarrage:  {attack: barrageAttack},
	BossCharger:  {move: chargerMove},
	BossSummoner: {attack: summonAttack},
	BossLaser:    {attack: laserAttack},
	BossSpinner:  {attack: spinnerAttack},
	BossFortress: {attack: fortressAttack},
}

// Update advances the boss script one tick
func (b *Boss) Update(env bossEnv) bossSpawns {
	b.AttackT++
	b.MoveT++

	var out bossSpawns
	beh := bossBehaviors[BossBarrage]
	if int(b.Type) >= 0 && int(b.Type) < len(bossBehaviors) {
		beh = bossBehaviors[b.Type]
	}
	if beh.move != nil {
		beh.move(b, env)
	} else {
		b.approach(env.player)
	}
	if beh.attack != nil {
		beh.attack(b, env, &out)
	}

	b.X, b.Y = env.world.ClampCircle(b.X, b.Y, b.Radius)
	b.Angle = math.Atan2(env.player.Y-b.Y, env.player.X-b.X)
	return out
}

// approach moves toward the player until within BossStandOff
func (b *Boss) approach(p *Player) {
	dx := p.X - b.X
	dy := p.Y - b.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist > BossStandOff {
		b.X += dx / dist * b.Speed
		b.Y += dy / dist * b.Speed
	}
}

// chargerMove: approach, wind up aiming at the player, charge with decaying
// speed, then approach again until the cycle restarts
func chargerMove(b *Boss, env bossEnv) {
	switch {
	case b.AttackT > ChargeWindupStart && b.AttackT < ChargeStart:
		b.ChargeAngle = math.Atan2(env.player.Y-b.Y, env.player.X-b.X)
		b.ChargeSpeed = b.Speed * ChargeSpeedMul
	case b.AttackT >= ChargeStart && b.AttackT < ChargeEnd:
		b.X += math.Cos(b.ChargeAngle) * b.ChargeSpeed
		b.Y += math.Sin(b.ChargeAngle) * b.ChargeSpeed
		b.ChargeSpeed *= ChargeDecay
	case b.AttackT > ChargeCycle:
		b.AttackT = 0
	default:
		b.approach(env.player)
	}
}

// Charging reports whether a charger is mid-dash
func (b *Boss) Charging() bool {
	return b.Type == BossCharger && b.AttackT >= ChargeStart && b.AttackT < ChargeEnd
}

func ring(b *Boss, count int, offset, speed float64, out *bossSpawns) {
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		out.Bullets = append(out.Bullets, NewEnemyBullet(b.X, b.Y, step*float64(i)+offset, speed))
	}
}

func barrageAttack(b *Boss, _ bossEnv, out *bossSpawns) {
	if b.AttackT%BarrageInterval == 0 {
		ring(b, BarrageCount, float64(b.AttackT)*BarrageTwist, BarrageSpeed, out)
	}
}

func spinnerAttack(b *Boss, _ bossEnv, out *bossSpawns) {
	if b.AttackT%SpinnerInterval == 0 {
		ring(b, SpinnerCount, float64(b.AttackT)*SpinnerTwist, SpinnerSpeed, out)
	}
}

func summonAttack(b *Boss, env bossEnv, out *bossSpawns) {
	if b.AttackT%SummonInterval != 0 {
		return
	}
	for i := 0; i < SummonCount; i++ {
		a := env.rng.Float() * 2 * math.Pi
		x := b.X + math.Cos(a)*SummonRadius
		y := b.Y + math.Sin(a)*SummonRadius
		m := NewEnemy(x, y, EnemyFast, env.level)
		m.X, m.Y = env.world.ClampCircle(m.X, m.Y, m.Radius)
		out.Minions = append(out.Minions, m)
	}
}

func laserAttack(b *Boss, env bossEnv, _ *bossSpawns) {
	b.LaserAngle = math.Atan2(env.player.Y-b.Y, env.player.X-b.X)
	phase := b.AttackT % LaserCycle
	b.LaserActive = phase > LaserOnAfter && phase < LaserOffAt
}

func fortressAttack(b *Boss, env bossEnv, out *bossSpawns) {
	if b.AttackT%FortressInterval != 0 {
		return
	}
	a := math.Atan2(env.player.Y-b.Y, env.player.X-b.X)
	for _, off := range [...]float64{0, FortressSpread, -FortressSpread} {
		out.Bullets = append(out.Bullets, NewEnemyBullet(b.X, b.Y, a+off, FortressSpeed))
	}
}

// BeamHits reports whether an active laser beam covers (x,y)
func (b *Boss) BeamHits(x, y float64) bool {
	return b.Type == BossLaser && b.LaserActive &&
		CheckBeam(b.X, b.Y, b.LaserAngle, LaserRange, LaserTolerance, x, y)
}

// TakeDamage reduces HP and returns true if the boss died
func (b *Boss) TakeDamage(dmg int) bool {
	b.HP -= dmg
	if b.HP < 0 {
		b.HP = 0
	}
	return b.HP <= 0
}

// Bar returns the boss health bar state
func (b *Boss) Bar() BossBar {
	return BossBar{Visible: true, Name: b.Name, HP: float64(b.HP) / float64(b.MaxHP)}
}

// DrawCmds returns the boss and, while firing, its beam
func (b *Boss) DrawCmds(cam Camera) []DrawCmd {
	sx, sy := cam.WorldToScreen(b.X, b.Y)
	cmds := []DrawCmd{{
		Sprite:  SpriteBoss,
		Variant: b.Type.String(),
		X:       round1(sx),
		Y:       round1(sy),
		Size:    b.Radius,
		Angle:   b.Angle,
		Color:   b.Color,
		HP:      float64(b.HP) / float64(b.MaxHP),
	}}
	if b.LaserActive {
		cmds = append(cmds, DrawCmd{
			Sprite: SpriteBeam,
			X:      round1(sx),
			Y:      round1(sy),
			W:      LaserRange,
			Angle:  b.LaserAngle,
			Color:  "#00ffff",
		})
	}
	return cmds
}
