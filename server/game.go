package main

import "time"

const (
	TickRate     = 60 // simulation steps per second
	TickDuration = time.Second / TickRate
	TickMs       = 1000.0 / TickRate

	drawMargin     = 50.0
	spawnDistance  = 400.0 // enemies appear this far from the player
	spawnJitter    = 400.0 // spread along the chosen side
	spawnEdgeClamp = 100.0 // and never closer than this to the world edge
)

// Burst colors
const (
	colorHit      = "#ff0066"
	colorLevelUp  = "#ffff00"
	colorHeal     = "#00ff00"
	colorWeapon   = "#00ffff"
	colorTreasure = "#ffcc00"
)

// Game is one single-player run. It is not safe for concurrent use; the
// Session that owns it serializes Step and Draw.
type Game struct {
	cfg Config
	rng *Rand

	World     *World
	Player    *Player
	Camera    Camera
	Bullets   []*Bullet
	Enemies   []*Enemy
	Bosses    []*Boss
	Treasures []*Treasure
	PowerUps  []*PowerUp
	Particles []Particle
	Registry  *TreasureRegistry

	Score          int
	Kills          int
	Level          int
	Stage          int
	BossesDefeated int
	Phase          RunPhase
	Clock          float64 // ms of simulated time this run
	Tick           uint64
	lastSpawn      float64

	events   []GameEvent
	overlays []Overlay
	hudSent  bool
	lastHUD  HUD
	barSent  bool
	lastBar  BossBar
}

// NewGame creates a run with a freshly generated map
func NewGame(cfg Config) *Game {
	g := &Game{
		cfg:      cfg,
		rng:      NewRand(cfg.Seed),
		World:    NewWorld(cfg.WorldWidth, cfg.WorldHeight),
		Registry: NewTreasureRegistry(),
		Camera:   Camera{W: cfg.ViewWidth, H: cfg.ViewHeight},
	}
	g.reset()
	return g
}

// Restart begins a new run on a new map
func (g *Game) Restart() {
	g.reset()
	g.overlays = append(g.overlays, Overlay{Kind: OverlayHidden})
}

func (g *Game) reset() {
	cx, cy := g.World.W/2, g.World.H/2
	if g.Player == nil {
		g.Player = NewPlayer(cx, cy)
	} else {
		g.Player.Reset(cx, cy)
	}
	g.Bullets = g.Bullets[:0]
	g.Enemies = g.Enemies[:0]
	g.Bosses = g.Bosses[:0]
	g.PowerUps = g.PowerUps[:0]
	g.Particles = g.Particles[:0]
	g.Registry.Reset()

	g.Score = 0
	g.Kills = 0
	g.Level = 1
	g.Stage = 1
	g.BossesDefeated = 0
	g.Phase = PhasePlaying
	g.Clock = 0
	g.Tick = 0
	g.lastSpawn = 0

	g.World.Reset()
	g.World.Generate(g.rng, g.cfg.ObstacleCount)
	g.Treasures = PlaceTreasures(g.World, g.rng)
	g.Camera.Follow(g.Player.X, g.Player.Y, g.World.W, g.World.H)

	g.emit(GameEvent{Type: EvtRunStart})
}

// Running reports whether the run is still in progress
func (g *Game) Running() bool {
	return g.Phase == PhasePlaying
}

// Step advances the simulation one tick. elapsedMs is the simulated time
// since the previous step; cooldowns and spawn timers use it, everything
// else moves a fixed amount per step.
func (g *Game) Step(in InputSource, elapsedMs float64) {
	if g.Phase == PhaseGameOver {
		if in.KeyHeld(KeyRestart) {
			g.Restart()
		}
		return
	}
	g.Clock += elapsedMs
	g.Tick++

	g.Player.Update(in, g.World)
	if in.KeyHeld(KeyFire) {
		g.fire()
	}
	g.Camera.Follow(g.Player.X, g.Player.Y, g.World.W, g.World.H)

	for _, phase := range [...]func(){
		g.updateBullets,
		g.updateEnemies,
		g.updateBosses,
		g.updateTreasures,
		g.updatePowerUps,
		g.updateParticles,
		g.spawnEnemies,
	} {
		phase()
		if g.Phase != PhasePlaying {
			return
		}
	}
}

func (g *Game) fire() {
	bullets := g.Player.Fire(g.Clock)
	if len(bullets) == 0 {
		return
	}
	g.Bullets = append(g.Bullets, bullets...)
	g.Particles = burst(g.Particles, g.rng, g.Player.X, g.Player.Y,
		GetWeaponDef(g.Player.Weapon).Particles, GetWeaponDef(g.Player.Weapon).Color, 2)
}

// Slices are walked from the back so swap-removal never skips an entry.

func (g *Game) updateBullets() {
	for i := len(g.Bullets) - 1; i >= 0; i-- {
		b := g.Bullets[i]
		if !b.Update(g.World, g.Enemies) || g.resolveBullet(b) {
			g.Bullets = swapRemove(g.Bullets, i)
		}
		if g.Phase != PhasePlaying {
			return
		}
	}
}

// resolveBullet applies a bullet's hit, if any, and reports whether it was
// consumed
func (g *Game) resolveBullet(b *Bullet) bool {
	if b.FromEnemy {
		if !CheckCollision(b.X, b.Y, b.Radius, g.Player.X, g.Player.Y, PlayerRadius) {
			return false
		}
		g.damagePlayer(EnemyBulletDamage)
		return true
	}
	for j := len(g.Enemies) - 1; j >= 0; j-- {
		e := g.Enemies[j]
		if !CheckCollision(b.X, b.Y, b.Radius, e.X, e.Y, e.Radius) {
			continue
		}
		if e.TakeDamage(BulletHitDamage) {
			g.Enemies = swapRemove(g.Enemies, j)
			g.enemyKilled(e)
		}
		return true
	}
	for j := len(g.Bosses) - 1; j >= 0; j-- {
		bs := g.Bosses[j]
		if !CheckCollision(b.X, b.Y, b.Radius, bs.X, bs.Y, bs.Radius) {
			continue
		}
		g.Particles = burst(g.Particles, g.rng, b.X, b.Y, 5, bs.Color, 2)
		if bs.TakeDamage(BulletHitDamage) {
			g.Bosses = swapRemove(g.Bosses, j)
			g.bossDefeated(bs)
		}
		return true
	}
	return false
}

func (g *Game) enemyKilled(e *Enemy) {
	g.Kills++
	g.Particles = burst(g.Particles, g.rng, e.X, e.Y, 20, e.Color, 3)
	if g.rng.Float() < PowerUpDropRate {
		g.PowerUps = append(g.PowerUps, NewPowerUp(e.X, e.Y, RandomPowerUpType(g.rng)))
	}
	g.addScore(e.Score)
	if g.cfg.BossEvery > 0 && g.Kills%g.cfg.BossEvery == 0 && len(g.Bosses) == 0 {
		g.spawnBoss()
	}
}

func (g *Game) bossDefeated(b *Boss) {
	g.BossesDefeated++
	g.Stage++
	g.Particles = burst(g.Particles, g.rng, b.X, b.Y, 50, b.Color, 5)
	g.PowerUps = append(g.PowerUps, NewPowerUp(b.X, b.Y, RandomPowerUpType(g.rng)))
	g.dropTreasure(b.X, b.Y)
	g.emit(GameEvent{Type: EvtBossDefeat, Level: g.Level, Detail: b.Type.String()})
	g.overlays = append(g.overlays, Overlay{Kind: OverlayStageClear, Stage: g.Stage})
	g.addScore(b.Score)
}

// dropTreasure leaves a random uncollected kind at (x,y), even when one of
// that kind is still lying elsewhere on the map
func (g *Game) dropTreasure(x, y float64) {
	kinds := g.Registry.Uncollected()
	if len(kinds) == 0 {
		return
	}
	kind := kinds[g.rng.Intn(len(kinds))]
	g.Treasures = append(g.Treasures, NewTreasure(x, y, kind))
}

func (g *Game) updateEnemies() {
	for i := len(g.Enemies) - 1; i >= 0; i-- {
		e := g.Enemies[i]
		e.Update(g.Player.X, g.Player.Y, g.World)
		if CheckCollision(e.X, e.Y, e.Radius, g.Player.X, g.Player.Y, PlayerRadius) {
			g.Enemies = swapRemove(g.Enemies, i)
			g.Particles = burst(g.Particles, g.rng, e.X, e.Y, 15, e.Color, 3)
			g.damagePlayer(e.Damage)
			if g.Phase != PhasePlaying {
				return
			}
		}
	}
}

func (g *Game) updateBosses() {
	env := bossEnv{player: g.Player, world: g.World, rng: g.rng, level: g.Level}
	for _, b := range g.Bosses {
		spawned := b.Update(env)
		g.Bullets = append(g.Bullets, spawned.Bullets...)
		g.Enemies = append(g.Enemies, spawned.Minions...)

		if CheckCollision(b.X, b.Y, b.Radius, g.Player.X, g.Player.Y, PlayerRadius) {
			g.damagePlayer(b.Damage)
		}
		if b.BeamHits(g.Player.X, g.Player.Y) {
			g.damagePlayer(LaserDamage)
		}
		if g.Phase != PhasePlaying {
			return
		}
	}
}

func (g *Game) updateTreasures() {
	for i := len(g.Treasures) - 1; i >= 0; i-- {
		t := g.Treasures[i]
		t.Update()
		if !CheckCollision(t.X, t.Y, TreasureRadius, g.Player.X, g.Player.Y, PlayerRadius) {
			continue
		}
		g.Treasures = swapRemove(g.Treasures, i)
		g.Registry.Collect(t.Kind)
		g.Particles = burst(g.Particles, g.rng, t.X, t.Y, 20, colorTreasure, 3)
		g.emit(GameEvent{Type: EvtTreasure, Level: g.Level, Detail: string(t.Kind)})
		g.addScore(TreasureScore)
	}
}

func (g *Game) updatePowerUps() {
	for i := len(g.PowerUps) - 1; i >= 0; i-- {
		p := g.PowerUps[i]
		if !p.Update() {
			g.PowerUps = swapRemove(g.PowerUps, i)
			continue
		}
		if !CheckCollision(p.X, p.Y, PowerUpRadius, g.Player.X, g.Player.Y, PlayerRadius) {
			continue
		}
		g.PowerUps = swapRemove(g.PowerUps, i)
		p.Apply(g.Player)
		if p.Type.Health {
			g.Particles = burst(g.Particles, g.rng, p.X, p.Y, 10, colorHeal, 3)
		} else {
			g.Particles = burst(g.Particles, g.rng, p.X, p.Y, 15, colorWeapon, 3)
			g.emit(GameEvent{Type: EvtWeapon, Level: g.Level, Detail: p.Type.String()})
		}
	}
}

func (g *Game) updateParticles() {
	for i := len(g.Particles) - 1; i >= 0; i-- {
		if !g.Particles[i].Update(g.World) {
			last := len(g.Particles) - 1
			g.Particles[i] = g.Particles[last]
			g.Particles = g.Particles[:last]
		}
	}
}

func (g *Game) spawnEnemies() {
	if len(g.Enemies) >= g.cfg.MaxEnemies {
		return
	}
	if g.Clock-g.lastSpawn <= spawnInterval(g.cfg.SpawnIntervalMs, g.Level) {
		return
	}
	g.lastSpawn = g.Clock
	g.spawnEnemy()
}

// spawnEnemy places a new enemy spawnDistance from the player on a random
// side, jittered along that side
func (g *Game) spawnEnemy() {
	px, py := g.Player.X, g.Player.Y
	jitter := (g.rng.Float() - 0.5) * spawnJitter
	var x, y float64
	switch g.rng.Intn(4) {
	case 0:
		x, y = px+jitter, py-spawnDistance
	case 1:
		x, y = px+spawnDistance, py+jitter
	case 2:
		x, y = px+jitter, py+spawnDistance
	default:
		x, y = px-spawnDistance, py+jitter
	}
	x = Clamp(x, spawnEdgeClamp, g.World.W-spawnEdgeClamp)
	y = Clamp(y, spawnEdgeClamp, g.World.H-spawnEdgeClamp)
	g.Enemies = append(g.Enemies, NewEnemy(x, y, RandomEnemyType(g.rng), g.Level))
}

// spawnBoss brings in a random boss near the player
func (g *Game) spawnBoss() {
	t := BossType(g.rng.Intn(len(Bosses)))
	def := GetBossDef(t)
	x := g.Player.X + (g.rng.Float()-0.5)*BossSpawnSpread
	y := g.Player.Y + (g.rng.Float()-0.5)*BossSpawnSpread
	x, y = g.World.ClampCircle(x, y, def.Radius)
	g.Bosses = append(g.Bosses, NewBoss(x, y, t))
	g.emit(GameEvent{Type: EvtBossSpawn, Level: g.Level, Detail: t.String()})
	g.overlays = append(g.overlays, Overlay{Kind: OverlayBossWarning, Stage: g.Stage})
}

// addScore adds points and levels up when a threshold is crossed
func (g *Game) addScore(points int) {
	g.Score += points
	level := LevelForScore(g.Score)
	if level <= g.Level {
		return
	}
	g.Level = level
	g.Particles = burst(g.Particles, g.rng, g.Player.X, g.Player.Y, 30, colorLevelUp, 5)
	g.emit(GameEvent{Type: EvtLevelUp, Level: level})
	g.overlays = append(g.overlays, Overlay{Kind: OverlayLevelUp, Level: level})
}

func (g *Game) damagePlayer(dmg int) {
	if !g.Player.TakeDamage(dmg) {
		return
	}
	g.Particles = burst(g.Particles, g.rng, g.Player.X, g.Player.Y, 10, colorHit, 3)
	if g.Player.Dead() {
		g.gameOver()
	}
}

func (g *Game) gameOver() {
	g.Phase = PhaseGameOver
	sum := g.Summary()
	g.emit(GameEvent{Type: EvtGameOver, Level: g.Level, Summary: &sum})
	g.overlays = append(g.overlays, Overlay{Kind: OverlayGameOver, Level: g.Level, Stage: g.Stage, Summary: &sum})
}

// Summary tallies the run so far
func (g *Game) Summary() RunSummary {
	s := RunSummary{
		Score:      g.Score,
		Kills:      g.Kills,
		Level:      g.Level,
		Stage:      g.Stage,
		Bosses:     g.BossesDefeated,
		Treasures:  g.Registry.Count(),
		DurationMs: g.Clock,
	}
	for _, def := range TreasureCatalog {
		if g.Registry.Collected(def.Kind) {
			s.Collected = append(s.Collected, string(def.Kind))
		}
	}
	return s
}

// HUD returns the current status panel
func (g *Game) HUD() HUD {
	return HUD{
		HP:        g.Player.HP,
		MaxHP:     g.Player.MaxHP,
		Score:     g.Score,
		Kills:     g.Kills,
		Level:     g.Level,
		Stage:     g.Stage,
		Weapon:    g.Player.Weapon.String(),
		Treasures: g.Registry.Snapshot(),
	}
}

// BossBar returns the bar for the first living boss, hidden when none
func (g *Game) BossBar() BossBar {
	if len(g.Bosses) == 0 {
		return BossBar{}
	}
	return g.Bosses[0].Bar()
}

func (g *Game) emit(ev GameEvent) {
	ev.Tick = g.Tick
	g.events = append(g.events, ev)
}

// DrainEvents returns and clears the events recorded since the last call
func (g *Game) DrainEvents() []GameEvent {
	ev := g.events
	g.events = nil
	return ev
}

// Draw sends the visible scene to sink, followed by any UI changes since the
// previous Draw
func (g *Game) Draw(sink RenderSink) {
	cam := g.Camera
	sink.BeginFrame(cam)
	view := Rect{X: cam.X - drawMargin, Y: cam.Y - drawMargin, W: cam.W + 2*drawMargin, H: cam.H + 2*drawMargin}
	for _, o := range g.World.Obstacles {
		if rectsOverlap(view, o.Rect) {
			sink.Draw(o.DrawCmd(cam))
		}
	}
	for _, t := range g.Treasures {
		if cam.Visible(t.X, t.Y, drawMargin) {
			sink.Draw(t.DrawCmd(cam))
		}
	}
	for _, p := range g.PowerUps {
		if cam.Visible(p.X, p.Y, drawMargin) {
			sink.Draw(p.DrawCmd(cam))
		}
	}
	for i := range g.Particles {
		if cam.Visible(g.Particles[i].X, g.Particles[i].Y, drawMargin) {
			sink.Draw(g.Particles[i].DrawCmd(cam))
		}
	}
	for _, b := range g.Bullets {
		if cam.Visible(b.X, b.Y, drawMargin) {
			sink.Draw(b.DrawCmd(cam))
		}
	}
	for _, e := range g.Enemies {
		if cam.Visible(e.X, e.Y, drawMargin) {
			sink.Draw(e.DrawCmd(cam))
		}
	}
	// Bosses are always drawn so an offscreen beam still shows
	for _, b := range g.Bosses {
		for _, cmd := range b.DrawCmds(cam) {
			sink.Draw(cmd)
		}
	}
	if g.Phase == PhasePlaying {
		sink.Draw(g.Player.DrawCmd(cam))
	}
	sink.EndFrame()

	if hud := g.HUD(); !g.hudSent || !hud.equal(g.lastHUD) {
		sink.UpdateHUD(hud)
		g.lastHUD = hud
		g.hudSent = true
	}
	if bar := g.BossBar(); !g.barSent || bar != g.lastBar {
		sink.UpdateBossBar(bar)
		g.lastBar = bar
		g.barSent = true
	}
	for _, o := range g.overlays {
		sink.ShowOverlay(o)
	}
	g.overlays = g.overlays[:0]
}

// ResyncUI forces the next Draw to resend the HUD and boss bar
func (g *Game) ResyncUI() {
	g.hudSent = false
	g.barSent = false
}

func rectsOverlap(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// swapRemove deletes s[i] by moving the last element into its place
func swapRemove[T any](s []T, i int) []T {
	last := len(s) - 1
	s[i] = s[last]
	var zero T
	s[last] = zero
	return s[:last]
}

