package main

import (
	"math"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"
)

// mockBroadcaster captures sent messages for testing
type mockBroadcaster struct {
	mu       sync.Mutex
	messages []interface{}
}

func (m *mockBroadcaster) SendJSON(msg interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockBroadcaster) count(t string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.messages {
		if env, ok := msg.(Envelope); ok && env.T == t {
			n++
		}
	}
	return n
}

// recordingSink keeps everything drawn
type recordingSink struct {
	mu       sync.Mutex
	frames   int
	draws    []DrawCmd
	huds     []HUD
	bars     []BossBar
	overlays []Overlay
}

func (r *recordingSink) BeginFrame(cam Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	r.draws = r.draws[:0]
}

func (r *recordingSink) Draw(cmd DrawCmd) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws = append(r.draws, cmd)
}

func (r *recordingSink) EndFrame() {}

func (r *recordingSink) UpdateHUD(h HUD) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.huds = append(r.huds, h)
}

func (r *recordingSink) UpdateBossBar(b BossBar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bars = append(r.bars, b)
}

func (r *recordingSink) ShowOverlay(o Overlay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overlays = append(r.overlays, o)
}

func (r *recordingSink) countSprite(s Sprite) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.draws {
		if d.Sprite == s {
			n++
		}
	}
	return n
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.ObstacleCount = 0
	return cfg
}

func countEvents(events []GameEvent, typ EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestNewGame(t *testing.T) {
	g := NewGame(DefaultConfig())
	if g.Player.X != 1200 || g.Player.Y != 900 {
		t.Errorf("player should spawn at the world centre, got (%f,%f)", g.Player.X, g.Player.Y)
	}
	if g.Level != 1 || g.Stage != 1 || g.Score != 0 || !g.Running() {
		t.Error("unexpected initial run state")
	}
	if g.Camera.X != 800 || g.Camera.Y != 600 {
		t.Errorf("camera should centre on the player, got (%f,%f)", g.Camera.X, g.Camera.Y)
	}
	for _, o := range g.World.Obstacles {
		if CheckRectCircle(o.Rect, g.Player.X, g.Player.Y, PlayerRadius) {
			t.Fatal("obstacle generated on the spawn point")
		}
	}
	if len(g.Treasures) != len(TreasureCatalog) {
		t.Errorf("expected %d treasures placed, got %d", len(TreasureCatalog), len(g.Treasures))
	}
	if ev := g.DrainEvents(); len(ev) != 1 || ev[0].Type != EvtRunStart {
		t.Errorf("expected a single run_start event, got %v", ev)
	}
	if len(g.DrainEvents()) != 0 {
		t.Error("drain should clear events")
	}
}

func TestGameLevelUpOnce(t *testing.T) {
	g := NewGame(testConfig())
	g.DrainEvents()

	g.addScore(499)
	if g.Level != 1 {
		t.Errorf("expected level 1 at 499, got %d", g.Level)
	}
	g.addScore(1)
	if g.Level != 2 {
		t.Errorf("expected level 2 at 500, got %d", g.Level)
	}
	if len(g.Particles) != 30 {
		t.Errorf("level up should burst 30 particles, got %d", len(g.Particles))
	}
	g.addScore(10)
	if len(g.Particles) != 30 {
		t.Errorf("staying on a level should add no particles, got %d", len(g.Particles))
	}

	ev := g.DrainEvents()
	if countEvents(ev, EvtLevelUp) != 1 {
		t.Errorf("expected exactly one level_up, got %v", ev)
	}
	if len(g.overlays) != 1 || g.overlays[0].Kind != OverlayLevelUp || g.overlays[0].Level != 2 {
		t.Errorf("expected one level-up overlay, got %v", g.overlays)
	}
}

func TestGameLevelSkips(t *testing.T) {
	g := NewGame(testConfig())
	g.DrainEvents()
	g.addScore(1200)
	if g.Level != 3 {
		t.Errorf("expected level 3, got %d", g.Level)
	}
	if n := countEvents(g.DrainEvents(), EvtLevelUp); n != 1 {
		t.Errorf("a jump of two levels should emit one event, got %d", n)
	}
}

func TestGameBossEveryTwentyKills(t *testing.T) {
	g := NewGame(testConfig())
	g.DrainEvents()

	for i := 0; i < 19; i++ {
		g.enemyKilled(NewEnemy(100, 100, EnemyNormal, 1))
	}
	if len(g.Bosses) != 0 {
		t.Fatal("no boss expected before the 20th kill")
	}
	g.enemyKilled(NewEnemy(100, 100, EnemyNormal, 1))
	if len(g.Bosses) != 1 {
		t.Fatalf("expected one boss at 20 kills, got %d", len(g.Bosses))
	}

	// A live boss blocks the next spawn
	for i := 0; i < 20; i++ {
		g.enemyKilled(NewEnemy(100, 100, EnemyNormal, 1))
	}
	if len(g.Bosses) != 1 {
		t.Errorf("expected still one boss, got %d", len(g.Bosses))
	}
	if n := countEvents(g.DrainEvents(), EvtBossSpawn); n != 1 {
		t.Errorf("expected one boss_spawn event, got %d", n)
	}
	b := g.Bosses[0]
	if b.X < b.Radius || b.X > g.World.W-b.Radius || b.Y < b.Radius || b.Y > g.World.H-b.Radius {
		t.Errorf("boss spawned outside the world at (%f,%f)", b.X, b.Y)
	}
}

func TestGameBulletKillsEnemy(t *testing.T) {
	g := NewGame(testConfig())
	g.Treasures = nil
	px, py := g.Player.X, g.Player.Y
	g.Enemies = []*Enemy{NewEnemy(px+50, py, EnemyFast, 1)}

	in := newFakeInput(KeyFire)
	in.px, in.py = px+50, py
	for i := 0; i < 10 && g.Kills == 0; i++ {
		g.Step(in, TickMs)
	}

	if g.Kills != 1 {
		t.Fatalf("expected 1 kill, got %d", g.Kills)
	}
	if g.Score != 15 {
		t.Errorf("expected fast enemy score 15, got %d", g.Score)
	}
	if len(g.Enemies) != 0 {
		t.Error("killed enemy should be removed")
	}
	if g.Player.HP != PlayerMaxHP {
		t.Error("enemy should not have reached the player")
	}
}

func TestGameEnemyContact(t *testing.T) {
	g := NewGame(testConfig())
	g.Enemies = []*Enemy{NewEnemy(g.Player.X+5, g.Player.Y, EnemyTank, 1)}

	g.Step(newFakeInput(), TickMs)

	if len(g.Enemies) != 0 {
		t.Error("enemy should be destroyed on contact")
	}
	if g.Player.HP != PlayerMaxHP-20 {
		t.Errorf("expected tank contact damage 20, got HP %d", g.Player.HP)
	}
	if g.Kills != 0 {
		t.Error("contact should not count as a kill")
	}
}

func TestGameBossDefeat(t *testing.T) {
	g := NewGame(testConfig())
	g.DrainEvents()
	g.Treasures = nil
	boss := NewBoss(300, 300, BossSpinner)
	boss.HP = 1
	g.Bosses = []*Boss{boss}

	sink := &recordingSink{}
	g.Draw(sink)
	if len(sink.bars) != 1 || !sink.bars[0].Visible || sink.bars[0].Name != "Spin Slasher" {
		t.Fatalf("expected a visible boss bar, got %v", sink.bars)
	}

	if !g.resolveBullet(NewBullet(300, 300, 0, WeaponNormal)) {
		t.Fatal("bullet should be consumed by the boss")
	}
	if len(g.Bosses) != 0 {
		t.Error("defeated boss should be removed")
	}
	if g.Stage != 2 || g.BossesDefeated != 1 {
		t.Errorf("expected stage 2 with 1 boss defeated, got %d/%d", g.Stage, g.BossesDefeated)
	}
	if g.Score != 500 {
		t.Errorf("expected spinner score 500, got %d", g.Score)
	}
	if len(g.Treasures) != 1 || g.Registry.Collected(g.Treasures[0].Kind) {
		t.Errorf("expected one uncollected treasure dropped, got %v", g.Treasures)
	}
	if len(g.PowerUps) != 1 {
		t.Errorf("expected a guaranteed power-up, got %d", len(g.PowerUps))
	}
	if countEvents(g.DrainEvents(), EvtBossDefeat) != 1 {
		t.Error("expected a boss_defeat event")
	}

	g.Draw(sink)
	if len(sink.bars) != 2 || sink.bars[1].Visible {
		t.Errorf("boss bar should be hidden after the defeat, got %v", sink.bars)
	}
	var kinds []OverlayKind
	for _, o := range sink.overlays {
		kinds = append(kinds, o.Kind)
	}
	if len(kinds) != 2 || kinds[0] != OverlayStageClear || kinds[1] != OverlayLevelUp {
		t.Errorf("expected stage clear then level up overlays, got %v", kinds)
	}
}

func TestGameBossDropOnFullMap(t *testing.T) {
	g := NewGame(testConfig())
	g.Registry.Collect("crown")
	before := len(g.Treasures)
	boss := NewBoss(700, 500, BossFortress)
	boss.HP = 1
	g.Bosses = []*Boss{boss}

	g.resolveBullet(NewBullet(700, 500, 0, WeaponNormal))

	if len(g.Treasures) != before+1 {
		t.Fatalf("boss defeat should add a treasure to the generated map, had %d now %d", before, len(g.Treasures))
	}
	drop := g.Treasures[len(g.Treasures)-1]
	if drop.X != 700 || drop.Y != 500 {
		t.Errorf("treasure should drop where the boss died, got (%f,%f)", drop.X, drop.Y)
	}
	if drop.Kind == "crown" {
		t.Error("an already collected kind should not drop")
	}
}

func TestGameBossDropAllCollected(t *testing.T) {
	g := NewGame(testConfig())
	g.Treasures = nil
	for _, def := range TreasureCatalog {
		g.Registry.Collect(def.Kind)
	}
	boss := NewBoss(700, 500, BossFortress)
	boss.HP = 1
	g.Bosses = []*Boss{boss}

	g.resolveBullet(NewBullet(700, 500, 0, WeaponNormal))
	if len(g.Treasures) != 0 {
		t.Errorf("nothing left to drop, got %v", g.Treasures)
	}
}

func TestGameTreasureCollect(t *testing.T) {
	g := NewGame(testConfig())
	g.DrainEvents()
	g.Treasures = []*Treasure{NewTreasure(g.Player.X, g.Player.Y, "crown")}

	g.Step(newFakeInput(), TickMs)

	if !g.Registry.Collected("crown") || g.Registry.Count() != 1 {
		t.Error("crown should be collected")
	}
	if g.Score != TreasureScore {
		t.Errorf("expected score %d, got %d", TreasureScore, g.Score)
	}
	if len(g.Treasures) != 0 {
		t.Error("collected treasure should be removed")
	}
	if countEvents(g.DrainEvents(), EvtTreasure) != 1 {
		t.Error("expected a treasure event")
	}
	if !g.HUD().Treasures["crown"] {
		t.Error("HUD should show the crown")
	}
}

func TestGamePowerUpPickup(t *testing.T) {
	g := NewGame(testConfig())
	g.DrainEvents()
	g.PowerUps = []*PowerUp{NewPowerUp(g.Player.X, g.Player.Y, PowerUpType{Weapon: WeaponSpread})}

	g.Step(newFakeInput(), TickMs)

	if g.Player.Weapon != WeaponSpread {
		t.Errorf("expected spread, got %s", g.Player.Weapon)
	}
	if len(g.PowerUps) != 0 {
		t.Error("power-up should be consumed")
	}
	ev := g.DrainEvents()
	if countEvents(ev, EvtWeapon) != 1 || ev[0].Detail != "spread" {
		t.Errorf("expected a weapon event for spread, got %v", ev)
	}
}

func TestGameSpawnTimer(t *testing.T) {
	g := NewGame(testConfig())
	in := newFakeInput()

	g.Step(in, 1999)
	if len(g.Enemies) != 0 {
		t.Fatal("no spawn expected before the interval")
	}
	g.Step(in, 2)
	if len(g.Enemies) != 1 {
		t.Fatalf("expected one spawn after 2001ms, got %d", len(g.Enemies))
	}
	e := g.Enemies[0]
	dx := math.Abs(e.X - g.Player.X)
	dy := math.Abs(e.Y - g.Player.Y)
	onSide := (dx == spawnDistance && dy <= spawnJitter/2) || (dy == spawnDistance && dx <= spawnJitter/2)
	if !onSide {
		t.Errorf("enemy should spawn %v from the player on one side, got offset (%f,%f)", spawnDistance, dx, dy)
	}

	g.Enemies = g.Enemies[:0]
	for i := 0; i < g.cfg.MaxEnemies; i++ {
		g.Enemies = append(g.Enemies, NewEnemy(100, 100, EnemyTank, 1))
	}
	g.Step(in, 5000)
	if len(g.Enemies) != g.cfg.MaxEnemies {
		t.Errorf("spawning should stop at the cap, got %d", len(g.Enemies))
	}
}

func TestSpawnInterval(t *testing.T) {
	if spawnInterval(2000, 1) != 2000 {
		t.Error("level 1 should use the base interval")
	}
	if spawnInterval(2000, 5) != 500 {
		t.Errorf("expected 500 at level 5, got %f", spawnInterval(2000, 5))
	}
	if LevelForScore(0) != 1 || LevelForScore(499) != 1 || LevelForScore(500) != 2 || LevelForScore(-5) != 1 {
		t.Error("LevelForScore mismatch")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := NewGame(testConfig())
	g.DrainEvents()
	g.Score = 123
	g.Player.HP = 3
	g.damagePlayer(EnemyBulletDamage)

	if g.Running() {
		t.Fatal("run should be over")
	}
	ev := g.DrainEvents()
	if len(ev) != 1 || ev[0].Type != EvtGameOver || ev[0].Summary == nil || ev[0].Summary.Score != 123 {
		t.Fatalf("expected a game_over event with the summary, got %v", ev)
	}

	tick := g.Tick
	g.Step(newFakeInput(KeyFire, KeyUp), TickMs)
	if g.Tick != tick || len(g.Bullets) != 0 {
		t.Error("game over should freeze the simulation")
	}

	sink := &recordingSink{}
	g.Draw(sink)
	if sink.countSprite(SpritePlayer) != 0 {
		t.Error("dead player should not be drawn")
	}
	if len(sink.overlays) != 1 || sink.overlays[0].Kind != OverlayGameOver || sink.overlays[0].Summary.Score != 123 {
		t.Errorf("expected a game over overlay, got %v", sink.overlays)
	}

	g.Step(newFakeInput(KeyRestart), TickMs)
	if !g.Running() || g.Score != 0 || g.Player.HP != PlayerMaxHP || g.Tick != 0 {
		t.Error("restart should begin a fresh run")
	}
	if countEvents(g.DrainEvents(), EvtRunStart) != 1 {
		t.Error("expected a run_start event")
	}
	g.Draw(sink)
	if last := sink.overlays[len(sink.overlays)-1]; last.Kind != OverlayHidden {
		t.Errorf("restart should hide the overlay, got %s", last.Kind)
	}
}

func TestGameStaysInBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	cfg.BossEvery = 3
	g := NewGame(cfg)
	rng := NewRand(9)
	in := newFakeInput(KeyFire)

	for step := 0; step < 3000; step++ {
		if step%30 == 0 {
			for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight} {
				in.held[k] = rng.Float() < 0.5
			}
			in.px = rng.Range(0, g.World.W)
			in.py = rng.Range(0, g.World.H)
		}
		in.held[KeyRestart] = !g.Running()
		g.Step(in, TickMs)
		g.DrainEvents()

		p := g.Player
		if p.X < PlayerRadius || p.X > g.World.W-PlayerRadius || p.Y < PlayerRadius || p.Y > g.World.H-PlayerRadius {
			t.Fatalf("step %d: player out of bounds at (%f,%f)", step, p.X, p.Y)
		}
		for _, e := range g.Enemies {
			if e.X < 0 || e.X > g.World.W || e.Y < 0 || e.Y > g.World.H {
				t.Fatalf("step %d: enemy out of bounds at (%f,%f)", step, e.X, e.Y)
			}
		}
		for _, b := range g.Bosses {
			if b.X < b.Radius || b.X > g.World.W-b.Radius || b.Y < b.Radius || b.Y > g.World.H-b.Radius {
				t.Fatalf("step %d: boss out of bounds at (%f,%f)", step, b.X, b.Y)
			}
		}
		for _, b := range g.Bullets {
			if !g.World.Inside(b.X, b.Y) {
				t.Fatalf("step %d: bullet left the world but was kept", step)
			}
		}
		if g.Player.HP < 0 || g.Player.HP > g.Player.MaxHP {
			t.Fatalf("step %d: HP %d out of range", step, g.Player.HP)
		}
	}
}

func TestGameDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	a := NewGame(cfg)
	b := NewGame(cfg)
	in := newFakeInput(KeyFire, KeyRight)
	in.px, in.py = 2000, 900

	for i := 0; i < 600; i++ {
		a.Step(in, TickMs)
		b.Step(in, TickMs)
	}
	if a.Score != b.Score || a.Kills != b.Kills || len(a.Enemies) != len(b.Enemies) {
		t.Error("same seed and input should replay identically")
	}
	if a.Player.X != b.Player.X || a.Player.Y != b.Player.Y {
		t.Error("player positions diverged")
	}
	for i := range a.Enemies {
		if a.Enemies[i].X != b.Enemies[i].X || a.Enemies[i].Y != b.Enemies[i].Y {
			t.Fatalf("enemy %d diverged", i)
		}
	}
}

func TestGameStepReadsInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	g := NewGame(testConfig())
	in := NewMockInputSource(ctrl)
	in.EXPECT().KeyHeld(KeyUp).Return(true).Times(1)
	in.EXPECT().KeyHeld(gomock.Not(KeyUp)).Return(false).AnyTimes()
	in.EXPECT().Pointer().Return(g.Player.X, g.Player.Y-100).Times(1)

	y := g.Player.Y
	g.Step(in, TickMs)

	if g.Player.Y >= y {
		t.Error("holding up should move the player up")
	}
}

func TestGameDrawSendsUIOnChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	g := NewGame(testConfig())
	g.Treasures = nil
	sink := NewMockRenderSink(ctrl)

	gomock.InOrder(
		sink.EXPECT().BeginFrame(g.Camera),
		sink.EXPECT().Draw(gomock.Any()).Do(func(cmd DrawCmd) {
			if cmd.Sprite != SpritePlayer || cmd.X != 400 || cmd.Y != 300 {
				t.Errorf("expected the player centred on screen, got %+v", cmd)
			}
		}),
		sink.EXPECT().EndFrame(),
		sink.EXPECT().UpdateHUD(g.HUD()),
		sink.EXPECT().UpdateBossBar(BossBar{}),
		// Unchanged HUD and bar are not resent
		sink.EXPECT().BeginFrame(g.Camera),
		sink.EXPECT().Draw(gomock.Any()),
		sink.EXPECT().EndFrame(),
	)
	g.Draw(sink)
	g.Draw(sink)

	g.Score = 10
	g.ResyncUI()
	gomock.InOrder(
		sink.EXPECT().BeginFrame(gomock.Any()),
		sink.EXPECT().Draw(gomock.Any()),
		sink.EXPECT().EndFrame(),
		sink.EXPECT().UpdateHUD(gomock.Any()).Do(func(h HUD) {
			if h.Score != 10 {
				t.Errorf("expected resent HUD with score 10, got %d", h.Score)
			}
		}),
		sink.EXPECT().UpdateBossBar(BossBar{}),
	)
	g.Draw(sink)
}

func TestGameDrawCulls(t *testing.T) {
	g := NewGame(testConfig())
	g.Treasures = nil
	g.Enemies = []*Enemy{
		NewEnemy(g.Player.X+100, g.Player.Y, EnemyNormal, 1),
		NewEnemy(10, 10, EnemyNormal, 1),
	}
	// Bosses are drawn even off screen
	g.Bosses = []*Boss{NewBoss(2300, 1700, BossFortress)}
	g.World.AddObstacle(Rect{X: g.Camera.X - 30, Y: g.Camera.Y - 30, W: 40, H: 40})
	g.World.AddObstacle(Rect{X: 10, Y: 10, W: 40, H: 40})

	sink := &recordingSink{}
	g.Draw(sink)

	if n := sink.countSprite(SpriteEnemy); n != 1 {
		t.Errorf("expected 1 visible enemy, got %d", n)
	}
	if n := sink.countSprite(SpriteBoss); n != 1 {
		t.Errorf("expected the boss drawn, got %d", n)
	}
	if n := sink.countSprite(SpriteObstacle); n != 1 {
		t.Errorf("expected 1 visible obstacle, got %d", n)
	}
}
