package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	// Terminals report presses but not releases; a key counts as held for
	// this long after its last event (auto-repeat refreshes it).
	termHoldFor  = 200 * time.Millisecond
	termAimStep  = 0.2
	termAimReach = 100.0 // pointer distance ahead of the ship
	statusRows   = 1
)

// cellScreen is the part of tcell.Screen the sink draws through
type cellScreen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
	Clear()
	Show()
}

// TerminalSink renders frames onto a character grid, scaling the camera view
// to the terminal size. The bottom row is the status line.
type TerminalSink struct {
	scr     cellScreen
	cols    int
	rows    int
	cellW   float64 // world units per column
	cellH   float64 // world units per row
	hud     HUD
	bar     BossBar
	overlay Overlay
}

// NewTerminalSink creates a sink drawing to scr
func NewTerminalSink(scr cellScreen) *TerminalSink {
	return &TerminalSink{scr: scr, overlay: Overlay{Kind: OverlayHidden}}
}

func (t *TerminalSink) BeginFrame(cam Camera) {
	t.scr.Clear()
	t.cols, t.rows = t.scr.Size()
	t.rows -= statusRows
	if t.cols < 1 || t.rows < 1 {
		t.cols, t.rows = 0, 0
		return
	}
	t.cellW = cam.W / float64(t.cols)
	t.cellH = cam.H / float64(t.rows)
}

func (t *TerminalSink) Draw(cmd DrawCmd) {
	if t.cols == 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.GetColor(cmd.Color))
	switch cmd.Sprite {
	case SpriteObstacle:
		x0, y0 := t.cell(cmd.X, cmd.Y)
		x1, y1 := t.cell(cmd.X+cmd.W, cmd.Y+cmd.H)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				t.set(x, y, '█', style)
			}
		}
	case SpriteBeam:
		step := math.Min(t.cellW, t.cellH)
		for d := 0.0; d < cmd.W; d += step {
			x, y := t.cell(cmd.X+math.Cos(cmd.Angle)*d, cmd.Y+math.Sin(cmd.Angle)*d)
			t.set(x, y, '·', style)
		}
	case SpriteBoss:
		// Fill the body so large bosses read as large
		r := cmd.Size
		x0, y0 := t.cell(cmd.X-r, cmd.Y-r)
		x1, y1 := t.cell(cmd.X+r, cmd.Y+r)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				t.set(x, y, 'B', style)
			}
		}
	default:
		x, y := t.cell(cmd.X, cmd.Y)
		t.set(x, y, glyph(cmd), style)
	}
}

func (t *TerminalSink) EndFrame() {
	if t.cols > 0 {
		t.drawStatus()
		t.drawOverlay()
	}
	t.scr.Show()
}

func (t *TerminalSink) UpdateHUD(h HUD) { t.hud = h }

func (t *TerminalSink) UpdateBossBar(b BossBar) { t.bar = b }

func (t *TerminalSink) ShowOverlay(o Overlay) { t.overlay = o }

func (t *TerminalSink) cell(x, y float64) (int, int) {
	return int(x / t.cellW), int(y / t.cellH)
}

func (t *TerminalSink) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= t.cols || y >= t.rows {
		return
	}
	t.scr.SetContent(x, y, r, nil, style)
}

func (t *TerminalSink) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= t.cols {
			return
		}
		if x >= 0 {
			t.scr.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

func (t *TerminalSink) drawStatus() {
	h := t.hud
	found := 0
	for _, v := range h.Treasures {
		if v {
			found++
		}
	}
	line := fmt.Sprintf("HP %d/%d  Score %d  Kills %d  Lv %d  Stage %d  %s  Treasures %d/%d",
		h.HP, h.MaxHP, h.Score, h.Kills, h.Level, h.Stage, h.Weapon, found, len(TreasureCatalog))
	if t.bar.Visible {
		line += fmt.Sprintf("  | %s %d%%", t.bar.Name, int(t.bar.HP*100))
	}
	t.text(0, t.rows, line, tcell.StyleDefault.Reverse(true))
}

func (t *TerminalSink) drawOverlay() {
	var msg string
	switch t.overlay.Kind {
	case OverlayBossWarning:
		msg = "WARNING: BOSS APPROACHING"
	case OverlayLevelUp:
		msg = fmt.Sprintf("LEVEL %d", t.overlay.Level)
	case OverlayStageClear:
		msg = fmt.Sprintf("STAGE CLEAR - stage %d", t.overlay.Stage)
	case OverlayGameOver:
		msg = "GAME OVER - r to restart, q to quit"
		if s := t.overlay.Summary; s != nil {
			msg = fmt.Sprintf("GAME OVER  score %d  kills %d  treasures %d  bosses %d - r to restart",
				s.Score, s.Kills, s.Treasures, s.Bosses)
		}
	default:
		return
	}
	x := (t.cols - len([]rune(msg))) / 2
	t.text(x, t.rows/2, msg, tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow))
}

var arrowGlyphs = [...]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

func glyph(cmd DrawCmd) rune {
	switch cmd.Sprite {
	case SpritePlayer:
		oct := int(math.Round(NormalizeAngle(cmd.Angle)/(math.Pi/4)+8)) % 8
		return arrowGlyphs[oct]
	case SpriteBullet:
		if cmd.Enemy {
			return 'o'
		}
		return '•'
	case SpriteEnemy:
		switch cmd.Variant {
		case "fast":
			return 'f'
		case "tank":
			return 'T'
		}
		return 'e'
	case SpriteTreasure:
		return '$'
	case SpritePowerUp:
		if cmd.Variant == powerUpHealthTag {
			return '+'
		}
		return 'W'
	case SpriteParticle:
		return '.'
	}
	return '?'
}

// TerminalInput is the InputSource for the terminal front end. The pointer
// sits ahead of the ship along the aim angle.
type TerminalInput struct {
	mu     sync.Mutex
	until  [keyCount]time.Time
	aim    float64
	player *Player
	now    func() time.Time
}

// NewTerminalInput creates an input aiming right
func NewTerminalInput() *TerminalInput {
	return &TerminalInput{now: time.Now}
}

// Follow sets the ship the pointer is placed relative to
func (t *TerminalInput) Follow(p *Player) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.player = p
}

// HandleKey records one key event. Returns false when the user quits.
func (t *TerminalInput) HandleKey(key tcell.Key, r rune) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	hold := func(k Key) { t.until[k] = t.now().Add(termHoldFor) }
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		hold(KeyUp)
	case tcell.KeyDown:
		hold(KeyDown)
	case tcell.KeyLeft:
		hold(KeyLeft)
	case tcell.KeyRight:
		hold(KeyRight)
	case tcell.KeyEnter:
		hold(KeyRestart)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'j', 'J':
			t.aim = NormalizeAngle(t.aim - termAimStep)
		case 'l', 'L':
			t.aim = NormalizeAngle(t.aim + termAimStep)
		default:
			if k, ok := ParseKey(string(r)); ok {
				hold(k)
			}
		}
	}
	return true
}

// KeyHeld reports whether k had an event within the hold window
func (t *TerminalInput) KeyHeld(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Before(t.until[k])
}

// Pointer returns a point ahead of the ship along the aim angle
func (t *TerminalInput) Pointer() (float64, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.player == nil {
		return math.Cos(t.aim) * termAimReach, math.Sin(t.aim) * termAimReach
	}
	return t.player.X + math.Cos(t.aim)*termAimReach, t.player.Y + math.Sin(t.aim)*termAimReach
}

// RunTerminal plays one local game in the terminal until the user quits
func RunTerminal(cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	game := NewGame(cfg)
	sink := NewTerminalSink(screen)
	input := NewTerminalInput()
	input.Follow(game.Player)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(cfg.StepInterval())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !input.HandleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			ms := math.Min(float64(now.Sub(last))/float64(time.Millisecond), maxStepMs)
			last = now
			game.Step(input, ms)
			game.DrainEvents()
			game.Draw(sink)
		}
	}
}
