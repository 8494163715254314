package main

// Key is a logical input the simulation reads
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	KeyRestart
	keyCount
)

var keyNames = map[string]Key{
	"w": KeyUp, "W": KeyUp, "ArrowUp": KeyUp,
	"s": KeyDown, "S": KeyDown, "ArrowDown": KeyDown,
	"a": KeyLeft, "A": KeyLeft, "ArrowLeft": KeyLeft,
	"d": KeyRight, "D": KeyRight, "ArrowRight": KeyRight,
	" ": KeyFire, "Space": KeyFire, "mouse": KeyFire,
	"r": KeyRestart, "R": KeyRestart, "Enter": KeyRestart,
}

// ParseKey maps a browser key name to a Key
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

// InputSource supplies the held-key set and the pointer in world coordinates
//
//go:generate go tool mockgen -destination=mock_sink_test.go -package=main . InputSource,RenderSink
type InputSource interface {
	KeyHeld(k Key) bool
	Pointer() (x, y float64)
}

// Sprite identifies what a draw command depicts
type Sprite uint8

const (
	SpritePlayer Sprite = iota
	SpriteBullet
	SpriteEnemy
	SpriteBoss
	SpriteBeam
	SpriteTreasure
	SpritePowerUp
	SpriteParticle
	SpriteObstacle
)

// DrawCmd is one entity draw request in screen coordinates
type DrawCmd struct {
	Sprite  Sprite  `msgpack:"s"`
	Variant string  `msgpack:"v,omitempty"` // type tag: weapon, enemy, boss, treasure kind...
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	W       float64 `msgpack:"w,omitempty"` // obstacle width or beam length
	H       float64 `msgpack:"h,omitempty"`
	Size    float64 `msgpack:"r,omitempty"`
	Angle   float64 `msgpack:"a,omitempty"`
	Color   string  `msgpack:"c,omitempty"`
	HP      float64 `msgpack:"hp,omitempty"` // fraction of max
	Alpha   float64 `msgpack:"al,omitempty"`
	Thrust  bool    `msgpack:"t,omitempty"`
	Enemy   bool    `msgpack:"e,omitempty"` // enemy-owned bullet
}

// HUD is the status panel
type HUD struct {
	HP        int             `json:"hp"`
	MaxHP     int             `json:"mhp"`
	Score     int             `json:"score"`
	Kills     int             `json:"kills"`
	Level     int             `json:"level"`
	Stage     int             `json:"stage"`
	Weapon    string          `json:"weapon"`
	Treasures map[string]bool `json:"treasures"`
}

func (h HUD) equal(o HUD) bool {
	if h.HP != o.HP || h.MaxHP != o.MaxHP || h.Score != o.Score || h.Kills != o.Kills ||
		h.Level != o.Level || h.Stage != o.Stage || h.Weapon != o.Weapon ||
		len(h.Treasures) != len(o.Treasures) {
		return false
	}
	for k, v := range h.Treasures {
		if o.Treasures[k] != v {
			return false
		}
	}
	return true
}

// BossBar is the boss name and health bar
type BossBar struct {
	Visible bool    `json:"visible"`
	Name    string  `json:"name,omitempty"`
	HP      float64 `json:"hp"` // fraction of max
}

// OverlayKind is a full-screen message
type OverlayKind string

const (
	OverlayBossWarning OverlayKind = "boss_warning"
	OverlayLevelUp     OverlayKind = "level_up"
	OverlayStageClear  OverlayKind = "stage_clear"
	OverlayGameOver    OverlayKind = "game_over"
	OverlayHidden      OverlayKind = "hidden"
)

// Overlay is shown by the sink until replaced
type Overlay struct {
	Kind    OverlayKind `json:"kind"`
	Level   int         `json:"level,omitempty"`
	Stage   int         `json:"stage,omitempty"`
	Summary *RunSummary `json:"summary,omitempty"`
}

// RenderSink receives draw calls and UI updates
type RenderSink interface {
	BeginFrame(cam Camera)
	Draw(cmd DrawCmd)
	EndFrame()
	UpdateHUD(h HUD)
	UpdateBossBar(b BossBar)
	ShowOverlay(o Overlay)
}
