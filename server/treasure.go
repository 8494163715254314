package main

const (
	TreasureRadius     = 15.0
	TreasureScore      = 100
	TreasureSpin       = 0.05
	TreasureMinSpawn   = 400.0 // distance from the world centre
	TreasureEdgeMargin = 100.0
	treasurePlaceTries = 50
)

// TreasureKind identifies one of the collectible treasures
type TreasureKind string

// TreasureDef describes a collectible treasure
type TreasureDef struct {
	Kind  TreasureKind `json:"kind"`
	Name  string       `json:"name"`
	Icon  string       `json:"icon"`
	Color string       `json:"color"`
}

// TreasureCatalog is the fixed set of treasures, in display order
var TreasureCatalog = []TreasureDef{
	{Kind: "diamond", Name: "Diamond", Icon: "💎", Color: "#00ffff"},
	{Kind: "ruby", Name: "Ruby", Icon: "❤️", Color: "#ff0066"},
	{Kind: "emerald", Name: "Emerald", Icon: "💚", Color: "#00ff66"},
	{Kind: "gold", Name: "Gold Bar", Icon: "🟨", Color: "#ffcc00"},
	{Kind: "pearl", Name: "Pearl", Icon: "⚪", Color: "#ffffff"},
	{Kind: "sapphire", Name: "Sapphire", Icon: "💙", Color: "#0066ff"},
	{Kind: "crown", Name: "Crown", Icon: "👑", Color: "#ffaa00"},
}

// TreasureCatalogMap provides O(1) lookup by kind
var TreasureCatalogMap map[TreasureKind]TreasureDef

func init() {
	TreasureCatalogMap = make(map[TreasureKind]TreasureDef, len(TreasureCatalog))
	for _, def := range TreasureCatalog {
		TreasureCatalogMap[def.Kind] = def
	}
}

// TreasureRegistry records which treasures were collected this session
type TreasureRegistry struct {
	collected map[TreasureKind]bool
}

// NewTreasureRegistry creates a registry with nothing collected
func NewTreasureRegistry() *TreasureRegistry {
	r := &TreasureRegistry{collected: make(map[TreasureKind]bool, len(TreasureCatalog))}
	r.Reset()
	return r
}

// Collect marks kind collected. Unknown kinds are ignored and return false.
func (r *TreasureRegistry) Collect(kind TreasureKind) bool {
	if _, ok := TreasureCatalogMap[kind]; !ok {
		return false
	}
	r.collected[kind] = true
	return true
}

// Collected reports whether kind was collected
func (r *TreasureRegistry) Collected(kind TreasureKind) bool {
	return r.collected[kind]
}

// Count returns how many kinds were collected
func (r *TreasureRegistry) Count() int {
	n := 0
	for _, v := range r.collected {
		if v {
			n++
		}
	}
	return n
}

// Uncollected lists kinds not yet collected, in catalog order
func (r *TreasureRegistry) Uncollected() []TreasureKind {
	var out []TreasureKind
	for _, def := range TreasureCatalog {
		if !r.collected[def.Kind] {
			out = append(out, def.Kind)
		}
	}
	return out
}

// Reset clears every collected flag
func (r *TreasureRegistry) Reset() {
	for _, def := range TreasureCatalog {
		r.collected[def.Kind] = false
	}
}

// Snapshot copies the flags keyed by kind name
func (r *TreasureRegistry) Snapshot() map[string]bool {
	out := make(map[string]bool, len(r.collected))
	for k, v := range r.collected {
		out[string(k)] = v
	}
	return out
}

// Treasure is a collectible lying in the world
type Treasure struct {
	X, Y  float64
	Kind  TreasureKind
	Angle float64
}

// NewTreasure creates a treasure; unknown kinds fall back to the first entry
func NewTreasure(x, y float64, kind TreasureKind) *Treasure {
	if _, ok := TreasureCatalogMap[kind]; !ok {
		kind = TreasureCatalog[0].Kind
	}
	return &Treasure{X: x, Y: y, Kind: kind}
}

// Update spins the treasure
func (t *Treasure) Update() {
	t.Angle += TreasureSpin
}

// PlaceTreasures puts one treasure of every kind somewhere far from the
// world centre. A kind that finds no spot in treasurePlaceTries is skipped.
func PlaceTreasures(w *World, rng *Rand) []*Treasure {
	var out []*Treasure
	cx, cy := w.W/2, w.H/2
	for _, def := range TreasureCatalog {
		for try := 0; try < treasurePlaceTries; try++ {
			x := rng.Range(TreasureEdgeMargin, w.W-TreasureEdgeMargin)
			y := rng.Range(TreasureEdgeMargin, w.H-TreasureEdgeMargin)
			if Distance(x, y, cx, cy) > TreasureMinSpawn {
				out = append(out, NewTreasure(x, y, def.Kind))
				break
			}
		}
	}
	return out
}

// DrawCmd converts to a draw request
func (t *Treasure) DrawCmd(cam Camera) DrawCmd {
	sx, sy := cam.WorldToScreen(t.X, t.Y)
	return DrawCmd{
		Sprite:  SpriteTreasure,
		Variant: string(t.Kind),
		X:       round1(sx),
		Y:       round1(sy),
		Size:    TreasureRadius,
		Angle:   t.Angle,
		Color:   TreasureCatalogMap[t.Kind].Color,
	}
}
