package main

// RunPhase is the lifecycle of one run
type RunPhase int

const (
	PhasePlaying  RunPhase = 0
	PhaseGameOver RunPhase = 1
)

// EventType names something that happened during a step. The values double
// as analytics event types.
type EventType string

const (
	EvtRunStart    EventType = "run_start"
	EvtLevelUp     EventType = "level_up"
	EvtBossSpawn   EventType = "boss_spawn"
	EvtBossDefeat  EventType = "boss_defeat"
	EvtTreasure    EventType = "treasure"
	EvtWeapon      EventType = "weapon"
	EvtGameOver    EventType = "game_over"
	EvtSessionOpen EventType = "session_start"
	EvtSessionEnd  EventType = "session_end"
)

// GameEvent is drained by the host after each step
type GameEvent struct {
	Type    EventType   `json:"type"`
	Tick    uint64      `json:"tick"`
	Level   int         `json:"level,omitempty"`
	Detail  string      `json:"detail,omitempty"` // boss, treasure or weapon tag
	Summary *RunSummary `json:"summary,omitempty"`
}

// RunSummary is the final tally of a run
type RunSummary struct {
	Score      int      `json:"score"`
	Kills      int      `json:"kills"`
	Level      int      `json:"level"`
	Stage      int      `json:"stage"`
	Bosses     int      `json:"bosses"`
	Treasures  int      `json:"treasures"`
	Collected  []string `json:"collected,omitempty"`
	DurationMs float64  `json:"duration_ms"`
}

// LevelForScore returns the level reached at score
func LevelForScore(score int) int {
	if score < 0 {
		return 1
	}
	return score/LevelScoreStep + 1
}

// LevelScoreStep is the score needed per level
const LevelScoreStep = 500

// spawnInterval returns ms between enemy spawns at level
func spawnInterval(base float64, level int) float64 {
	div := float64(level) * 0.8
	if div < 1 {
		div = 1
	}
	return base / div
}
