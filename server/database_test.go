package main

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDBPlayers(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreatePlayer("ace", "hash")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if _, err := db.CreatePlayer("ace", "other"); err == nil {
		t.Error("duplicate username should fail")
	}

	exists, err := db.UsernameExists("ace")
	if err != nil || !exists {
		t.Errorf("expected ace to exist, got %v %v", exists, err)
	}
	exists, _ = db.UsernameExists("nobody")
	if exists {
		t.Error("nobody should not exist")
	}

	p, err := db.GetPlayerByUsername("ace")
	if err != nil || p == nil || p.ID != id || p.PassHash != "hash" {
		t.Fatalf("lookup by name: %+v %v", p, err)
	}
	p, err = db.GetPlayerByID(id)
	if err != nil || p == nil || p.Username != "ace" {
		t.Fatalf("lookup by id: %+v %v", p, err)
	}
	if p, err := db.GetPlayerByUsername("nobody"); p != nil || err != nil {
		t.Errorf("missing player should be nil, nil; got %+v %v", p, err)
	}
	if p, err := db.GetPlayerByID(999); p != nil || err != nil {
		t.Errorf("missing id should be nil, nil; got %+v %v", p, err)
	}
}

func TestDBRunsAndStats(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("ace", "hash")

	stats, err := db.GetPilotStats(id)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Runs != 0 || stats.BestScore != 0 {
		t.Errorf("pilot with no runs should have zero stats, got %+v", stats)
	}

	runs := []RunSummary{
		{Score: 300, Kills: 20, Level: 1, Stage: 1, Treasures: 1, DurationMs: 60000},
		{Score: 1200, Kills: 45, Level: 3, Stage: 2, Bosses: 1, Treasures: 3, DurationMs: 120000},
	}
	for _, r := range runs {
		if _, err := db.RecordRun(id, r); err != nil {
			t.Fatalf("record run: %v", err)
		}
	}

	stats, err = db.GetPilotStats(id)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 1200 || stats.BestLevel != 3 {
		t.Errorf("unexpected bests %+v", stats)
	}
	if stats.Kills != 65 || stats.Bosses != 1 || stats.Treasures != 4 || stats.Playtime != 180 {
		t.Errorf("unexpected totals %+v", stats)
	}
}

func TestDBLeaderboard(t *testing.T) {
	db := openTestDB(t)
	ace, _ := db.CreatePlayer("ace", "h")
	bo, _ := db.CreatePlayer("bo", "h")
	db.CreatePlayer("idle", "h")

	db.RecordRun(ace, RunSummary{Score: 800, Level: 2, Stage: 1, Kills: 50})
	db.RecordRun(ace, RunSummary{Score: 2500, Level: 6, Stage: 3, Kills: 150, Treasures: 5})
	db.RecordRun(bo, RunSummary{Score: 1500, Level: 4, Stage: 2, Kills: 90})

	board, err := db.GetLeaderboard(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("expected 2 entries (one per pilot with runs), got %d", len(board))
	}
	top := board[0]
	if top.Rank != 1 || top.Username != "ace" || top.Score != 2500 {
		t.Errorf("unexpected top entry %+v", top)
	}
	// Columns come from the best run, not the first one
	if top.Level != 6 || top.Stage != 3 || top.Kills != 150 || top.Treasures != 5 {
		t.Errorf("top entry should describe the best run, got %+v", top)
	}
	if board[1].Rank != 2 || board[1].Username != "bo" {
		t.Errorf("unexpected second entry %+v", board[1])
	}

	board, _ = db.GetLeaderboard(1)
	if len(board) != 1 {
		t.Errorf("limit should cap the rows, got %d", len(board))
	}
}

func TestDBAchievements(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("ace", "h")

	fresh, err := db.UnlockAchievement(id, "first_kill")
	if err != nil || !fresh {
		t.Fatalf("first unlock should be new: %v %v", fresh, err)
	}
	fresh, err = db.UnlockAchievement(id, "first_kill")
	if err != nil || fresh {
		t.Errorf("second unlock should not be new: %v %v", fresh, err)
	}

	ids, err := db.GetAchievements(id)
	if err != nil || len(ids) != 1 || ids[0] != "first_kill" {
		t.Errorf("unexpected achievements %v %v", ids, err)
	}
}

func TestDBSettings(t *testing.T) {
	db := openTestDB(t)
	if db.GetSetting("motd") != "" {
		t.Error("unset key should be empty")
	}
	if err := db.SetSetting("motd", "hello"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetSetting("motd", "bye"); err != nil {
		t.Fatal(err)
	}
	if got := db.GetSetting("motd"); got != "bye" {
		t.Errorf("expected overwritten value bye, got %q", got)
	}
}

func TestCheckAchievements(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("ace", "h")

	run := RunSummary{Score: 600, Kills: 12, Level: 2, Stage: 1}
	db.RecordRun(id, run)
	got := CheckAchievements(db, id, run)
	if len(got) != 1 || got[0].ID != "first_kill" {
		t.Fatalf("expected first_kill only, got %v", got)
	}

	big := RunSummary{Score: 6000, Kills: 95, Level: 12, Stage: 3, Bosses: 2, Treasures: len(TreasureCatalog)}
	db.RecordRun(id, big)
	got = CheckAchievements(db, id, big)
	want := map[string]bool{"boss_slayer": true, "treasure_hunter": true, "veteran": true, "high_roller": true, "centurion": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d unlocks, got %v", len(want), got)
	}
	for _, a := range got {
		if !want[a.ID] {
			t.Errorf("unexpected unlock %s", a.ID)
		}
	}

	if again := CheckAchievements(db, id, big); len(again) != 0 {
		t.Errorf("achievements should unlock once, got %v", again)
	}
	if CheckAchievements(nil, id, big) != nil {
		t.Error("nil db should unlock nothing")
	}
}

func TestDBInsertEvents(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC()
	err := db.InsertEvents([]AnalyticsEvent{
		{Type: EvtRunStart, SessionID: "s", At: now},
		{Type: EvtGameOver, PlayerID: 3, SessionID: "s", Data: `{"summary":{"score":70}}`, At: now},
		{Type: EvtGameOver, Data: `{"summary":{"score":90}}`, At: now.Add(-72 * time.Hour)},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	an := &Analytics{db: db}
	if n, _ := an.RunCount(1); n != 1 {
		t.Errorf("old runs should fall outside the window, got %d", n)
	}
	if n, _ := an.RunCount(7); n != 2 {
		t.Errorf("expected 2 runs in a week, got %d", n)
	}
	if best, _ := an.BestScore(7); best != 90 {
		t.Errorf("expected best 90, got %d", best)
	}
	if dau, _ := an.DAUCount(); dau != 1 {
		t.Errorf("anonymous events should not count as active pilots, got %d", dau)
	}
}
