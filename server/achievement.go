package main

import "log"

// AchievementDef is one unlockable badge. Earned is evaluated after a run is
// recorded, with the pilot's lifetime stats already including that run.
type AchievementDef struct {
	ID          string
	Name        string
	Description string
	Earned      func(total *PilotStats, run RunSummary) bool
}

var Achievements = []AchievementDef{
	{"first_kill", "First Kill", "Destroy your first enemy",
		func(total *PilotStats, _ RunSummary) bool { return total.Kills >= 1 }},
	{"boss_slayer", "Boss Slayer", "Defeat a boss",
		func(total *PilotStats, _ RunSummary) bool { return total.Bosses >= 1 }},
	{"treasure_hunter", "Treasure Hunter", "Collect every treasure in a single run",
		func(_ *PilotStats, run RunSummary) bool { return run.Treasures >= len(TreasureCatalog) }},
	{"veteran", "Veteran", "Reach level 5 in a single run",
		func(_ *PilotStats, run RunSummary) bool { return run.Level >= 5 }},
	{"high_roller", "High Roller", "Score 5000 in a single run",
		func(_ *PilotStats, run RunSummary) bool { return run.Score >= 5000 }},
	{"centurion", "Centurion", "Reach 100 total kills",
		func(total *PilotStats, _ RunSummary) bool { return total.Kills >= 100 }},
}

// CheckAchievements unlocks whatever the just-recorded run earned and
// returns only the new unlocks
func CheckAchievements(db *DB, playerID int64, run RunSummary) []AchievementDef {
	if db == nil {
		return nil
	}
	total, err := db.GetPilotStats(playerID)
	if err != nil {
		log.Printf("achievements: %v", err)
		return nil
	}
	owned, err := db.GetAchievements(playerID)
	if err != nil {
		log.Printf("achievements: %v", err)
		return nil
	}
	has := make(map[string]bool, len(owned))
	for _, id := range owned {
		has[id] = true
	}

	var unlocked []AchievementDef
	for _, def := range Achievements {
		if has[def.ID] || !def.Earned(total, run) {
			continue
		}
		fresh, err := db.UnlockAchievement(playerID, def.ID)
		if err != nil {
			log.Printf("achievements: unlock %s: %v", def.ID, err)
			continue
		}
		if fresh {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked
}
