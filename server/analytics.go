package main

import (
	"database/sql"
	"log"
	"sync"
	"time"
)

// Analytics-only event types; run events reuse the GameEvent types
const (
	EvtAchievement EventType = "achievement"
)

const (
	analyticsBuffer     = 1024
	analyticsBatchSize  = 50
	analyticsFlushEvery = 5 * time.Second
)

// AnalyticsEvent is one row of the analytics_events table
type AnalyticsEvent struct {
	Type      EventType
	PlayerID  int64 // 0 = anonymous
	SessionID string
	Data      string // JSON payload, optional
	At        time.Time
}

// Analytics records events off the game loop. Track never blocks; a
// background writer stores them in batches.
type Analytics struct {
	db     *DB
	events chan AnalyticsEvent
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewAnalytics starts the writer. With a nil db events are discarded.
func NewAnalytics(db *DB) *Analytics {
	a := &Analytics{
		db:     db,
		events: make(chan AnalyticsEvent, analyticsBuffer),
		stop:   make(chan struct{}),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Track queues an event. A nil Analytics drops everything, and so does a
// full queue.
func (a *Analytics) Track(typ EventType, playerID int64, sessionID, data string) {
	if a == nil {
		return
	}
	select {
	case a.events <- AnalyticsEvent{Type: typ, PlayerID: playerID, SessionID: sessionID, Data: data, At: time.Now().UTC()}:
	default:
	}
}

// Stop flushes what is queued and ends the writer
func (a *Analytics) Stop() {
	close(a.stop)
	a.wg.Wait()
}

func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, analyticsBatchSize)
	flush := func() {
		if len(batch) == 0 || a.db == nil {
			batch = batch[:0]
			return
		}
		if err := a.db.InsertEvents(batch); err != nil {
			log.Printf("analytics: dropped %d events: %v", len(batch), err)
		}
		batch = batch[:0]
	}

	ticker := time.NewTicker(analyticsFlushEvery)
	defer ticker.Stop()

	for {
		select {
		case ev := <-a.events:
			if batch = append(batch, ev); len(batch) >= analyticsBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-a.stop:
			// Late Track calls after this drain are dropped
			for {
				select {
				case ev := <-a.events:
					batch = append(batch, ev)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (a *Analytics) ready() bool { return a != nil && a.db != nil }

// DAUCount returns the number of distinct pilots active today
func (a *Analytics) DAUCount() (int, error) {
	if !a.ready() {
		return 0, nil
	}
	var n int
	err := a.db.conn.QueryRow(`
		SELECT COUNT(DISTINCT player_id) FROM analytics_events
		WHERE player_id IS NOT NULL AND created_at >= date('now')
	`).Scan(&n)
	return n, err
}

// EventCounts returns the number of events per type over the last days
func (a *Analytics) EventCounts(days int) (map[string]int, error) {
	if !a.ready() {
		return nil, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT event_type, COUNT(*) FROM analytics_events
		WHERE created_at >= date('now', '-' || ? || ' days')
		GROUP BY event_type
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}

// RunCount returns how many runs ended over the last days
func (a *Analytics) RunCount(days int) (int, error) {
	if !a.ready() {
		return 0, nil
	}
	var n int
	err := a.db.conn.QueryRow(`
		SELECT COUNT(*) FROM analytics_events
		WHERE event_type = ? AND created_at >= date('now', '-' || ? || ' days')
	`, string(EvtGameOver), days).Scan(&n)
	return n, err
}

// BestScore returns the top score of runs that ended over the last days,
// anonymous runs included
func (a *Analytics) BestScore(days int) (int, error) {
	if !a.ready() {
		return 0, nil
	}
	var best sql.NullInt64
	err := a.db.conn.QueryRow(`
		SELECT MAX(CAST(json_extract(data, '$.summary.score') AS INTEGER)) FROM analytics_events
		WHERE event_type = ? AND json_valid(data) AND created_at >= date('now', '-' || ? || ' days')
	`, string(EvtGameOver), days).Scan(&best)
	return int(best.Int64), err
}
