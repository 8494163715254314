package main

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// maxStepMs caps the elapsed time fed to one step so a stalled host does not
// fast-forward cooldowns and spawn timers
const maxStepMs = 250.0

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
}

// cameraAware inputs map screen coordinates through the session camera
type cameraAware interface {
	Attach(cam *Camera)
}

// Session is one player's run, driven at TickRate
type Session struct {
	ID string

	mu      sync.Mutex
	game    *Game
	input   InputSource
	sink    RenderSink
	notify  Broadcaster
	pilotID int64 // 0 = anonymous
	pilot   string

	db        *DB
	analytics *Analytics

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	lastStep time.Time
}

func newSession(id string, cfg Config, in InputSource, sink RenderSink, notify Broadcaster, db *DB, an *Analytics) *Session {
	return &Session{
		ID:        id,
		game:      NewGame(cfg),
		input:     in,
		sink:      sink,
		notify:    notify,
		db:        db,
		analytics: an,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run sends the welcome and ticks the game until Stop
func (s *Session) Run() {
	defer close(s.done)

	if s.notify != nil {
		s.notify.SendJSON(Envelope{T: MsgWelcome, Data: s.welcome()})
	}
	s.track(GameEvent{Type: EvtSessionOpen})

	ticker := time.NewTicker(s.game.cfg.StepInterval())
	defer ticker.Stop()

	s.lastStep = time.Now()
	for {
		select {
		case now := <-ticker.C:
			ms := float64(now.Sub(s.lastStep)) / float64(time.Millisecond)
			s.lastStep = now
			s.tick(ms)
		case <-s.stop:
			s.track(GameEvent{Type: EvtSessionEnd})
			return
		}
	}
}

// Stop ends the loop and waits for it to exit
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Session) welcome() WelcomeMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WelcomeMsg{
		SessionID:   s.ID,
		WorldWidth:  s.game.World.W,
		WorldHeight: s.game.World.H,
		ViewWidth:   s.game.Camera.W,
		ViewHeight:  s.game.Camera.H,
		Treasures:   TreasureCatalog,
	}
}

// tick steps and draws once, then handles the drained events
func (s *Session) tick(elapsedMs float64) {
	if elapsedMs > maxStepMs {
		elapsedMs = maxStepMs
	}
	if elapsedMs < 0 {
		elapsedMs = 0
	}

	s.mu.Lock()
	s.game.Step(s.input, elapsedMs)
	events := s.game.DrainEvents()
	s.game.Draw(s.sink)
	pilotID := s.pilotID
	s.mu.Unlock()

	for _, ev := range events {
		s.track(ev)
		if ev.Type == EvtGameOver && ev.Summary != nil {
			go s.recordRun(pilotID, *ev.Summary)
		}
	}
}

// Restart abandons the current run and starts a new one
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Restart()
}

// SetPilot links the session to an authenticated account
func (s *Session) SetPilot(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pilotID = id
	s.pilot = name
}

// Info describes the session for the stats API
func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionInfo{
		ID:      s.ID,
		Pilot:   s.pilot,
		Score:   s.game.Score,
		Level:   s.game.Level,
		Running: s.game.Running(),
	}
}

// Camera returns a pointer to the live camera. It is only safe to read while
// the game is being stepped.
func (s *Session) Camera() *Camera {
	return &s.game.Camera
}

// recordRun persists a finished run for a logged-in pilot and announces any
// achievements it unlocked
func (s *Session) recordRun(pilotID int64, sum RunSummary) {
	if s.db == nil || pilotID == 0 {
		return
	}
	if _, err := s.db.RecordRun(pilotID, sum); err != nil {
		log.Printf("session %s: record run: %v", s.ID, err)
		return
	}
	log.Printf("session %s: recorded run for pilot %d (score %d)", s.ID, pilotID, sum.Score)

	for _, a := range CheckAchievements(s.db, pilotID, sum) {
		s.analytics.Track(EvtAchievement, pilotID, s.ID, a.ID)
		if s.notify != nil {
			s.notify.SendJSON(Envelope{T: MsgAchievement, Data: AchievementMsg{
				ID:   a.ID,
				Name: a.Name,
				Desc: a.Description,
			}})
		}
	}
}

func (s *Session) track(ev GameEvent) {
	if s.analytics == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	s.mu.Lock()
	pilotID := s.pilotID
	s.mu.Unlock()
	s.analytics.Track(ev.Type, pilotID, s.ID, string(data))
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	cfg       Config
	db        *DB
	analytics *Analytics
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(cfg Config, db *DB, an *Analytics) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*Session),
		cfg:       cfg,
		db:        db,
		analytics: an,
	}
}

// CreateSession starts a new run for one player. Returns nil if the limit is
// reached.
func (sm *SessionManager) CreateSession(in InputSource, sink RenderSink, notify Broadcaster) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= sm.cfg.MaxSessions {
		return nil
	}

	sess := newSession(GenerateUUID(), sm.cfg, in, sink, notify, sm.db, sm.analytics)
	if ca, ok := in.(cameraAware); ok {
		ca.Attach(sess.Camera())
	}
	sm.sessions[sess.ID] = sess
	go sess.Run()
	log.Printf("session %s created (%d active)", sess.ID, len(sm.sessions))
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemoveSession stops and forgets a session
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[id]
	delete(sm.sessions, id)
	n := len(sm.sessions)
	sm.mu.Unlock()
	if !ok {
		return
	}
	sess.Stop()
	log.Printf("session %s closed (%d active)", id, n)
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// ListSessions returns info about all active sessions
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	list := make([]SessionInfo, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		list = append(list, sess.Info())
	}
	return list
}

// StopAll stops every session, used on shutdown
func (sm *SessionManager) StopAll() {
	sm.mu.Lock()
	all := make([]*Session, 0, len(sm.sessions))
	for id, sess := range sm.sessions {
		all = append(all, sess)
		delete(sm.sessions, id)
	}
	sm.mu.Unlock()
	for _, sess := range all {
		sess.Stop()
	}
}
