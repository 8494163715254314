package main

import "sync"

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// connLimiter counts open sockets per address and in total
type connLimiter struct {
	mu     sync.Mutex
	perIP  map[string]int
	total  int
	maxIP  int
	maxAll int
}

func newConnLimiter(maxIP, maxAll int) *connLimiter {
	return &connLimiter{perIP: make(map[string]int), maxIP: maxIP, maxAll: maxAll}
}

// acquire reserves a slot for ip, reporting false when either cap is hit
func (l *connLimiter) acquire(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.total >= l.maxAll || l.perIP[ip] >= l.maxIP {
		return false
	}
	l.perIP[ip]++
	l.total++
	return true
}

func (l *connLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.perIP[ip]--; l.perIP[ip] <= 0 {
		delete(l.perIP, ip)
	}
	l.total--
}

func (l *connLimiter) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Hub owns the connected browsers. Each one gets a solo session on connect
// and loses it on disconnect.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	sessions   *SessionManager
	conns      *connLimiter

	// nil when running without a database
	db        *DB
	auth      *Auth
	analytics *Analytics
}

// NewHub creates a Hub. db and an may be nil.
func NewHub(cfg Config, db *DB, an *Analytics) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		sessions:   NewSessionManager(cfg, db, an),
		conns:      newConnLimiter(maxConnsPerIP, maxTotalConns),
		db:         db,
		analytics:  an,
	}
	if db != nil {
		h.auth = NewAuth(db)
	}
	return h
}

// Attach starts a session for a newly connected client. Returns false when
// the session limit is reached.
func (h *Hub) Attach(c *Client) bool {
	sess := h.sessions.CreateSession(c.input, c, c)
	if sess == nil {
		return false
	}
	c.session = sess
	return true
}

// Run processes register/unregister events
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			// The session writes into c.send, so it stops before the close
			if c.session != nil {
				h.sessions.RemoveSession(c.session.ID)
			}
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the number of open sockets
func (h *Hub) TotalConns() int {
	return h.conns.count()
}
