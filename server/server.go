package main

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"
)

const (
	qrSize              = 256
	defaultLeaderboard  = 20
	maxLeaderboard      = 100
	statsWindowDays     = 7
	leaderboardCacheAge = "max-age=10"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SetupRoutes configures HTTP routes
func SetupRoutes(hub *Hub, clientDir string) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ws", hub.serveWS)
	r.HandleFunc("/qr.png", serveQR).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/leaderboard", hub.serveLeaderboard).Methods(http.MethodGet)
	api.HandleFunc("/stats", hub.serveStats).Methods(http.MethodGet)

	// Serve static files with no-cache so browsers always revalidate
	fs := http.FileServer(http.Dir(clientDir))
	r.PathPrefix("/").Handler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		if req.URL.Path == "/" {
			http.ServeFile(w, req, filepath.Join(clientDir, "index.html"))
			return
		}
		fs.ServeHTTP(w, req)
	}))

	return r
}

// serveWS upgrades the connection and starts a solo session for it
func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	ip := extractIP(r)
	if !h.conns.acquire(ip) {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.conns.release(ip)
		log.Printf("upgrade error: %v", err)
		return
	}

	client := NewClient(h, conn, ip)
	if !h.Attach(client) {
		client.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "too many active sessions"}})
	}
	h.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// serveQR renders a QR code of the play URL so a phone can join
func serveQR(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	png, err := qrcode.Encode(scheme+"://"+r.Host+"/", qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Hub) serveLeaderboard(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, []LeaderboardEntry{})
		return
	}
	limit := defaultLeaderboard
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = min(n, maxLeaderboard)
		}
	}
	entries, err := h.db.GetLeaderboard(limit)
	if err != nil {
		log.Printf("leaderboard: %v", err)
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	w.Header().Set("Cache-Control", leaderboardCacheAge)
	writeJSON(w, entries)
}

// StatsResponse is the body of /api/stats
type StatsResponse struct {
	Connections int            `json:"connections"`
	Sessions    []SessionInfo  `json:"sessions"`
	Runs        int            `json:"runs"`
	BestScore   int            `json:"best_score"`
	ActiveToday int            `json:"active_today"`
	Events      map[string]int `json:"events"`
}

func (h *Hub) serveStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Connections: h.TotalConns(),
		Sessions:    h.sessions.ListSessions(),
		Events:      map[string]int{},
	}
	if h.analytics != nil {
		if n, err := h.analytics.RunCount(statsWindowDays); err == nil {
			resp.Runs = n
		}
		if n, err := h.analytics.BestScore(statsWindowDays); err == nil {
			resp.BestScore = n
		}
		if n, err := h.analytics.DAUCount(); err == nil {
			resp.ActiveToday = n
		}
		if counts, err := h.analytics.EventCounts(statsWindowDays); err == nil && counts != nil {
			resp.Events = counts
		}
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}
