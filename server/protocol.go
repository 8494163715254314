package main

import "encoding/json"

// Client -> Server message types
const (
	MsgInput    = "input"
	MsgRestart  = "restart"
	MsgRegister = "register"
	MsgLogin    = "login"
	MsgAuth     = "auth"
	MsgProfile  = "profile"
)

// Server -> Client message types
const (
	MsgWelcome     = "welcome"
	MsgHUD         = "hud"
	MsgBoss        = "boss"
	MsgOverlay     = "overlay"
	MsgAuthOK      = "auth_ok"
	MsgProfileData = "profile"
	MsgAchievement = "achievement"
	MsgError       = "error"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids a double unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is the full held-key set plus the pointer in screen coordinates
type ClientInput struct {
	Keys []string `json:"keys"`
	MX   float64  `json:"mx"`
	MY   float64  `json:"my"`
	Fire bool     `json:"fire"` // mouse button held
}

// WelcomeMsg is sent once the connection has a session
type WelcomeMsg struct {
	SessionID   string        `json:"sid"`
	WorldWidth  float64       `json:"ww"`
	WorldHeight float64       `json:"wh"`
	ViewWidth   float64       `json:"vw"`
	ViewHeight  float64       `json:"vh"`
	Treasures   []TreasureDef `json:"treasures"`
}

// Frame is one tick's scene, sent as msgpack binary
type Frame struct {
	Tick  uint64    `msgpack:"k"`
	CamX  float64   `msgpack:"cx"`
	CamY  float64   `msgpack:"cy"`
	Draws []DrawCmd `msgpack:"d"`
}

// RegisterMsg creates an account
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMsg authenticates with username and password
type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg resumes a previous login
type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"pid"`
}

// ProfileDataMsg carries a pilot's lifetime stats
type ProfileDataMsg struct {
	Username     string   `json:"username"`
	Runs         int      `json:"runs"`
	BestScore    int      `json:"best_score"`
	BestLevel    int      `json:"best_level"`
	Kills        int      `json:"kills"`
	Bosses       int      `json:"bosses"`
	Treasures    int      `json:"treasures"`
	Playtime     float64  `json:"playtime"`
	Achievements []string `json:"achievements"`
}

// AchievementMsg announces a newly unlocked achievement
type AchievementMsg struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// SessionInfo is used in the stats API
type SessionInfo struct {
	ID      string `json:"id"`
	Pilot   string `json:"pilot,omitempty"`
	Score   int    `json:"score"`
	Level   int    `json:"level"`
	Running bool   `json:"running"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
