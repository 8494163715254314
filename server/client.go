package main

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120
	maxHeldKeys       = 16
)

// Client represents a WebSocket connection. It is the RenderSink of its
// session: frames go out as msgpack binary, UI updates as JSON.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string
	msgCount   int
	msgResetAt time.Time

	input   *RemoteInput
	session *Session
	frame   Frame // written only from the session loop

	// Auth state
	authPlayerID int64  // 0 = unauthenticated/guest
	authUsername string // "" = unauthenticated
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
		input:      NewRemoteInput(),
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.conns.release(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message
// Prefixes with 0xFF marker byte so WritePump can distinguish from text
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF // binary marker
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// BeginFrame starts collecting draw commands for one tick
func (c *Client) BeginFrame(cam Camera) {
	c.frame.Tick++
	c.frame.CamX = round1(cam.X)
	c.frame.CamY = round1(cam.Y)
	c.frame.Draws = c.frame.Draws[:0]
}

// Draw queues one draw command
func (c *Client) Draw(cmd DrawCmd) {
	c.frame.Draws = append(c.frame.Draws, cmd)
}

// EndFrame sends the collected frame
func (c *Client) EndFrame() {
	data, err := msgpack.Marshal(&c.frame)
	if err != nil {
		log.Printf("frame marshal error: %v", err)
		return
	}
	c.SendBinary(data)
}

// UpdateHUD sends the status panel
func (c *Client) UpdateHUD(h HUD) {
	c.SendJSON(Envelope{T: MsgHUD, Data: h})
}

// UpdateBossBar sends the boss health bar
func (c *Client) UpdateBossBar(b BossBar) {
	c.SendJSON(Envelope{T: MsgBoss, Data: b})
}

// ShowOverlay sends a full-screen message
func (c *Client) ShowOverlay(o Overlay) {
	c.SendJSON(Envelope{T: MsgOverlay, Data: o})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgInput:
		c.handleInput(env.D)
	case MsgRestart:
		c.handleRestart()
	case MsgRegister:
		c.handleRegister(env.D)
	case MsgLogin:
		c.handleLogin(env.D)
	case MsgAuth:
		c.handleAuth(env.D)
	case MsgProfile:
		c.handleProfile()
	}
}

func (c *Client) handleInput(data json.RawMessage) {
	var input ClientInput
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	c.input.Apply(input)
}

func (c *Client) handleRestart() {
	if c.session == nil {
		return
	}
	c.session.Restart()
}

func (c *Client) handleRegister(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg RegisterMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Register(msg.Username, msg.Password)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authenticated(id, strings.TrimSpace(msg.Username), token)
}

func (c *Client) handleLogin(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg LoginMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Login(msg.Username, msg.Password, c.remoteAddr)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authenticated(id, strings.TrimSpace(msg.Username), token)
}

func (c *Client) handleAuth(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg AuthMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, username, err := c.hub.auth.ValidateToken(msg.Token)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: ErrBadToken.Error()}})
		return
	}
	c.authenticated(id, username, msg.Token)
}

func (c *Client) authenticated(id int64, username, token string) {
	c.authPlayerID = id
	c.authUsername = username
	if c.session != nil {
		c.session.SetPilot(id, username)
	}
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{
		Token:    token,
		Username: username,
		PlayerID: id,
	}})
}

func (c *Client) handleProfile() {
	if c.hub.db == nil || c.authPlayerID == 0 {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "not authenticated"}})
		return
	}
	stats, err := c.hub.db.GetPilotStats(c.authPlayerID)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "profile not found"}})
		return
	}
	achievements, err := c.hub.db.GetAchievements(c.authPlayerID)
	if err != nil {
		log.Printf("achievements for %d: %v", c.authPlayerID, err)
	}
	c.SendJSON(Envelope{T: MsgProfileData, Data: ProfileDataMsg{
		Username:     c.authUsername,
		Runs:         stats.Runs,
		BestScore:    stats.BestScore,
		BestLevel:    stats.BestLevel,
		Kills:        stats.Kills,
		Bosses:       stats.Bosses,
		Treasures:    stats.Treasures,
		Playtime:     stats.Playtime,
		Achievements: achievements,
	}})
}

// RemoteInput is the InputSource fed by a browser. The browser sends the
// pointer in screen coordinates; it is mapped to the world through the
// session camera when the game reads it.
type RemoteInput struct {
	mu     sync.Mutex
	held   [keyCount]bool
	sx, sy float64
	cam    *Camera
}

// NewRemoteInput creates an input with nothing held
func NewRemoteInput() *RemoteInput {
	return &RemoteInput{}
}

// Attach sets the camera used to map the pointer
func (r *RemoteInput) Attach(cam *Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cam = cam
}

// Apply replaces the held-key set and pointer. Unknown key names are ignored.
func (r *RemoteInput) Apply(in ClientInput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.held = [keyCount]bool{}
	for i, name := range in.Keys {
		if i >= maxHeldKeys {
			break
		}
		if k, ok := ParseKey(name); ok {
			r.held[k] = true
		}
	}
	if in.Fire {
		r.held[KeyFire] = true
	}
	r.sx = in.MX
	r.sy = in.MY
}

// KeyHeld reports whether k is held
func (r *RemoteInput) KeyHeld(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held[k]
}

// Pointer returns the pointer in world coordinates
func (r *RemoteInput) Pointer() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cam == nil {
		return r.sx, r.sy
	}
	return r.cam.ScreenToWorld(r.sx, r.sy)
}
