package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL         = 7 * 24 * time.Hour
	bcryptCost       = 12
	minPasswordLen   = 4
	minUsernameLen   = 2
	maxUsernameLen   = 16
	loginRateWindow  = 60 * time.Second
	maxLoginAttempts = 10
	jwtSecretKey     = "jwt_secret"
)

// Messages of these errors are shown to the player as is
var (
	ErrUsernameTaken  = errors.New("username already taken")
	ErrBadCredentials = errors.New("invalid username or password")
	ErrRateLimited    = errors.New("too many login attempts, try again later")
	ErrBadToken       = errors.New("invalid token")
	errInternal       = errors.New("internal error")
)

// pilotClaims is the token payload
type pilotClaims struct {
	PilotID  int64  `json:"pid"`
	Username string `json:"usr"`
	jwt.RegisteredClaims
}

// Auth registers pilots and issues their tokens
type Auth struct {
	db      *DB
	secret  []byte
	limiter *loginLimiter
}

// NewAuth creates an Auth backed by db. The signing secret is read from the
// settings table, or generated and stored there on first use.
func NewAuth(db *DB) *Auth {
	return &Auth{
		db:      db,
		secret:  loadOrCreateSecret(db),
		limiter: newLoginLimiter(maxLoginAttempts, loginRateWindow),
	}
}

func loadOrCreateSecret(db *DB) []byte {
	if db != nil {
		if h := db.GetSetting(jwtSecretKey); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
				return b
			}
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate JWT secret: " + err.Error())
	}
	if db != nil {
		if err := db.SetSetting(jwtSecretKey, hex.EncodeToString(secret)); err != nil {
			log.Printf("auth: could not persist secret: %v", err)
		}
	}
	return secret
}

func validateCredentials(username, password string) error {
	if n := len(username); n < minUsernameLen || n > maxUsernameLen {
		return fmt.Errorf("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// Register creates a pilot and returns its ID and a token
func (a *Auth) Register(username, password string) (int64, string, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return 0, "", err
	}

	taken, err := a.db.UsernameExists(username)
	if err != nil {
		log.Printf("auth: username lookup: %v", err)
		return 0, "", errInternal
	}
	if taken {
		return 0, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return 0, "", errInternal
	}
	id, err := a.db.CreatePlayer(username, string(hash))
	if err != nil {
		log.Printf("auth: create %s: %v", username, err)
		return 0, "", errInternal
	}
	token, err := a.issue(id, username)
	if err != nil {
		return 0, "", errInternal
	}
	return id, token, nil
}

// Login checks a password and returns the pilot ID and a fresh token.
// Attempts are limited per remote address.
func (a *Auth) Login(username, password, ip string) (int64, string, error) {
	if !a.limiter.allow(ip) {
		return 0, "", ErrRateLimited
	}

	p, err := a.db.GetPlayerByUsername(strings.TrimSpace(username))
	if err != nil {
		log.Printf("auth: player lookup: %v", err)
		return 0, "", errInternal
	}
	if p == nil || p.PassHash == "" {
		return 0, "", ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PassHash), []byte(password)) != nil {
		return 0, "", ErrBadCredentials
	}

	token, err := a.issue(p.ID, p.Username)
	if err != nil {
		return 0, "", errInternal
	}
	return p.ID, token, nil
}

// ValidateToken returns the pilot a token was issued to
func (a *Auth) ValidateToken(tokenStr string) (int64, string, error) {
	var claims pilotClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.PilotID == 0 {
		return 0, "", ErrBadToken
	}
	return claims.PilotID, claims.Username, nil
}

func (a *Auth) issue(id int64, username string) (string, error) {
	now := time.Now()
	claims := pilotClaims{
		PilotID:  id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// loginLimiter allows limit attempts per key in each fixed window
type loginLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*rateEntry
	now     func() time.Time
}

type rateEntry struct {
	count   int
	resetAt time.Time
}

func newLoginLimiter(limit int, window time.Duration) *loginLimiter {
	return &loginLimiter{limit: limit, window: window, entries: make(map[string]*rateEntry), now: time.Now}
}

func (l *loginLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		l.entries[key] = &rateEntry{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	e.count++
	return e.count <= l.limit
}
