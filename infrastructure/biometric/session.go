package biometric

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"lifex.health/infrastructure/biometric/types"
)

// SessionTTL bounds how long an identification session stays
// confirmable.
const SessionTTL = 60 * time.Second

const sessionTokenBytes = 32

// SessionStore is the injectable cache backing identification
// sessions. Take must read and delete atomically so a token can only
// ever be consumed once, even under racing confirms.
type SessionStore interface {
	Put(key string, value []byte, ttl time.Duration) error
	Take(key string) ([]byte, bool)
	Delete(key string)
}

type SessionState string

const (
	SessionConfirmed SessionState = "CONFIRMED"
	SessionRejected  SessionState = "REJECTED"
)

type SessionOutcome struct {
	State      SessionState
	UserID     string
	Confidence float64
}

type sessionPayload struct {
	Candidates []types.Candidate `json:"candidates"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

type SessionManager struct {
	Store SessionStore
	TTL   time.Duration
	Now   func() time.Time
}

// Sessions is the shared manager used by the identification flows.
var Sessions = NewSessionManager(&RedisSessionStore{})

func NewSessionManager(store SessionStore) *SessionManager {
	return &SessionManager{
		Store: store,
		TTL:   SessionTTL,
		Now:   time.Now,
	}
}

// Create mints a single-use token over the candidate set. The stored
// payload carries its own expiry on top of the store TTL so a stale
// entry can never be confirmed.
func (manager *SessionManager) Create(candidates []types.Candidate) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("cannot create an identification session without candidates")
	}

	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	payload, err := json.Marshal(sessionPayload{
		Candidates: candidates,
		ExpiresAt:  manager.Now().Add(manager.TTL),
	})
	if err != nil {
		return "", err
	}

	if err := manager.Store.Put(token, payload, manager.TTL); err != nil {
		return "", err
	}
	return token, nil
}

// Consume resolves a confirm/reject call against the stored session.
// The entry is removed on first consumption regardless of outcome; a
// second call with the same token sees ErrSessionExpired.
func (manager *SessionManager) Consume(token string, userID string, confirmed bool) (SessionOutcome, error) {
	raw, ok := manager.Store.Take(token)
	if !ok {
		return SessionOutcome{}, types.ErrSessionExpired
	}

	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return SessionOutcome{}, types.ErrSessionExpired
	}
	if manager.Now().After(payload.ExpiresAt) {
		return SessionOutcome{}, types.ErrSessionExpired
	}

	var matched *types.Candidate
	for i := range payload.Candidates {
		if payload.Candidates[i].UserID == userID {
			matched = &payload.Candidates[i]
			break
		}
	}
	if matched == nil {
		return SessionOutcome{}, types.ErrInvalidSelection
	}

	if !confirmed {
		return SessionOutcome{State: SessionRejected, UserID: userID, Confidence: matched.Confidence}, nil
	}
	return SessionOutcome{State: SessionConfirmed, UserID: userID, Confidence: matched.Confidence}, nil
}
