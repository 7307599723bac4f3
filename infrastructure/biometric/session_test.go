package biometric

import (
	"errors"
	"testing"
	"time"

	"lifex.health/infrastructure/biometric/types"
)

func newTestSessionManager(now *time.Time) *SessionManager {
	store := NewMemorySessionStore()
	store.Now = func() time.Time { return *now }
	manager := NewSessionManager(store)
	manager.Now = func() time.Time { return *now }
	return manager
}

func testCandidates() []types.Candidate {
	return []types.Candidate{
		{UserID: "user-1", Distance: 0.32, Confidence: 68},
		{UserID: "user-2", Distance: 0.38, Confidence: 62},
	}
}

func TestSessionConfirm(t *testing.T) {
	now := time.Now()
	manager := newTestSessionManager(&now)

	token, err := manager.Create(testCandidates())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	outcome, err := manager.Consume(token, "user-1", true)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if outcome.State != SessionConfirmed {
		t.Errorf("State = %v, want %v", outcome.State, SessionConfirmed)
	}
	if outcome.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", outcome.UserID, "user-1")
	}
	if outcome.Confidence != 68 {
		t.Errorf("Confidence = %v, want 68", outcome.Confidence)
	}
}

func TestSessionIsSingleUse(t *testing.T) {
	now := time.Now()
	manager := newTestSessionManager(&now)

	token, err := manager.Create(testCandidates())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := manager.Consume(token, "user-1", true); err != nil {
		t.Fatalf("first Consume failed: %v", err)
	}
	if _, err := manager.Consume(token, "user-1", true); !errors.Is(err, types.ErrSessionExpired) {
		t.Fatalf("second Consume = %v, want ErrSessionExpired", err)
	}
}

func TestSessionRejectAlsoConsumes(t *testing.T) {
	now := time.Now()
	manager := newTestSessionManager(&now)

	token, _ := manager.Create(testCandidates())
	outcome, err := manager.Consume(token, "user-2", false)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if outcome.State != SessionRejected {
		t.Errorf("State = %v, want %v", outcome.State, SessionRejected)
	}
	if _, err := manager.Consume(token, "user-2", true); !errors.Is(err, types.ErrSessionExpired) {
		t.Fatalf("token survived a rejection: %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	now := time.Now()
	manager := newTestSessionManager(&now)

	token, _ := manager.Create(testCandidates())
	now = now.Add(SessionTTL + time.Second)

	if _, err := manager.Consume(token, "user-1", true); !errors.Is(err, types.ErrSessionExpired) {
		t.Fatalf("Consume after TTL = %v, want ErrSessionExpired", err)
	}
}

func TestSessionInvalidSelection(t *testing.T) {
	now := time.Now()
	manager := newTestSessionManager(&now)

	token, _ := manager.Create(testCandidates())
	if _, err := manager.Consume(token, "intruder", true); !errors.Is(err, types.ErrInvalidSelection) {
		t.Fatalf("Consume with foreign user = %v, want ErrInvalidSelection", err)
	}
}

type failingSessionStore struct {
	MemorySessionStore
}

func (store *failingSessionStore) Put(key string, value []byte, ttl time.Duration) error {
	return errors.New("cache write failed")
}

func TestSessionCreateSurfacesStoreFailure(t *testing.T) {
	manager := NewSessionManager(&failingSessionStore{})

	token, err := manager.Create(testCandidates())
	if err == nil {
		t.Fatal("expected an error when the store rejects the write")
	}
	if token != "" {
		t.Errorf("token = %q, want empty on store failure", token)
	}
}

func TestSessionCreateRequiresCandidates(t *testing.T) {
	now := time.Now()
	manager := newTestSessionManager(&now)

	if _, err := manager.Create(nil); err == nil {
		t.Fatal("expected error creating a session without candidates")
	}
}
