// Package conversation implements the cookie-keyed adaptive loop: an
// ephemeral question/answer cycle that is not tied to persisted session
// records. State lives in a token-keyed store for the life of the
// process (or until the store's TTL evicts it).
package conversation

import (
	"sync"
	"time"

	"github.com/intervia/interview-api/internal/models"
)

// LastQuestion captures the question most recently put to a token.
type LastQuestion struct {
	QuestionID        string        `json:"question_id"`
	QuestionText      string        `json:"question_text"`
	ExpectedKeyPoints []string      `json:"expected_key_points"`
	AskedAt           time.Time     `json:"asked_at"`
	Domain            models.Domain `json:"domain"`
}

// Turn is one completed question/answer/evaluation cycle.
type Turn struct {
	QuestionID       string            `json:"question_id"`
	Answer           string            `json:"answer"`
	Evaluation       string            `json:"evaluation"`
	Difficulty       models.Difficulty `json:"difficulty"`
	Performance      string            `json:"performance"`
	CoveredKeyPoints []string          `json:"covered_key_points"`
	MissedKeyPoints  []string          `json:"missed_key_points"`
	RespondedAt      time.Time         `json:"responded_at"`
}

// State is the adaptive context tracked per opaque token.
type State struct {
	Topic        models.Domain     `json:"topic"`
	Difficulty   models.Difficulty `json:"difficulty"`
	LastQuestion *LastQuestion     `json:"last_question"`
	History      []Turn            `json:"history"`
}

// Store maps opaque conversation tokens to their adaptive state. The
// turn handler assumes it is never invoked twice concurrently for the
// same token; the store itself only guarantees safe concurrent access
// across tokens.
type Store interface {
	Get(token string) (*State, bool)
	Put(token string, state *State)
	Delete(token string)
}

type memoryEntry struct {
	state     *State
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore builds an in-process store. A zero TTL disables
// eviction; otherwise entries expire relative to their last write and
// stale entries are swept opportunistically on writes.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memoryStore) Get(token string) (*State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.now().After(entry.expiresAt) {
		delete(s.entries, token)
		return nil, false
	}
	return entry.state, true
}

func (s *memoryStore) Put(token string, state *State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[token] = memoryEntry{state: state, expiresAt: now.Add(s.ttl)}

	if s.ttl > 0 {
		for key, entry := range s.entries {
			if now.After(entry.expiresAt) {
				delete(s.entries, key)
			}
		}
	}
}

func (s *memoryStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
}
