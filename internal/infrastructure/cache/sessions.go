package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

// ErrSessionNotFound is returned for unknown or expired chat sessions
var ErrSessionNotFound = errors.New("chat session not found")

// SessionStore keeps the ordered turn log of each chat session. Stores keep
// at most their configured number of turns, dropping the oldest first.
type SessionStore interface {
	Create(ctx context.Context, session *models.ChatSession) error
	Append(ctx context.Context, id uuid.UUID, turns ...models.ChatTurn) error
	Get(ctx context.Context, id uuid.UUID) (*models.ChatSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RedisSessionStore stores each session as a Redis list of JSON turns.
// Every write refreshes the TTL.
type RedisSessionStore struct {
	cache      *RedisCache
	ttl        time.Duration
	maxHistory int
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(c *RedisCache, ttl time.Duration, maxHistory int) *RedisSessionStore {
	return &RedisSessionStore{cache: c, ttl: ttl, maxHistory: maxHistory}
}

type sessionMeta struct {
	CreatedAt time.Time `json:"created_at"`
}

func turnsKey(id uuid.UUID) string {
	return KeyChatSessionPrefix + id.String()
}

func metaKey(id uuid.UUID) string {
	return KeyChatSessionPrefix + id.String() + ":meta"
}

// Create stores a new session with its initial turns
func (s *RedisSessionStore) Create(ctx context.Context, session *models.ChatSession) error {
	if err := s.cache.Delete(ctx, turnsKey(session.ID), metaKey(session.ID)); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	if err := s.cache.SetJSON(ctx, metaKey(session.ID), sessionMeta{CreatedAt: session.CreatedAt}, s.ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return s.push(ctx, session.ID, session.Turns)
}

// Append adds turns to an existing session
func (s *RedisSessionStore) Append(ctx context.Context, id uuid.UUID, turns ...models.ChatTurn) error {
	n, err := s.cache.client.Exists(ctx, s.cache.key(turnsKey(id))).Result()
	if err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return s.push(ctx, id, turns)
}

func (s *RedisSessionStore) push(ctx context.Context, id uuid.UUID, turns []models.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]any, len(turns))
	for i, t := range turns {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal turn: %w", err)
		}
		values[i] = data
	}

	key := s.cache.key(turnsKey(id))
	pipe := s.cache.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	if s.maxHistory > 0 {
		pipe.LTrim(ctx, key, int64(-s.maxHistory), -1)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
		pipe.Expire(ctx, s.cache.key(metaKey(id)), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store turns: %w", err)
	}
	return nil
}

// Get returns the session log. CreatedAt survives trimming of the oldest
// turns through the meta key.
func (s *RedisSessionStore) Get(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	raw, err := s.cache.client.LRange(ctx, s.cache.key(turnsKey(id)), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrSessionNotFound
	}

	turns := make([]models.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var t models.ChatTurn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("failed to decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	session := newSession(id, turns)

	var meta sessionMeta
	switch err := s.cache.GetJSON(ctx, metaKey(id), &meta); {
	case err == nil && !meta.CreatedAt.IsZero():
		session.CreatedAt = meta.CreatedAt
	case err != nil && !errors.Is(err, redis.Nil):
		return nil, fmt.Errorf("failed to load session meta: %w", err)
	}
	return session, nil
}

// Delete removes a session
func (s *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.cache.Delete(ctx, turnsKey(id), metaKey(id))
}

// MemorySessionStore is the in-process fallback used when Redis is off
type MemorySessionStore struct {
	mu         sync.Mutex
	sessions   map[uuid.UUID]*memorySession
	ttl        time.Duration
	maxHistory int
	now        func() time.Time
}

type memorySession struct {
	turns     []models.ChatTurn
	createdAt time.Time
	expiresAt time.Time
}

// NewMemorySessionStore creates an in-memory session store
func NewMemorySessionStore(ttl time.Duration, maxHistory int) *MemorySessionStore {
	return &MemorySessionStore{
		sessions:   make(map[uuid.UUID]*memorySession),
		ttl:        ttl,
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// Create stores a new session with its initial turns
func (s *MemorySessionStore) Create(_ context.Context, session *models.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	ms := &memorySession{createdAt: session.CreatedAt}
	if ms.createdAt.IsZero() {
		ms.createdAt = now
	}
	ms.turns = s.capped(append([]models.ChatTurn(nil), session.Turns...))
	ms.expiresAt = s.expiry(now)
	s.sessions[session.ID] = ms
	return nil
}

// Append adds turns to an existing session
func (s *MemorySessionStore) Append(_ context.Context, id uuid.UUID, turns ...models.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ms, ok := s.live(id, now)
	if !ok {
		return ErrSessionNotFound
	}
	ms.turns = s.capped(append(ms.turns, turns...))
	ms.expiresAt = s.expiry(now)
	return nil
}

// Get returns a copy of the session log
func (s *MemorySessionStore) Get(_ context.Context, id uuid.UUID) (*models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms, ok := s.live(id, s.now())
	if !ok {
		return nil, ErrSessionNotFound
	}
	session := newSession(id, append([]models.ChatTurn(nil), ms.turns...))
	session.CreatedAt = ms.createdAt
	return session, nil
}

// Delete removes a session
func (s *MemorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(s.now())
	return len(s.sessions)
}

func (s *MemorySessionStore) live(id uuid.UUID, now time.Time) (*memorySession, bool) {
	ms, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if !ms.expiresAt.IsZero() && !now.Before(ms.expiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return ms, true
}

func (s *MemorySessionStore) sweep(now time.Time) {
	for id := range s.sessions {
		s.live(id, now)
	}
}

func (s *MemorySessionStore) expiry(now time.Time) time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(s.ttl)
}

func (s *MemorySessionStore) capped(turns []models.ChatTurn) []models.ChatTurn {
	if s.maxHistory > 0 && len(turns) > s.maxHistory {
		return append([]models.ChatTurn(nil), turns[len(turns)-s.maxHistory:]...)
	}
	return turns
}

func newSession(id uuid.UUID, turns []models.ChatTurn) *models.ChatSession {
	session := &models.ChatSession{ID: id, Turns: turns}
	if len(turns) > 0 {
		session.CreatedAt = turns[0].Timestamp
		session.UpdatedAt = turns[len(turns)-1].Timestamp
	}
	return session
}
