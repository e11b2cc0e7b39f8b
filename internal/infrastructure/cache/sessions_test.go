package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

func turn(text string, at time.Time) models.ChatTurn {
	return models.ChatTurn{ID: uuid.New(), Text: text, Timestamp: at}
}

func TestMemorySessionStore_CreateAppendGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour, 10)
	start := time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)
	id := uuid.New()

	require.NoError(t, store.Create(ctx, &models.ChatSession{
		ID:        id,
		Turns:     []models.ChatTurn{turn("hello", start)},
		CreatedAt: start,
	}))
	require.NoError(t, store.Append(ctx, id, turn("check link", start.Add(time.Minute)), turn("reply", start.Add(time.Minute))))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Turns, 3)
	assert.Equal(t, "hello", got.Turns[0].Text)
	assert.Equal(t, "reply", got.Turns[2].Text)
	assert.Equal(t, start, got.CreatedAt)
	assert.Equal(t, start.Add(time.Minute), got.UpdatedAt)

	got.Turns[0].Text = "mutated"
	again, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello", again.Turns[0].Text)
}

func TestMemorySessionStore_UnknownSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour, 10)

	_, err := store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = store.Append(ctx, uuid.New(), turn("x", time.Now()))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_CapsHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(0, 3)
	id := uuid.New()
	now := time.Now()

	require.NoError(t, store.Create(ctx, &models.ChatSession{ID: id, Turns: []models.ChatTurn{turn("1", now)}}))
	for _, s := range []string{"2", "3", "4", "5"} {
		require.NoError(t, store.Append(ctx, id, turn(s, now)))
	}

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Turns, 3)
	assert.Equal(t, "3", got.Turns[0].Text)
	assert.Equal(t, "5", got.Turns[2].Text)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute, 10)
	clock := time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	id := uuid.New()
	require.NoError(t, store.Create(ctx, &models.ChatSession{ID: id, Turns: []models.ChatTurn{turn("hi", clock)}}))

	clock = clock.Add(50 * time.Second)
	require.NoError(t, store.Append(ctx, id, turn("still here", clock)))

	// the append refreshed the TTL
	clock = clock.Add(50 * time.Second)
	_, err := store.Get(ctx, id)
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemorySessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour, 10)
	id := uuid.New()

	require.NoError(t, store.Create(ctx, &models.ChatSession{ID: id, Turns: []models.ChatTurn{turn("hi", time.Now())}}))
	require.NoError(t, store.Delete(ctx, id))

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
