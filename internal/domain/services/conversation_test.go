package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

func TestConversationGreeting(t *testing.T) {
	c := NewConversation(NewIntentMatcher(DefaultIntentTable()))
	now := time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)

	g := c.Greeting(now)
	assert.True(t, g.IsBot)
	assert.Equal(t, models.TopicGreeting, g.Topic)
	assert.Equal(t, now, g.Timestamp)
	assert.Len(t, g.Suggestions, 4)
}

func TestConverseAppendsWithoutMutatingHistory(t *testing.T) {
	c := NewConversation(NewIntentMatcher(DefaultIntentTable()))
	now := time.Now()

	history := []models.ChatTurn{c.Greeting(now)}
	next, reply := c.Converse(history, "How do I report a scam?", now)

	require.Len(t, history, 1)
	require.Len(t, next, 3)
	assert.Equal(t, history[0], next[0])

	assert.False(t, next[1].IsBot)
	assert.Equal(t, "How do I report a scam?", next[1].Text)

	assert.True(t, next[2].IsBot)
	assert.Equal(t, models.TopicReporting, next[2].Topic)
	assert.Equal(t, reply.Text, next[2].Text)
	assert.NotEqual(t, next[1].ID, next[2].ID)

	next2, _ := c.Converse(next, "thanks", now)
	assert.Len(t, next, 3)
	assert.Len(t, next2, 5)
}

func TestPendingSuggestions(t *testing.T) {
	c := NewConversation(NewIntentMatcher(DefaultIntentTable()))
	now := time.Now()

	assert.Nil(t, PendingSuggestions(nil))

	history, reply := c.Converse(nil, "asdkjasd", now)
	assert.Equal(t, reply.Suggestions, PendingSuggestions(history))

	userLast := append(history, models.ChatTurn{Text: "hello"})
	assert.Nil(t, PendingSuggestions(userLast))
}
