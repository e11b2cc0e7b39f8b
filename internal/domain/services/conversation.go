package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

const greetingText = "Hi! I'm your Fraud Stop assistant. I'm here to help you stay safe online. I can help you with:"

var greetingSuggestions = []string{
	"Check a suspicious link",
	"Report a scam",
	"Get safety tips",
	"Learn about current alerts",
}

// Conversation appends turns to a caller-owned chat log. It holds no history
// itself; every call takes the log in and hands a new one back.
type Conversation struct {
	matcher *IntentMatcher
	newID   func() uuid.UUID
}

// NewConversation wraps the shared matcher
func NewConversation(matcher *IntentMatcher) *Conversation {
	return &Conversation{matcher: matcher, newID: uuid.New}
}

// Matcher returns the shared intent matcher
func (c *Conversation) Matcher() *IntentMatcher {
	return c.matcher
}

// Greeting returns the bot turn that opens every conversation
func (c *Conversation) Greeting(now time.Time) models.ChatTurn {
	return models.ChatTurn{
		ID:          c.newID(),
		Text:        greetingText,
		IsBot:       true,
		Timestamp:   now,
		Topic:       models.TopicGreeting,
		Suggestions: cloneStrings(greetingSuggestions),
	}
}

// Converse records the user's message and the bot's reply. The returned log
// is a fresh slice; history is left untouched.
func (c *Conversation) Converse(history []models.ChatTurn, text string, now time.Time) ([]models.ChatTurn, models.Reply) {
	reply := c.matcher.Respond(text)

	next := make([]models.ChatTurn, len(history), len(history)+2)
	copy(next, history)
	next = append(next,
		models.ChatTurn{
			ID:        c.newID(),
			Text:      text,
			IsBot:     false,
			Timestamp: now,
		},
		models.ChatTurn{
			ID:          c.newID(),
			Text:        reply.Text,
			IsBot:       true,
			Timestamp:   now,
			Topic:       reply.Topic,
			Suggestions: cloneStrings(reply.Suggestions),
		},
	)
	return next, reply
}

// PendingSuggestions returns the suggestions of the last turn when it came
// from the bot, which is what a chat surface offers as quick replies.
func PendingSuggestions(history []models.ChatTurn) []string {
	if len(history) == 0 {
		return nil
	}
	last := history[len(history)-1]
	if !last.IsBot {
		return nil
	}
	return cloneStrings(last.Suggestions)
}
