package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic identifies which intent rule produced a reply
type Topic string

const (
	TopicLinkCheck       Topic = "link_check"
	TopicReporting       Topic = "reporting"
	TopicSafetyTips      Topic = "safety_tips"
	TopicBanking         Topic = "banking"
	TopicCommunityAlerts Topic = "community_alerts"
	TopicPhishing        Topic = "phishing"
	TopicFallback        Topic = "fallback"
	TopicGreeting        Topic = "greeting"
)

// IntentRule maps a keyword set to a canned response
type IntentRule struct {
	Topic       Topic    `json:"topic"`
	Keywords    []string `json:"keywords"`
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Reply is the matcher output for one user message
type Reply struct {
	Topic       Topic    `json:"topic"`
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ChatTurn is one message in a conversation log
type ChatTurn struct {
	ID          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	IsBot       bool      `json:"isBot"`
	Timestamp   time.Time `json:"timestamp"`
	Topic       Topic     `json:"topic,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// ChatSession is the API view of a stored conversation
type ChatSession struct {
	ID        uuid.UUID  `json:"id"`
	Turns     []ChatTurn `json:"turns"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ChatMessageRequest is the payload for sending a chat message
type ChatMessageRequest struct {
	Text string `json:"text"`
}

// ChatMessageResponse returns the bot reply and the turns it appended
type ChatMessageResponse struct {
	SessionID uuid.UUID  `json:"session_id"`
	Reply     Reply      `json:"reply"`
	Appended  []ChatTurn `json:"appended"`
}
