package handlers

import (
	"context"

	"github.com/Fraud-stop/shield-wise-guard/internal/config"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/cache"
	"github.com/Fraud-stop/shield-wise-guard/internal/streaming"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

// Probe checks one optional dependency for the readiness endpoint
type Probe func(ctx context.Context) error

// Handlers holds all API handlers
type Handlers struct {
	Health    *HealthHandler
	Check     *CheckHandler
	Chat      *ChatHandler
	Content   *ContentHandler
	Reports   *ReportHandler
	Streaming *StreamingHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Config          config.Config
	ReferenceSource string
	Checks          *services.CheckService
	Reports         *services.ReportService
	Conversation    *services.Conversation
	Content         *services.ContentCatalog
	Sessions        cache.SessionStore
	EventBus        *streaming.EventBus
	WebSocketHub    *streaming.WebSocketHub
	Probes          map[string]Probe
	Logger          *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Config.App.Version, deps.Probes, deps.Logger),
		Check:     NewCheckHandler(deps.Checks, deps.Conversation.Matcher(), deps.ReferenceSource, deps.Config.Checker.SimulatedLatency, deps.Logger),
		Chat:      NewChatHandler(deps.Conversation, deps.Sessions, deps.Config.Chat.TypingDelay, deps.Logger),
		Content:   NewContentHandler(deps.Content, deps.Logger),
		Reports:   NewReportHandler(deps.Reports, deps.Logger),
		Streaming: NewStreamingHandler(deps.WebSocketHub, deps.EventBus, deps.Logger),
	}
}
