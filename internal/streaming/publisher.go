package streaming

import (
	"context"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

// BusPublisher lets the check and report services publish onto the bus
type BusPublisher struct {
	bus *EventBus
}

// NewBusPublisher creates a new publisher adapter
func NewBusPublisher(bus *EventBus) *BusPublisher {
	return &BusPublisher{bus: bus}
}

// PublishAlert converts and publishes a domain alert
func (p *BusPublisher) PublishAlert(ctx context.Context, alert *models.Alert) error {
	if p.bus == nil {
		return nil
	}
	return p.bus.Publish(ctx, NewAlertEvent(alert))
}
