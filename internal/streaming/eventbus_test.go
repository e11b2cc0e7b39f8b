package streaming

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

func receive(t *testing.T, ch <-chan *AlertEvent) *AlertEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestEventBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus(nil, logger.NewNop())
	defer bus.Close()

	all, unsubAll := bus.Subscribe(nil)
	defer unsubAll()
	reportsOnly, unsubReports := bus.Subscribe(&AlertFilter{Kinds: []models.AlertKind{models.AlertKindCommunityReport}})
	defer unsubReports()
	assert.Equal(t, 2, bus.SubscriberCount())

	event := sampleEvent(models.AlertKindDangerousCheck, models.RiskLevelDangerous, "")
	require.NoError(t, bus.Publish(context.Background(), event))

	got := receive(t, all)
	assert.Equal(t, event.ID, got.ID)
	assert.NotEmpty(t, got.Origin)

	select {
	case e := <-reportsOnly:
		t.Fatalf("filtered subscriber received %v", e)
	default:
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus(nil, logger.NewNop())
	defer bus.Close()

	ch, unsubscribe := bus.Subscribe(nil)
	unsubscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, bus.SubscriberCount())

	require.NoError(t, bus.Publish(context.Background(), sampleEvent(models.AlertKindDangerousCheck, models.RiskLevelDangerous, "")))
}

func TestEventBusDropsWhenSubscriberIsFull(t *testing.T) {
	bus := NewEventBus(nil, logger.NewNop())
	defer bus.Close()

	ch, unsubscribe := bus.Subscribe(nil)
	defer unsubscribe()

	for i := 0; i < subscriberBuffer+10; i++ {
		require.NoError(t, bus.Publish(context.Background(), sampleEvent(models.AlertKindDangerousCheck, models.RiskLevelDangerous, "")))
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestEventBusCloseAndRunWithoutNATS(t *testing.T) {
	bus := NewEventBus(nil, logger.NewNop())
	assert.NoError(t, bus.Run(context.Background()))

	ch, _ := bus.Subscribe(nil)
	bus.Close()
	_, ok := <-ch
	assert.False(t, ok)

	late, _ := bus.Subscribe(nil)
	_, ok = <-late
	assert.False(t, ok)
}

func TestBusPublisher(t *testing.T) {
	bus := NewEventBus(nil, logger.NewNop())
	defer bus.Close()
	ch, unsubscribe := bus.Subscribe(nil)
	defer unsubscribe()

	pub := NewBusPublisher(bus)
	require.NoError(t, pub.PublishAlert(context.Background(), &models.Alert{
		Kind:      models.AlertKindCommunityReport,
		Target:    "shein-sa-deals.co.za",
		RiskLevel: models.RiskLevelDangerous,
		Category:  "ecommerce",
	}))

	got := receive(t, ch)
	assert.Equal(t, "shein-sa-deals.co.za", got.Target)
	assert.Equal(t, "ecommerce", got.Category)

	assert.NoError(t, NewBusPublisher(nil).PublishAlert(context.Background(), &models.Alert{}))
}
