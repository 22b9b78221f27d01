package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all garden events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.PlantWatered,
		event.PlantDied,
		event.PlantWilting,
		event.PlantPurchased,
		event.PlantRevived,
		event.ItemPurchased,
		event.TradeCommitted,
		event.TradeAborted,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates business counters from one event
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.PlantWatered:
		var p event.PlantWateredPayloadV1
		if p, err = event.DecodePayload[event.PlantWateredPayloadV1](evt.Payload); err == nil {
			PlantsWatered.WithLabelValues(strconv.FormatBool(p.Guest)).Inc()
			ExperienceGranted.Add(float64(p.GainedExperience))
		}
	case event.PlantDied:
		var p event.PlantDiedPayloadV1
		if p, err = event.DecodePayload[event.PlantDiedPayloadV1](evt.Payload); err == nil {
			PlantsDied.WithLabelValues(p.PlantType).Inc()
		}
	case event.PlantWilting:
		PlantsWilting.Inc()
	case event.PlantPurchased:
		var p event.PlantPurchasedPayloadV1
		if p, err = event.DecodePayload[event.PlantPurchasedPayloadV1](evt.Payload); err == nil {
			PlantsPurchased.WithLabelValues(p.PlantType).Inc()
		}
	case event.PlantRevived:
		PlantsRevived.Inc()
	case event.ItemPurchased:
		var p event.ItemPurchasedPayloadV1
		if p, err = event.DecodePayload[event.ItemPurchasedPayloadV1](evt.Payload); err == nil {
			ItemsPurchased.WithLabelValues(p.ItemName).Inc()
		}
	case event.TradeCommitted:
		Trades.WithLabelValues(OutcomeCommitted).Inc()
	case event.TradeAborted:
		var p event.TradeAbortedPayloadV1
		if p, err = event.DecodePayload[event.TradeAbortedPayloadV1](evt.Payload); err == nil {
			Trades.WithLabelValues(p.Reason).Inc()
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
